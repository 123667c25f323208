// file: internals/route/details/user_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifRoute "sekolahku_backend/internals/features/home/notifications/route"
	notifService "sekolahku_backend/internals/features/home/notifications/service"
	academicRoute "sekolahku_backend/internals/features/school/academics/route"
	feedbackRoute "sekolahku_backend/internals/features/school/feedback/route"
	feedbackService "sekolahku_backend/internals/features/school/feedback/service"
	marksRoute "sekolahku_backend/internals/features/school/marks/route"
	marksService "sekolahku_backend/internals/features/school/marks/service"
	userRoute "sekolahku_backend/internals/features/users/user/route"
	"sekolahku_backend/internals/services/push"
)

// UserRoutes: fitur untuk semua role login; otorisasi per-operasi di
// controller/service masing-masing.
func UserRoutes(r fiber.Router, db *gorm.DB, sender push.Sender, autoFeedback bool) {
	fanout := notifService.NewFanoutService(db, sender)
	marksSvc := marksService.NewMarksService(db, fanout, autoFeedback)
	feedbackSvc := feedbackService.NewFeedbackService(db, fanout)

	userRoute.UserRoutes(r, db)
	academicRoute.TestUserRoutes(r, db)
	marksRoute.MarksUserRoutes(r, db, marksSvc)
	feedbackRoute.FeedbackUserRoutes(r, db, feedbackSvc)
	notifRoute.NotificationUserRoutes(r, db, fanout)
}
