// file: internals/route/details/teacher_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifService "sekolahku_backend/internals/features/home/notifications/service"
	academicRoute "sekolahku_backend/internals/features/school/academics/route"
	marksRoute "sekolahku_backend/internals/features/school/marks/route"
	marksService "sekolahku_backend/internals/features/school/marks/service"
	"sekolahku_backend/internals/services/push"
)

// TeacherRoutes: fitur khusus guru.
func TeacherRoutes(r fiber.Router, db *gorm.DB, sender push.Sender, autoFeedback bool) {
	fanout := notifService.NewFanoutService(db, sender)
	marksSvc := marksService.NewMarksService(db, fanout, autoFeedback)

	academicRoute.TestTeacherRoutes(r, db)
	marksRoute.MarksTeacherRoutes(r, db, marksSvc)
}
