// file: internals/route/details/student_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifService "sekolahku_backend/internals/features/home/notifications/service"
	marksRoute "sekolahku_backend/internals/features/school/marks/route"
	marksService "sekolahku_backend/internals/features/school/marks/service"
	"sekolahku_backend/internals/services/push"
)

// StudentRoutes: fitur khusus siswa.
func StudentRoutes(r fiber.Router, db *gorm.DB, sender push.Sender, autoFeedback bool) {
	fanout := notifService.NewFanoutService(db, sender)
	marksSvc := marksService.NewMarksService(db, fanout, autoFeedback)

	marksRoute.MarksStudentRoutes(r, db, marksSvc)
}
