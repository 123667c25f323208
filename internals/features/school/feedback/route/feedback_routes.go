package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/feedback/controller"
	"sekolahku_backend/internals/features/school/feedback/service"
)

// FeedbackUserRoutes: semua role login; otorisasi per-operasi ada di
// controller + service (siswa read/reply-only, teacher scoped ke test-nya).
func FeedbackUserRoutes(r fiber.Router, db *gorm.DB, svc *service.FeedbackService) {
	ctrl := controller.NewFeedbackController(db, svc)

	fb := r.Group("/feedback")
	fb.Post("/", ctrl.CreateFeedback)
	fb.Get("/thread/:test_id/:student_id", ctrl.GetThread)
	fb.Post("/:id/reply", ctrl.ReplyFeedback)
	fb.Put("/:id", ctrl.EditFeedback)
}
