package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/marks/controller"
	"sekolahku_backend/internals/features/school/marks/service"
)

// MarksTeacherRoutes: guru submit & baca nilai per test.
func MarksTeacherRoutes(r fiber.Router, db *gorm.DB, svc *service.MarksService) {
	ctrl := controller.NewMarksController(db, svc)

	marks := r.Group("/marks")
	marks.Post("/", ctrl.SubmitMarks)
	marks.Get("/by-test/:test_id", ctrl.GetMarksByTest)
}

// MarksAdminRoutes: approval workflow.
func MarksAdminRoutes(r fiber.Router, db *gorm.DB, svc *service.MarksService) {
	ctrl := controller.NewAdminMarksController(db, svc)

	marks := r.Group("/marks")
	marks.Get("/pending", ctrl.GetPendingMarks)
	marks.Put("/bulk-approve", ctrl.BulkApproveMarks)
	marks.Put("/:id/approve", ctrl.ApproveMarks)
	marks.Put("/:id/reject", ctrl.RejectMarks)
}

// MarksStudentRoutes: siswa hanya melihat nilai approved miliknya.
func MarksStudentRoutes(r fiber.Router, db *gorm.DB, svc *service.MarksService) {
	ctrl := controller.NewMarksController(db, svc)

	r.Get("/marks", ctrl.GetMyMarks)
}

// MarksUserRoutes: ranking terbuka untuk semua user login.
func MarksUserRoutes(r fiber.Router, db *gorm.DB, svc *service.MarksService) {
	ctrl := controller.NewAdminMarksController(db, svc)

	r.Get("/tests/:test_id/ranking", ctrl.GetTestRanking)
}
