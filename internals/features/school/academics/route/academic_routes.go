package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/academics/controller"
)

// AcademicAdminRoutes: struktur akademik (class/section/subject) + penugasan guru.
func AcademicAdminRoutes(r fiber.Router, db *gorm.DB) {
	classCtrl := controller.NewClassController(db)
	stCtrl := controller.NewSectionTeacherController(db)

	classes := r.Group("/classes")
	classes.Post("/", classCtrl.CreateClass)
	classes.Get("/", classCtrl.GetClasses)
	classes.Get("/:id", classCtrl.GetClassByID)

	sections := r.Group("/sections")
	sections.Post("/assign-teacher", stCtrl.AssignTeacherToSection)
	sections.Post("/teachers", stCtrl.AddSectionTeacher)
	sections.Delete("/:section_id/teachers/:teacher_id", stCtrl.RemoveSectionTeacher)
}

// TestTeacherRoutes: guru membuat test.
func TestTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTestController(db)

	r.Post("/tests", ctrl.CreateTest)
}

// TestUserRoutes: daftar + detail test untuk semua role login.
func TestUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTestController(db)

	tests := r.Group("/tests")
	tests.Get("/", ctrl.GetTests)
	tests.Get("/:id", ctrl.GetTestByID)
}
