package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/academics/dto"
	"sekolahku_backend/internals/features/school/academics/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type SectionTeacherController struct {
	DB      *gorm.DB
	Service *service.AcademicService
}

func NewSectionTeacherController(db *gorm.DB) *SectionTeacherController {
	return &SectionTeacherController{DB: db, Service: service.NewAcademicService(db)}
}

// 🟢 POST /api/a/sections/assign-teacher
func (ctrl *SectionTeacherController) AssignTeacherToSection(c *fiber.Ctx) error {
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	var req dto.AssignTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Service.AssignTeacherToSection(actorID, service.AssignTeacherInput{
		TeacherID:      req.TeacherID,
		ClassID:        req.ClassID,
		SectionID:      req.SectionID,
		IsClassTeacher: req.IsClassTeacher,
	}); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal assign guru: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal assign guru")
	}

	return helper.JsonOK(c, "Guru berhasil di-assign ke section", nil)
}

// 🟢 POST /api/a/sections/teachers
func (ctrl *SectionTeacherController) AddSectionTeacher(c *fiber.Ctx) error {
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	var req dto.SectionTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Service.AddSectionTeacher(actorID, req.TeacherID, req.SectionID, req.SubjectIDs); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal menambah section teacher: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menambah section teacher")
	}

	return helper.JsonCreated(c, "Section teacher berhasil ditambahkan", nil)
}

// 🛑 DELETE /api/a/sections/:section_id/teachers/:teacher_id
func (ctrl *SectionTeacherController) RemoveSectionTeacher(c *fiber.Ctx) error {
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	sectionID, err := uuid.Parse(c.Params("section_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format section ID tidak valid")
	}
	teacherID, err := uuid.Parse(c.Params("teacher_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format teacher ID tidak valid")
	}

	if err := ctrl.Service.RemoveSectionTeacher(actorID, teacherID, sectionID); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal menghapus section teacher: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus section teacher")
	}

	return helper.JsonDeleted(c, "Section teacher berhasil dihapus", nil)
}
