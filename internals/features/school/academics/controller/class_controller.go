package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/academics/dto"
	"sekolahku_backend/internals/features/school/academics/model"
	"sekolahku_backend/internals/features/school/academics/service"
	helper "sekolahku_backend/internals/helpers"
)

type ClassController struct {
	DB      *gorm.DB
	Service *service.AcademicService
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db, Service: service.NewAcademicService(db)}
}

// 🟢 POST /api/a/classes
func (ctrl *ClassController) CreateClass(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[ERROR] Gagal parsing body: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctrl.Service.CreateClass(service.CreateClassInput{
		Name:            req.ClassName,
		SectionNamesCsv: req.SectionNames,
		TeacherID:       req.TeacherID,
		SubjectNamesCsv: req.SubjectNames,
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal membuat class: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat class")
	}

	return helper.JsonCreated(c, "Class berhasil dibuat", fiber.Map{
		"class":    dto.ToClassResponse(&result.Class),
		"sections": dto.ToSectionResponseList(result.Sections),
		"subjects": dto.ToSubjectResponseList(result.Subjects),
	})
}

// 🟢 GET /api/a/classes (+ pagination)
func (ctrl *ClassController) GetClasses(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&model.ClassModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var classes []model.ClassModel
	if err := ctrl.DB.
		Order("class_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data class")
	}

	resp := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		resp = append(resp, *dto.ToClassResponse(&classes[i]))
	}
	return helper.JsonList(c, "OK", resp, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// 🟢 GET /api/a/classes/:id — detail + sections + subjects
func (ctrl *ClassController) GetClassByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var cls model.ClassModel
	if err := ctrl.DB.Where("class_id = ?", id).First(&cls).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data class")
	}

	var sections []model.SectionModel
	if err := ctrl.DB.Where("section_class_id = ?", id).Order("section_name ASC").Find(&sections).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil section")
	}
	var subjects []model.SubjectModel
	if err := ctrl.DB.Where("subject_class_id = ?", id).Order("subject_name ASC").Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subject")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"class":    dto.ToClassResponse(&cls),
		"sections": dto.ToSectionResponseList(sections),
		"subjects": dto.ToSubjectResponseList(subjects),
	})
}
