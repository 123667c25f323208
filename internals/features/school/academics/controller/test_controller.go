package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/academics/dto"
	"sekolahku_backend/internals/features/school/academics/model"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type TestController struct {
	DB *gorm.DB
}

func NewTestController(db *gorm.DB) *TestController {
	return &TestController{DB: db}
}

// 🟢 POST /api/t/tests — hanya guru; test immutable setelah dibuat
func (ctrl *TestController) CreateTest(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	var req dto.CreateTestRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[ERROR] Gagal parsing body: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// section & subject harus bagian dari class yang sama
	var sec model.SectionModel
	if err := ctrl.DB.Where("section_id = ? AND section_class_id = ?", req.SectionID, req.ClassID).
		First(&sec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Section bukan bagian dari class ini")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memvalidasi section")
	}
	var sub model.SubjectModel
	if err := ctrl.DB.Where("subject_id = ? AND subject_class_id = ?", req.SubjectID, req.ClassID).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Subject bukan bagian dari class ini")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memvalidasi subject")
	}

	test := req.ToModel(teacherID)
	if err := ctrl.DB.Create(test).Error; err != nil {
		log.Printf("[ERROR] Gagal membuat test: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat test")
	}

	return helper.JsonCreated(c, "Test berhasil dibuat", dto.ToTestResponse(test))
}

// 🟢 GET /api/u/tests?class_id=&section_id= (+ pagination)
func (ctrl *TestController) GetTests(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.TestModel{})
	if v := c.Query("class_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format class_id tidak valid")
		}
		q = q.Where("test_class_id = ?", id)
	}
	if v := c.Query("section_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format section_id tidak valid")
		}
		q = q.Where("test_section_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var tests []model.TestModel
	if err := q.
		Order("test_date_conducted DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&tests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data test")
	}

	return helper.JsonList(c, "OK", dto.ToTestResponseList(tests),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// 🟢 GET /api/u/tests/:id
func (ctrl *TestController) GetTestByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var test model.TestModel
	if err := ctrl.DB.Where("test_id = ?", id).First(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Test tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data test")
	}

	return helper.JsonOK(c, "OK", dto.ToTestResponse(&test))
}
