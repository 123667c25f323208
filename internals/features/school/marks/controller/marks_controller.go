package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/marks/dto"
	"sekolahku_backend/internals/features/school/marks/model"
	"sekolahku_backend/internals/features/school/marks/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// MarksController: endpoint guru (submit/resubmit + baca).
type MarksController struct {
	DB      *gorm.DB
	Service *service.MarksService
}

func NewMarksController(db *gorm.DB, svc *service.MarksService) *MarksController {
	return &MarksController{DB: db, Service: svc}
}

// 🟢 POST /api/t/marks — submit/resubmit nilai
func (ctrl *MarksController) SubmitMarks(c *fiber.Ctx) error {
	teacherID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	var req dto.SubmitMarksRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[ERROR] Gagal parsing body: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ctrl.Service.Submit(c.UserContext(), teacherID, service.SubmitInput{
		TestID:        req.TestID,
		StudentID:     req.StudentID,
		MarksObtained: req.MarksObtained,
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal submit nilai: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan nilai")
	}

	return helper.JsonCreated(c, "Nilai dikirim, menunggu approval admin", dto.ToMarksResponse(row))
}

// 🟢 GET /api/t/marks/by-test/:test_id (+ pagination)
func (ctrl *MarksController) GetMarksByTest(c *fiber.Ctx) error {
	testID, err := uuid.Parse(c.Params("test_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format test ID tidak valid")
	}

	p := helper.ResolvePaging(c, 50, 200)

	var total int64
	if err := ctrl.DB.Model(&model.MarksModel{}).
		Where("marks_test_id = ?", testID).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []model.MarksModel
	if err := ctrl.DB.
		Where("marks_test_id = ?", testID).
		Order("marks_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data nilai")
	}

	return helper.JsonList(c, "OK", dto.ToMarksResponseList(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// 🟢 GET /api/s/marks — siswa membaca nilai APPROVED miliknya sendiri
func (ctrl *MarksController) GetMyMarks(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	var rows []model.MarksModel
	if err := ctrl.DB.
		Where("marks_student_id = ? AND marks_status = ?", studentID, model.StatusApproved).
		Order("marks_updated_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data nilai")
	}

	return helper.JsonOK(c, "OK", dto.ToMarksResponseList(rows))
}
