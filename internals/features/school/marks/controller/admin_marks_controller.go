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

// AdminMarksController: approval workflow nilai (khusus admin).
type AdminMarksController struct {
	DB      *gorm.DB
	Service *service.MarksService
}

func NewAdminMarksController(db *gorm.DB, svc *service.MarksService) *AdminMarksController {
	return &AdminMarksController{DB: db, Service: svc}
}

// 🟢 GET /api/a/marks/pending (+ pagination)
func (ctrl *AdminMarksController) GetPendingMarks(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	var total int64
	if err := ctrl.DB.Model(&model.MarksModel{}).
		Where("marks_status = ?", model.StatusPendingApproval).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []model.MarksModel
	if err := ctrl.DB.
		Where("marks_status = ?", model.StatusPendingApproval).
		Order("marks_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data nilai")
	}

	return helper.JsonList(c, "OK", dto.ToMarksResponseList(rows),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// 🟢 PUT /api/a/marks/:id/approve
func (ctrl *AdminMarksController) ApproveMarks(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}
	marksID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	row, err := ctrl.Service.Approve(c.UserContext(), adminID, marksID)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal approve nilai: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal approve nilai")
	}

	return helper.JsonUpdated(c, "Nilai berhasil di-approve", dto.ToMarksResponse(row))
}

// 🟢 PUT /api/a/marks/:id/reject
func (ctrl *AdminMarksController) RejectMarks(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}
	marksID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var req dto.RejectMarksRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}

	row, err := ctrl.Service.Reject(c.UserContext(), adminID, marksID, req.Reason)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal reject nilai: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal reject nilai")
	}

	return helper.JsonUpdated(c, "Nilai ditolak, guru diberi tahu", dto.ToMarksResponse(row))
}

// 🟢 PUT /api/a/marks/bulk-approve — all-or-nothing
func (ctrl *AdminMarksController) BulkApproveMarks(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	var req dto.BulkApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	rows, err := ctrl.Service.BulkApprove(c.UserContext(), adminID, req.MarksIDs)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal bulk approve: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal bulk approve")
	}

	return helper.JsonUpdated(c, "Semua nilai berhasil di-approve", dto.ToMarksResponseList(rows))
}

// 🟢 GET /api/u/tests/:test_id/ranking — ranking kompetisi (approved saja)
func (ctrl *AdminMarksController) GetTestRanking(c *fiber.Ctx) error {
	testID, err := uuid.Parse(c.Params("test_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format test ID tidak valid")
	}

	entries, err := ctrl.Service.Ranking(testID)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal menghitung ranking: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung ranking")
	}

	return helper.JsonOK(c, "OK", entries)
}
