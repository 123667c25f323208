package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/home/audit_logs/model"
	helper "sekolahku_backend/internals/helpers"
)

// AuditLogController: baca-saja; log tidak pernah diubah lewat API.
type AuditLogController struct {
	DB *gorm.DB
}

func NewAuditLogController(db *gorm.DB) *AuditLogController {
	return &AuditLogController{DB: db}
}

// 🟢 GET /api/a/audit-logs?action=&entity_type=&user_id= (+ pagination)
func (ctrl *AuditLogController) GetAuditLogs(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	q := ctrl.DB.Model(&model.AuditLogModel{})
	if v := c.Query("action"); v != "" {
		q = q.Where("audit_log_action = ?", v)
	}
	if v := c.Query("entity_type"); v != "" {
		q = q.Where("audit_log_entity_type = ?", v)
	}
	if v := c.Query("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Format user_id tidak valid")
		}
		q = q.Where("audit_log_user_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var rows []model.AuditLogModel
	if err := q.
		Order("audit_log_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil audit log")
	}

	return helper.JsonList(c, "OK", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
