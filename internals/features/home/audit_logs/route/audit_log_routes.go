package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/home/audit_logs/controller"
)

// AuditLogAdminRoutes: hanya admin.
func AuditLogAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuditLogController(db)

	r.Get("/audit-logs", ctrl.GetAuditLogs)
}
