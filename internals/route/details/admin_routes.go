// file: internals/route/details/admin_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditRoute "sekolahku_backend/internals/features/home/audit_logs/route"
	dashboardRoute "sekolahku_backend/internals/features/home/dashboard/route"
	notifRoute "sekolahku_backend/internals/features/home/notifications/route"
	notifService "sekolahku_backend/internals/features/home/notifications/service"
	academicRoute "sekolahku_backend/internals/features/school/academics/route"
	marksRoute "sekolahku_backend/internals/features/school/marks/route"
	marksService "sekolahku_backend/internals/features/school/marks/service"
	userRoute "sekolahku_backend/internals/features/users/user/route"
	"sekolahku_backend/internals/services/push"
)

// AdminRoutes: semua fitur khusus admin.
func AdminRoutes(r fiber.Router, db *gorm.DB, sender push.Sender, autoFeedback bool) {
	fanout := notifService.NewFanoutService(db, sender)
	marksSvc := marksService.NewMarksService(db, fanout, autoFeedback)

	userRoute.UserAdminRoutes(r, db)
	academicRoute.AcademicAdminRoutes(r, db)
	marksRoute.MarksAdminRoutes(r, db, marksSvc)
	notifRoute.NotificationAdminRoutes(r, db, fanout)
	auditRoute.AuditLogAdminRoutes(r, db)
	dashboardRoute.DashboardAdminRoutes(r, db)
}
