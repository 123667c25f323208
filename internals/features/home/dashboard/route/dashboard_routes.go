package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/home/dashboard/controller"
)

// DashboardAdminRoutes: agregat untuk layar admin.
func DashboardAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDashboardController(db)

	dash := r.Group("/dashboard")
	dash.Get("/overview", ctrl.GetOverview)
	dash.Get("/tests/:test_id/stats", ctrl.GetTestStats)
}
