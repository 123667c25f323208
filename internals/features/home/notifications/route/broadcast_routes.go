package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/home/notifications/controller"
	"sekolahku_backend/internals/features/home/notifications/service"
)

// NotificationAdminRoutes: broadcast pengumuman.
func NotificationAdminRoutes(r fiber.Router, db *gorm.DB, fanout *service.FanoutService) {
	ctrl := controller.NewBroadcastController(db, fanout)

	r.Post("/notifications/broadcast", ctrl.Broadcast)
}
