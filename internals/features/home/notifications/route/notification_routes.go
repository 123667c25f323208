package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/home/notifications/controller"
	"sekolahku_backend/internals/features/home/notifications/service"
)

// NotificationUserRoutes: inbox notifikasi, semua role login.
func NotificationUserRoutes(r fiber.Router, db *gorm.DB, fanout *service.FanoutService) {
	ctrl := controller.NewNotificationController(db, fanout)

	notif := r.Group("/notifications")
	notif.Get("/", ctrl.GetMyNotifications)
	notif.Get("/unread-count", ctrl.GetUnreadCount)
	notif.Put("/read-all", ctrl.MarkAllAsRead)
	notif.Put("/:id/read", ctrl.MarkAsRead)
	notif.Delete("/:id", ctrl.DeleteNotification)
}
