package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/home/notifications/model"
	"sekolahku_backend/internals/features/home/notifications/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// NotificationController: inbox per user. Unread count selalu dihitung ulang
// dari tabel, tidak pernah di-cache.
type NotificationController struct {
	DB     *gorm.DB
	Fanout *service.FanoutService
}

func NewNotificationController(db *gorm.DB, fanout *service.FanoutService) *NotificationController {
	return &NotificationController{DB: db, Fanout: fanout}
}

// 🟢 GET /api/u/notifications (+ pagination, ?unread=true)
func (ctrl *NotificationController) GetMyNotifications(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.NotificationModel{}).
		Where("notification_user_id = ?", userID)
	if c.Query("unread") == "true" {
		q = q.Where("notification_is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung notifikasi")
	}

	var rows []model.NotificationModel
	if err := q.
		Order("notification_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}

	return helper.JsonList(c, "OK", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// 🟢 GET /api/u/notifications/unread-count
func (ctrl *NotificationController) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	count, err := ctrl.Fanout.UnreadCount(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung notifikasi")
	}

	return helper.JsonOK(c, "OK", fiber.Map{"unread_count": count})
}

// 🟢 PUT /api/u/notifications/:id/read
func (ctrl *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	res := ctrl.DB.Model(&model.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ?", notifID, userID).
		Update("notification_is_read", true)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui notifikasi")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notifikasi tidak ditemukan")
	}

	// badge di device mengikuti jumlah unread terbaru
	ctrl.Fanout.PushBadge(c.UserContext(), userID)

	return helper.JsonUpdated(c, "Notifikasi ditandai sudah dibaca", nil)
}

// 🟢 PUT /api/u/notifications/read-all
func (ctrl *NotificationController) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	if err := ctrl.DB.Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Update("notification_is_read", true).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui notifikasi")
	}

	ctrl.Fanout.PushBadge(c.UserContext(), userID)

	return helper.JsonUpdated(c, "Semua notifikasi ditandai sudah dibaca", nil)
}

// 🛑 DELETE /api/u/notifications/:id — hanya milik sendiri
func (ctrl *NotificationController) DeleteNotification(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	res := ctrl.DB.
		Where("notification_id = ? AND notification_user_id = ?", notifID, userID).
		Delete(&model.NotificationModel{})
	if res.Error != nil {
		log.Printf("[ERROR] Gagal menghapus notifikasi: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus notifikasi")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notifikasi tidak ditemukan")
	}

	return helper.JsonDeleted(c, "Notifikasi berhasil dihapus", nil)
}
