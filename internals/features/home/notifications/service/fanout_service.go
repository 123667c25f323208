// file: internals/features/home/notifications/service/fanout_service.go
package service

import (
	"context"
	"log"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/home/notifications/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/services/push"
)

// FanoutService menerjemahkan event domain jadi:
// (a) baris Notification (durable, sumber kebenaran badge in-app), lalu
// (b) dispatch push best-effort. Kegagalan push HANYA di-log, tidak pernah
// menggagalkan request pemicunya.
type FanoutService struct {
	DB     *gorm.DB
	Sender push.Sender
}

func NewFanoutService(db *gorm.DB, sender push.Sender) *FanoutService {
	return &FanoutService{DB: db, Sender: sender}
}

func toJSONMap(data map[string]string) datatypes.JSONMap {
	if len(data) == 0 {
		return nil
	}
	m := make(datatypes.JSONMap, len(data))
	for k, v := range data {
		m[k] = v
	}
	return m
}

// Notify: satu penerima. Baris dulu, push belakangan.
func (s *FanoutService) Notify(ctx context.Context, userID uuid.UUID, ntype int, title, body string, data map[string]string) {
	row := model.NotificationModel{
		NotificationUserID: userID,
		NotificationTitle:  title,
		NotificationBody:   body,
		NotificationType:   ntype,
		NotificationData:   toJSONMap(data),
	}
	if err := s.DB.Create(&row).Error; err != nil {
		log.Printf("[ERROR] Gagal menyimpan notifikasi user=%s: %v", userID, err)
		return
	}

	var u userModel.UserModel
	if err := s.DB.Select("id, fcm_token").Where("id = ?", userID).First(&u).Error; err != nil {
		log.Printf("[WARN] Penerima push tidak ditemukan user=%s: %v", userID, err)
		return
	}
	if u.FCMToken == nil || *u.FCMToken == "" {
		return
	}
	if err := s.Sender.Send(ctx, *u.FCMToken, title, body, data); err != nil {
		// best-effort: di-log, tidak di-propagate
		log.Printf("[WARN] Push gagal user=%s: %v", userID, err)
	}
}

// NotifyMany: baris dibuat untuk SEMUA target; multicast hanya ke token
// yang tidak kosong.
func (s *FanoutService) NotifyMany(ctx context.Context, userIDs []uuid.UUID, ntype int, title, body string, data map[string]string) {
	if len(userIDs) == 0 {
		return
	}

	rows := make([]model.NotificationModel, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, model.NotificationModel{
			NotificationUserID: id,
			NotificationTitle:  title,
			NotificationBody:   body,
			NotificationType:   ntype,
			NotificationData:   toJSONMap(data),
		})
	}
	if err := s.DB.Create(&rows).Error; err != nil {
		log.Printf("[ERROR] Gagal menyimpan notifikasi massal (%d target): %v", len(userIDs), err)
		return
	}

	var tokens []string
	if err := s.DB.Model(&userModel.UserModel{}).
		Where("id IN ?", userIDs).
		Where("fcm_token IS NOT NULL AND fcm_token <> ''").
		Pluck("fcm_token", &tokens).Error; err != nil {
		log.Printf("[WARN] Gagal mengambil token push: %v", err)
		return
	}
	if len(tokens) == 0 {
		return
	}
	okCount, failCount, err := s.Sender.SendMulticast(ctx, tokens, title, body, data)
	if err != nil {
		log.Printf("[WARN] Multicast push gagal total: %v", err)
		return
	}
	if failCount > 0 {
		log.Printf("[WARN] Multicast push parsial: ok=%d gagal=%d", okCount, failCount)
	}
}

// NotifyActiveByRole: fan-out ke semua user aktif dengan role tertentu
// (mis. semua admin saat guru submit nilai).
func (s *FanoutService) NotifyActiveByRole(ctx context.Context, role string, ntype int, title, body string, data map[string]string) {
	var ids []uuid.UUID
	if err := s.DB.Model(&userModel.UserModel{}).
		Where("role = ? AND is_active = ?", role, true).
		Pluck("id", &ids).Error; err != nil {
		log.Printf("[ERROR] Gagal mengambil penerima role=%s: %v", role, err)
		return
	}
	s.NotifyMany(ctx, ids, ntype, title, body, data)
}

// UnreadCount SELALU dihitung ulang dari tabel, tidak pernah di-cache.
func (s *FanoutService) UnreadCount(userID uuid.UUID) (int64, error) {
	var n int64
	err := s.DB.Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// PushBadge mengirim silent push (data-only) berisi jumlah unread terbaru.
func (s *FanoutService) PushBadge(ctx context.Context, userID uuid.UUID) {
	count, err := s.UnreadCount(userID)
	if err != nil {
		log.Printf("[WARN] Gagal hitung unread user=%s: %v", userID, err)
		return
	}

	var u userModel.UserModel
	if err := s.DB.Select("id, fcm_token").Where("id = ?", userID).First(&u).Error; err != nil {
		return
	}
	if u.FCMToken == nil || *u.FCMToken == "" {
		return
	}
	if err := s.Sender.SendSilent(ctx, *u.FCMToken, map[string]string{
		"badge": strconv.FormatInt(count, 10),
	}); err != nil {
		log.Printf("[WARN] Silent push gagal user=%s: %v", userID, err)
	}
}
