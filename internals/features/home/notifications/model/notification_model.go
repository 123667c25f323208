package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Tipe notifikasi (enum di sisi kode)
const (
	TypeMarksSubmitted = 1
	TypeMarksApproved  = 2
	TypeMarksRejected  = 3
	TypeFeedbackReply  = 4
	TypeBroadcast      = 5
)

type NotificationModel struct {
	NotificationID        uuid.UUID         `gorm:"column:notification_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"notification_id"`
	NotificationUserID    uuid.UUID         `gorm:"column:notification_user_id;type:uuid;not null;index" json:"notification_user_id"`
	NotificationTitle     string            `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationBody      string            `gorm:"column:notification_body;type:text" json:"notification_body"`
	NotificationType      int               `gorm:"column:notification_type;not null" json:"notification_type"`
	NotificationIsRead    bool              `gorm:"column:notification_is_read;not null;default:false" json:"notification_is_read"`
	NotificationData      datatypes.JSONMap `gorm:"column:notification_data;type:jsonb" json:"notification_data"`
	NotificationCreatedAt time.Time         `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
	NotificationUpdatedAt time.Time         `gorm:"column:notification_updated_at;autoUpdateTime" json:"notification_updated_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
