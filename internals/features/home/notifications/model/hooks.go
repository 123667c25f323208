package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == uuid.Nil {
		n.NotificationID = uuid.New()
	}
	return nil
}
