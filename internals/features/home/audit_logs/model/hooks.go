package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (a *AuditLogModel) BeforeCreate(tx *gorm.DB) error {
	if a.AuditLogID == uuid.Nil {
		a.AuditLogID = uuid.New()
	}
	return nil
}
