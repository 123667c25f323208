package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (m *MarksModel) BeforeCreate(tx *gorm.DB) error {
	if m.MarksID == uuid.Nil {
		m.MarksID = uuid.New()
	}
	return nil
}
