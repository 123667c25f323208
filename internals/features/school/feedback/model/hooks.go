package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (f *FeedbackModel) BeforeCreate(tx *gorm.DB) error {
	if f.FeedbackID == uuid.Nil {
		f.FeedbackID = uuid.New()
	}
	return nil
}
