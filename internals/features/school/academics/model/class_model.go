package model

import (
	"time"

	"github.com/google/uuid"
)

type ClassModel struct {
	ClassID        uuid.UUID `gorm:"column:class_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"class_id"`
	ClassName      string    `gorm:"column:class_name;type:varchar(100);not null;uniqueIndex" json:"class_name"`
	ClassCreatedAt time.Time `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at"`
}

func (ClassModel) TableName() string {
	return "classes"
}
