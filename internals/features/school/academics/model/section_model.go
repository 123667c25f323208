package model

import (
	"time"

	"github.com/google/uuid"
)

// SectionModel: satu section milik satu class. Slot class-teacher unik
// (satu wali kelas per section, overwrite saat reassignment).
type SectionModel struct {
	SectionID             uuid.UUID  `gorm:"column:section_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"section_id"`
	SectionClassID        uuid.UUID  `gorm:"column:section_class_id;type:uuid;not null;uniqueIndex:uq_section_class_name" json:"section_class_id"`
	SectionName           string     `gorm:"column:section_name;type:varchar(100);not null;uniqueIndex:uq_section_class_name" json:"section_name"`
	SectionClassTeacherID *uuid.UUID `gorm:"column:section_class_teacher_id;type:uuid" json:"section_class_teacher_id"`
	SectionCreatedAt      time.Time  `gorm:"column:section_created_at;autoCreateTime" json:"section_created_at"`
	SectionUpdatedAt      time.Time  `gorm:"column:section_updated_at;autoUpdateTime" json:"section_updated_at"`
}

func (SectionModel) TableName() string {
	return "sections"
}
