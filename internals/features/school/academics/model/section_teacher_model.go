package model

import (
	"time"

	"github.com/google/uuid"
)

// SectionTeacherModel: join guru pendamping (bukan wali kelas) per section.
type SectionTeacherModel struct {
	SectionTeacherID        uuid.UUID `gorm:"column:section_teacher_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"section_teacher_id"`
	SectionTeacherSectionID uuid.UUID `gorm:"column:section_teacher_section_id;type:uuid;not null;uniqueIndex:uq_section_teacher" json:"section_teacher_section_id"`
	SectionTeacherTeacherID uuid.UUID `gorm:"column:section_teacher_teacher_id;type:uuid;not null;uniqueIndex:uq_section_teacher" json:"section_teacher_teacher_id"`
	SectionTeacherCreatedAt time.Time `gorm:"column:section_teacher_created_at;autoCreateTime" json:"section_teacher_created_at"`
}

func (SectionTeacherModel) TableName() string {
	return "section_teachers"
}
