package model

import (
	"time"

	"github.com/google/uuid"
)

type SubjectModel struct {
	SubjectID        uuid.UUID  `gorm:"column:subject_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"subject_id"`
	SubjectClassID   uuid.UUID  `gorm:"column:subject_class_id;type:uuid;not null;uniqueIndex:uq_subject_class_name" json:"subject_class_id"`
	SubjectName      string     `gorm:"column:subject_name;type:varchar(100);not null;uniqueIndex:uq_subject_class_name" json:"subject_name"`
	SubjectTeacherID *uuid.UUID `gorm:"column:subject_teacher_id;type:uuid" json:"subject_teacher_id"`
	SubjectCreatedAt time.Time  `gorm:"column:subject_created_at;autoCreateTime" json:"subject_created_at"`
	SubjectUpdatedAt time.Time  `gorm:"column:subject_updated_at;autoUpdateTime" json:"subject_updated_at"`
}

func (SubjectModel) TableName() string {
	return "subjects"
}
