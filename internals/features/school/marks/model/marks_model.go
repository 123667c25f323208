package model

import (
	"time"

	"github.com/google/uuid"
)

// MarksModel: satu baris nilai per (test, student).
// Invariant: marks_approved_by & marks_approved_at dua-duanya NULL
// iff marks_status = pending_approval.
type MarksModel struct {
	MarksID        uuid.UUID `gorm:"column:marks_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"marks_id"`
	MarksTestID    uuid.UUID `gorm:"column:marks_test_id;type:uuid;not null;uniqueIndex:uq_marks_test_student" json:"marks_test_id"`
	MarksStudentID uuid.UUID `gorm:"column:marks_student_id;type:uuid;not null;uniqueIndex:uq_marks_test_student" json:"marks_student_id"`
	MarksObtained  int       `gorm:"column:marks_obtained;not null" json:"marks_obtained"`
	MarksStatus    Status    `gorm:"column:marks_status;type:varchar(20);not null;default:'pending_approval'" json:"marks_status"`

	// Selalu merekam admin & waktu RESOLUSI, baik approve maupun reject.
	MarksApprovedBy *uuid.UUID `gorm:"column:marks_approved_by;type:uuid" json:"marks_approved_by"`
	MarksApprovedAt *time.Time `gorm:"column:marks_approved_at" json:"marks_approved_at"`

	MarksCreatedAt time.Time `gorm:"column:marks_created_at;autoCreateTime" json:"marks_created_at"`
	MarksUpdatedAt time.Time `gorm:"column:marks_updated_at;autoUpdateTime" json:"marks_updated_at"`
}

func (MarksModel) TableName() string {
	return "marks"
}
