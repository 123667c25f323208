package model

import (
	"time"

	"github.com/google/uuid"
)

// TestModel: ujian milik satu triple (class, section, subject), dibuat oleh
// satu guru. Immutable setelah dibuat (tidak ada endpoint update).
type TestModel struct {
	TestID            uuid.UUID `gorm:"column:test_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"test_id"`
	TestName          string    `gorm:"column:test_name;type:varchar(150);not null" json:"test_name"`
	TestClassID       uuid.UUID `gorm:"column:test_class_id;type:uuid;not null" json:"test_class_id"`
	TestSectionID     uuid.UUID `gorm:"column:test_section_id;type:uuid;not null" json:"test_section_id"`
	TestSubjectID     uuid.UUID `gorm:"column:test_subject_id;type:uuid;not null" json:"test_subject_id"`
	TestCreatedBy     uuid.UUID `gorm:"column:test_created_by;type:uuid;not null" json:"test_created_by"`
	TestMaxMarks      int       `gorm:"column:test_max_marks;not null" json:"test_max_marks"`
	TestDateConducted time.Time `gorm:"column:test_date_conducted;not null" json:"test_date_conducted"`
	TestCreatedAt     time.Time `gorm:"column:test_created_at;autoCreateTime" json:"test_created_at"`
}

func (TestModel) TableName() string {
	return "tests"
}
