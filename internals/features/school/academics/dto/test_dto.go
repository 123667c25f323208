package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/academics/model"
)

// ================== REQUEST ==================

type CreateTestRequest struct {
	TestName      string    `json:"test_name" validate:"required,min=1,max=150"`
	ClassID       uuid.UUID `json:"class_id" validate:"required"`
	SectionID     uuid.UUID `json:"section_id" validate:"required"`
	SubjectID     uuid.UUID `json:"subject_id" validate:"required"`
	MaxMarks      int       `json:"max_marks" validate:"required,gte=1"`
	DateConducted time.Time `json:"date_conducted" validate:"required"`
}

func (r *CreateTestRequest) ToModel(createdBy uuid.UUID) *model.TestModel {
	return &model.TestModel{
		TestName:          r.TestName,
		TestClassID:       r.ClassID,
		TestSectionID:     r.SectionID,
		TestSubjectID:     r.SubjectID,
		TestCreatedBy:     createdBy,
		TestMaxMarks:      r.MaxMarks,
		TestDateConducted: r.DateConducted,
	}
}

// ================== RESPONSE ==================

type TestResponse struct {
	TestID        uuid.UUID `json:"test_id"`
	TestName      string    `json:"test_name"`
	ClassID       uuid.UUID `json:"class_id"`
	SectionID     uuid.UUID `json:"section_id"`
	SubjectID     uuid.UUID `json:"subject_id"`
	CreatedBy     uuid.UUID `json:"created_by"`
	MaxMarks      int       `json:"max_marks"`
	DateConducted string    `json:"date_conducted"`
	CreatedAt     string    `json:"created_at"`
}

func ToTestResponse(m *model.TestModel) *TestResponse {
	return &TestResponse{
		TestID:        m.TestID,
		TestName:      m.TestName,
		ClassID:       m.TestClassID,
		SectionID:     m.TestSectionID,
		SubjectID:     m.TestSubjectID,
		CreatedBy:     m.TestCreatedBy,
		MaxMarks:      m.TestMaxMarks,
		DateConducted: m.TestDateConducted.Format("2006-01-02"),
		CreatedAt:     m.TestCreatedAt.Format(time.RFC3339),
	}
}

func ToTestResponseList(models []model.TestModel) []TestResponse {
	var result []TestResponse
	for _, m := range models {
		result = append(result, *ToTestResponse(&m))
	}
	return result
}
