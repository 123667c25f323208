package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/marks/model"
)

// ================== REQUEST ==================

type SubmitMarksRequest struct {
	TestID        uuid.UUID `json:"test_id" validate:"required"`
	StudentID     uuid.UUID `json:"student_id" validate:"required"`
	MarksObtained int       `json:"marks_obtained" validate:"gte=0"`
}

type RejectMarksRequest struct {
	Reason string `json:"reason"` // opsional, diteruskan ke guru
}

type BulkApproveRequest struct {
	MarksIDs []uuid.UUID `json:"marks_ids" validate:"required,min=1"`
}

// ================== RESPONSE ==================

type MarksResponse struct {
	MarksID       uuid.UUID    `json:"marks_id"`
	TestID        uuid.UUID    `json:"test_id"`
	StudentID     uuid.UUID    `json:"student_id"`
	MarksObtained int          `json:"marks_obtained"`
	Status        model.Status `json:"status"`
	ApprovedBy    *uuid.UUID   `json:"approved_by"`
	ApprovedAt    *string      `json:"approved_at"`
	CreatedAt     string       `json:"created_at"`
	UpdatedAt     string       `json:"updated_at"`
}

func ToMarksResponse(m *model.MarksModel) *MarksResponse {
	resp := &MarksResponse{
		MarksID:       m.MarksID,
		TestID:        m.MarksTestID,
		StudentID:     m.MarksStudentID,
		MarksObtained: m.MarksObtained,
		Status:        m.MarksStatus,
		ApprovedBy:    m.MarksApprovedBy,
		CreatedAt:     m.MarksCreatedAt.Format(time.RFC3339),
		UpdatedAt:     m.MarksUpdatedAt.Format(time.RFC3339),
	}
	if m.MarksApprovedAt != nil {
		s := m.MarksApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}
	return resp
}

func ToMarksResponseList(models []model.MarksModel) []MarksResponse {
	var result []MarksResponse
	for i := range models {
		result = append(result, *ToMarksResponse(&models[i]))
	}
	return result
}
