package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/feedback/model"
)

// ================== REQUEST ==================

type CreateFeedbackRequest struct {
	TestID    uuid.UUID `json:"test_id" validate:"required"`
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Message   string    `json:"message" validate:"required,min=1,max=2000"`
}

type ReplyFeedbackRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

type EditFeedbackRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// ================== RESPONSE ==================

type FeedbackResponse struct {
	FeedbackID uuid.UUID `json:"feedback_id"`
	TestID     uuid.UUID `json:"test_id"`
	StudentID  uuid.UUID `json:"student_id"`
	TeacherID  uuid.UUID `json:"teacher_id"`
	SenderRole string    `json:"sender_role"`
	CreatedBy  uuid.UUID `json:"created_by"`
	Message    string    `json:"message"`
	CreatedAt  string    `json:"created_at"`
	UpdatedAt  string    `json:"updated_at"`
}

func ToFeedbackResponse(fb *model.FeedbackModel) *FeedbackResponse {
	return &FeedbackResponse{
		FeedbackID: fb.FeedbackID,
		TestID:     fb.FeedbackTestID,
		StudentID:  fb.FeedbackStudentID,
		TeacherID:  fb.FeedbackTeacherID,
		SenderRole: fb.FeedbackSenderRole,
		CreatedBy:  fb.FeedbackCreatedBy,
		Message:    fb.FeedbackMessage,
		CreatedAt:  fb.FeedbackCreatedAt.Format(time.RFC3339),
		UpdatedAt:  fb.FeedbackUpdatedAt.Format(time.RFC3339),
	}
}

func ToFeedbackResponseList(models []model.FeedbackModel) []FeedbackResponse {
	var result []FeedbackResponse
	for i := range models {
		result = append(result, *ToFeedbackResponse(&models[i]))
	}
	return result
}
