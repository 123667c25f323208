package model

import (
	"time"

	"github.com/google/uuid"
)

// Role pengirim feedback
const (
	SenderSystem  = "system"
	SenderTeacher = "teacher"
	SenderAdmin   = "admin"
	SenderStudent = "student"
)

// FeedbackModel: satu pesan di thread (test, student), diurutkan created_at.
// feedback_teacher_id denormalisasi guru pemilik test-nya.
type FeedbackModel struct {
	FeedbackID         uuid.UUID `gorm:"column:feedback_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"feedback_id"`
	FeedbackTestID     uuid.UUID `gorm:"column:feedback_test_id;type:uuid;not null;index:idx_feedback_thread" json:"feedback_test_id"`
	FeedbackStudentID  uuid.UUID `gorm:"column:feedback_student_id;type:uuid;not null;index:idx_feedback_thread" json:"feedback_student_id"`
	FeedbackTeacherID  uuid.UUID `gorm:"column:feedback_teacher_id;type:uuid;not null" json:"feedback_teacher_id"`
	FeedbackSenderRole string    `gorm:"column:feedback_sender_role;type:varchar(20);not null" json:"feedback_sender_role"`
	FeedbackCreatedBy  uuid.UUID `gorm:"column:feedback_created_by;type:uuid;not null" json:"feedback_created_by"`
	FeedbackMessage    string    `gorm:"column:feedback_message;type:text;not null" json:"feedback_message"`
	FeedbackCreatedAt  time.Time `gorm:"column:feedback_created_at;autoCreateTime" json:"feedback_created_at"`
	FeedbackUpdatedAt  time.Time `gorm:"column:feedback_updated_at;autoUpdateTime" json:"feedback_updated_at"`
}

func (FeedbackModel) TableName() string {
	return "feedbacks"
}

// CanEdit: matriks hak edit.
// - admin boleh edit semua
// - teacher boleh edit entri system atau entri teacher miliknya sendiri
// - student tidak pernah boleh edit
func (f *FeedbackModel) CanEdit(requesterRole string, requesterID uuid.UUID) bool {
	switch requesterRole {
	case SenderAdmin:
		return true
	case SenderTeacher:
		if f.FeedbackSenderRole == SenderSystem {
			return true
		}
		return f.FeedbackSenderRole == SenderTeacher && f.FeedbackCreatedBy == requesterID
	default:
		return false
	}
}
