package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanEdit(t *testing.T) {
	teacherID := uuid.New()
	otherTeacherID := uuid.New()
	adminID := uuid.New()
	studentID := uuid.New()

	systemEntry := &FeedbackModel{FeedbackSenderRole: SenderSystem, FeedbackCreatedBy: uuid.New()}
	teacherEntry := &FeedbackModel{FeedbackSenderRole: SenderTeacher, FeedbackCreatedBy: teacherID}
	adminEntry := &FeedbackModel{FeedbackSenderRole: SenderAdmin, FeedbackCreatedBy: adminID}
	studentEntry := &FeedbackModel{FeedbackSenderRole: SenderStudent, FeedbackCreatedBy: studentID}

	t.Run("admin boleh edit semua", func(t *testing.T) {
		for _, fb := range []*FeedbackModel{systemEntry, teacherEntry, adminEntry, studentEntry} {
			assert.True(t, fb.CanEdit(SenderAdmin, adminID))
		}
	})

	t.Run("teacher boleh edit entri system", func(t *testing.T) {
		assert.True(t, systemEntry.CanEdit(SenderTeacher, teacherID))
	})

	t.Run("teacher boleh edit entri teacher miliknya", func(t *testing.T) {
		assert.True(t, teacherEntry.CanEdit(SenderTeacher, teacherID))
		assert.False(t, teacherEntry.CanEdit(SenderTeacher, otherTeacherID))
	})

	t.Run("teacher tidak boleh edit entri admin/student", func(t *testing.T) {
		assert.False(t, adminEntry.CanEdit(SenderTeacher, teacherID))
		assert.False(t, studentEntry.CanEdit(SenderTeacher, teacherID))
	})

	t.Run("student tidak pernah boleh edit", func(t *testing.T) {
		for _, fb := range []*FeedbackModel{systemEntry, teacherEntry, adminEntry, studentEntry} {
			assert.False(t, fb.CanEdit(SenderStudent, studentID))
		}
	})
}
