// file: internals/features/school/feedback/service/feedback_service.go
package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "sekolahku_backend/internals/features/home/audit_logs/model"
	notifModel "sekolahku_backend/internals/features/home/notifications/model"
	notifService "sekolahku_backend/internals/features/home/notifications/service"
	"sekolahku_backend/internals/features/school/feedback/model"
	marksModel "sekolahku_backend/internals/features/school/marks/model"
)

// FeedbackService: thread pesan per (test, student), di-gate status approval
// nilai. Setiap post memicu fan-out ke pihak lain di thread.
type FeedbackService struct {
	DB     *gorm.DB
	Fanout *notifService.FanoutService
}

func NewFeedbackService(db *gorm.DB, fanout *notifService.FanoutService) *FeedbackService {
	return &FeedbackService{DB: db, Fanout: fanout}
}

// marksApproved: gate pembuatan/akses thread.
func (s *FeedbackService) marksApproved(testID, studentID uuid.UUID) (bool, error) {
	var row marksModel.MarksModel
	err := s.DB.Where("marks_test_id = ? AND marks_student_id = ?", testID, studentID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return row.MarksStatus == marksModel.StatusApproved, nil
}

type CreateInput struct {
	TestID    uuid.UUID
	StudentID uuid.UUID
	TeacherID uuid.UUID // guru pemilik test (denormalisasi)
	Message   string
}

// Create: manual oleh teacher/admin. Kepemilikan baris Marks yang approved
// (bukan kepemilikan test) yang men-gate pembuatan; teacher tetap hanya
// boleh untuk test miliknya sendiri (dicek di controller lewat test row).
func (s *FeedbackService) Create(ctx context.Context, creatorID uuid.UUID, creatorRole string, in CreateInput) (*model.FeedbackModel, error) {
	ok, err := s.marksApproved(in.TestID, in.StudentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Feedback hanya bisa dibuat setelah nilai di-approve")
	}

	fb := model.FeedbackModel{
		FeedbackTestID:     in.TestID,
		FeedbackStudentID:  in.StudentID,
		FeedbackTeacherID:  in.TeacherID,
		FeedbackSenderRole: creatorRole,
		FeedbackCreatedBy:  creatorID,
		FeedbackMessage:    in.Message,
	}
	if err := s.DB.Create(&fb).Error; err != nil {
		return nil, err
	}

	// post baru dari teacher/admin → kabari siswa
	s.Fanout.Notify(ctx, in.StudentID, notifModel.TypeFeedbackReply,
		"Feedback baru", "Ada feedback baru untuk nilai kamu",
		map[string]string{"feedback_id": fb.FeedbackID.String(), "test_id": in.TestID.String()})

	return &fb, nil
}

// Thread: baca thread terurut created_at, dengan gate per role.
func (s *FeedbackService) Thread(requesterID uuid.UUID, requesterRole string, testID, studentID uuid.UUID) ([]model.FeedbackModel, error) {
	switch requesterRole {
	case model.SenderStudent:
		if requesterID != studentID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Siswa hanya boleh membaca thread miliknya sendiri")
		}
		ok, err := s.marksApproved(testID, studentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fiber.NewError(fiber.StatusForbidden, "Thread terbuka setelah nilai di-approve")
		}
	}
	// kepemilikan test untuk teacher divalidasi controller sebelum sampai sini

	var rows []model.FeedbackModel
	if err := s.DB.
		Where("feedback_test_id = ? AND feedback_student_id = ?", testID, studentID).
		Order("feedback_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Reply: mewarisi test/student/teacher id dari pesan asal, merekam role &
// identitas PEMBALAS. Fan-out ke pihak lain di thread.
func (s *FeedbackService) Reply(ctx context.Context, replierID uuid.UUID, replierRole string, originalID uuid.UUID, message string) (*model.FeedbackModel, error) {
	var orig model.FeedbackModel
	if err := s.DB.Where("feedback_id = ?", originalID).First(&orig).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Feedback asal tidak ditemukan")
		}
		return nil, err
	}

	switch replierRole {
	case model.SenderStudent:
		if orig.FeedbackStudentID != replierID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Siswa hanya boleh membalas thread miliknya sendiri")
		}
		ok, err := s.marksApproved(orig.FeedbackTestID, orig.FeedbackStudentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fiber.NewError(fiber.StatusForbidden, "Thread terbuka setelah nilai di-approve")
		}
	case model.SenderTeacher:
		if orig.FeedbackTeacherID != replierID {
			return nil, fiber.NewError(fiber.StatusForbidden, "Guru hanya boleh membalas thread test miliknya")
		}
	}

	reply := model.FeedbackModel{
		FeedbackTestID:     orig.FeedbackTestID,
		FeedbackStudentID:  orig.FeedbackStudentID,
		FeedbackTeacherID:  orig.FeedbackTeacherID,
		FeedbackSenderRole: replierRole,
		FeedbackCreatedBy:  replierID,
		FeedbackMessage:    message,
	}
	if err := s.DB.Create(&reply).Error; err != nil {
		return nil, err
	}

	s.notifyReply(ctx, &orig, &reply, replierID, replierRole)
	return &reply, nil
}

// notifyReply: penerima = penulis asal (kalau beda), siswa (untuk balasan
// teacher/admin), dan guru test (untuk balasan admin atas entri
// teacher/student) — dideduplikasi, pembalas tidak dikirimi.
func (s *FeedbackService) notifyReply(ctx context.Context, orig, reply *model.FeedbackModel, replierID uuid.UUID, replierRole string) {
	targets := map[uuid.UUID]struct{}{}

	if orig.FeedbackCreatedBy != replierID {
		targets[orig.FeedbackCreatedBy] = struct{}{}
	}
	if replierRole == model.SenderTeacher || replierRole == model.SenderAdmin {
		if orig.FeedbackStudentID != replierID {
			targets[orig.FeedbackStudentID] = struct{}{}
		}
	}
	if replierRole == model.SenderAdmin &&
		(orig.FeedbackSenderRole == model.SenderTeacher || orig.FeedbackSenderRole == model.SenderStudent) {
		if orig.FeedbackTeacherID != replierID {
			targets[orig.FeedbackTeacherID] = struct{}{}
		}
	}

	ids := make([]uuid.UUID, 0, len(targets))
	for id := range targets {
		ids = append(ids, id)
	}
	s.Fanout.NotifyMany(ctx, ids, notifModel.TypeFeedbackReply,
		"Balasan feedback", "Ada balasan baru di thread feedback",
		map[string]string{"feedback_id": reply.FeedbackID.String(), "test_id": reply.FeedbackTestID.String()})
}

// Edit: matriks hak di model.CanEdit; hanya message & updated_at yang
// berubah, sender_role/created_by tidak.
func (s *FeedbackService) Edit(ctx context.Context, editorID uuid.UUID, editorRole string, feedbackID uuid.UUID, message string) (*model.FeedbackModel, error) {
	var fb model.FeedbackModel
	if err := s.DB.Where("feedback_id = ?", feedbackID).First(&fb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Feedback tidak ditemukan")
		}
		return nil, err
	}

	if !fb.CanEdit(editorRole, editorID) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Anda tidak punya hak mengedit feedback ini")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.FeedbackModel{}).
			Where("feedback_id = ?", feedbackID).
			Update("feedback_message", message).Error; err != nil {
			return err
		}
		return tx.Create(&auditModel.AuditLogModel{
			AuditLogUserID:     editorID,
			AuditLogAction:     auditModel.ActionEditFeedback,
			AuditLogEntityType: "feedback",
			AuditLogEntityID:   feedbackID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	fb.FeedbackMessage = message
	return &fb, nil
}
