// file: internals/features/school/marks/service/marks_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	auditModel "sekolahku_backend/internals/features/home/audit_logs/model"
	notifModel "sekolahku_backend/internals/features/home/notifications/model"
	notifService "sekolahku_backend/internals/features/home/notifications/service"
	academicModel "sekolahku_backend/internals/features/school/academics/model"
	feedbackService "sekolahku_backend/internals/features/school/feedback/service"
	"sekolahku_backend/internals/features/school/marks/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

// MarksService memegang siklus hidup nilai:
// submit/resubmit (guru) → pending → approve/reject (admin) → fan-out.
// AutoFeedback: kebijakan apakah approve otomatis menulis feedback system
// (lihat DESIGN.md, dua implementasi sumber tidak konsisten).
type MarksService struct {
	DB           *gorm.DB
	Fanout       *notifService.FanoutService
	AutoFeedback bool
}

func NewMarksService(db *gorm.DB, fanout *notifService.FanoutService, autoFeedback bool) *MarksService {
	return &MarksService{DB: db, Fanout: fanout, AutoFeedback: autoFeedback}
}

type SubmitInput struct {
	TestID        uuid.UUID
	StudentID     uuid.UUID
	MarksObtained int
}

// Submit: guru pemilik test merekam/merekam-ulang nilai siswa.
// Baris yang sudah approved/rejected dibuka lagi jadi pending dan field
// approver dikosongkan — re-grading selalu butuh approval baru.
func (s *MarksService) Submit(ctx context.Context, teacherID uuid.UUID, in SubmitInput) (*model.MarksModel, error) {
	var test academicModel.TestModel
	if err := s.DB.Where("test_id = ?", in.TestID).First(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Test tidak ditemukan")
		}
		return nil, err
	}
	if test.TestCreatedBy != teacherID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Hanya guru pembuat test yang boleh mengisi nilai")
	}

	// siswa harus terdaftar di class DAN section milik test ini
	var sp userModel.StudentProfileModel
	if err := s.DB.Where("student_profile_user_id = ?", in.StudentID).First(&sp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Profil siswa tidak ditemukan")
		}
		return nil, err
	}
	if sp.StudentProfileClassID != test.TestClassID || sp.StudentProfileSectionID != test.TestSectionID {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Siswa bukan anggota class/section test ini")
	}

	if in.MarksObtained < 0 || in.MarksObtained > test.TestMaxMarks {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
			fmt.Sprintf("Nilai harus di antara 0 dan %d", test.TestMaxMarks))
	}

	var row model.MarksModel
	action := auditModel.ActionUpdateMarks

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("marks_test_id = ? AND marks_student_id = ?", in.TestID, in.StudentID).
			First(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			action = auditModel.ActionCreateMarks
			row = model.MarksModel{
				MarksTestID:    in.TestID,
				MarksStudentID: in.StudentID,
				MarksObtained:  in.MarksObtained,
				MarksStatus:    model.StatusPendingApproval,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			next, _ := model.Transition(row.MarksStatus, model.ActionResubmit)
			row.MarksObtained = in.MarksObtained
			row.MarksStatus = next
			row.MarksApprovedBy = nil
			row.MarksApprovedAt = nil
			if err := tx.Model(&model.MarksModel{}).
				Where("marks_id = ?", row.MarksID).
				Updates(map[string]interface{}{
					"marks_obtained":    row.MarksObtained,
					"marks_status":      row.MarksStatus,
					"marks_approved_by": nil,
					"marks_approved_at": nil,
				}).Error; err != nil {
				return err
			}
		}

		return tx.Create(&auditModel.AuditLogModel{
			AuditLogUserID:     teacherID,
			AuditLogAction:     action,
			AuditLogEntityType: "marks",
			AuditLogEntityID:   row.MarksID,
			AuditLogRemarks:    fmt.Sprintf("nilai %d/%d untuk siswa %s", in.MarksObtained, test.TestMaxMarks, in.StudentID),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	// fan-out di luar transaksi (fire-and-forget)
	s.Fanout.NotifyActiveByRole(ctx, constants.RoleAdmin, notifModel.TypeMarksSubmitted,
		"Nilai menunggu approval",
		fmt.Sprintf("Guru mengirim nilai %d/%d untuk test %q", in.MarksObtained, test.TestMaxMarks, test.TestName),
		map[string]string{"marks_id": row.MarksID.String(), "test_id": test.TestID.String()})

	return &row, nil
}

// Percentage dibulatkan 2 desimal (85/100 → 85.00).
func Percentage(obtained, max int) float64 {
	if max <= 0 {
		return 0
	}
	return math.Round(float64(obtained)/float64(max)*100*100) / 100
}

// Approve: hanya sah dari pending. Field approved_by/approved_at merekam
// admin & waktu resolusi.
func (s *MarksService) Approve(ctx context.Context, adminID, marksID uuid.UUID) (*model.MarksModel, error) {
	var row model.MarksModel
	var test academicModel.TestModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("marks_id = ?", marksID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Data nilai tidak ditemukan")
			}
			return err
		}

		next, terr := model.Transition(row.MarksStatus, model.ActionApprove)
		if terr != nil {
			return fiber.NewError(fiber.StatusConflict, "Nilai sudah diresolusi, tidak bisa di-approve lagi")
		}

		if err := tx.Where("test_id = ?", row.MarksTestID).First(&test).Error; err != nil {
			return err
		}

		now := time.Now()
		row.MarksStatus = next
		row.MarksApprovedBy = &adminID
		row.MarksApprovedAt = &now
		if err := tx.Model(&model.MarksModel{}).
			Where("marks_id = ?", row.MarksID).
			Updates(map[string]interface{}{
				"marks_status":      row.MarksStatus,
				"marks_approved_by": adminID,
				"marks_approved_at": now,
			}).Error; err != nil {
			return err
		}

		if err := tx.Create(&auditModel.AuditLogModel{
			AuditLogUserID:     adminID,
			AuditLogAction:     auditModel.ActionApproveMarks,
			AuditLogEntityType: "marks",
			AuditLogEntityID:   row.MarksID,
		}).Error; err != nil {
			return err
		}

		if s.AutoFeedback {
			pct := Percentage(row.MarksObtained, test.TestMaxMarks)
			if err := feedbackService.CreateAutoFeedback(tx, row.MarksTestID, row.MarksStudentID, test.TestCreatedBy, pct); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyApproved(ctx, &row, &test)
	return &row, nil
}

func (s *MarksService) notifyApproved(ctx context.Context, row *model.MarksModel, test *academicModel.TestModel) {
	pct := Percentage(row.MarksObtained, test.TestMaxMarks)

	// guru pemilik test
	s.Fanout.Notify(ctx, test.TestCreatedBy, notifModel.TypeMarksApproved,
		"Nilai di-approve",
		fmt.Sprintf("Nilai untuk test %q sudah di-approve admin", test.TestName),
		map[string]string{"marks_id": row.MarksID.String()})

	// siswa, dengan persentase 2 desimal
	s.Fanout.Notify(ctx, row.MarksStudentID, notifModel.TypeMarksApproved,
		"Nilai kamu sudah keluar",
		fmt.Sprintf("Kamu mendapat %d/%d (%.2f%%) pada test %q",
			row.MarksObtained, test.TestMaxMarks, pct, test.TestName),
		map[string]string{"marks_id": row.MarksID.String(), "percentage": fmt.Sprintf("%.2f", pct)})
}

// Reject: bookkeeping resolver sama dengan approve (field approved_by/at
// merekam admin & waktu resolusi — artefak penamaan, semantik dipertahankan).
// Siswa TIDAK dinotifikasi saat reject; hanya guru (asimetri yang disengaja).
func (s *MarksService) Reject(ctx context.Context, adminID, marksID uuid.UUID, reason string) (*model.MarksModel, error) {
	var row model.MarksModel
	var test academicModel.TestModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("marks_id = ?", marksID).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Data nilai tidak ditemukan")
			}
			return err
		}

		next, terr := model.Transition(row.MarksStatus, model.ActionReject)
		if terr != nil {
			return fiber.NewError(fiber.StatusConflict, "Nilai sudah diresolusi, tidak bisa di-reject lagi")
		}

		if err := tx.Where("test_id = ?", row.MarksTestID).First(&test).Error; err != nil {
			return err
		}

		now := time.Now()
		row.MarksStatus = next
		row.MarksApprovedBy = &adminID
		row.MarksApprovedAt = &now
		if err := tx.Model(&model.MarksModel{}).
			Where("marks_id = ?", row.MarksID).
			Updates(map[string]interface{}{
				"marks_status":      row.MarksStatus,
				"marks_approved_by": adminID,
				"marks_approved_at": now,
			}).Error; err != nil {
			return err
		}

		return tx.Create(&auditModel.AuditLogModel{
			AuditLogUserID:     adminID,
			AuditLogAction:     auditModel.ActionRejectMarks,
			AuditLogEntityType: "marks",
			AuditLogEntityID:   row.MarksID,
			AuditLogRemarks:    reason,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Nilai untuk test %q ditolak admin", test.TestName)
	if reason != "" {
		body += ": " + reason
	}
	s.Fanout.Notify(ctx, test.TestCreatedBy, notifModel.TypeMarksRejected,
		"Nilai ditolak", body,
		map[string]string{"marks_id": row.MarksID.String()})

	return &row, nil
}

// BulkApprove: precondition all-or-nothing — setiap id harus ada DAN
// pending, kalau tidak seluruh call gagal tanpa mutasi. Setelah lolos,
// satu batch update + fan-out per baris (kegagalan push tidak rollback).
func (s *MarksService) BulkApprove(ctx context.Context, adminID uuid.UUID, ids []uuid.UUID) ([]model.MarksModel, error) {
	if len(ids) == 0 {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Daftar id nilai kosong")
	}

	var rows []model.MarksModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("marks_id IN ?", ids).Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) != len(ids) {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Sebagian id tidak ditemukan (%d dari %d)", len(rows), len(ids)))
		}
		for i := range rows {
			if _, terr := model.Transition(rows[i].MarksStatus, model.ActionApprove); terr != nil {
				return fiber.NewError(fiber.StatusUnprocessableEntity,
					fmt.Sprintf("Nilai %s tidak berstatus pending", rows[i].MarksID))
			}
		}

		now := time.Now()
		if err := tx.Model(&model.MarksModel{}).
			Where("marks_id IN ?", ids).
			Updates(map[string]interface{}{
				"marks_status":      model.StatusApproved,
				"marks_approved_by": adminID,
				"marks_approved_at": now,
			}).Error; err != nil {
			return err
		}

		for i := range rows {
			rows[i].MarksStatus = model.StatusApproved
			rows[i].MarksApprovedBy = &adminID
			rows[i].MarksApprovedAt = &now
			if err := tx.Create(&auditModel.AuditLogModel{
				AuditLogUserID:     adminID,
				AuditLogAction:     auditModel.ActionApproveMarks,
				AuditLogEntityType: "marks",
				AuditLogEntityID:   rows[i].MarksID,
				AuditLogRemarks:    "bulk approve",
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range rows {
		var test academicModel.TestModel
		if err := s.DB.Where("test_id = ?", rows[i].MarksTestID).First(&test).Error; err != nil {
			log.Printf("[WARN] Test %s tidak ditemukan saat fan-out bulk approve: %v", rows[i].MarksTestID, err)
			continue
		}
		s.notifyApproved(ctx, &rows[i], &test)
	}
	return rows, nil
}
