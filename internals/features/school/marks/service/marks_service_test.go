package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	auditModel "sekolahku_backend/internals/features/home/audit_logs/model"
	notifModel "sekolahku_backend/internals/features/home/notifications/model"
	notifService "sekolahku_backend/internals/features/home/notifications/service"
	academicModel "sekolahku_backend/internals/features/school/academics/model"
	feedbackModel "sekolahku_backend/internals/features/school/feedback/model"
	"sekolahku_backend/internals/features/school/marks/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

type fakeSender struct{}

func (fakeSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	return nil
}

func (fakeSender) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, error) {
	return len(tokens), 0, nil
}

func (fakeSender) SendSilent(ctx context.Context, token string, data map[string]string) error {
	return nil
}

type marksEnv struct {
	db        *gorm.DB
	svc       *MarksService
	teacherID uuid.UUID
	adminID   uuid.UUID
	studentID uuid.UUID
	test      academicModel.TestModel
}

func seedMarksUser(t *testing.T, db *gorm.DB, role string) uuid.UUID {
	t.Helper()
	u := userModel.UserModel{
		UserName: "user-" + uuid.NewString()[:8],
		Email:    uuid.NewString() + "@test.local",
		Password: "hashed-password",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

func newMarksEnv(t *testing.T, autoFeedback bool) *marksEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&userModel.StudentProfileModel{},
		&academicModel.ClassModel{},
		&academicModel.SectionModel{},
		&academicModel.SubjectModel{},
		&academicModel.TestModel{},
		&model.MarksModel{},
		&feedbackModel.FeedbackModel{},
		&notifModel.NotificationModel{},
		&auditModel.AuditLogModel{},
	))

	env := &marksEnv{
		db:        db,
		teacherID: seedMarksUser(t, db, constants.RoleTeacher),
		adminID:   seedMarksUser(t, db, constants.RoleAdmin),
		studentID: seedMarksUser(t, db, constants.RoleStudent),
	}

	cls := academicModel.ClassModel{ClassName: "Class 10"}
	require.NoError(t, db.Create(&cls).Error)
	sec := academicModel.SectionModel{SectionClassID: cls.ClassID, SectionName: "Section A"}
	require.NoError(t, db.Create(&sec).Error)
	sub := academicModel.SubjectModel{SubjectClassID: cls.ClassID, SubjectName: "Math"}
	require.NoError(t, db.Create(&sub).Error)

	require.NoError(t, db.Create(&userModel.StudentProfileModel{
		StudentProfileUserID:     env.studentID,
		StudentProfileClassID:    cls.ClassID,
		StudentProfileSectionID:  sec.SectionID,
		StudentProfileRollNumber: "12",
	}).Error)

	env.test = academicModel.TestModel{
		TestName:          "UTS Matematika",
		TestClassID:       cls.ClassID,
		TestSectionID:     sec.SectionID,
		TestSubjectID:     sub.SubjectID,
		TestCreatedBy:     env.teacherID,
		TestMaxMarks:      100,
		TestDateConducted: time.Now(),
	}
	require.NoError(t, db.Create(&env.test).Error)

	env.svc = NewMarksService(db, notifService.NewFanoutService(db, fakeSender{}), autoFeedback)
	return env
}

func requireFiberCode(t *testing.T, err error, code int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, code, fe.Code)
}

func TestSubmitCreatesPendingRow(t *testing.T) {
	env := newMarksEnv(t, false)
	ctx := context.Background()

	row, err := env.svc.Submit(ctx, env.teacherID, SubmitInput{
		TestID: env.test.TestID, StudentID: env.studentID, MarksObtained: 85,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingApproval, row.MarksStatus)
	assert.Equal(t, 85, row.MarksObtained)
	assert.Nil(t, row.MarksApprovedBy)
	assert.Nil(t, row.MarksApprovedAt)

	// audit CREATE_MARKS
	var audit auditModel.AuditLogModel
	require.NoError(t, env.db.Where("audit_log_entity_id = ?", row.MarksID).First(&audit).Error)
	assert.Equal(t, auditModel.ActionCreateMarks, audit.AuditLogAction)

	// admin dinotifikasi
	var n int64
	require.NoError(t, env.db.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ? AND notification_type = ?", env.adminID, notifModel.TypeMarksSubmitted).
		Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestSubmitValidation(t *testing.T) {
	env := newMarksEnv(t, false)
	ctx := context.Background()

	t.Run("test tidak ditemukan", func(t *testing.T) {
		_, err := env.svc.Submit(ctx, env.teacherID, SubmitInput{
			TestID: uuid.New(), StudentID: env.studentID, MarksObtained: 50,
		})
		requireFiberCode(t, err, fiber.StatusNotFound)
	})

	t.Run("bukan guru pemilik test", func(t *testing.T) {
		otherTeacher := seedMarksUser(t, env.db, constants.RoleTeacher)
		_, err := env.svc.Submit(ctx, otherTeacher, SubmitInput{
			TestID: env.test.TestID, StudentID: env.studentID, MarksObtained: 50,
		})
		requireFiberCode(t, err, fiber.StatusForbidden)
	})

	t.Run("nilai di atas max", func(t *testing.T) {
		_, err := env.svc.Submit(ctx, env.teacherID, SubmitInput{
			TestID: env.test.TestID, StudentID: env.studentID, MarksObtained: 101,
		})
		requireFiberCode(t, err, fiber.StatusUnprocessableEntity)
	})

	t.Run("siswa bukan anggota section test", func(t *testing.T) {
		outsider := seedMarksUser(t, env.db, constants.RoleStudent)
		otherSec := academicModel.SectionModel{SectionClassID: env.test.TestClassID, SectionName: "Section B"}
		require.NoError(t, env.db.Create(&otherSec).Error)
		require.NoError(t, env.db.Create(&userModel.StudentProfileModel{
			StudentProfileUserID:     outsider,
			StudentProfileClassID:    env.test.TestClassID,
			StudentProfileSectionID:  otherSec.SectionID,
			StudentProfileRollNumber: "1",
		}).Error)

		_, err := env.svc.Submit(ctx, env.teacherID, SubmitInput{
			TestID: env.test.TestID, StudentID: outsider, MarksObtained: 50,
		})
		requireFiberCode(t, err, fiber.StatusUnprocessableEntity)
	})
}

func TestResubmitReopensResolvedRow(t *testing.T) {
	env := newMarksEnv(t, false)
	ctx := context.Background()

	row, err := env.svc.Submit(ctx, env.teacherID, SubmitInput{
		TestID: env.test.TestID, StudentID: env.studentID, MarksObtained: 60,
	})
	require.NoError(t, err)

	_, err = env.svc.Approve(ctx, env.adminID, row.MarksID)
	require.NoError(t, err)

	// resubmit membuka baris approved: pending lagi, approver dikosongkan
	row2, err := env.svc.Submit(ctx, env.teacherID, SubmitInput{
		TestID: env.test.TestID, StudentID: env.studentID, MarksObtained: 75,
	})
	require.NoError(t, err)
	assert.Equal(t, row.MarksID, row2.MarksID)
	assert.Equal(t, model.StatusPendingApproval, row2.MarksStatus)
	assert.Equal(t, 75, row2.MarksObtained)

	var stored model.MarksModel
	require.NoError(t, env.db.Where("marks_id = ?", row.MarksID).First(&stored).Error)
	assert.Equal(t, model.StatusPendingApproval, stored.MarksStatus)
	assert.Nil(t, stored.MarksApprovedBy)
	assert.Nil(t, stored.MarksApprovedAt)
}

func TestApprove(t *testing.T) {
	env := newMarksEnv(t, true)
	ctx := context.Background()

	row, err := env.svc.Submit(ctx, env.teacherID, SubmitInput{
		TestID: env.test.TestID, StudentID: env.studentID, MarksObtained: 85,
	})
	require.NoError(t, err)

	approved, err := env.svc.Approve(ctx, env.adminID, row.MarksID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.MarksStatus)
	require.NotNil(t, approved.MarksApprovedBy)
	assert.Equal(t, env.adminID, *approved.MarksApprovedBy)
	assert.NotNil(t, approved.MarksApprovedAt)

	// siswa mendapat notifikasi dengan persentase 2 desimal
	var studentNotif notifModel.NotificationModel
	require.NoError(t, env.db.
		Where("notification_user_id = ? AND notification_type = ?", env.studentID, notifModel.TypeMarksApproved).
		First(&studentNotif).Error)
	assert.Contains(t, studentNotif.NotificationBody, "85/100 (85.00%)")

	// guru juga dinotifikasi
	var n int64
	require.NoError(t, env.db.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ? AND notification_type = ?", env.teacherID, notifModel.TypeMarksApproved).
		Count(&n).Error)
	assert.EqualValues(t, 1, n)

	// auto-feedback system tertulis di transaksi yang sama
	var fb feedbackModel.FeedbackModel
	require.NoError(t, env.db.
		Where("feedback_test_id = ? AND feedback_student_id = ?", env.test.TestID, env.studentID).
		First(&fb).Error)
	assert.Equal(t, feedbackModel.SenderSystem, fb.FeedbackSenderRole)

	// approve kedua kali → conflict, baris tidak berubah
	_, err = env.svc.Approve(ctx, env.adminID, row.MarksID)
	requireFiberCode(t, err, fiber.StatusConflict)
}

func TestApproveWithoutAutoFeedback(t *testing.T) {
	env := newMarksEnv(t, false)
	ctx := context.Background()

	row, err := env.svc.Submit(ctx, env.teacherID, SubmitInput{
		TestID: env.test.TestID, StudentID: env.studentID, MarksObtained: 40,
	})
	require.NoError(t, err)
	_, err = env.svc.Approve(ctx, env.adminID, row.MarksID)
	require.NoError(t, err)

	var n int64
	require.NoError(t, env.db.Model(&feedbackModel.FeedbackModel{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestReject(t *testing.T) {
	env := newMarksEnv(t, true)
	ctx := context.Background()

	row, err := env.svc.Submit(ctx, env.teacherID, SubmitInput{
		TestID: env.test.TestID, StudentID: env.studentID, MarksObtained: 30,
	})
	require.NoError(t, err)

	// bersihkan notifikasi submit supaya assert di bawah tegas
	require.NoError(t, env.db.Where("1 = 1").Delete(&notifModel.NotificationModel{}).Error)

	rejected, err := env.svc.Reject(ctx, env.adminID, row.MarksID, "salah input")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, rejected.MarksStatus)
	require.NotNil(t, rejected.MarksApprovedBy)
	assert.Equal(t, env.adminID, *rejected.MarksApprovedBy)

	// guru dinotifikasi, alasan ikut di body
	var teacherNotif notifModel.NotificationModel
	require.NoError(t, env.db.
		Where("notification_user_id = ? AND notification_type = ?", env.teacherID, notifModel.TypeMarksRejected).
		First(&teacherNotif).Error)
	assert.Contains(t, teacherNotif.NotificationBody, "salah input")

	// siswa TIDAK dinotifikasi saat reject
	var n int64
	require.NoError(t, env.db.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ?", env.studentID).Count(&n).Error)
	assert.EqualValues(t, 0, n)

	// reject kedua kali → conflict
	_, err = env.svc.Reject(ctx, env.adminID, row.MarksID, "")
	requireFiberCode(t, err, fiber.StatusConflict)
}

func TestBulkApprove(t *testing.T) {
	env := newMarksEnv(t, false)
	ctx := context.Background()

	second := seedMarksUser(t, env.db, constants.RoleStudent)
	require.NoError(t, env.db.Create(&userModel.StudentProfileModel{
		StudentProfileUserID:     second,
		StudentProfileClassID:    env.test.TestClassID,
		StudentProfileSectionID:  env.test.TestSectionID,
		StudentProfileRollNumber: "13",
	}).Error)

	row1, err := env.svc.Submit(ctx, env.teacherID, SubmitInput{
		TestID: env.test.TestID, StudentID: env.studentID, MarksObtained: 90,
	})
	require.NoError(t, err)
	row2, err := env.svc.Submit(ctx, env.teacherID, SubmitInput{
		TestID: env.test.TestID, StudentID: second, MarksObtained: 70,
	})
	require.NoError(t, err)

	t.Run("id tidak ditemukan menggagalkan semua", func(t *testing.T) {
		_, err := env.svc.BulkApprove(ctx, env.adminID, []uuid.UUID{row1.MarksID, uuid.New()})
		requireFiberCode(t, err, fiber.StatusUnprocessableEntity)

		var stored model.MarksModel
		require.NoError(t, env.db.Where("marks_id = ?", row1.MarksID).First(&stored).Error)
		assert.Equal(t, model.StatusPendingApproval, stored.MarksStatus)
	})

	t.Run("daftar kosong ditolak", func(t *testing.T) {
		_, err := env.svc.BulkApprove(ctx, env.adminID, nil)
		requireFiberCode(t, err, fiber.StatusUnprocessableEntity)
	})

	t.Run("semua pending di-approve sekali jalan", func(t *testing.T) {
		rows, err := env.svc.BulkApprove(ctx, env.adminID, []uuid.UUID{row1.MarksID, row2.MarksID})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		for _, r := range rows {
			assert.Equal(t, model.StatusApproved, r.MarksStatus)
			require.NotNil(t, r.MarksApprovedBy)
			assert.Equal(t, env.adminID, *r.MarksApprovedBy)
		}
	})

	t.Run("baris non-pending menggagalkan semua tanpa mutasi", func(t *testing.T) {
		third := seedMarksUser(t, env.db, constants.RoleStudent)
		require.NoError(t, env.db.Create(&userModel.StudentProfileModel{
			StudentProfileUserID:     third,
			StudentProfileClassID:    env.test.TestClassID,
			StudentProfileSectionID:  env.test.TestSectionID,
			StudentProfileRollNumber: "14",
		}).Error)
		row3, err := env.svc.Submit(ctx, env.teacherID, SubmitInput{
			TestID: env.test.TestID, StudentID: third, MarksObtained: 55,
		})
		require.NoError(t, err)

		// row1 sudah approved dari subtest sebelumnya
		_, err = env.svc.BulkApprove(ctx, env.adminID, []uuid.UUID{row1.MarksID, row3.MarksID})
		requireFiberCode(t, err, fiber.StatusUnprocessableEntity)

		var stored model.MarksModel
		require.NoError(t, env.db.Where("marks_id = ?", row3.MarksID).First(&stored).Error)
		assert.Equal(t, model.StatusPendingApproval, stored.MarksStatus)
		assert.Nil(t, stored.MarksApprovedBy)
	})
}

func TestRankingOnlyApproved(t *testing.T) {
	env := newMarksEnv(t, false)
	ctx := context.Background()

	students := []uuid.UUID{env.studentID}
	for i := 0; i < 3; i++ {
		id := seedMarksUser(t, env.db, constants.RoleStudent)
		require.NoError(t, env.db.Create(&userModel.StudentProfileModel{
			StudentProfileUserID:     id,
			StudentProfileClassID:    env.test.TestClassID,
			StudentProfileSectionID:  env.test.TestSectionID,
			StudentProfileRollNumber: uuid.NewString()[:6],
		}).Error)
		students = append(students, id)
	}

	values := []int{90, 90, 70, 50}
	var ids []uuid.UUID
	for i, sid := range students {
		row, err := env.svc.Submit(ctx, env.teacherID, SubmitInput{
			TestID: env.test.TestID, StudentID: sid, MarksObtained: values[i],
		})
		require.NoError(t, err)
		ids = append(ids, row.MarksID)
	}

	// hanya 3 pertama yang di-approve — baris pending tidak ikut ranking
	_, err := env.svc.BulkApprove(ctx, env.adminID, ids[:3])
	require.NoError(t, err)

	entries, err := env.svc.Ranking(env.test.TestID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []int{1, 1, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
}
