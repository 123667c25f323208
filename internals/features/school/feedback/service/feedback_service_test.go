package service

import (
	"context"
	"testing"

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
	"sekolahku_backend/internals/features/school/feedback/model"
	marksModel "sekolahku_backend/internals/features/school/marks/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

type nullSender struct{}

func (nullSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	return nil
}

func (nullSender) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, error) {
	return 0, 0, nil
}

func (nullSender) SendSilent(ctx context.Context, token string, data map[string]string) error {
	return nil
}

type feedbackEnv struct {
	db        *gorm.DB
	svc       *FeedbackService
	teacherID uuid.UUID
	adminID   uuid.UUID
	studentID uuid.UUID
	testID    uuid.UUID
}

func seedFeedbackUser(t *testing.T, db *gorm.DB, role string) uuid.UUID {
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

func newFeedbackEnv(t *testing.T) *feedbackEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&marksModel.MarksModel{},
		&model.FeedbackModel{},
		&notifModel.NotificationModel{},
		&auditModel.AuditLogModel{},
	))

	return &feedbackEnv{
		db:        db,
		svc:       NewFeedbackService(db, notifService.NewFanoutService(db, nullSender{})),
		teacherID: seedFeedbackUser(t, db, constants.RoleTeacher),
		adminID:   seedFeedbackUser(t, db, constants.RoleAdmin),
		studentID: seedFeedbackUser(t, db, constants.RoleStudent),
		testID:    uuid.New(),
	}
}

func (e *feedbackEnv) seedMarks(t *testing.T, status marksModel.Status) {
	t.Helper()
	require.NoError(t, e.db.Create(&marksModel.MarksModel{
		MarksTestID:    e.testID,
		MarksStudentID: e.studentID,
		MarksObtained:  80,
		MarksStatus:    status,
	}).Error)
}

func (e *feedbackEnv) notifCount(t *testing.T, userID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ?", userID).Count(&n).Error)
	return n
}

func expectFiberCode(t *testing.T, err error, code int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, code, fe.Code)
}

func TestCreateGatedByApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("nilai belum approved", func(t *testing.T) {
		env := newFeedbackEnv(t)
		env.seedMarks(t, marksModel.StatusPendingApproval)

		_, err := env.svc.Create(ctx, env.teacherID, model.SenderTeacher, CreateInput{
			TestID: env.testID, StudentID: env.studentID, TeacherID: env.teacherID, Message: "Bagus",
		})
		expectFiberCode(t, err, fiber.StatusUnprocessableEntity)
	})

	t.Run("nilai approved", func(t *testing.T) {
		env := newFeedbackEnv(t)
		env.seedMarks(t, marksModel.StatusApproved)

		fb, err := env.svc.Create(ctx, env.teacherID, model.SenderTeacher, CreateInput{
			TestID: env.testID, StudentID: env.studentID, TeacherID: env.teacherID, Message: "Bagus",
		})
		require.NoError(t, err)
		assert.Equal(t, model.SenderTeacher, fb.FeedbackSenderRole)
		assert.Equal(t, env.teacherID, fb.FeedbackCreatedBy)

		// siswa diberi tahu
		assert.EqualValues(t, 1, env.notifCount(t, env.studentID))
	})
}

func TestThreadAccess(t *testing.T) {
	ctx := context.Background()
	env := newFeedbackEnv(t)
	env.seedMarks(t, marksModel.StatusApproved)

	_, err := env.svc.Create(ctx, env.teacherID, model.SenderTeacher, CreateInput{
		TestID: env.testID, StudentID: env.studentID, TeacherID: env.teacherID, Message: "Pesan pertama",
	})
	require.NoError(t, err)

	t.Run("siswa membaca thread sendiri", func(t *testing.T) {
		rows, err := env.svc.Thread(env.studentID, model.SenderStudent, env.testID, env.studentID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Pesan pertama", rows[0].FeedbackMessage)
	})

	t.Run("siswa lain ditolak", func(t *testing.T) {
		other := seedFeedbackUser(t, env.db, constants.RoleStudent)
		_, err := env.svc.Thread(other, model.SenderStudent, env.testID, env.studentID)
		expectFiberCode(t, err, fiber.StatusForbidden)
	})

	t.Run("thread siswa tanpa nilai approved ditolak", func(t *testing.T) {
		env2 := newFeedbackEnv(t)
		env2.seedMarks(t, marksModel.StatusPendingApproval)
		_, err := env2.svc.Thread(env2.studentID, model.SenderStudent, env2.testID, env2.studentID)
		expectFiberCode(t, err, fiber.StatusForbidden)
	})
}

func TestReply(t *testing.T) {
	ctx := context.Background()
	env := newFeedbackEnv(t)
	env.seedMarks(t, marksModel.StatusApproved)

	orig, err := env.svc.Create(ctx, env.teacherID, model.SenderTeacher, CreateInput{
		TestID: env.testID, StudentID: env.studentID, TeacherID: env.teacherID, Message: "Pesan guru",
	})
	require.NoError(t, err)

	t.Run("balasan mewarisi id thread dan merekam pembalas", func(t *testing.T) {
		reply, err := env.svc.Reply(ctx, env.studentID, model.SenderStudent, orig.FeedbackID, "Terima kasih, Pak")
		require.NoError(t, err)
		assert.Equal(t, orig.FeedbackTestID, reply.FeedbackTestID)
		assert.Equal(t, orig.FeedbackStudentID, reply.FeedbackStudentID)
		assert.Equal(t, orig.FeedbackTeacherID, reply.FeedbackTeacherID)
		assert.Equal(t, model.SenderStudent, reply.FeedbackSenderRole)
		assert.Equal(t, env.studentID, reply.FeedbackCreatedBy)
	})

	t.Run("balasan siswa menotifikasi penulis asal", func(t *testing.T) {
		before := env.notifCount(t, env.teacherID)
		_, err := env.svc.Reply(ctx, env.studentID, model.SenderStudent, orig.FeedbackID, "Satu lagi")
		require.NoError(t, err)
		assert.Equal(t, before+1, env.notifCount(t, env.teacherID))
	})

	t.Run("balasan admin atas entri guru menotifikasi guru dan siswa", func(t *testing.T) {
		teacherBefore := env.notifCount(t, env.teacherID)
		studentBefore := env.notifCount(t, env.studentID)

		_, err := env.svc.Reply(ctx, env.adminID, model.SenderAdmin, orig.FeedbackID, "Catatan admin")
		require.NoError(t, err)

		assert.Equal(t, teacherBefore+1, env.notifCount(t, env.teacherID))
		assert.Equal(t, studentBefore+1, env.notifCount(t, env.studentID))
		// pembalas sendiri tidak dikirimi
		assert.EqualValues(t, 0, env.notifCount(t, env.adminID))
	})

	t.Run("siswa lain tidak boleh membalas", func(t *testing.T) {
		other := seedFeedbackUser(t, env.db, constants.RoleStudent)
		_, err := env.svc.Reply(ctx, other, model.SenderStudent, orig.FeedbackID, "Nimbrung")
		expectFiberCode(t, err, fiber.StatusForbidden)
	})

	t.Run("guru lain tidak boleh membalas", func(t *testing.T) {
		other := seedFeedbackUser(t, env.db, constants.RoleTeacher)
		_, err := env.svc.Reply(ctx, other, model.SenderTeacher, orig.FeedbackID, "Nimbrung")
		expectFiberCode(t, err, fiber.StatusForbidden)
	})

	t.Run("feedback asal tidak ditemukan", func(t *testing.T) {
		_, err := env.svc.Reply(ctx, env.studentID, model.SenderStudent, uuid.New(), "Halo")
		expectFiberCode(t, err, fiber.StatusNotFound)
	})
}

func TestEdit(t *testing.T) {
	ctx := context.Background()
	env := newFeedbackEnv(t)
	env.seedMarks(t, marksModel.StatusApproved)

	fb, err := env.svc.Create(ctx, env.teacherID, model.SenderTeacher, CreateInput{
		TestID: env.testID, StudentID: env.studentID, TeacherID: env.teacherID, Message: "Draf",
	})
	require.NoError(t, err)

	t.Run("siswa tidak boleh edit", func(t *testing.T) {
		_, err := env.svc.Edit(ctx, env.studentID, model.SenderStudent, fb.FeedbackID, "Ubah")
		expectFiberCode(t, err, fiber.StatusForbidden)
	})

	t.Run("guru lain tidak boleh edit", func(t *testing.T) {
		other := seedFeedbackUser(t, env.db, constants.RoleTeacher)
		_, err := env.svc.Edit(ctx, other, model.SenderTeacher, fb.FeedbackID, "Ubah")
		expectFiberCode(t, err, fiber.StatusForbidden)
	})

	t.Run("guru pemilik boleh edit, audit tercatat", func(t *testing.T) {
		edited, err := env.svc.Edit(ctx, env.teacherID, model.SenderTeacher, fb.FeedbackID, "Versi final")
		require.NoError(t, err)
		assert.Equal(t, "Versi final", edited.FeedbackMessage)
		// sender_role & created_by tidak berubah
		assert.Equal(t, model.SenderTeacher, edited.FeedbackSenderRole)
		assert.Equal(t, env.teacherID, edited.FeedbackCreatedBy)

		var audit auditModel.AuditLogModel
		require.NoError(t, env.db.
			Where("audit_log_action = ? AND audit_log_entity_id = ?", auditModel.ActionEditFeedback, fb.FeedbackID).
			First(&audit).Error)
		assert.Equal(t, env.teacherID, audit.AuditLogUserID)
	})

	t.Run("feedback tidak ditemukan", func(t *testing.T) {
		_, err := env.svc.Edit(ctx, env.adminID, model.SenderAdmin, uuid.New(), "Ubah")
		expectFiberCode(t, err, fiber.StatusNotFound)
	})
}
