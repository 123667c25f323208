package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/home/notifications/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

type sentPush struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// fakeSender merekam semua dispatch untuk diverifikasi test.
type fakeSender struct {
	sends      []sentPush
	multicasts [][]string
	silents    []sentPush
}

func (f *fakeSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	f.sends = append(f.sends, sentPush{Token: token, Title: title, Body: body, Data: data})
	return nil
}

func (f *fakeSender) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, error) {
	f.multicasts = append(f.multicasts, tokens)
	return len(tokens), 0, nil
}

func (f *fakeSender) SendSilent(ctx context.Context, token string, data map[string]string) error {
	f.silents = append(f.silents, sentPush{Token: token, Data: data})
	return nil
}

func newFanoutDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}, &model.NotificationModel{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string, token string) uuid.UUID {
	t.Helper()
	u := userModel.UserModel{
		UserName: "user-" + uuid.NewString()[:8],
		Email:    uuid.NewString() + "@test.local",
		Password: "hashed-password",
		Role:     role,
		IsActive: true,
	}
	if token != "" {
		u.FCMToken = &token
	}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

func TestNotifyWritesRowThenPush(t *testing.T) {
	db := newFanoutDB(t)
	sender := &fakeSender{}
	svc := NewFanoutService(db, sender)

	withToken := seedUser(t, db, constants.RoleTeacher, "tok-1")
	withoutToken := seedUser(t, db, constants.RoleTeacher, "")

	svc.Notify(context.Background(), withToken, model.TypeMarksApproved, "Judul", "Isi", map[string]string{"k": "v"})
	svc.Notify(context.Background(), withoutToken, model.TypeMarksApproved, "Judul", "Isi", nil)

	// baris dibuat untuk keduanya
	var rows int64
	require.NoError(t, db.Model(&model.NotificationModel{}).Count(&rows).Error)
	assert.EqualValues(t, 2, rows)

	// push hanya ke yang punya token
	require.Len(t, sender.sends, 1)
	assert.Equal(t, "tok-1", sender.sends[0].Token)
	assert.Equal(t, "Judul", sender.sends[0].Title)
}

func TestNotifyManyRowsForAllPushForTokened(t *testing.T) {
	db := newFanoutDB(t)
	sender := &fakeSender{}
	svc := NewFanoutService(db, sender)

	a := seedUser(t, db, constants.RoleAdmin, "tok-a")
	b := seedUser(t, db, constants.RoleAdmin, "")
	c := seedUser(t, db, constants.RoleAdmin, "tok-c")

	svc.NotifyMany(context.Background(), []uuid.UUID{a, b, c}, model.TypeMarksSubmitted, "Judul", "Isi", nil)

	var rows int64
	require.NoError(t, db.Model(&model.NotificationModel{}).Count(&rows).Error)
	assert.EqualValues(t, 3, rows)

	require.Len(t, sender.multicasts, 1)
	assert.ElementsMatch(t, []string{"tok-a", "tok-c"}, sender.multicasts[0])
}

func TestNotifyActiveByRoleSkipsInactive(t *testing.T) {
	db := newFanoutDB(t)
	sender := &fakeSender{}
	svc := NewFanoutService(db, sender)

	active := seedUser(t, db, constants.RoleAdmin, "")
	inactive := seedUser(t, db, constants.RoleAdmin, "")
	require.NoError(t, db.Model(&userModel.UserModel{}).
		Where("id = ?", inactive).Update("is_active", false).Error)
	seedUser(t, db, constants.RoleTeacher, "") // role lain, harus dilewati

	svc.NotifyActiveByRole(context.Background(), constants.RoleAdmin, model.TypeBroadcast, "Judul", "Isi", nil)

	var rows []model.NotificationModel
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, active, rows[0].NotificationUserID)
}

func TestUnreadCountRecountsFromTable(t *testing.T) {
	db := newFanoutDB(t)
	svc := NewFanoutService(db, &fakeSender{})

	userID := seedUser(t, db, constants.RoleStudent, "")
	for i := 0; i < 3; i++ {
		svc.Notify(context.Background(), userID, model.TypeFeedbackReply, "Judul", "Isi", nil)
	}

	n, err := svc.UnreadCount(userID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	// tandai satu sudah dibaca → hitung ulang dari tabel
	var first model.NotificationModel
	require.NoError(t, db.Where("notification_user_id = ?", userID).First(&first).Error)
	require.NoError(t, db.Model(&model.NotificationModel{}).
		Where("notification_id = ?", first.NotificationID).
		Update("notification_is_read", true).Error)

	n, err = svc.UnreadCount(userID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestPushBadgeSendsSilentCount(t *testing.T) {
	db := newFanoutDB(t)
	sender := &fakeSender{}
	svc := NewFanoutService(db, sender)

	userID := seedUser(t, db, constants.RoleStudent, "tok-s")
	svc.Notify(context.Background(), userID, model.TypeFeedbackReply, "Judul", "Isi", nil)
	svc.Notify(context.Background(), userID, model.TypeFeedbackReply, "Judul", "Isi", nil)

	svc.PushBadge(context.Background(), userID)

	require.Len(t, sender.silents, 1)
	assert.Equal(t, "tok-s", sender.silents[0].Token)
	assert.Equal(t, "2", sender.silents[0].Data["badge"])
}
