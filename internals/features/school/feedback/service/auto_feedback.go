// file: internals/features/school/feedback/service/auto_feedback.go
package service

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/feedback/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

// Template feedback otomatis per desil persentase (0–10, 11–20, …, 91–100).
// Index 0 = 0–10%, index 9 = 91–100%.
var decileTemplates = [10]string{
	"Hasil masih sangat kurang. Yuk mulai lagi dari dasar, jangan menyerah!",
	"Masih jauh dari target. Perbanyak latihan soal dan minta bantuan guru ya.",
	"Perlu usaha ekstra. Coba susun jadwal belajar yang lebih teratur.",
	"Belum mencapai setengah. Fokus pada materi yang paling sering salah.",
	"Hampir setengah! Sedikit lagi dorongan, kamu pasti bisa.",
	"Lumayan! Pertahankan ritme belajar dan perbaiki bagian yang lemah.",
	"Bagus, sudah di atas rata-rata. Terus tingkatkan konsistensinya.",
	"Kerja bagus! Tinggal poles sedikit lagi untuk hasil maksimal.",
	"Hebat! Hasilmu sangat baik, pertahankan semangat belajarnya.",
	"Luar biasa! Hasil hampir sempurna, kamu jadi teladan di kelas.",
}

// TemplateForPercentage memetakan persentase ke template desil.
func TemplateForPercentage(pct float64) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	idx := 0
	if pct > 10 {
		// 11–20 → 1, …, 91–100 → 9
		idx = int((pct - 1) / 10)
	}
	if idx > 9 {
		idx = 9
	}
	return decileTemplates[idx]
}

// EnsureSystemUser: akun internal "system" (keyed email reserved), dibuat
// lazily saat pertama kali dipakai. Jalan di dalam tx pemanggil.
func EnsureSystemUser(tx *gorm.DB) (uuid.UUID, error) {
	var u userModel.UserModel
	err := tx.Where("email = ?", constants.SystemUserEmail).First(&u).Error
	if err == nil {
		return u.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return uuid.Nil, err
	}

	// password random-ish: akun ini tidak pernah login
	hash, herr := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if herr != nil {
		return uuid.Nil, herr
	}
	u = userModel.UserModel{
		UserName: "System",
		Email:    constants.SystemUserEmail,
		Password: string(hash),
		Role:     constants.RoleAdmin,
		IsActive: true,
	}
	if err := tx.Create(&u).Error; err != nil {
		return uuid.Nil, err
	}
	return u.ID, nil
}

// CreateAutoFeedback menulis entri feedback ber-role system untuk
// (test, student) berdasarkan persentase nilai. Dipanggil dari dalam
// transaksi approve nilai.
func CreateAutoFeedback(tx *gorm.DB, testID, studentID, teacherID uuid.UUID, pct float64) error {
	sysID, err := EnsureSystemUser(tx)
	if err != nil {
		return err
	}
	fb := model.FeedbackModel{
		FeedbackTestID:     testID,
		FeedbackStudentID:  studentID,
		FeedbackTeacherID:  teacherID,
		FeedbackSenderRole: model.SenderSystem,
		FeedbackCreatedBy:  sysID,
		FeedbackMessage:    TemplateForPercentage(pct),
	}
	return tx.Create(&fb).Error
}
