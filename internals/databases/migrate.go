package database

import (
	"log"

	auditModel "sekolahku_backend/internals/features/home/audit_logs/model"
	notifModel "sekolahku_backend/internals/features/home/notifications/model"
	academicModel "sekolahku_backend/internals/features/school/academics/model"
	feedbackModel "sekolahku_backend/internals/features/school/feedback/model"
	marksModel "sekolahku_backend/internals/features/school/marks/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

// MigrateAll menjalankan AutoMigrate seluruh tabel. Dipanggil hanya kalau
// RUN_MIGRATIONS=true — production pakai skema yang sudah ada.
func MigrateAll() {
	log.Println("🛠️ Menjalankan AutoMigrate...")

	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&userModel.StudentProfileModel{},
		&userModel.TeacherProfileModel{},
		&academicModel.ClassModel{},
		&academicModel.SectionModel{},
		&academicModel.SectionTeacherModel{},
		&academicModel.SubjectModel{},
		&academicModel.TestModel{},
		&marksModel.MarksModel{},
		&feedbackModel.FeedbackModel{},
		&notifModel.NotificationModel{},
		&auditModel.AuditLogModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}

	log.Println("✅ AutoMigrate selesai.")
}
