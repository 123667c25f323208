package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TeacherProfileModel menyimpan cache denormalisasi penugasan guru.
// Sumber kebenaran tetap di subjects.subject_teacher_id,
// sections.section_class_teacher_id dan tabel join section_teachers.
// Cache HANYA boleh dimutasi di transaksi yang sama dengan perubahan
// relasi otoritatifnya.
type TeacherProfileModel struct {
	TeacherProfileID     uuid.UUID `gorm:"column:teacher_profile_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"teacher_profile_id"`
	TeacherProfileUserID uuid.UUID `gorm:"column:teacher_profile_user_id;type:uuid;not null;uniqueIndex" json:"teacher_profile_user_id"`

	// Entri berformat "<class_id>:<subject_id>" supaya bisa di-strip per kelas.
	TeacherProfileAssignedSubjects pq.StringArray `gorm:"column:teacher_profile_assigned_subjects;type:text[]" json:"teacher_profile_assigned_subjects"`
	// Daftar class_id tempat guru ini mengajar.
	TeacherProfileClassAssignments pq.StringArray `gorm:"column:teacher_profile_class_assignments;type:text[]" json:"teacher_profile_class_assignments"`

	TeacherProfileCreatedAt time.Time `gorm:"column:teacher_profile_created_at;autoCreateTime" json:"teacher_profile_created_at"`
	TeacherProfileUpdatedAt time.Time `gorm:"column:teacher_profile_updated_at;autoUpdateTime" json:"teacher_profile_updated_at"`
}

func (TeacherProfileModel) TableName() string {
	return "teacher_profiles"
}
