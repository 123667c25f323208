// file: internals/features/school/academics/service/teacher_cache.go
package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	userModel "sekolahku_backend/internals/features/users/user/model"
)

// Sinkronisasi cache denormalisasi di teacher_profiles. Semua fungsi di
// sini HARUS dipanggil dari transaksi yang sama dengan perubahan relasi
// otoritatifnya (join row / kolom teacher di section/subject).

func appendUnique(arr pq.StringArray, v string) pq.StringArray {
	for _, e := range arr {
		if e == v {
			return arr
		}
	}
	return append(arr, v)
}

func loadTeacherProfile(tx *gorm.DB, teacherID uuid.UUID) (*userModel.TeacherProfileModel, error) {
	var tp userModel.TeacherProfileModel
	if err := tx.Where("teacher_profile_user_id = ?", teacherID).First(&tp).Error; err != nil {
		return nil, err
	}
	return &tp, nil
}

func saveTeacherCaches(tx *gorm.DB, tp *userModel.TeacherProfileModel) error {
	return tx.Model(&userModel.TeacherProfileModel{}).
		Where("teacher_profile_id = ?", tp.TeacherProfileID).
		Updates(map[string]interface{}{
			"teacher_profile_assigned_subjects": tp.TeacherProfileAssignedSubjects,
			"teacher_profile_class_assignments": tp.TeacherProfileClassAssignments,
		}).Error
}

// cacheAppendClass menambah classID ke class_assignments kalau belum ada.
func cacheAppendClass(tx *gorm.DB, teacherID, classID uuid.UUID) error {
	tp, err := loadTeacherProfile(tx, teacherID)
	if err != nil {
		return err
	}
	tp.TeacherProfileClassAssignments = appendUnique(tp.TeacherProfileClassAssignments, classID.String())
	return saveTeacherCaches(tx, tp)
}

// cacheAppendSubjects menambah entri "<class_id>:<subject_id>" + classID.
func cacheAppendSubjects(tx *gorm.DB, teacherID, classID uuid.UUID, subjectIDs []uuid.UUID) error {
	tp, err := loadTeacherProfile(tx, teacherID)
	if err != nil {
		return err
	}
	for _, sid := range subjectIDs {
		tp.TeacherProfileAssignedSubjects = appendUnique(
			tp.TeacherProfileAssignedSubjects, classID.String()+":"+sid.String())
	}
	tp.TeacherProfileClassAssignments = appendUnique(tp.TeacherProfileClassAssignments, classID.String())
	return saveTeacherCaches(tx, tp)
}

// cacheStripClass membuang entri subject MILIK KELAS ITU SAJA dari
// assigned_subjects (bukan semuanya), dan membuang classID dari
// class_assignments kalau dropClass true.
func cacheStripClass(tx *gorm.DB, teacherID, classID uuid.UUID, dropClass bool) error {
	tp, err := loadTeacherProfile(tx, teacherID)
	if err != nil {
		return err
	}

	prefix := classID.String() + ":"
	kept := tp.TeacherProfileAssignedSubjects[:0]
	for _, e := range tp.TeacherProfileAssignedSubjects {
		if !strings.HasPrefix(e, prefix) {
			kept = append(kept, e)
		}
	}
	tp.TeacherProfileAssignedSubjects = kept

	if dropClass {
		classes := tp.TeacherProfileClassAssignments[:0]
		for _, e := range tp.TeacherProfileClassAssignments {
			if e != classID.String() {
				classes = append(classes, e)
			}
		}
		tp.TeacherProfileClassAssignments = classes
	}
	return saveTeacherCaches(tx, tp)
}
