// file: internals/features/school/academics/service/teacher_assignment.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/academics/model"
)

// AssignSubjectsToTeacher menulis relasi otoritatif (subject_teacher_id)
// dan menyinkronkan cache denormalisasi guru dalam transaksi yang sama.
func AssignSubjectsToTeacher(tx *gorm.DB, teacherID, classID uuid.UUID, subjectIDs []uuid.UUID) error {
	if len(subjectIDs) == 0 {
		return nil
	}
	if err := tx.Model(&model.SubjectModel{}).
		Where("subject_id IN ?", subjectIDs).
		Update("subject_teacher_id", teacherID).Error; err != nil {
		return err
	}
	return cacheAppendSubjects(tx, teacherID, classID, subjectIDs)
}
