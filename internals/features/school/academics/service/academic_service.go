// file: internals/features/school/academics/service/academic_service.go
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sekolahku_backend/internals/constants"
	auditModel "sekolahku_backend/internals/features/home/audit_logs/model"
	"sekolahku_backend/internals/features/school/academics/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

// AcademicService: struktur akademik (class → section → subject) plus
// binding guru ke section/subject.
type AcademicService struct {
	DB *gorm.DB
}

func NewAcademicService(db *gorm.DB) *AcademicService {
	return &AcademicService{DB: db}
}

type CreateClassInput struct {
	Name            string
	SectionNamesCsv string
	TeacherID       *uuid.UUID
	SubjectNamesCsv string
}

type CreateClassResult struct {
	Class    model.ClassModel     `json:"class"`
	Sections []model.SectionModel `json:"sections"`
	Subjects []model.SubjectModel `json:"subjects"`
}

// CreateClass: class + sections + subjects dalam SATU transaksi.
// TeacherID (opsional) harus merujuk user yang ada, kalau tidak seluruh
// operasi gagal; guru jadi wali kelas section PERTAMA saja.
func (s *AcademicService) CreateClass(in CreateClassInput) (*CreateClassResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Nama class wajib diisi")
	}

	var result CreateClassResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if in.TeacherID != nil {
			var teacher userModel.UserModel
			if err := tx.Where("id = ? AND role = ?", *in.TeacherID, constants.RoleTeacher).
				First(&teacher).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Guru tidak ditemukan")
				}
				return err
			}
		}

		cls := model.ClassModel{ClassName: name}
		if err := tx.Create(&cls).Error; err != nil {
			return err
		}
		result.Class = cls

		for i, secName := range NormalizeSectionNames(in.SectionNamesCsv) {
			sec := model.SectionModel{
				SectionClassID: cls.ClassID,
				SectionName:    secName,
			}
			// wali kelas hanya untuk section pertama
			if i == 0 && in.TeacherID != nil {
				sec.SectionClassTeacherID = in.TeacherID
			}
			if err := tx.Create(&sec).Error; err != nil {
				return err
			}
			result.Sections = append(result.Sections, sec)
		}

		for _, subName := range NormalizeSubjectNames(in.SubjectNamesCsv) {
			sub := model.SubjectModel{
				SubjectClassID: cls.ClassID,
				SubjectName:    subName,
			}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
			result.Subjects = append(result.Subjects, sub)
		}

		if in.TeacherID != nil && len(result.Sections) > 0 {
			if err := cacheAppendClass(tx, *in.TeacherID, cls.ClassID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type AssignTeacherInput struct {
	TeacherID      uuid.UUID
	ClassID        uuid.UUID
	SectionID      uuid.UUID
	IsClassTeacher bool
}

// AssignTeacherToSection: wali kelas (slot unik, overwrite) atau guru
// pendamping (join row, idempoten). Cache class_assignments ikut di-update
// dalam transaksi yang sama.
func (s *AcademicService) AssignTeacherToSection(actorID uuid.UUID, in AssignTeacherInput) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var teacher userModel.UserModel
		if err := tx.Where("id = ? AND role = ?", in.TeacherID, constants.RoleTeacher).
			First(&teacher).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Guru tidak ditemukan")
			}
			return err
		}

		var cls model.ClassModel
		if err := tx.Where("class_id = ?", in.ClassID).First(&cls).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Class tidak ditemukan")
			}
			return err
		}

		var sec model.SectionModel
		if err := tx.Where("section_id = ?", in.SectionID).First(&sec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Section tidak ditemukan")
			}
			return err
		}
		if sec.SectionClassID != in.ClassID {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Section bukan bagian dari class ini")
		}

		if in.IsClassTeacher {
			// slot wali kelas unik — penghuni lama ditimpa
			if err := tx.Model(&model.SectionModel{}).
				Where("section_id = ?", in.SectionID).
				Update("section_class_teacher_id", in.TeacherID).Error; err != nil {
				return err
			}
		} else {
			// insert idempoten: duplikat = no-op, bukan error
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&model.SectionTeacherModel{
					SectionTeacherSectionID: in.SectionID,
					SectionTeacherTeacherID: in.TeacherID,
				}).Error; err != nil {
				return err
			}
		}

		if err := cacheAppendClass(tx, in.TeacherID, in.ClassID); err != nil {
			return err
		}

		return tx.Create(&auditModel.AuditLogModel{
			AuditLogUserID:     actorID,
			AuditLogAction:     auditModel.ActionAssignTeacher,
			AuditLogEntityType: "section",
			AuditLogEntityID:   in.SectionID,
			AuditLogRemarks:    fmt.Sprintf("teacher=%s class_teacher=%v", in.TeacherID, in.IsClassTeacher),
		}).Error
	})
}

// AddSectionTeacher: join (section, teacher) + subject ids opsional.
// Semua subject harus milik class section itu, kalau tidak seluruh call
// gagal dengan daftar id yang salah. Duplikat join → Conflict.
func (s *AcademicService) AddSectionTeacher(actorID, teacherID, sectionID uuid.UUID, subjectIDs []uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var sec model.SectionModel
		if err := tx.Where("section_id = ?", sectionID).First(&sec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Section tidak ditemukan")
			}
			return err
		}

		var teacher userModel.UserModel
		if err := tx.Where("id = ? AND role = ?", teacherID, constants.RoleTeacher).
			First(&teacher).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Guru tidak ditemukan")
			}
			return err
		}

		// validasi subject milik class-nya section
		if len(subjectIDs) > 0 {
			var valid []uuid.UUID
			if err := tx.Model(&model.SubjectModel{}).
				Where("subject_id IN ? AND subject_class_id = ?", subjectIDs, sec.SectionClassID).
				Pluck("subject_id", &valid).Error; err != nil {
				return err
			}
			if len(valid) != len(subjectIDs) {
				validSet := map[uuid.UUID]struct{}{}
				for _, id := range valid {
					validSet[id] = struct{}{}
				}
				var bad []string
				for _, id := range subjectIDs {
					if _, ok := validSet[id]; !ok {
						bad = append(bad, id.String())
					}
				}
				return fiber.NewError(fiber.StatusUnprocessableEntity,
					"Subject tidak valid untuk class ini: "+strings.Join(bad, ", "))
			}
		}

		var existing model.SectionTeacherModel
		err := tx.Where("section_teacher_section_id = ? AND section_teacher_teacher_id = ?", sectionID, teacherID).
			First(&existing).Error
		if err == nil {
			return fiber.NewError(fiber.StatusConflict, "Guru sudah terdaftar di section ini")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&model.SectionTeacherModel{
			SectionTeacherSectionID: sectionID,
			SectionTeacherTeacherID: teacherID,
		}).Error; err != nil {
			return err
		}

		if err := cacheAppendSubjects(tx, teacherID, sec.SectionClassID, subjectIDs); err != nil {
			return err
		}

		return tx.Create(&auditModel.AuditLogModel{
			AuditLogUserID:     actorID,
			AuditLogAction:     auditModel.ActionAssignTeacher,
			AuditLogEntityType: "section",
			AuditLogEntityID:   sectionID,
			AuditLogRemarks:    "section teacher " + teacherID.String(),
		}).Error
	})
}

// RemoveSectionTeacher: hapus join + strip cache subject KELAS ITU SAJA.
// class_assignments ikut dibuang hanya kalau guru sudah tidak punya
// section lain di class yang sama.
func (s *AcademicService) RemoveSectionTeacher(actorID, teacherID, sectionID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var sec model.SectionModel
		if err := tx.Where("section_id = ?", sectionID).First(&sec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Section tidak ditemukan")
			}
			return err
		}

		res := tx.Where("section_teacher_section_id = ? AND section_teacher_teacher_id = ?", sectionID, teacherID).
			Delete(&model.SectionTeacherModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Guru tidak terdaftar di section ini")
		}

		// masih pegang section lain di class yang sama?
		var remaining int64
		if err := tx.Model(&model.SectionTeacherModel{}).
			Joins("JOIN sections ON sections.section_id = section_teachers.section_teacher_section_id").
			Where("section_teacher_teacher_id = ? AND sections.section_class_id = ?", teacherID, sec.SectionClassID).
			Count(&remaining).Error; err != nil {
			return err
		}
		var asClassTeacher int64
		if err := tx.Model(&model.SectionModel{}).
			Where("section_class_id = ? AND section_class_teacher_id = ?", sec.SectionClassID, teacherID).
			Count(&asClassTeacher).Error; err != nil {
			return err
		}

		if err := cacheStripClass(tx, teacherID, sec.SectionClassID, remaining == 0 && asClassTeacher == 0); err != nil {
			return err
		}

		return tx.Create(&auditModel.AuditLogModel{
			AuditLogUserID:     actorID,
			AuditLogAction:     auditModel.ActionRemoveTeacher,
			AuditLogEntityType: "section",
			AuditLogEntityID:   sectionID,
			AuditLogRemarks:    "remove teacher " + teacherID.String(),
		}).Error
	})
}
