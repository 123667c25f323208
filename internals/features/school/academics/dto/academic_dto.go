package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/academics/model"
)

// ================== REQUEST ==================

type CreateClassRequest struct {
	ClassName       string     `json:"class_name" validate:"required,min=1,max=100"`
	SectionNames    string     `json:"section_names"` // CSV, opsional
	TeacherID       *uuid.UUID `json:"teacher_id"`    // wali kelas section pertama, opsional
	SubjectNames    string     `json:"subject_names"` // CSV, opsional
}

type AssignTeacherRequest struct {
	TeacherID      uuid.UUID `json:"teacher_id" validate:"required"`
	ClassID        uuid.UUID `json:"class_id" validate:"required"`
	SectionID      uuid.UUID `json:"section_id" validate:"required"`
	IsClassTeacher bool      `json:"is_class_teacher"`
}

type SectionTeacherRequest struct {
	TeacherID  uuid.UUID   `json:"teacher_id" validate:"required"`
	SectionID  uuid.UUID   `json:"section_id" validate:"required"`
	SubjectIDs []uuid.UUID `json:"subject_ids"`
}

// ================== RESPONSE ==================

type ClassResponse struct {
	ClassID   uuid.UUID `json:"class_id"`
	ClassName string    `json:"class_name"`
	CreatedAt string    `json:"created_at"`
}

type SectionResponse struct {
	SectionID      uuid.UUID  `json:"section_id"`
	SectionName    string     `json:"section_name"`
	ClassID        uuid.UUID  `json:"class_id"`
	ClassTeacherID *uuid.UUID `json:"class_teacher_id"`
}

type SubjectResponse struct {
	SubjectID uuid.UUID  `json:"subject_id"`
	SubjectName string   `json:"subject_name"`
	ClassID   uuid.UUID  `json:"class_id"`
	TeacherID *uuid.UUID `json:"teacher_id"`
}

// ================ CONVERSION =================

func ToClassResponse(m *model.ClassModel) *ClassResponse {
	return &ClassResponse{
		ClassID:   m.ClassID,
		ClassName: m.ClassName,
		CreatedAt: m.ClassCreatedAt.Format(time.RFC3339),
	}
}

func ToSectionResponse(m *model.SectionModel) *SectionResponse {
	return &SectionResponse{
		SectionID:      m.SectionID,
		SectionName:    m.SectionName,
		ClassID:        m.SectionClassID,
		ClassTeacherID: m.SectionClassTeacherID,
	}
}

func ToSubjectResponse(m *model.SubjectModel) *SubjectResponse {
	return &SubjectResponse{
		SubjectID:   m.SubjectID,
		SubjectName: m.SubjectName,
		ClassID:     m.SubjectClassID,
		TeacherID:   m.SubjectTeacherID,
	}
}

func ToSectionResponseList(models []model.SectionModel) []SectionResponse {
	var result []SectionResponse
	for _, m := range models {
		result = append(result, *ToSectionResponse(&m))
	}
	return result
}

func ToSubjectResponseList(models []model.SubjectModel) []SubjectResponse {
	var result []SubjectResponse
	for _, m := range models {
		result = append(result, *ToSubjectResponse(&m))
	}
	return result
}
