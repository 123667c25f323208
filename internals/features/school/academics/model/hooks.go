package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PK diisi di sini kalau driver tidak punya gen_random_uuid() (mis. sqlite
// di test); di postgres default kolom tetap berlaku untuk insert mentah.

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}

func (m *SectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SectionID == uuid.Nil {
		m.SectionID = uuid.New()
	}
	return nil
}

func (m *SectionTeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.SectionTeacherID == uuid.Nil {
		m.SectionTeacherID = uuid.New()
	}
	return nil
}

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}

func (m *TestModel) BeforeCreate(tx *gorm.DB) error {
	if m.TestID == uuid.Nil {
		m.TestID = uuid.New()
	}
	return nil
}
