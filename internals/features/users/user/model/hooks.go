package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (p *StudentProfileModel) BeforeCreate(tx *gorm.DB) error {
	if p.StudentProfileID == uuid.Nil {
		p.StudentProfileID = uuid.New()
	}
	return nil
}

func (p *TeacherProfileModel) BeforeCreate(tx *gorm.DB) error {
	if p.TeacherProfileID == uuid.Nil {
		p.TeacherProfileID = uuid.New()
	}
	return nil
}
