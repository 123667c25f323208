package model

import (
	"time"

	"github.com/google/uuid"
)

type StudentProfileModel struct {
	StudentProfileID            uuid.UUID `gorm:"column:student_profile_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"student_profile_id"`
	StudentProfileUserID        uuid.UUID `gorm:"column:student_profile_user_id;type:uuid;not null;uniqueIndex" json:"student_profile_user_id"`
	StudentProfileClassID       uuid.UUID `gorm:"column:student_profile_class_id;type:uuid;not null" json:"student_profile_class_id"`
	StudentProfileSectionID     uuid.UUID `gorm:"column:student_profile_section_id;type:uuid;not null;uniqueIndex:uq_student_section_roll" json:"student_profile_section_id"`
	StudentProfileRollNumber    string    `gorm:"column:student_profile_roll_number;type:varchar(20);not null;uniqueIndex:uq_student_section_roll" json:"student_profile_roll_number"`
	StudentProfileGuardianName  string    `gorm:"column:student_profile_guardian_name;type:varchar(100)" json:"student_profile_guardian_name"`
	StudentProfileGuardianPhone string    `gorm:"column:student_profile_guardian_phone;type:varchar(30)" json:"student_profile_guardian_phone"`
	StudentProfileCreatedAt     time.Time `gorm:"column:student_profile_created_at;autoCreateTime" json:"student_profile_created_at"`
	StudentProfileUpdatedAt     time.Time `gorm:"column:student_profile_updated_at;autoUpdateTime" json:"student_profile_updated_at"`
}

func (StudentProfileModel) TableName() string {
	return "student_profiles"
}
