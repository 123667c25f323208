package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/users/user/model"
)

// ================== REQUEST ==================

type RegisterRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin teacher student"`

	// khusus student: resolusi nama persis (setelah trim)
	ClassName     string `json:"class_name"`
	SectionName   string `json:"section_name"`
	RollNumber    string `json:"roll_number"`
	GuardianName  string `json:"guardian_name"`
	GuardianPhone string `json:"guardian_phone"`

	// khusus teacher: CSV nama subject, scoped ke satu class
	ClassID      *uuid.UUID `json:"class_id"`
	SubjectNames string     `json:"subject_names"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	UserName *string `json:"user_name" validate:"omitempty,min=3,max=50"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin teacher student"`
	IsActive *bool   `json:"is_active"`

	// teacher: update penugasan subject (CSV + class scope)
	ClassID      *uuid.UUID `json:"class_id"`
	SubjectNames *string    `json:"subject_names"`
}

type UpdateFCMTokenRequest struct {
	FCMToken string `json:"fcm_token" validate:"required,max=512"`
}

// ================== RESPONSE (per role, bukan bag-of-optionals) ==================

type UserCore struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt string    `json:"created_at"`
}

type AdminUserResponse struct {
	UserCore
}

type TeacherUserResponse struct {
	UserCore
	AssignedSubjects []string `json:"assigned_subjects"`
	ClassAssignments []string `json:"class_assignments"`
}

type StudentUserResponse struct {
	UserCore
	ClassID       uuid.UUID `json:"class_id"`
	SectionID     uuid.UUID `json:"section_id"`
	RollNumber    string    `json:"roll_number"`
	GuardianName  string    `json:"guardian_name"`
	GuardianPhone string    `json:"guardian_phone"`
}

func toUserCore(u *model.UserModel) UserCore {
	return UserCore{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func ToAdminResponse(u *model.UserModel) *AdminUserResponse {
	return &AdminUserResponse{UserCore: toUserCore(u)}
}

func ToTeacherResponse(u *model.UserModel, tp *model.TeacherProfileModel) *TeacherUserResponse {
	resp := &TeacherUserResponse{UserCore: toUserCore(u)}
	if tp != nil {
		resp.AssignedSubjects = tp.TeacherProfileAssignedSubjects
		resp.ClassAssignments = tp.TeacherProfileClassAssignments
	}
	return resp
}

func ToStudentResponse(u *model.UserModel, sp *model.StudentProfileModel) *StudentUserResponse {
	resp := &StudentUserResponse{UserCore: toUserCore(u)}
	if sp != nil {
		resp.ClassID = sp.StudentProfileClassID
		resp.SectionID = sp.StudentProfileSectionID
		resp.RollNumber = sp.StudentProfileRollNumber
		resp.GuardianName = sp.StudentProfileGuardianName
		resp.GuardianPhone = sp.StudentProfileGuardianPhone
	}
	return resp
}
