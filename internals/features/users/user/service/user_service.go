// file: internals/features/users/user/service/user_service.go
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/constants"
	academicModel "sekolahku_backend/internals/features/school/academics/model"
	academicService "sekolahku_backend/internals/features/school/academics/service"
	"sekolahku_backend/internals/features/users/user/dto"
	"sekolahku_backend/internals/features/users/user/model"
)

// UserService: registrasi + manajemen user. Semua mutasi user+profile satu
// transaksi — tidak boleh ada partial success (user berubah, profile gagal).
type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// resolveStudentPlacement mencari class & section by name (exact match
// setelah trim) dan memastikan roll number unik di section tersebut.
func resolveStudentPlacement(tx *gorm.DB, className, sectionName, rollNumber string) (uuid.UUID, uuid.UUID, error) {
	className = strings.TrimSpace(className)
	sectionName = strings.TrimSpace(sectionName)
	rollNumber = strings.TrimSpace(rollNumber)

	if className == "" || sectionName == "" || rollNumber == "" {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusUnprocessableEntity,
			"class_name, section_name, dan roll_number wajib diisi untuk siswa")
	}

	var cls academicModel.ClassModel
	if err := tx.Where("class_name = ?", className).First(&cls).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Class %q tidak ditemukan", className))
		}
		return uuid.Nil, uuid.Nil, err
	}

	var sec academicModel.SectionModel
	if err := tx.Where("section_class_id = ? AND section_name = ?", cls.ClassID, sectionName).
		First(&sec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("Section %q tidak ditemukan di class %q", sectionName, className))
		}
		return uuid.Nil, uuid.Nil, err
	}

	var n int64
	if err := tx.Model(&model.StudentProfileModel{}).
		Where("student_profile_section_id = ? AND student_profile_roll_number = ?", sec.SectionID, rollNumber).
		Count(&n).Error; err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if n > 0 {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("Roll number %q sudah dipakai di section ini", rollNumber))
	}

	return cls.ClassID, sec.SectionID, nil
}

// resolveSubjectNames memetakan CSV nama subject ke id, scoped ke satu
// class. Satu nama saja gagal resolve → seluruh operasi gagal, nama-nama
// yang tidak dikenal ikut dilaporkan.
func resolveSubjectNames(tx *gorm.DB, classID uuid.UUID, csv string) ([]uuid.UUID, error) {
	var names []string
	for _, raw := range strings.Split(csv, ",") {
		if name := strings.TrimSpace(raw); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, nil
	}

	var subjects []academicModel.SubjectModel
	if err := tx.Where("subject_class_id = ? AND subject_name IN ?", classID, names).
		Find(&subjects).Error; err != nil {
		return nil, err
	}

	byName := make(map[string]uuid.UUID, len(subjects))
	for _, s := range subjects {
		byName[s.SubjectName] = s.SubjectID
	}

	ids := make([]uuid.UUID, 0, len(names))
	var unresolved []string
	for _, name := range names {
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
		} else {
			unresolved = append(unresolved, name)
		}
	}
	if len(unresolved) > 0 {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
			"Subject tidak ditemukan di class ini: "+strings.Join(unresolved, ", "))
	}
	return ids, nil
}

// Register membuat user + profile sesuai role dalam satu transaksi.
func (s *UserService) Register(in dto.RegisterRequest) (*model.UserModel, error) {
	role := in.Role
	if role == "" {
		role = constants.RoleStudent
	}

	var existing model.UserModel
	err := s.DB.Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return nil, fiber.NewError(fiber.StatusConflict, "Email sudah terdaftar")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.UserModel{
		UserName: in.UserName,
		Email:    in.Email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		switch role {
		case constants.RoleStudent:
			classID, sectionID, err := resolveStudentPlacement(tx, in.ClassName, in.SectionName, in.RollNumber)
			if err != nil {
				return err
			}
			return tx.Create(&model.StudentProfileModel{
				StudentProfileUserID:        user.ID,
				StudentProfileClassID:       classID,
				StudentProfileSectionID:     sectionID,
				StudentProfileRollNumber:    strings.TrimSpace(in.RollNumber),
				StudentProfileGuardianName:  in.GuardianName,
				StudentProfileGuardianPhone: in.GuardianPhone,
			}).Error

		case constants.RoleTeacher:
			if err := tx.Create(&model.TeacherProfileModel{
				TeacherProfileUserID: user.ID,
			}).Error; err != nil {
				return err
			}
			if in.ClassID != nil && in.SubjectNames != "" {
				ids, err := resolveSubjectNames(tx, *in.ClassID, in.SubjectNames)
				if err != nil {
					return err
				}
				return academicService.AssignSubjectsToTeacher(tx, user.ID, *in.ClassID, ids)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login memverifikasi kredensial dan menerbitkan JWT (HS256, 24 jam).
func (s *UserService) Login(email, password string) (string, *model.UserModel, error) {
	var user model.UserModel
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, fiber.NewError(fiber.StatusForbidden, "Akun dinonaktifkan")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
	}

	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", nil, err
	}
	return signed, &user, nil
}

// UpdateUser: jalur update generik admin. Role TIDAK bisa diubah MENJADI
// admin lewat jalur ini. User + profile dalam satu transaksi.
func (s *UserService) UpdateUser(targetID uuid.UUID, in dto.UpdateUserRequest) (*model.UserModel, error) {
	var user model.UserModel
	if err := s.DB.Where("id = ?", targetID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, err
	}

	if in.Role != nil && *in.Role == constants.RoleAdmin && user.Role != constants.RoleAdmin {
		return nil, fiber.NewError(fiber.StatusForbidden, "Role tidak bisa diubah menjadi admin lewat jalur ini")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if in.UserName != nil {
			updates["user_name"] = *in.UserName
		}
		if in.Role != nil {
			updates["role"] = *in.Role
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}
		if len(updates) > 0 {
			if err := tx.Model(&model.UserModel{}).Where("id = ?", targetID).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		if user.Role == constants.RoleTeacher && in.ClassID != nil && in.SubjectNames != nil {
			ids, err := resolveSubjectNames(tx, *in.ClassID, *in.SubjectNames)
			if err != nil {
				return err
			}
			if err := academicService.AssignSubjectsToTeacher(tx, targetID, *in.ClassID, ids); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Where("id = ?", targetID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateFCMToken menyimpan token push device user.
func (s *UserService) UpdateFCMToken(userID uuid.UUID, token string) error {
	return s.DB.Model(&model.UserModel{}).
		Where("id = ?", userID).
		Update("fcm_token", token).Error
}

// ShapeUser membentuk payload sesuai role — satu tipe response per role,
// bukan satu struct penuh field opsional.
func (s *UserService) ShapeUser(u *model.UserModel) (interface{}, error) {
	switch u.Role {
	case constants.RoleTeacher:
		var tp model.TeacherProfileModel
		err := s.DB.Where("teacher_profile_user_id = ?", u.ID).First(&tp).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ToTeacherResponse(u, nil), nil
		}
		return dto.ToTeacherResponse(u, &tp), nil

	case constants.RoleStudent:
		var sp model.StudentProfileModel
		err := s.DB.Where("student_profile_user_id = ?", u.ID).First(&sp).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ToStudentResponse(u, nil), nil
		}
		return dto.ToStudentResponse(u, &sp), nil

	default:
		return dto.ToAdminResponse(u), nil
	}
}
