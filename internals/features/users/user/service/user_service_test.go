package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/constants"
	academicModel "sekolahku_backend/internals/features/school/academics/model"
	"sekolahku_backend/internals/features/users/user/dto"
	"sekolahku_backend/internals/features/users/user/model"
)

func newUserDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.UserModel{},
		&model.StudentProfileModel{},
		&academicModel.ClassModel{},
		&academicModel.SectionModel{},
		&academicModel.SubjectModel{},
	))
	// kolom array postgres dibuat manual sebagai text di sqlite
	require.NoError(t, db.Exec(`CREATE TABLE teacher_profiles (
		teacher_profile_id text PRIMARY KEY,
		teacher_profile_user_id text NOT NULL UNIQUE,
		teacher_profile_assigned_subjects text,
		teacher_profile_class_assignments text,
		teacher_profile_created_at datetime,
		teacher_profile_updated_at datetime)`).Error)
	return db
}

func seedClassroom(t *testing.T, db *gorm.DB) (academicModel.ClassModel, academicModel.SectionModel) {
	t.Helper()
	cls := academicModel.ClassModel{ClassName: "Class 10"}
	require.NoError(t, db.Create(&cls).Error)
	sec := academicModel.SectionModel{SectionClassID: cls.ClassID, SectionName: "Section A"}
	require.NoError(t, db.Create(&sec).Error)
	return cls, sec
}

func wantFiberCode(t *testing.T, err error, code int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, code, fe.Code)
}

func TestRegisterStudent(t *testing.T) {
	db := newUserDB(t)
	svc := NewUserService(db)
	cls, sec := seedClassroom(t, db)

	base := dto.RegisterRequest{
		UserName:    "Budi Santoso",
		Email:       "budi@test.local",
		Password:    "rahasia-123",
		Role:        constants.RoleStudent,
		ClassName:   "Class 10",
		SectionName: "Section A",
		RollNumber:  "12",
	}

	t.Run("resolusi class/section by name", func(t *testing.T) {
		user, err := svc.Register(base)
		require.NoError(t, err)

		var sp model.StudentProfileModel
		require.NoError(t, db.Where("student_profile_user_id = ?", user.ID).First(&sp).Error)
		assert.Equal(t, cls.ClassID, sp.StudentProfileClassID)
		assert.Equal(t, sec.SectionID, sp.StudentProfileSectionID)
		assert.Equal(t, "12", sp.StudentProfileRollNumber)
	})

	t.Run("email duplikat conflict", func(t *testing.T) {
		_, err := svc.Register(base)
		wantFiberCode(t, err, fiber.StatusConflict)
	})

	t.Run("roll number duplikat di section yang sama", func(t *testing.T) {
		req := base
		req.Email = "ani@test.local"
		req.UserName = "Ani Lestari"
		_, err := svc.Register(req)
		wantFiberCode(t, err, fiber.StatusConflict)

		// gagal total: user tidak boleh ikut tertulis
		var n int64
		require.NoError(t, db.Model(&model.UserModel{}).Where("email = ?", req.Email).Count(&n).Error)
		assert.EqualValues(t, 0, n)
	})

	t.Run("class tidak dikenal", func(t *testing.T) {
		req := base
		req.Email = "citra@test.local"
		req.ClassName = "Class 99"
		_, err := svc.Register(req)
		wantFiberCode(t, err, fiber.StatusUnprocessableEntity)
	})

	t.Run("field penempatan wajib", func(t *testing.T) {
		req := base
		req.Email = "dodi@test.local"
		req.RollNumber = "  "
		_, err := svc.Register(req)
		wantFiberCode(t, err, fiber.StatusUnprocessableEntity)
	})
}

func TestRegisterTeacherWithSubjects(t *testing.T) {
	db := newUserDB(t)
	svc := NewUserService(db)
	cls, _ := seedClassroom(t, db)

	math := academicModel.SubjectModel{SubjectClassID: cls.ClassID, SubjectName: "Math"}
	science := academicModel.SubjectModel{SubjectClassID: cls.ClassID, SubjectName: "Science"}
	require.NoError(t, db.Create(&math).Error)
	require.NoError(t, db.Create(&science).Error)

	t.Run("csv subject ter-resolve", func(t *testing.T) {
		user, err := svc.Register(dto.RegisterRequest{
			UserName:     "Pak Joko",
			Email:        "joko@test.local",
			Password:     "rahasia-123",
			Role:         constants.RoleTeacher,
			ClassID:      &cls.ClassID,
			SubjectNames: "Math, Science",
		})
		require.NoError(t, err)

		var got academicModel.SubjectModel
		require.NoError(t, db.Where("subject_id = ?", math.SubjectID).First(&got).Error)
		require.NotNil(t, got.SubjectTeacherID)
		assert.Equal(t, user.ID, *got.SubjectTeacherID)

		var tp model.TeacherProfileModel
		require.NoError(t, db.Where("teacher_profile_user_id = ?", user.ID).First(&tp).Error)
		assert.Contains(t, tp.TeacherProfileAssignedSubjects, cls.ClassID.String()+":"+math.SubjectID.String())
		assert.Contains(t, tp.TeacherProfileClassAssignments, cls.ClassID.String())
	})

	t.Run("nama tidak dikenal menggagalkan semua dan dilaporkan", func(t *testing.T) {
		_, err := svc.Register(dto.RegisterRequest{
			UserName:     "Bu Sari",
			Email:        "sari@test.local",
			Password:     "rahasia-123",
			Role:         constants.RoleTeacher,
			ClassID:      &cls.ClassID,
			SubjectNames: "Math, History",
		})
		wantFiberCode(t, err, fiber.StatusUnprocessableEntity)
		var fe *fiber.Error
		require.ErrorAs(t, err, &fe)
		assert.Contains(t, fe.Message, "History")

		// rollback penuh: user tidak tertulis
		var n int64
		require.NoError(t, db.Model(&model.UserModel{}).Where("email = ?", "sari@test.local").Count(&n).Error)
		assert.EqualValues(t, 0, n)
	})
}

func TestUpdateUserRoleRestriction(t *testing.T) {
	db := newUserDB(t)
	svc := NewUserService(db)

	teacher := model.UserModel{
		UserName: "Pak Anto",
		Email:    "anto@test.local",
		Password: "hashed",
		Role:     constants.RoleTeacher,
		IsActive: true,
	}
	require.NoError(t, db.Create(&teacher).Error)

	t.Run("upgrade ke admin ditolak", func(t *testing.T) {
		admin := constants.RoleAdmin
		_, err := svc.UpdateUser(teacher.ID, dto.UpdateUserRequest{Role: &admin})
		wantFiberCode(t, err, fiber.StatusForbidden)
	})

	t.Run("update field biasa", func(t *testing.T) {
		name := "Pak Anto Wijaya"
		inactive := false
		updated, err := svc.UpdateUser(teacher.ID, dto.UpdateUserRequest{
			UserName: &name, IsActive: &inactive,
		})
		require.NoError(t, err)
		assert.Equal(t, name, updated.UserName)
		assert.False(t, updated.IsActive)
	})

	t.Run("user tidak ditemukan", func(t *testing.T) {
		name := "Siapa"
		_, err := svc.UpdateUser(uuid.New(), dto.UpdateUserRequest{UserName: &name})
		wantFiberCode(t, err, fiber.StatusNotFound)
	})
}

func TestLogin(t *testing.T) {
	configs.JWTSecret = "test-secret"

	db := newUserDB(t)
	svc := NewUserService(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia-123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := model.UserModel{
		UserName: "Budi",
		Email:    "budi@test.local",
		Password: string(hash),
		Role:     constants.RoleStudent,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	t.Run("kredensial benar", func(t *testing.T) {
		token, got, err := svc.Login("budi@test.local", "rahasia-123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("password salah", func(t *testing.T) {
		_, _, err := svc.Login("budi@test.local", "salah")
		wantFiberCode(t, err, fiber.StatusUnauthorized)
	})

	t.Run("email tidak terdaftar", func(t *testing.T) {
		_, _, err := svc.Login("ghost@test.local", "rahasia-123")
		wantFiberCode(t, err, fiber.StatusUnauthorized)
	})

	t.Run("akun nonaktif", func(t *testing.T) {
		require.NoError(t, db.Model(&model.UserModel{}).
			Where("id = ?", user.ID).Update("is_active", false).Error)
		_, _, err := svc.Login("budi@test.local", "rahasia-123")
		wantFiberCode(t, err, fiber.StatusForbidden)
	})
}
