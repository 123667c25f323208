package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	academicModel "sekolahku_backend/internals/features/school/academics/model"
	"sekolahku_backend/internals/features/school/feedback/dto"
	"sekolahku_backend/internals/features/school/feedback/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// FeedbackController: thread feedback per (test, student).
type FeedbackController struct {
	DB      *gorm.DB
	Service *service.FeedbackService
}

func NewFeedbackController(db *gorm.DB, svc *service.FeedbackService) *FeedbackController {
	return &FeedbackController{DB: db, Service: svc}
}

// loadTest: ambil test + cek kepemilikan kalau requester guru.
func (ctrl *FeedbackController) loadTest(testID uuid.UUID, requesterID uuid.UUID, requesterRole string) (*academicModel.TestModel, error) {
	var test academicModel.TestModel
	if err := ctrl.DB.Where("test_id = ?", testID).First(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Test tidak ditemukan")
		}
		return nil, err
	}
	if requesterRole == constants.RoleTeacher && test.TestCreatedBy != requesterID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Guru hanya boleh mengakses feedback test miliknya")
	}
	return &test, nil
}

// 🟢 POST /api/u/feedback — teacher/admin membuat feedback manual
func (ctrl *FeedbackController) CreateFeedback(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}
	role, err := helperAuth.GetRoleFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Role tidak dikenali")
	}
	if role == constants.RoleStudent {
		return helper.JsonError(c, fiber.StatusForbidden, "Siswa hanya dapat membalas, bukan membuat feedback baru")
	}

	var req dto.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[ERROR] Gagal parsing body: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	test, err := ctrl.loadTest(req.TestID, userID, role)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memvalidasi test")
	}

	fb, err := ctrl.Service.Create(c.UserContext(), userID, role, service.CreateInput{
		TestID:    req.TestID,
		StudentID: req.StudentID,
		TeacherID: test.TestCreatedBy,
		Message:   req.Message,
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal membuat feedback: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat feedback")
	}

	return helper.JsonCreated(c, "Feedback berhasil dibuat", dto.ToFeedbackResponse(fb))
}

// 🟢 GET /api/u/feedback/thread/:test_id/:student_id
func (ctrl *FeedbackController) GetThread(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}
	role, err := helperAuth.GetRoleFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Role tidak dikenali")
	}

	testID, err := uuid.Parse(c.Params("test_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format test ID tidak valid")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format student ID tidak valid")
	}

	if role == constants.RoleTeacher {
		if _, err := ctrl.loadTest(testID, userID, role); err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return helper.JsonError(c, fe.Code, fe.Message)
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memvalidasi test")
		}
	}

	rows, err := ctrl.Service.Thread(userID, role, testID, studentID)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal mengambil thread: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil thread feedback")
	}

	return helper.JsonOK(c, "OK", dto.ToFeedbackResponseList(rows))
}

// 🟢 POST /api/u/feedback/:id/reply
func (ctrl *FeedbackController) ReplyFeedback(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}
	role, err := helperAuth.GetRoleFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Role tidak dikenali")
	}

	feedbackID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var req dto.ReplyFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	reply, err := ctrl.Service.Reply(c.UserContext(), userID, role, feedbackID, req.Message)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal membalas feedback: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membalas feedback")
	}

	return helper.JsonCreated(c, "Balasan terkirim", dto.ToFeedbackResponse(reply))
}

// 🟢 PUT /api/u/feedback/:id
func (ctrl *FeedbackController) EditFeedback(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}
	role, err := helperAuth.GetRoleFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Role tidak dikenali")
	}

	feedbackID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var req dto.EditFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	fb, err := ctrl.Service.Edit(c.UserContext(), userID, role, feedbackID, req.Message)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal mengedit feedback: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengedit feedback")
	}

	return helper.JsonUpdated(c, "Feedback berhasil diperbarui", dto.ToFeedbackResponse(fb))
}
