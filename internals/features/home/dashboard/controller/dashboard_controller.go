package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	academicModel "sekolahku_backend/internals/features/school/academics/model"
	marksModel "sekolahku_backend/internals/features/school/marks/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
)

// DashboardController: agregat ringkas untuk layar admin.
type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// 🟢 GET /api/a/dashboard/overview
func (ctrl *DashboardController) GetOverview(c *fiber.Ctx) error {
	counts := fiber.Map{}

	for _, role := range constants.AllRoles {
		var n int64
		if err := ctrl.DB.Model(&userModel.UserModel{}).
			Where("role = ? AND is_active = ?", role, true).Count(&n).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung user")
		}
		counts[role+"_count"] = n
	}

	var pendingMarks int64
	if err := ctrl.DB.Model(&marksModel.MarksModel{}).
		Where("marks_status = ?", marksModel.StatusPendingApproval).Count(&pendingMarks).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung nilai pending")
	}
	counts["pending_marks_count"] = pendingMarks

	var classCount, testCount int64
	if err := ctrl.DB.Model(&academicModel.ClassModel{}).Count(&classCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung class")
	}
	if err := ctrl.DB.Model(&academicModel.TestModel{}).Count(&testCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung test")
	}
	counts["class_count"] = classCount
	counts["test_count"] = testCount

	return helper.JsonOK(c, "OK", counts)
}

// 🟢 GET /api/a/dashboard/tests/:test_id/stats — statistik nilai approved
func (ctrl *DashboardController) GetTestStats(c *fiber.Ctx) error {
	testID, err := uuid.Parse(c.Params("test_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format test ID tidak valid")
	}

	var stats struct {
		Total int64    `json:"total"`
		Avg   *float64 `json:"avg"`
		Max   *int     `json:"max"`
		Min   *int     `json:"min"`
	}
	if err := ctrl.DB.Model(&marksModel.MarksModel{}).
		Select("COUNT(*) AS total, AVG(marks_obtained) AS avg, MAX(marks_obtained) AS max, MIN(marks_obtained) AS min").
		Where("marks_test_id = ? AND marks_status = ?", testID, marksModel.StatusApproved).
		Scan(&stats).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung statistik")
	}

	return helper.JsonOK(c, "OK", stats)
}
