package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/users/user/dto"
	"sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/features/users/user/service"
	helper "sekolahku_backend/internals/helpers"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

type UserController struct {
	DB      *gorm.DB
	Service *service.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Service: service.NewUserService(db)}
}

// 🟢 GET /api/u/me — payload mengikuti role requester
func (ctrl *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	var user model.UserModel
	if err := ctrl.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	shaped, err := ctrl.Service.ShapeUser(&user)
	if err != nil {
		log.Printf("[ERROR] Gagal memuat profil: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat profil")
	}
	return helper.JsonOK(c, "OK", shaped)
}

// 🟢 PUT /api/u/me/fcm-token
func (ctrl *UserController) UpdateFCMToken(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak dikenali")
	}

	var req dto.UpdateFCMTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Service.UpdateFCMToken(userID, req.FCMToken); err != nil {
		log.Printf("[ERROR] Gagal menyimpan FCM token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan FCM token")
	}
	return helper.JsonUpdated(c, "FCM token diperbarui", nil)
}
