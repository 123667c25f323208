package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/users/user/dto"
	"sekolahku_backend/internals/features/users/user/service"
	helper "sekolahku_backend/internals/helpers"
)

type AuthController struct {
	DB      *gorm.DB
	Service *service.UserService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Service: service.NewUserService(db)}
}

// 🟢 POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[ERROR] Gagal parsing body: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctrl.Service.Register(req)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal registrasi: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal registrasi")
	}

	shaped, err := ctrl.Service.ShapeUser(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat profil")
	}
	return helper.JsonCreated(c, "Registrasi berhasil", shaped)
}

// 🟢 POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	token, user, err := ctrl.Service.Login(req.Email, req.Password)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal login: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal login")
	}

	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token": token,
		"user": fiber.Map{
			"id":        user.ID,
			"user_name": user.UserName,
			"email":     user.Email,
			"role":      user.Role,
		},
	})
}
