package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/users/user/dto"
	"sekolahku_backend/internals/features/users/user/model"
	"sekolahku_backend/internals/features/users/user/service"
	helper "sekolahku_backend/internals/helpers"
)

// AdminUserController: manajemen user oleh admin.
type AdminUserController struct {
	DB      *gorm.DB
	Service *service.UserService
}

func NewAdminUserController(db *gorm.DB) *AdminUserController {
	return &AdminUserController{DB: db, Service: service.NewUserService(db)}
}

// 🟢 GET /api/a/users?role= (+ pagination)
func (ctrl *AdminUserController) GetUsers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.UserModel{})
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data")
	}

	var users []model.UserModel
	if err := q.
		Order("created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	return helper.JsonList(c, "OK", users, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// 🟢 GET /api/a/users/:id — payload mengikuti role user target
func (ctrl *AdminUserController) GetUserByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var user model.UserModel
	if err := ctrl.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data user")
	}

	shaped, err := ctrl.Service.ShapeUser(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat profil")
	}
	return helper.JsonOK(c, "OK", shaped)
}

// 🟢 PUT /api/a/users/:id — role tidak bisa di-upgrade menjadi admin
func (ctrl *AdminUserController) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format ID tidak valid")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctrl.Service.UpdateUser(id, req)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] Gagal update user: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update user")
	}

	shaped, err := ctrl.Service.ShapeUser(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat profil")
	}
	return helper.JsonUpdated(c, "User berhasil diperbarui", shaped)
}
