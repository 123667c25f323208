// file: internals/helpers/auth/token_locals.go
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
)

// GetUserIDFromToken mengambil user_id yang sudah disimpan AuthMiddleware di locals.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user ID tidak ditemukan di token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user ID tidak valid")
	}
	return id, nil
}

// GetRoleFromToken mengambil role aktif dari locals.
func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("userRole").(string)
	if !ok || role == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - role tidak ditemukan di token")
	}
	return role, nil
}

func IsAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("userRole").(string)
	return role == constants.RoleAdmin
}

func IsTeacher(c *fiber.Ctx) bool {
	role, _ := c.Locals("userRole").(string)
	return role == constants.RoleTeacher
}

func IsStudent(c *fiber.Ctx) bool {
	role, _ := c.Locals("userRole").(string)
	return role == constants.RoleStudent
}
