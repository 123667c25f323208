package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/home/notifications/dto"
	"sekolahku_backend/internals/features/home/notifications/model"
	"sekolahku_backend/internals/features/home/notifications/service"
	helper "sekolahku_backend/internals/helpers"
)

type BroadcastController struct {
	DB     *gorm.DB
	Fanout *service.FanoutService
}

func NewBroadcastController(db *gorm.DB, fanout *service.FanoutService) *BroadcastController {
	return &BroadcastController{DB: db, Fanout: fanout}
}

// 🟢 POST /api/a/notifications/broadcast
func (ctrl *BroadcastController) Broadcast(c *fiber.Ctx) error {
	var req dto.BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	roles := constants.AllRoles
	if req.Role != "" {
		roles = []string{req.Role}
	}
	for _, role := range roles {
		ctrl.Fanout.NotifyActiveByRole(c.UserContext(), role,
			model.TypeBroadcast, req.Title, req.Body, nil)
	}

	return helper.JsonOK(c, "Broadcast terkirim", nil)
}
