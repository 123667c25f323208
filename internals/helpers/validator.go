// file: internals/helpers/validator.go
package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validator instance (dipakai semua DTO)
var Validate = validator.New()

// ValidationError merender error validator.v10 jadi map field → pesan.
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "Input tidak valid")
	}

	fieldErrors := make(map[string][]string, len(ve))
	for _, fe := range ve {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fe.Field() + " wajib diisi."
		case "email":
			msg = "Format email tidak valid."
		case "min":
			msg = fe.Field() + " harus minimal " + fe.Param() + " karakter."
		case "max":
			msg = fe.Field() + " harus kurang dari " + fe.Param() + " karakter."
		case "oneof":
			msg = fe.Field() + " harus salah satu dari " + fe.Param() + "."
		case "gte":
			msg = fe.Field() + " harus >= " + fe.Param() + "."
		default:
			msg = "Format tidak valid."
		}
		fieldErrors[fe.Field()] = append(fieldErrors[fe.Field()], msg)
	}

	return JsonValidationError(c, fieldErrors)
}
