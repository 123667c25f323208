// file: internals/route/details/public_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "sekolahku_backend/internals/features/users/user/route"
)

// PublicRoutes: endpoint tanpa token.
func PublicRoutes(r fiber.Router, db *gorm.DB) {
	userRoute.AuthRoutes(r, db)
}
