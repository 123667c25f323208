package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/users/user/controller"
	"sekolahku_backend/internals/middlewares"
)

// AuthRoutes: endpoint publik (register + login), dibatasi rate limiter.
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := r.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
}

// UserRoutes: profil diri sendiri, semua role login.
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	me := r.Group("/me")
	me.Get("/", ctrl.GetMe)
	me.Put("/fcm-token", ctrl.UpdateFCMToken)
}

// UserAdminRoutes: manajemen user oleh admin.
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAdminUserController(db)

	users := r.Group("/users")
	users.Get("/", ctrl.GetUsers)
	users.Get("/:id", ctrl.GetUserByID)
	users.Put("/:id", ctrl.UpdateUser)
}
