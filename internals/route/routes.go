// file: internals/route/routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/constants"
	authMw "sekolahku_backend/internals/middlewares/auth"
	"sekolahku_backend/internals/route/details"
	"sekolahku_backend/internals/services/push"
)

// SetupRoutes mendaftarkan seluruh route aplikasi.
//
//	/api/auth  → publik (register/login, rate-limited)
//	/api/a     → khusus admin
//	/api/t     → khusus teacher
//	/api/s     → khusus student
//	/api/u     → semua role login
func SetupRoutes(app *fiber.App, db *gorm.DB, sender push.Sender) {
	api := app.Group("/api")

	// 🌐 publik
	details.PublicRoutes(api, db)

	// 🔒 butuh token valid + user aktif
	authed := api.Group("", authMw.AuthMiddleware(db))

	admin := authed.Group("/a",
		authMw.OnlyRoles(constants.RoleErrorAdmin("area admin"), constants.AdminOnly...))
	teacher := authed.Group("/t",
		authMw.OnlyRoles(constants.RoleErrorTeacher("area teacher"), constants.TeacherOnly...))
	student := authed.Group("/s",
		authMw.OnlyRoles(constants.RoleErrorStudent("area student"), constants.StudentOnly...))
	user := authed.Group("/u",
		authMw.OnlyRoles("", constants.AllRoles...))

	// policy: auto-feedback saat approve bisa dimatikan per deployment
	autoFeedback := configs.GetEnv("AUTO_FEEDBACK_ON_APPROVE", "true") == "true"

	details.AdminRoutes(admin, db, sender, autoFeedback)
	details.TeacherRoutes(teacher, db, sender, autoFeedback)
	details.StudentRoutes(student, db, sender, autoFeedback)
	details.UserRoutes(user, db, sender, autoFeedback)
}
