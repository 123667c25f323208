package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupMiddlewares memasang middleware dasar (urutan penting)
func SetupMiddlewares(app *fiber.App) {
	app.Use(recover.New())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
