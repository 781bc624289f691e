package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"veneya/config"
	"veneya/controllers"
	"veneya/logging"
	"veneya/utils"
)

// NewApp builds the vendor API with its middleware stack.
func NewApp(cfg config.ServerConfig, h *controllers.Handler, tokens *utils.TokenIssuer, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "veneya",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logging.Requests(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins, // comma separated
		AllowMethods:     "GET,POST,PUT,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Set-Cookie",
		AllowCredentials: cfg.AllowOrigins != "*",
	}))

	RegisterRoutes(app, h, tokens)
	return app
}
