package routes

import (
	"veneya/controllers"
	"veneya/middleware"
	"veneya/utils"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *controllers.Handler, tokens *utils.TokenIssuer) {
	app.Get("/healthz", h.Health)

	// accounts
	app.Post("/accounts", h.CreateAccount)
	app.Post("/login", h.Login)

	// zones
	app.Get("/zones/resolve", h.ResolveZone)

	jwt := middleware.JWT(tokens)
	app.Get("/me", jwt, h.Me)

	// catalog
	app.Get("/products", jwt, h.ListProducts)
	app.Get("/products/next-id", jwt, h.NextProductID)
	app.Post("/products", jwt, h.SaveProducts)
	app.Put("/products/:id", jwt, h.UpdateProduct)

	// sales
	app.Post("/sales", jwt, h.CreateSale)
	app.Get("/sales", jwt, h.GetSales)

	// reports
	app.Get("/reports/zones", jwt, h.ZoneSummary)
	app.Get("/reports/zones/:zone", jwt, h.ZoneDetail)
	app.Get("/reports/popular", jwt, h.Popular)
}
