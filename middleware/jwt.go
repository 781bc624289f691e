package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"veneya/session"
	"veneya/utils"
)

// JWT authenticates the request from the Bearer token, or the jwt cookie set
// at login, and stores the session for the handlers.
func JWT(tokens *utils.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("jwt")
		if auth := c.Get("Authorization"); auth != "" {
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
			}
			token = strings.TrimPrefix(auth, "Bearer ")
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
		}

		s, err := tokens.ParseJWTToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		session.Set(c, s)
		return c.Next()
	}
}
