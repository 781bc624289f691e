package controllers

import (
	"github.com/gofiber/fiber/v2"

	"veneya/session"
)

// Popular ranks products by units sold.
func (h *Handler) Popular(c *fiber.Ctx) error {
	s, ok := session.From(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	f, err := reportFilter(c, s)
	if err != nil {
		return badRequest(c, err.Error())
	}

	items, err := h.store.PopularProducts(c.UserContext(), f)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(fiber.Map{"products": items})
}
