package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ResolveZone turns ?lat=&lng= into a zone label.
func (h *Handler) ResolveZone(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return badRequest(c, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return badRequest(c, "lng must be a number")
	}

	zone, err := h.zones.Resolve(lat, lng)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(fiber.Map{"zone": zone})
}
