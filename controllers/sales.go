package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"veneya/models"
	"veneya/session"
)

type createSaleRequest struct {
	Zone      string            `json:"zone"`
	Latitude  *float64          `json:"latitude"`
	Longitude *float64          `json:"longitude"`
	Items     []models.SaleLine `json:"items"`
}

// CreateSale records the counters of the sales form. The zone is taken from
// the request, or resolved from the device coordinates when absent.
func (h *Handler) CreateSale(c *fiber.Ctx) error {
	s, ok := session.From(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req createSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request")
	}

	zone := strings.TrimSpace(req.Zone)
	if zone == "" {
		if req.Latitude == nil || req.Longitude == nil {
			return badRequest(c, "zone or latitude/longitude is required")
		}
		var err error
		zone, err = h.zones.Resolve(*req.Latitude, *req.Longitude)
		if err != nil {
			return h.storeError(c, err)
		}
	}

	ids, err := h.store.SaveSales(c.UserContext(), s.AccountID, zone, req.Items)
	if err != nil {
		return h.storeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Sale recorded",
		"zone":     zone,
		"sale_ids": ids,
	})
}

func (h *Handler) GetSales(c *fiber.Ctx) error {
	s, ok := session.From(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	sales, err := h.store.ListSales(c.UserContext(), s.AccountID)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(fiber.Map{"sales": sales})
}
