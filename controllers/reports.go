package controllers

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"veneya/session"
	"veneya/store"
)

// reportFilter reads ?scope=mine|all, ?order=desc|asc and ?limit=N. Reports
// cover the session's own sales unless scope=all.
func reportFilter(c *fiber.Ctx, s session.Session) (store.ReportFilter, error) {
	var f store.ReportFilter
	switch c.Query("scope", "mine") {
	case "mine":
		f.AccountID = s.AccountID
	case "all":
	default:
		return f, fiber.NewError(fiber.StatusBadRequest, "scope must be mine or all")
	}

	switch c.Query("order", "desc") {
	case "desc":
	case "asc":
		f.Lowest = true
	default:
		return f, fiber.NewError(fiber.StatusBadRequest, "order must be desc or asc")
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return f, fiber.NewError(fiber.StatusBadRequest, "limit must be a non-negative integer")
		}
		f.Limit = limit
	}
	return f, nil
}

// ZoneSummary lists earnings per zone, best zone first.
func (h *Handler) ZoneSummary(c *fiber.Ctx) error {
	s, ok := session.From(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	f, err := reportFilter(c, s)
	if err != nil {
		return badRequest(c, err.Error())
	}

	zones, err := h.store.ZoneEarningsSummary(c.UserContext(), f)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(fiber.Map{"zones": zones})
}

// ZoneDetail breaks one zone down by product.
func (h *Handler) ZoneDetail(c *fiber.Ctx) error {
	s, ok := session.From(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	f, err := reportFilter(c, s)
	if err != nil {
		return badRequest(c, err.Error())
	}

	zone, err := url.PathUnescape(c.Params("zone"))
	if err != nil || zone == "" {
		return badRequest(c, "invalid zone")
	}

	detail, err := h.store.ZoneDetail(c.UserContext(), zone, f)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(detail)
}
