package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"veneya/models"
	"veneya/session"
)

type productInput struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	UnitEarnings string `json:"unit_earnings"`
}

type saveProductsRequest struct {
	Products []productInput `json:"products"`
}

// checkEarnings rejects unit earnings that are filled in but not a number.
// Empty values are left for the store to skip.
func checkEarnings(p productInput) error {
	v := strings.TrimSpace(p.UnitEarnings)
	if v == "" || strings.TrimSpace(p.Name) == "" {
		return nil
	}
	_, err := decimal.NewFromString(v)
	return err
}

func (h *Handler) ListProducts(c *fiber.Ctx) error {
	s, ok := session.From(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	products, err := h.store.ListProducts(c.UserContext(), s.AccountID)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// NextProductID hands the client an id for a product row it is about to edit.
func (h *Handler) NextProductID(c *fiber.Ctx) error {
	s, ok := session.From(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	next, err := h.store.NextProductID(c.UserContext(), s.AccountID)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(fiber.Map{"next_id": next})
}

// SaveProducts stores every complete product of the catalog form. Rows with
// an empty name or unit earnings are skipped.
func (h *Handler) SaveProducts(c *fiber.Ctx) error {
	s, ok := session.From(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req saveProductsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request")
	}

	products := make([]models.Product, 0, len(req.Products))
	for _, in := range req.Products {
		if err := checkEarnings(in); err != nil {
			return badRequest(c, "unit_earnings of "+strconv.Quote(in.Name)+" is not a number")
		}
		products = append(products, models.Product{
			ID:           in.ID,
			Name:         in.Name,
			UnitEarnings: in.UnitEarnings,
			AccountID:    s.AccountID,
		})
	}

	saved, err := h.store.SaveProducts(c.UserContext(), s.AccountID, products)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Products saved",
		"saved":   saved,
		"skipped": len(products) - len(saved),
	})
}

func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	s, ok := session.From(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest(c, "product id must be a positive integer")
	}

	var in productInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	in.ID = id
	if err := checkEarnings(in); err != nil {
		return badRequest(c, "unit_earnings is not a number")
	}

	p, saved, err := h.store.UpsertProduct(c.UserContext(), models.Product{
		ID:           id,
		Name:         in.Name,
		UnitEarnings: in.UnitEarnings,
		AccountID:    s.AccountID,
	})
	if err != nil {
		return h.storeError(c, err)
	}
	if !saved {
		return c.JSON(fiber.Map{"message": "Incomplete product not saved", "saved": false})
	}
	return c.JSON(fiber.Map{"message": "Product saved", "saved": true, "product": p})
}
