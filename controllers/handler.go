package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"veneya/models"
	"veneya/store"
	"veneya/utils"
)

// DataStore is the part of the store the handlers use.
type DataStore interface {
	CreateAccount(ctx context.Context, in models.NewAccount) (int64, error)
	VerifyUser(ctx context.Context, username, password string) (*models.Account, error)
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	ListProducts(ctx context.Context, accountID int64) ([]models.Product, error)
	NextProductID(ctx context.Context, accountID int64) (int64, error)
	UpsertProduct(ctx context.Context, p models.Product) (models.Product, bool, error)
	SaveProducts(ctx context.Context, accountID int64, products []models.Product) ([]models.Product, error)
	SaveSales(ctx context.Context, accountID int64, zone string, lines []models.SaleLine) ([]int64, error)
	ListSales(ctx context.Context, accountID int64) ([]models.Sale, error)
	ZoneEarningsSummary(ctx context.Context, f store.ReportFilter) ([]models.ZoneSummary, error)
	ZoneDetail(ctx context.Context, zone string, f store.ReportFilter) (*models.ZoneDetail, error)
	PopularProducts(ctx context.Context, f store.ReportFilter) ([]models.PopularProduct, error)
	Ping(ctx context.Context) error
}

// Handler serves the vendor API.
type Handler struct {
	store  DataStore
	tokens *utils.TokenIssuer
	zones  store.ZoneResolver
	log    *zap.Logger
}

func NewHandler(ds DataStore, tokens *utils.TokenIssuer, zones store.ZoneResolver, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: ds, tokens: tokens, zones: zones, log: logger.Named("api")}
}

// storeError maps store errors to HTTP responses.
func (h *Handler) storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, store.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// Health reports whether the database answers.
func (h *Handler) Health(c *fiber.Ctx) error {
	if err := h.store.Ping(c.UserContext()); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
