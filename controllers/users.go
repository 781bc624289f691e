package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"veneya/models"
	"veneya/session"
)

func (h *Handler) CreateAccount(c *fiber.Ctx) error {
	var in models.NewAccount
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request")
	}

	id, err := h.store.CreateAccount(c.UserContext(), in)
	if err != nil {
		return h.storeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Account created",
		"account_id": id,
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var in models.Credentials
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid input: "+err.Error())
	}

	acc, err := h.store.VerifyUser(c.UserContext(), in.Username, in.Password)
	if err != nil {
		return h.storeError(c, err)
	}
	if acc == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Incorrect username or password",
		})
	}

	s := session.Session{AccountID: acc.ID, Username: acc.Username}
	token, err := h.tokens.GenerateJWTToken(s)
	if err != nil {
		h.log.Error("token generation failed", zap.Int64("account_id", acc.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Token generation failed",
		})
	}
	h.tokens.SetJWTCookie(c, token)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"account": acc,
		"token":   token,
	})
}

// Me returns the account of the current session.
func (h *Handler) Me(c *fiber.Ctx) error {
	s, ok := session.From(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	acc, err := h.store.GetAccount(c.UserContext(), s.AccountID)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.JSON(acc)
}
