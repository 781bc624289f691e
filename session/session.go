// Package session carries the authenticated vendor through a request.
package session

import "github.com/gofiber/fiber/v2"

const localsKey = "session"

// Session identifies the vendor a request acts for.
type Session struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
}

// Set stores s on the request.
func Set(c *fiber.Ctx, s Session) {
	c.Locals(localsKey, s)
}

// From returns the session stored by the auth middleware.
func From(c *fiber.Ctx) (Session, bool) {
	s, ok := c.Locals(localsKey).(Session)
	return s, ok && s.AccountID != 0
}
