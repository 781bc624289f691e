package models

import "strings"

// Account is a vendor identity. The password hash never leaves the store as JSON.
type Account struct {
	ID               int64  `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	PasswordHash     string `json:"-"`
	AvgDailyEarnings string `json:"avg_daily_earnings"`
}

// NewAccount is the sign-up form.
type NewAccount struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	AvgDailyEarnings string `json:"avg_daily_earnings"`
}

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func trimmed(s string) string { return strings.TrimSpace(s) }
