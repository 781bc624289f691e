package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"veneya/models"
)

// bcrypt only reads the first 72 bytes.
const maxPasswordBytes = 72

// CreateAccount registers a vendor and returns the new account id. Usernames
// and emails are unique; a duplicate fails with ErrConflict.
func (s *Store) CreateAccount(ctx context.Context, in models.NewAccount) (int64, error) {
	const op = "create account"

	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	switch {
	case username == "":
		return 0, s.fail(op, invalid("username is required"))
	case email == "":
		return 0, s.fail(op, invalid("email is required"))
	case in.Password == "":
		return 0, s.fail(op, invalid("password is required"))
	case len(in.Password) > maxPasswordBytes:
		return 0, s.fail(op, invalid("password is longer than %d bytes", maxPasswordBytes))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.passwordCost)
	if err != nil {
		return 0, s.fail(op, err)
	}

	var id int64
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, s.q(
			`INSERT INTO accounts (username, email, password, avg_daily_earnings)
			 VALUES (?, ?, ?, ?) RETURNING id`),
			username, email, string(hash), in.AvgDailyEarnings,
		).Scan(&id)
	})
	if errors.Is(err, sql.ErrNoRows) || (err == nil && id == 0) {
		err = ErrNoID
	}
	if err != nil {
		return 0, s.fail(op, err, zap.String("username", username))
	}

	s.log.Info("account created", zap.Int64("account_id", id), zap.String("username", username))
	return id, nil
}

// VerifyUser returns the account matching username and password, or nil when
// there is none. A wrong password is not an error.
func (s *Store) VerifyUser(ctx context.Context, username, password string) (*models.Account, error) {
	const op = "verify user"

	var acc models.Account
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, s.q(
			`SELECT id, username, email, password, avg_daily_earnings
			 FROM accounts WHERE username = ?`),
			strings.TrimSpace(username),
		).Scan(&acc.ID, &acc.Username, &acc.Email, &acc.PasswordHash, &acc.AvgDailyEarnings)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail(op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, nil
		}
		return nil, s.fail(op, err, zap.Int64("account_id", acc.ID))
	}
	return &acc, nil
}

// GetAccount loads an account by id.
func (s *Store) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	var acc models.Account
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, s.q(
			`SELECT id, username, email, password, avg_daily_earnings
			 FROM accounts WHERE id = ?`), id,
		).Scan(&acc.ID, &acc.Username, &acc.Email, &acc.PasswordHash, &acc.AvgDailyEarnings)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, s.fail("get account", ErrNotFound, zap.Int64("account_id", id))
	}
	if err != nil {
		return nil, s.fail("get account", err)
	}
	return &acc, nil
}
