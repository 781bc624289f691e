package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"veneya/models"
)

// ListProducts returns the account's products in storage order.
func (s *Store) ListProducts(ctx context.Context, accountID int64) ([]models.Product, error) {
	products := []models.Product{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, s.q(
			`SELECT id, name, unit_earnings, account_id
			 FROM products WHERE account_id = ? ORDER BY id ASC`), accountID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p models.Product
			if err := rows.Scan(&p.ID, &p.Name, &p.UnitEarnings, &p.AccountID); err != nil {
				return err
			}
			products = append(products, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, s.fail("list products", err, zap.Int64("account_id", accountID))
	}
	return products, nil
}

// NextProductID returns the account's highest product id plus one, or 1 when
// the account has no products yet. When that id is already taken by another
// account it falls back to the highest id of all products plus one, so the
// returned id can always be upserted. Two callers can get the same value;
// prefer UpsertProduct with a zero id, which lets the store assign it.
func (s *Store) NextProductID(ctx context.Context, accountID int64) (int64, error) {
	var next int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var maxID sql.NullInt64
		if err := tx.QueryRowContext(ctx, s.q(
			`SELECT MAX(id) FROM products WHERE account_id = ?`), accountID,
		).Scan(&maxID); err != nil {
			return err
		}
		next = maxID.Int64 + 1

		var taken bool
		if err := tx.QueryRowContext(ctx, s.q(
			`SELECT EXISTS (SELECT 1 FROM products WHERE id = ? AND account_id <> ?)`), next, accountID,
		).Scan(&taken); err != nil {
			return err
		}
		if !taken {
			return nil
		}

		if err := tx.QueryRowContext(ctx,
			`SELECT MAX(id) FROM products`,
		).Scan(&maxID); err != nil {
			return err
		}
		next = maxID.Int64 + 1
		return nil
	})
	if err != nil {
		return 0, s.fail("next product id", err, zap.Int64("account_id", accountID))
	}
	return next, nil
}

// UpsertProduct writes p with replace semantics and returns the stored
// product. Incomplete products (empty name or unit earnings) are skipped:
// saved is false and err is nil.
//
// A zero p.ID inserts a new row and the store assigns the id. A non-zero id
// replaces the row with that id, or inserts it when absent. Replacing a
// product owned by another account fails with ErrConflict.
func (s *Store) UpsertProduct(ctx context.Context, p models.Product) (out models.Product, saved bool, err error) {
	if !p.Complete() {
		return p, false, nil
	}
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		out, err = s.upsertProduct(ctx, tx, p)
		return err
	})
	if err != nil {
		return p, false, s.fail("upsert product", err,
			zap.Int64("product_id", p.ID), zap.Int64("account_id", p.AccountID))
	}
	return out, true, nil
}

// SaveProducts upserts every complete product in one transaction, owning them
// by accountID, and returns the stored products. Incomplete entries are
// skipped. Any failure rolls the whole batch back.
func (s *Store) SaveProducts(ctx context.Context, accountID int64, products []models.Product) ([]models.Product, error) {
	saved := []models.Product{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, p := range products {
			if !p.Complete() {
				continue
			}
			p.AccountID = accountID
			out, err := s.upsertProduct(ctx, tx, p)
			if err != nil {
				return err
			}
			saved = append(saved, out)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("save products", err, zap.Int64("account_id", accountID))
	}
	s.log.Debug("products saved", zap.Int64("account_id", accountID),
		zap.Int("saved", len(saved)), zap.Int("skipped", len(products)-len(saved)))
	return saved, nil
}

func (s *Store) upsertProduct(ctx context.Context, tx *sql.Tx, p models.Product) (models.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.UnitEarnings = strings.TrimSpace(p.UnitEarnings)
	if p.AccountID == 0 {
		return p, invalid("product must belong to an account")
	}
	if p.ID < 0 {
		return p, invalid("product id %d is negative", p.ID)
	}

	if p.ID == 0 {
		err := tx.QueryRowContext(ctx, s.q(
			`INSERT INTO products (name, unit_earnings, account_id)
			 VALUES (?, ?, ?) RETURNING id`),
			p.Name, p.UnitEarnings, p.AccountID,
		).Scan(&p.ID)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && p.ID == 0) {
			return p, ErrNoID
		}
		return p, err
	}

	res, err := tx.ExecContext(ctx, s.q(
		`INSERT INTO products (id, name, unit_earnings, account_id)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE
		 SET name = excluded.name,
		     unit_earnings = excluded.unit_earnings
		 WHERE products.account_id = excluded.account_id`),
		p.ID, p.Name, p.UnitEarnings, p.AccountID,
	)
	if err != nil {
		return p, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return p, err
	}
	if n == 0 {
		return p, invalidOwner(p.ID)
	}
	if s.dialect.syncSequence != "" {
		if _, err := tx.ExecContext(ctx, s.dialect.syncSequence); err != nil {
			return p, err
		}
	}
	return p, nil
}
