package store

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"veneya/models"
)

// SaveSale records one sale and returns its id. The timestamp is assigned
// by the store. A product that does not exist or belongs to another account
// fails with ErrConflict.
func (s *Store) SaveSale(ctx context.Context, in models.NewSale) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.insertSale(ctx, tx, in)
		return err
	})
	if err != nil {
		return 0, s.fail("save sale", err,
			zap.Int64("product_id", in.ProductID), zap.Int64("account_id", in.AccountID))
	}
	return id, nil
}

// SaveSales records every line with a positive quantity as one sale in zone,
// all in one transaction, and returns the new sale ids in line order.
func (s *Store) SaveSales(ctx context.Context, accountID int64, zone string, lines []models.SaleLine) ([]int64, error) {
	const op = "save sales"

	var pending []models.SaleLine
	for _, l := range lines {
		if l.Quantity > 0 {
			pending = append(pending, l)
		}
	}
	if len(pending) == 0 {
		return nil, s.fail(op, invalid("no products to add to the sale"))
	}

	ids := make([]int64, 0, len(pending))
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, l := range pending {
			id, err := s.insertSale(ctx, tx, models.NewSale{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Zone:      zone,
				AccountID: accountID,
			})
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(op, err, zap.Int64("account_id", accountID), zap.String("zone", zone))
	}
	s.log.Info("sale recorded", zap.Int64("account_id", accountID),
		zap.String("zone", zone), zap.Int("lines", len(ids)))
	return ids, nil
}

// insertSale copies the product and account ids from the product row, so a
// sale can only reference a product of its own account.
func (s *Store) insertSale(ctx context.Context, tx *sql.Tx, in models.NewSale) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, s.q(
		`INSERT INTO sales (product_id, quantity, zone, account_id)
		 SELECT id, ?, ?, account_id FROM products
		 WHERE id = ? AND account_id = ?
		 RETURNING id`),
		in.Quantity, in.Zone, in.ProductID, in.AccountID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, notOwned(in.ProductID)
	}
	if err == nil && id == 0 {
		return 0, ErrNoID
	}
	return id, err
}

// ListSales returns the account's sales, newest first.
func (s *Store) ListSales(ctx context.Context, accountID int64) ([]models.Sale, error) {
	sales := []models.Sale{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, s.q(
			`SELECT id, product_id, COALESCE(quantity, 0), COALESCE(zone, ''), created_at, account_id
			 FROM sales WHERE account_id = ? ORDER BY id DESC`), accountID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				sale       models.Sale
				product    sql.NullInt64
				account    sql.NullInt64
				recordedAt dbTime
			)
			if err := rows.Scan(&sale.ID, &product, &sale.Quantity, &sale.Zone, &recordedAt, &account); err != nil {
				return err
			}
			if product.Valid {
				sale.ProductID = &product.Int64
			}
			if account.Valid {
				sale.AccountID = &account.Int64
			}
			sale.CreatedAt = recordedAt.Time
			sales = append(sales, sale)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, s.fail("list sales", err, zap.Int64("account_id", accountID))
	}
	return sales, nil
}
