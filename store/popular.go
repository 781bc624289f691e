package store

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"veneya/models"
)

// PopularProducts ranks products by units sold, most sold first, or least
// sold first with f.Lowest. Zones counts the distinct zones a product was
// sold in.
func (s *Store) PopularProducts(ctx context.Context, f ReportFilter) ([]models.PopularProduct, error) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(`SELECT p.id, p.name,
		COALESCE(SUM(s.quantity), 0) AS quantity,
		COALESCE(SUM(s.quantity * ` + s.dialect.unitEarnings + `), 0) AS earnings,
		COUNT(DISTINCT s.zone) AS zones
		FROM sales s
		JOIN products p ON s.product_id = p.id`)
	if f.AccountID != 0 {
		b.WriteString(` WHERE s.account_id = ?`)
		args = append(args, f.AccountID)
	}
	b.WriteString(` GROUP BY p.id, p.name`)
	if f.Lowest {
		b.WriteString(` ORDER BY quantity ASC, p.id DESC`)
	} else {
		b.WriteString(` ORDER BY quantity DESC, p.id ASC`)
	}
	if f.Limit > 0 {
		b.WriteString(` LIMIT ?`)
		args = append(args, f.Limit)
	}

	items := []models.PopularProduct{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, s.q(b.String()), args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p models.PopularProduct
			if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Quantity, &p.Earnings, &p.Zones); err != nil {
				return err
			}
			items = append(items, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, s.fail("popular products", err, zap.Int64("account_id", f.AccountID))
	}
	return items, nil
}
