package store

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"veneya/models"
)

// ReportFilter narrows the zone reports. The zero value covers every account
// and every zone.
type ReportFilter struct {
	AccountID int64 // 0 for all accounts
	Limit     int   // 0 for no limit
	// Lowest reverses the ranking: lowest earning zones (or least sold
	// products) first.
	Lowest bool
}

// ZoneEarningsSummary returns, per zone, the sum of quantity × unit earnings
// over all recorded sales, highest earning zone first. With f.Lowest the
// order is exactly reversed, so Limit picks the lowest earning zones.
func (s *Store) ZoneEarningsSummary(ctx context.Context, f ReportFilter) ([]models.ZoneSummary, error) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(`SELECT COALESCE(s.zone, '') AS zone_label,
		COALESCE(SUM(s.quantity * ` + s.dialect.unitEarnings + `), 0) AS earnings
		FROM sales s
		JOIN products p ON s.product_id = p.id`)
	if f.AccountID != 0 {
		b.WriteString(` WHERE s.account_id = ?`)
		args = append(args, f.AccountID)
	}
	b.WriteString(` GROUP BY COALESCE(s.zone, '')`)
	if f.Lowest {
		b.WriteString(` ORDER BY earnings ASC, zone_label DESC`)
	} else {
		b.WriteString(` ORDER BY earnings DESC, zone_label ASC`)
	}
	if f.Limit > 0 {
		b.WriteString(` LIMIT ?`)
		args = append(args, f.Limit)
	}

	summaries := []models.ZoneSummary{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, s.q(b.String()), args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var z models.ZoneSummary
			if err := rows.Scan(&z.Zone, &z.Earnings); err != nil {
				return err
			}
			summaries = append(summaries, z)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, s.fail("zone earnings summary", err, zap.Int64("account_id", f.AccountID))
	}
	return summaries, nil
}

// ZoneDetail breaks one zone's earnings down by product. The grand total is
// the sum of the per-product earnings. An unknown zone yields an empty detail.
// f.Limit and f.Lowest are ignored.
func (s *Store) ZoneDetail(ctx context.Context, zone string, f ReportFilter) (*models.ZoneDetail, error) {
	query := `SELECT p.id, p.name,
		COALESCE(SUM(s.quantity), 0) AS quantity,
		COALESCE(SUM(s.quantity * ` + s.dialect.unitEarnings + `), 0) AS earnings
		FROM sales s
		JOIN products p ON s.product_id = p.id
		WHERE s.zone = ?`
	args := []any{zone}
	if f.AccountID != 0 {
		query += ` AND s.account_id = ?`
		args = append(args, f.AccountID)
	}
	query += ` GROUP BY p.id, p.name ORDER BY p.id ASC`

	detail := &models.ZoneDetail{Zone: zone, Products: []models.ZoneProductSale{}}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, s.q(query), args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var ps models.ZoneProductSale
			if err := rows.Scan(&ps.ProductID, &ps.ProductName, &ps.Quantity, &ps.Earnings); err != nil {
				return err
			}
			detail.Products = append(detail.Products, ps)
			detail.GrandTotal += ps.Earnings
		}
		return rows.Err()
	})
	if err != nil {
		return nil, s.fail("zone detail", err, zap.String("zone", zone))
	}
	return detail, nil
}
