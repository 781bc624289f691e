package models

// Product is a sellable item owned by one account. UnitEarnings is kept as
// the text the vendor typed and parsed as a number only when aggregating.
type Product struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	UnitEarnings string `json:"unit_earnings"`
	AccountID    int64  `json:"account_id"`
}

// Complete reports whether both the name and the unit earnings are filled in.
// Incomplete products are never persisted.
func (p Product) Complete() bool {
	return trimmed(p.Name) != "" && trimmed(p.UnitEarnings) != ""
}
