package models

// ZoneSummary is the total earnings of one zone.
type ZoneSummary struct {
	Zone     string  `json:"zone"`
	Earnings float64 `json:"earnings"`
}

// ZoneProductSale is one product's contribution to a zone.
type ZoneProductSale struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	Earnings    float64 `json:"earnings"`
}

// ZoneDetail breaks a zone's earnings down by product.
type ZoneDetail struct {
	Zone       string            `json:"zone"`
	Products   []ZoneProductSale `json:"products"`
	GrandTotal float64           `json:"grand_total"`
}
