package models

// PopularProduct ranks a product by the units sold across zones.
type PopularProduct struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	Earnings    float64 `json:"earnings"`
	Zones       int64   `json:"zones"`
}
