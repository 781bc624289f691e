package models

import "time"

// Sale is one recorded, immutable transaction of a quantity of a product in a zone.
type Sale struct {
	ID        int64     `json:"id"`
	ProductID *int64    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Zone      string    `json:"zone"`
	CreatedAt time.Time `json:"created_at"`
	AccountID *int64    `json:"account_id"`
}

// NewSale is the input of a single sale insert.
type NewSale struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Zone      string `json:"zone"`
	AccountID int64  `json:"account_id"`
}

// SaleLine is one product counter of a multi-product sale.
type SaleLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
