// File: internal/model/product.go
package model

import "time"

// Price 商品價格
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Unit     string  `json:"unit,omitempty"`
}

type Product struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Category    string    `db:"category" json:"category"`
	Price       Price     `json:"price"`
	ImageURL    string    `db:"image_url" json:"image"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedBy   *int      `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
