package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Flavor    string          `json:"flavor"`
	Size      string          `json:"size"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Stock is nil when the product has no inventory record yet.
	Stock *StockInfo `json:"stock,omitempty"`
}

// StockInfo is the inventory summary attached to product reads.
type StockInfo struct {
	ID       uint `json:"id"`
	Quantity int  `json:"quantity"`
}

type NewProduct struct {
	Name   string
	Flavor string
	Size   string
	Price  decimal.Decimal

	// InitialQuantity, when set, creates the stock record together
	// with the product.
	InitialQuantity *int
}

type UpdateProduct struct {
	Name   *string
	Flavor *string
	Size   *string
	Price  *decimal.Decimal
}

func (u UpdateProduct) Empty() bool {
	return u.Name == nil && u.Flavor == nil && u.Size == nil && u.Price == nil
}
