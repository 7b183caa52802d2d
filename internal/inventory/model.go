package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock is the single active inventory record of a product.
type Stock struct {
	ID          uint      `json:"id"`
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LockedStock is the view returned while holding the exclusive row lock:
// the current quantity plus the product fields the order engine snapshots.
type LockedStock struct {
	ProductID   uint
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}
