package order

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product has no stock record")
	ErrOrderFinalized    = errors.New("order is finalized and cannot be modified")
	ErrForbidden         = errors.New("forbidden")
	ErrEmptyOrder        = errors.New("order must have at least one line")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InsufficientStockError reports how much stock actually remains so the
// caller can retry with a smaller quantity.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for product %q (id=%d): %d available",
		e.ProductName, e.ProductID, e.Available,
	)
}
