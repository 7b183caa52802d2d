package inventory

import "errors"

var (
	ErrStockNotFound   = errors.New("stock record not found")
	ErrStockExists     = errors.New("stock record already exists for product")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
	ErrForbidden       = errors.New("forbidden")
)
