package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNameTaken       = errors.New("product name already taken")
	ErrInvalidPrice    = errors.New("price must be greater than zero")
	ErrInvalidQuantity = errors.New("initial quantity must not be negative")
	ErrNameRequired    = errors.New("product name is required")
	ErrNothingToUpdate = errors.New("no fields to update")
	ErrForbidden       = errors.New("forbidden")
)
