package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"gomitas-be/internal/inventory"
	"gomitas-be/internal/logger"
	"gomitas-be/internal/order"
	"gomitas-be/internal/product"
	"gomitas-be/internal/user"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondData(w http.ResponseWriter, code int, message string, data any) {
	respondJSON(w, code, map[string]any{
		"message": message,
		"data":    data,
	})
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// respondDomainError maps domain error kinds onto HTTP statuses. Anything
// unrecognized is treated as internal and not surfaced to the client.
func respondDomainError(r *http.Request, w http.ResponseWriter, err error) {
	var insufficient *order.InsufficientStockError
	if errors.As(err, &insufficient) {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":     insufficient.Error(),
			"available": insufficient.Available,
		})
		return
	}

	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrProductNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, inventory.ErrStockNotFound),
		errors.Is(err, inventory.ErrProductNotFound),
		errors.Is(err, user.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, order.ErrOrderFinalized):
		respondError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, order.ErrForbidden),
		errors.Is(err, product.ErrForbidden),
		errors.Is(err, inventory.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")

	case errors.Is(err, product.ErrNameTaken),
		errors.Is(err, inventory.ErrStockExists),
		errors.Is(err, user.ErrEmailExists):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidQuantity),
		errors.Is(err, product.ErrNameRequired),
		errors.Is(err, product.ErrNothingToUpdate),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, user.ErrInvalidCredentials):
		respondError(w, http.StatusUnprocessableEntity, err.Error())

	default:
		logger.FromCtx(r.Context()).Error("unhandled domain error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
