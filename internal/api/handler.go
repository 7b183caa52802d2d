package api

import (
	"net/http"

	"gomitas-be/internal/inventory"
	"gomitas-be/internal/metrics"
	"gomitas-be/internal/order"
	"gomitas-be/internal/policy"
	"gomitas-be/internal/product"
	"gomitas-be/internal/user"
	"gomitas-be/internal/utils"
)

type Handler struct {
	users    user.Service
	products product.Service
	stocks   inventory.Service
	orders   order.Service
	policy   policy.Policy
	metrics  *metrics.OrderMetrics
}

func NewHandler(
	users user.Service,
	products product.Service,
	stocks inventory.Service,
	orders order.Service,
	pol policy.Policy,
	m *metrics.OrderMetrics,
) *Handler {
	return &Handler{
		users:    users,
		products: products,
		stocks:   stocks,
		orders:   orders,
		policy:   pol,
		metrics:  m,
	}
}

func (h *Handler) Router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", h.handleLogin)
	mux.HandleFunc("POST /api/register", h.handleRegister)
	mux.HandleFunc("POST /api/logout", h.handleLogout)
	mux.HandleFunc("GET /api/user", h.handleCurrentUser)

	mux.HandleFunc("GET /api/products", h.handleListProducts)
	mux.HandleFunc("POST /api/products", h.handleCreateProduct)
	mux.HandleFunc("GET /api/products/{id}", h.handleGetProduct)
	mux.HandleFunc("PUT /api/products/{id}", h.handleUpdateProduct)
	mux.HandleFunc("DELETE /api/products/{id}", h.handleDeleteProduct)

	mux.HandleFunc("GET /api/inventory", h.handleListStocks)
	mux.HandleFunc("POST /api/inventory", h.handleCreateStock)
	mux.HandleFunc("GET /api/inventory/{id}", h.handleGetStock)
	mux.HandleFunc("GET /api/inventory/product/{id}", h.handleGetStockByProduct)
	mux.HandleFunc("PUT /api/inventory/{id}", h.handleUpdateStock)
	mux.HandleFunc("DELETE /api/inventory/{id}", h.handleDeleteStock)

	mux.HandleFunc("GET /api/orders", h.handleListOrders)
	mux.HandleFunc("POST /api/orders", h.handleCreateOrder)
	mux.HandleFunc("GET /api/orders/{id}", h.handleGetOrder)
	mux.HandleFunc("PUT /api/orders/{id}", h.handleUpdateOrderStatus)
	mux.HandleFunc("PUT /api/orders/{id}/cancel", h.handleCancelOrder)
	mux.HandleFunc("DELETE /api/orders/{id}", h.handleDeleteOrder)

	mux.HandleFunc("GET /api/metrics", h.handleMetrics)

	return mux
}

// requireAuth distinguishes 401 (no identity) from the 403 the services
// return on policy denial.
func requireAuth(w http.ResponseWriter, r *http.Request) bool {
	if id, ok := utils.GetUserIDFromContext(r.Context()); !ok || id == 0 {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	return true
}

func idParam(r *http.Request) (uint, error) {
	return utils.ToUint(r.PathValue("id"))
}
