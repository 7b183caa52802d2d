package api

import (
	"encoding/json"
	"net/http"

	"gomitas-be/internal/product"

	"github.com/shopspring/decimal"
)

type createProductRequest struct {
	Name            string          `json:"name"`
	Flavor          string          `json:"flavor"`
	Size            string          `json:"size"`
	Price           decimal.Decimal `json:"price"`
	InitialQuantity *int            `json:"initial_quantity"`
}

type updateProductRequest struct {
	Name   *string          `json:"name"`
	Flavor *string          `json:"flavor"`
	Size   *string          `json:"size"`
	Price  *decimal.Decimal `json:"price"`
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	products, err := h.products.GetAll(r.Context())
	if err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusOK, "ok", products)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusOK, "ok", p)
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.products.Create(r.Context(), product.NewProduct{
		Name:            req.Name,
		Flavor:          req.Flavor,
		Size:            req.Size,
		Price:           req.Price,
		InitialQuantity: req.InitialQuantity,
	})
	if err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusCreated, "product created", p)
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.products.Update(r.Context(), id, product.UpdateProduct{
		Name:   req.Name,
		Flavor: req.Flavor,
		Size:   req.Size,
		Price:  req.Price,
	})
	if err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusOK, "product updated", p)
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusOK, "product deleted", nil)
}
