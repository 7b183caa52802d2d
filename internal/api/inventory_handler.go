package api

import (
	"encoding/json"
	"net/http"
)

type createStockRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type updateStockRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) handleListStocks(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	stocks, err := h.stocks.GetAll(r.Context())
	if err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusOK, "ok", stocks)
}

func (h *Handler) handleGetStock(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "stock record not found")
		return
	}

	s, err := h.stocks.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusOK, "ok", s)
}

func (h *Handler) handleGetStockByProduct(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	productID, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "stock record not found")
		return
	}

	s, err := h.stocks.GetByProduct(r.Context(), productID)
	if err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusOK, "ok", s)
}

func (h *Handler) handleCreateStock(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	var req createStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == 0 {
		respondError(w, http.StatusUnprocessableEntity, "product_id is required")
		return
	}

	s, err := h.stocks.Create(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusCreated, "stock record created", s)
}

func (h *Handler) handleUpdateStock(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "stock record not found")
		return
	}

	var req updateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.stocks.SetQuantity(r.Context(), id, req.Quantity)
	if err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusOK, "stock updated", s)
}

func (h *Handler) handleDeleteStock(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "stock record not found")
		return
	}

	if err := h.stocks.Delete(r.Context(), id); err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusOK, "stock record deleted", nil)
}
