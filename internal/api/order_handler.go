package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gomitas-be/internal/order"
)

type createOrderRequest struct {
	Status string              `json:"status"`
	Lines  []order.LineRequest `json:"lines"`
}

type updateOrderRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	orders, total, err := h.orders.List(r.Context(), page, perPage)
	if err != nil {
		respondDomainError(r, w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "ok",
		"data":    orders,
		"total":   total,
	})
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.Create(r.Context(), order.Status(req.Status), req.Lines)
	if err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusCreated, "order created", o)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusOK, "ok", o)
}

func (h *Handler) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), id, order.Status(req.Status))
	if err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusOK, "order updated", o)
}

func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}

	o, err := h.orders.Cancel(r.Context(), id)
	if err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusOK, "order cancelled", o)
}

func (h *Handler) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "order not found")
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		respondDomainError(r, w, err)
		return
	}
	respondData(w, http.StatusOK, "order deleted", nil)
}
