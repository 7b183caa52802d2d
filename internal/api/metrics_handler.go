package api

import (
	"net/http"

	"gomitas-be/internal/policy"
)

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !requireAuth(w, r) {
		return
	}

	actor := policy.ActorFromContext(r.Context())
	if !h.policy.CanViewMetrics(actor) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	respondData(w, http.StatusOK, "ok", h.metrics.Snapshot())
}
