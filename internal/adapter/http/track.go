package httpadapter

import (
	"encoding/json"
	"net/http"

	"linkup-ads/internal/core/port"
)

// handleTrackEvent submits a traffic event to the cost ledger. Budget
// exhaustion is a normal response (accepted=false, COMPLETED status),
// not an error, so the caller can reflect that the campaign ended.
func (h *Handler) handleTrackEvent(w http.ResponseWriter, r *http.Request) {
	var req port.TrackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	resp, err := h.delivery.TrackEvent(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}
