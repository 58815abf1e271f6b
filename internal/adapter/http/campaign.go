package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"linkup-ads/internal/core/domain"
	"linkup-ads/internal/core/port"
)

// campaignResponse is the wire shape of a campaign.
type campaignResponse struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"ownerId"`
	OrganizationID string     `json:"organizationId"`
	Name           string     `json:"name"`
	Objective      string     `json:"objective"`
	DailyBudget    int64      `json:"dailyBudget"`
	TotalBudget    int64      `json:"totalBudget"`
	DurationDays   int        `json:"durationDays"`
	Spent          int64      `json:"spent"`
	Remaining      int64      `json:"remainingBudget"`
	Impressions    int64      `json:"impressions"`
	Clicks         int64      `json:"clicks"`
	Conversions    int64      `json:"conversions"`
	Status         string     `json:"status"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func toCampaignResponse(c *domain.Campaign) campaignResponse {
	return campaignResponse{
		ID:             c.ID,
		OwnerID:        c.OwnerID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		Objective:      c.Objective,
		DailyBudget:    c.DailyBudget,
		TotalBudget:    c.TotalBudget,
		DurationDays:   c.DurationDays,
		Spent:          c.Spent,
		Remaining:      c.Remaining(),
		Impressions:    c.Impressions,
		Clicks:         c.Clicks,
		Conversions:    c.Conversions,
		Status:         string(c.Status),
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		CreatedAt:      c.CreatedAt,
	}
}

// handleCreateCampaign accepts a campaign submission. Validation
// failures return HTTP 400 naming the offending field.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req port.CreateCampaignReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c, err := h.lifecycle.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toCampaignResponse(c))
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.lifecycle.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c))
}

// handleDeleteCampaign removes a campaign. Campaigns with recorded
// spend are refused unless force=true is passed as the administrative
// override.
func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"
	if err := h.lifecycle.Delete(r.Context(), chi.URLParam(r, "id"), force); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePaymentProof attaches a payment proof to a PENDING_PAYMENT
// campaign.
func (h *Handler) handlePaymentProof(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Proof string `json:"proof"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	c, err := h.lifecycle.AttachPaymentProof(r.Context(), chi.URLParam(r, "id"), body.Proof)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c))
}

// handlePaymentConfirm is called when the payment provider reports the
// payment as verified. Only the effect is modeled here; signature
// checking belongs to the webhook layer in front of this service.
func (h *Handler) handlePaymentConfirm(w http.ResponseWriter, r *http.Request) {
	c, err := h.lifecycle.ConfirmPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	c, err := h.lifecycle.Approve(r.Context(), chi.URLParam(r, "id"), r.Header.Get(roleHeader))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	c, err := h.lifecycle.Reject(r.Context(), chi.URLParam(r, "id"), r.Header.Get(roleHeader))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c))
}

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	c, err := h.lifecycle.Pause(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c))
}

func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	c, err := h.lifecycle.Resume(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c))
}
