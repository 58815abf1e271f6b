package httpadapter

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"linkup-ads/internal/core/domain"
)

// creativeResponse is the wire shape of a served creative plus its
// rotation metadata.
type creativeResponse struct {
	ID             string     `json:"id"`
	CampaignID     string     `json:"campaignId"`
	Type           string     `json:"type"`
	MediaURL       string     `json:"mediaUrl"`
	VideoDuration  int        `json:"videoDuration,omitempty"`
	CTA            string     `json:"cta"`
	DestinationURL string     `json:"destinationUrl"`
	DisplayOrder   int        `json:"displayOrder"`
	TotalCreatives int        `json:"totalCreatives"`
	RotationHours  int        `json:"rotationHours"`
	NextRotation   *time.Time `json:"nextRotation,omitempty"`
}

// handleActiveCreative runs the rotation selector for a campaign and
// returns the creative to render. A campaign without eligible
// creatives returns 404; a non-ACTIVE campaign returns 409.
func (h *Handler) handleActiveCreative(w http.ResponseWriter, r *http.Request) {
	sel, err := h.delivery.ActiveCreative(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	cr := sel.Creative
	resp := creativeResponse{
		ID:             cr.ID,
		CampaignID:     cr.CampaignID,
		Type:           string(cr.Type),
		MediaURL:       cr.MediaURL,
		CTA:            cr.CTA,
		DestinationURL: cr.DestinationURL,
		DisplayOrder:   cr.DisplayOrder,
		TotalCreatives: sel.TotalCreatives,
		RotationHours:  sel.RotationHours,
		NextRotation:   sel.NextRotation,
	}
	if cr.Type == domain.CreativeVideo {
		resp.VideoDuration = cr.VideoDuration
	}
	h.writeJSON(w, http.StatusOK, resp)
}
