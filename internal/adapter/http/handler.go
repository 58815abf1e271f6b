package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"linkup-ads/internal/core/domain"
	"linkup-ads/internal/core/port"
)

// roleHeader carries the caller's role claim. Producing the claim is
// the auth layer's job; this surface only compares it to ADMIN for the
// approval operations.
const roleHeader = "X-Role"

// Handler is the inbound HTTP adapter. It holds the lifecycle and
// delivery usecases and a logger, and registers every route on a
// chi.Router.
type Handler struct {
	lifecycle port.LifecycleUseCase
	delivery  port.DeliveryUseCase
	logger    *slog.Logger
	router    chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(lifecycle port.LifecycleUseCase, delivery port.DeliveryUseCase, logger *slog.Logger) *Handler {
	h := &Handler{lifecycle: lifecycle, delivery: delivery, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetCampaign)
				r.Delete("/", h.handleDeleteCampaign)
				r.Post("/payment-proof", h.handlePaymentProof)
				r.Post("/payment-confirm", h.handlePaymentConfirm)
				r.Post("/approve", h.handleApprove)
				r.Post("/reject", h.handleReject)
				r.Post("/pause", h.handlePause)
				r.Post("/resume", h.handleResume)
				r.Get("/creative", h.handleActiveCreative)
			})
		})
		r.Post("/track", h.handleTrackEvent)
		r.Get("/stats/overview", h.handleStatsOverview)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps domain errors onto HTTP statuses. Anything unknown is
// treated as an internal failure and logged without leaking details.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		inactiveErr   *domain.InactiveCampaignError
		transitionErr *domain.TransitionError
		authErr       *domain.AuthorizationError
	)
	switch {
	case errors.As(err, &validationErr):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error(), Field: validationErr.Field})
	case errors.As(err, &notFoundErr):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundErr.Error()})
	case errors.As(err, &inactiveErr):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: inactiveErr.Error()})
	case errors.As(err, &transitionErr):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: transitionErr.Error()})
	case errors.As(err, &authErr):
		h.writeJSON(w, http.StatusForbidden, errorResponse{Error: authErr.Error()})
	case errors.Is(err, port.ErrSpendRecorded):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
