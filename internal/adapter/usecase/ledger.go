package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"linkup-ads/internal/core/domain"
	"linkup-ads/internal/core/port"
)

// creativeStatsAttempts caps the best-effort mirror of event counters
// onto the creative row: one try plus one retry.
const creativeStatsAttempts = 2

// CostLedger converts traffic events into budget consumption. It is the
// single path that mutates spent and the campaign event counters.
type CostLedger struct {
	repo   port.LedgerRepository
	logger *slog.Logger
}

// NewCostLedger creates the ledger on top of its repository.
func NewCostLedger(repo port.LedgerRepository, logger *slog.Logger) *CostLedger {
	return &CostLedger{repo: repo, logger: logger}
}

// Record charges one traffic event. Unknown campaigns fail with
// NotFoundError and non-ACTIVE campaigns with InactiveCampaignError;
// the event is dropped in both cases. Budget exhaustion is a defined
// outcome, not an error: spend is clamped to the ceiling, the campaign
// completes, and the response carries Accepted=false with the
// COMPLETED status.
func (l *CostLedger) Record(ctx context.Context, req port.TrackReq) (*port.TrackResp, error) {
	if req.CampaignID == "" {
		return nil, &domain.ValidationError{Field: "campaignId", Reason: "is required"}
	}
	if !req.EventType.Valid() {
		return nil, &domain.ValidationError{Field: "eventType", Reason: "must be impression or click"}
	}

	ev := &domain.TrafficEvent{
		Token:      uuid.NewString(),
		CampaignID: req.CampaignID,
		CreativeID: req.CreativeID,
		Type:       req.EventType,
	}
	res, err := l.repo.ApplyEvent(ctx, ev)
	if err != nil {
		return nil, wrapInternal("record event", err)
	}
	if res.Exhausted {
		l.logger.Info("campaign budget exhausted",
			slog.String("campaign_id", req.CampaignID),
			slog.Int64("spent", res.Spent))
		return &port.TrackResp{
			Accepted:        false,
			Spent:           res.Spent,
			RemainingBudget: 0,
			CampaignStatus:  res.Status,
		}, nil
	}

	if req.CreativeID != "" {
		l.mirrorCreativeStats(ctx, req.CreativeID, req.EventType)
	}
	return &port.TrackResp{
		Accepted:        true,
		Spent:           res.Spent,
		RemainingBudget: res.Remaining,
		CampaignStatus:  res.Status,
	}, nil
}

// mirrorCreativeStats updates the creative's own counters. The campaign
// ledger is already committed; failures here are retried once and then
// swallowed since they do not affect the budget invariant.
func (l *CostLedger) mirrorCreativeStats(ctx context.Context, creativeID string, eventType domain.EventType) {
	var err error
	for attempt := 1; attempt <= creativeStatsAttempts; attempt++ {
		if err = l.repo.AddCreativeStats(ctx, creativeID, eventType); err == nil {
			return
		}
	}
	l.logger.Warn("creative stats update failed",
		slog.String("creative_id", creativeID),
		slog.Any("error", err))
}
