package usecase

import (
	"context"
	"log/slog"
	"time"

	"linkup-ads/internal/core/domain"
	"linkup-ads/internal/core/port"
)

// Delivery is the boundary surface for the page renderer, the tracking
// pixel handler and the reporting console. It implements
// port.DeliveryUseCase.
type Delivery struct {
	campaigns port.CampaignRepository
	creatives port.CreativeRepository
	ledger    *CostLedger
	logger    *slog.Logger
	now       func() time.Time
}

// NewDelivery creates the delivery service.
func NewDelivery(campaigns port.CampaignRepository, creatives port.CreativeRepository, ledger *CostLedger, logger *slog.Logger) *Delivery {
	return &Delivery{
		campaigns: campaigns,
		creatives: creatives,
		ledger:    ledger,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ActiveCreative selects the creative to display for the campaign right
// now and records the display. Only ACTIVE campaigns serve creatives.
func (d *Delivery) ActiveCreative(ctx context.Context, campaignID string) (*port.CreativeSelection, error) {
	c, err := d.campaigns.Get(ctx, campaignID)
	if err != nil {
		return nil, wrapInternal("get campaign", err)
	}
	if c == nil {
		return nil, &domain.NotFoundError{Entity: "campaign", ID: campaignID}
	}
	if c.Status != domain.StatusActive {
		return nil, &domain.InactiveCampaignError{ID: campaignID, Status: c.Status}
	}

	eligible, err := d.creatives.ListActive(ctx, campaignID)
	if err != nil {
		return nil, wrapInternal("list creatives", err)
	}
	now := d.now()
	chosen := selectCreative(eligible, now)
	if chosen == nil {
		return nil, &domain.NotFoundError{Entity: "active creative", ID: campaignID}
	}

	if err = d.creatives.RecordDisplay(ctx, chosen.ID, now); err != nil {
		return nil, wrapInternal("record display", err)
	}
	chosen.LastShownAt = &now
	chosen.ImpressionsCount++

	return &port.CreativeSelection{
		Creative:       *chosen,
		TotalCreatives: len(eligible),
		RotationHours:  chosen.RotationHours,
		NextRotation:   chosen.NextRotation(),
	}, nil
}

// TrackEvent feeds one traffic event into the cost ledger.
func (d *Delivery) TrackEvent(ctx context.Context, req port.TrackReq) (*port.TrackResp, error) {
	return d.ledger.Record(ctx, req)
}

// Stats returns aggregated delivery statistics for a period.
func (d *Delivery) Stats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	resp, err := d.campaigns.Stats(ctx, req)
	if err != nil {
		return nil, wrapInternal("stats", err)
	}
	return resp, nil
}
