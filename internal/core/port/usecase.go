package port

import (
	"context"
	"time"

	"linkup-ads/internal/core/domain"
)

// RoleAdmin is the role claim required for approval decisions. The
// claim itself is produced by the caller's auth layer; this subsystem
// only compares it.
const RoleAdmin = "ADMIN"

// CreativeInput describes one asset submitted with a campaign.
type CreativeInput struct {
	Type           string `json:"type" validate:"required,oneof=IMAGE VIDEO"`
	ImageURL       string `json:"imageUrl" validate:"required_without=VideoURL"`
	VideoURL       string `json:"videoUrl"`
	VideoDuration  int    `json:"videoDuration" validate:"min=0"`
	CTA            string `json:"cta" validate:"required"`
	DestinationURL string `json:"destinationUrl" validate:"required,url"`
	DisplayOrder   int    `json:"displayOrder" validate:"min=0"`
	RotationHours  int    `json:"rotationHours" validate:"min=1"`
}

// CreateCampaignReq is the payload for campaign submission. Validation
// failures are reported as ValidationError naming the field.
type CreateCampaignReq struct {
	OwnerID        string          `json:"ownerId" validate:"required"`
	OrganizationID string          `json:"organizationId" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	Objective      string          `json:"objective" validate:"required"`
	DailyBudget    int64           `json:"dailyBudget" validate:"gt=0"`
	TotalBudget    int64           `json:"totalBudget" validate:"gt=0,gtefield=DailyBudget"`
	PaymentProof   string          `json:"paymentProof"`
	Creatives      []CreativeInput `json:"creatives" validate:"min=1,dive"`
}

// LifecycleUseCase drives campaigns through creation, payment,
// approval, activation and pause states.
type LifecycleUseCase interface {
	// Create validates the request and stores a new campaign. Status
	// lands on PENDING_PAYMENT, or PENDING_VERIFICATION when a payment
	// proof is attached. durationDays is derived, never supplied.
	Create(ctx context.Context, req CreateCampaignReq) (*domain.Campaign, error)

	// AttachPaymentProof records a submitted payment proof:
	// PENDING_PAYMENT -> PENDING_VERIFICATION.
	AttachPaymentProof(ctx context.Context, id, proof string) (*domain.Campaign, error)

	// ConfirmPayment is the effect of a verified payment:
	// PENDING_VERIFICATION -> PENDING_APPROVAL.
	ConfirmPayment(ctx context.Context, id string) (*domain.Campaign, error)

	// Approve activates a PENDING_APPROVAL campaign and cascades its
	// creatives to APPROVED/active. Requires the ADMIN role claim.
	Approve(ctx context.Context, id, role string) (*domain.Campaign, error)

	// Reject moves a PENDING_APPROVAL campaign to REJECTED and cascades
	// its creatives to REJECTED/inactive. Requires the ADMIN role claim.
	Reject(ctx context.Context, id, role string) (*domain.Campaign, error)

	Pause(ctx context.Context, id string) (*domain.Campaign, error)
	Resume(ctx context.Context, id string) (*domain.Campaign, error)

	Get(ctx context.Context, id string) (*domain.Campaign, error)
	Delete(ctx context.Context, id string, force bool) error
}

// CreativeSelection is the creative chosen for display plus the
// rotation metadata the caller renders alongside it.
type CreativeSelection struct {
	Creative       domain.Creative
	TotalCreatives int
	RotationHours  int
	NextRotation   *time.Time
}

// TrackReq is a traffic event submission.
type TrackReq struct {
	CampaignID string           `json:"campaignId"`
	CreativeID string           `json:"creativeId,omitempty"`
	EventType  domain.EventType `json:"eventType"`
}

// TrackResp reports the ledger outcome of one traffic event. Budget
// exhaustion is not an error: Accepted is false and CampaignStatus is
// COMPLETED so the caller can reflect that the campaign ended.
type TrackResp struct {
	Accepted        bool                  `json:"accepted"`
	Spent           int64                 `json:"spent"`
	RemainingBudget int64                 `json:"remainingBudget"`
	CampaignStatus  domain.CampaignStatus `json:"campaignStatus"`
}

// StatsReq selects the reporting period and optional campaign filter.
type StatsReq struct {
	From       time.Time
	To         time.Time
	CampaignID *string
}

// StatsResp aggregates committed events and their cost over a period.
type StatsResp struct {
	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
	Spend       int64 `json:"spend"`
}

// DeliveryUseCase is the boundary surface the page renderer, tracking
// pixel handler and reporting console call into.
type DeliveryUseCase interface {
	// ActiveCreative runs the rotation selector for the campaign and
	// records the display. Fails with NotFoundError when no eligible
	// creative exists or the campaign is unknown, and with
	// InactiveCampaignError when the campaign is not ACTIVE.
	ActiveCreative(ctx context.Context, campaignID string) (*CreativeSelection, error)

	// TrackEvent feeds one traffic event into the cost ledger.
	TrackEvent(ctx context.Context, req TrackReq) (*TrackResp, error)

	// Stats returns aggregated delivery statistics.
	Stats(ctx context.Context, req StatsReq) (*StatsResp, error)
}
