package port

import (
	"context"
	"errors"
	"time"

	"linkup-ads/internal/core/domain"
)

// ErrSpendRecorded is returned when deleting a campaign with recorded
// spend without the administrative override; deletion would destroy
// ledger history.
var ErrSpendRecorded = errors.New("campaign has recorded spend")

// LedgerResult is the outcome of one atomic ledger application.
// Exhausted means the event would have pushed spend past the total
// budget: spend was clamped to the ceiling and the campaign completed
// instead of the increment being applied.
type LedgerResult struct {
	Exhausted bool
	Spent     int64
	Remaining int64
	Status    domain.CampaignStatus
}

// LedgerRepository is the persistence side of the cost ledger. It is
// the single authority for mutating spent and the event counters.
type LedgerRepository interface {
	// ApplyEvent atomically charges the event's cost against the
	// campaign budget and bumps the matching counter, persisting the
	// event row in the same unit. The read-check-write sequence must be
	// isolated per campaign; implementations use a row lock or an
	// equivalent compare-and-swap. Returns NotFoundError for an unknown
	// campaign and InactiveCampaignError when it is not ACTIVE.
	ApplyEvent(ctx context.Context, ev *domain.TrafficEvent) (LedgerResult, error)

	// AddCreativeStats mirrors one event into the creative's own
	// counters. Best-effort with respect to the campaign ledger.
	AddCreativeStats(ctx context.Context, creativeID string, eventType domain.EventType) error
}

// CampaignRepository persists campaigns and drives their status
// transitions. Lookup methods return nil without error when the row
// does not exist.
type CampaignRepository interface {
	// Create stores a campaign together with its creatives in one
	// transaction.
	Create(ctx context.Context, c *domain.Campaign, creatives []domain.Creative) error
	Get(ctx context.Context, id string) (*domain.Campaign, error)

	// SetStatus moves the campaign from one status to another with a
	// conditional update, so a concurrent transition cannot be
	// overwritten. Returns TransitionError when the row is no longer in
	// the expected status.
	SetStatus(ctx context.Context, id string, from, to domain.CampaignStatus) error

	// AttachPaymentProof stores the proof reference and moves a
	// PENDING_PAYMENT campaign to PENDING_VERIFICATION.
	AttachPaymentProof(ctx context.Context, id, proof string) error

	// Activate flips a PENDING_APPROVAL campaign to ACTIVE, stamps its
	// run dates and cascades all pending creatives to APPROVED/active.
	// The cascade and the status change commit together or not at all.
	Activate(ctx context.Context, id string, start, end time.Time) error

	// Reject flips a PENDING_APPROVAL campaign to REJECTED and cascades
	// its creatives to REJECTED/inactive, atomically with the status
	// change.
	Reject(ctx context.Context, id string) error

	// Delete removes a campaign and its creatives. Campaigns with
	// recorded spend are refused unless force is set, since deletion
	// destroys ledger history.
	Delete(ctx context.Context, id string, force bool) error

	// Stats aggregates committed events over a period.
	Stats(ctx context.Context, req StatsReq) (*StatsResp, error)
}

// CreativeRepository persists creatives and their rotation metadata.
type CreativeRepository interface {
	// ListActive returns the campaign's creatives with isActive=true
	// and approvalStatus=APPROVED, ordered by displayOrder ascending
	// with id as the tie-break.
	ListActive(ctx context.Context, campaignID string) ([]domain.Creative, error)
	Get(ctx context.Context, id string) (*domain.Creative, error)

	// RecordDisplay sets lastShownAt and increments the creative's
	// impression counter after a selection has actually been served.
	RecordDisplay(ctx context.Context, creativeID string, shownAt time.Time) error
}
