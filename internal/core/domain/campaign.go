package domain

import "time"

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	StatusDraft               CampaignStatus = "DRAFT"
	StatusPendingPayment      CampaignStatus = "PENDING_PAYMENT"
	StatusPendingVerification CampaignStatus = "PENDING_VERIFICATION"
	StatusPendingApproval     CampaignStatus = "PENDING_APPROVAL"
	StatusActive              CampaignStatus = "ACTIVE"
	StatusPaused              CampaignStatus = "PAUSED"
	StatusCompleted           CampaignStatus = "COMPLETED"
	StatusRejected            CampaignStatus = "REJECTED"
)

// transitions lists every legal edge of the campaign state machine. The
// only backward edge is PAUSED -> ACTIVE (manual resume).
var transitions = map[CampaignStatus][]CampaignStatus{
	StatusDraft:               {StatusPendingPayment, StatusPendingVerification},
	StatusPendingPayment:      {StatusPendingVerification},
	StatusPendingVerification: {StatusPendingApproval},
	StatusPendingApproval:     {StatusActive, StatusRejected},
	StatusActive:              {StatusPaused, StatusCompleted},
	StatusPaused:              {StatusActive},
}

// CanTransition reports whether moving from one status to another is a
// legal edge.
func CanTransition(from, to CampaignStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Campaign represents a budgeted advertising run owned by an
// organization. Budgets and spend are stored in integer units
// (e.g. cents). Spent is monotonic non-decreasing and never exceeds
// TotalBudget.
type Campaign struct {
	ID             string
	OwnerID        string
	OrganizationID string
	Name           string
	Objective      string
	DailyBudget    int64
	TotalBudget    int64
	DurationDays   int
	Spent          int64
	Impressions    int64
	Clicks         int64
	Conversions    int64
	Status         CampaignStatus
	PaymentProof   string
	StartDate      *time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Remaining returns the budget still available for spend.
func (c *Campaign) Remaining() int64 {
	return c.TotalBudget - c.Spent
}

// DurationDays derives the campaign run length from its budgets:
// ceil(totalBudget / dailyBudget). Both inputs must be positive.
func DurationDays(totalBudget, dailyBudget int64) int {
	return int((totalBudget + dailyBudget - 1) / dailyBudget)
}
