package domain

import "time"

// CreativeType distinguishes image and video assets.
type CreativeType string

const (
	CreativeImage CreativeType = "IMAGE"
	CreativeVideo CreativeType = "VIDEO"
)

// ApprovalStatus is the moderation state of a creative.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// MaxVideoDuration is the longest video creative accepted, in seconds.
const MaxVideoDuration = 20

// Creative represents an individual displayable asset belonging to a
// campaign. DisplayOrder and RotationHours drive the time-windowed
// rotation; LastShownAt is nil until the creative is first displayed.
type Creative struct {
	ID               string
	CampaignID       string
	Type             CreativeType
	MediaURL         string
	VideoDuration    int // in seconds, video creatives only
	CTA              string
	DestinationURL   string
	ApprovalStatus   ApprovalStatus
	IsActive         bool
	DisplayOrder     int
	RotationHours    int
	LastShownAt      *time.Time
	ImpressionsCount int64
	ClicksCount      int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RotationWindow returns the minimum duration this creative stays on
// display before yielding to the next one.
func (c *Creative) RotationWindow() time.Duration {
	return time.Duration(c.RotationHours) * time.Hour
}

// Due reports whether the creative's rotation window has elapsed at the
// given instant. A creative never shown is immediately due.
func (c *Creative) Due(now time.Time) bool {
	if c.LastShownAt == nil {
		return true
	}
	return now.Sub(*c.LastShownAt) >= c.RotationWindow()
}

// NextRotation returns the instant the creative's window closes, or nil
// when it has never been shown.
func (c *Creative) NextRotation() *time.Time {
	if c.LastShownAt == nil {
		return nil
	}
	t := c.LastShownAt.Add(c.RotationWindow())
	return &t
}
