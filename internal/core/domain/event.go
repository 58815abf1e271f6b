package domain

import "time"

// EventType classifies a traffic event.
type EventType string

const (
	EventImpression EventType = "impression"
	EventClick      EventType = "click"
)

// Fixed cost per event type in integer units. Impressions are cheaper
// than clicks.
const (
	ImpressionCost int64 = 100
	ClickCost      int64 = 250
)

// Cost returns the fixed spend charged for one event of this type.
func (t EventType) Cost() int64 {
	if t == EventClick {
		return ClickCost
	}
	return ImpressionCost
}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	return t == EventImpression || t == EventClick
}

// TrafficEvent is an impression or click attributed to a campaign and
// optionally one of its creatives. Events are ephemeral inputs; their
// durable effect is the ledger update plus a persisted event row used
// for reporting.
type TrafficEvent struct {
	Token      string
	CampaignID string
	CreativeID string
	Type       EventType
	Cost       int64
	CreatedAt  time.Time
}
