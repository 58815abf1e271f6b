package domain

import "fmt"

// ValidationError reports a malformed creation input, naming the
// offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// NotFoundError reports an unknown campaign or creative id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InactiveCampaignError reports a traffic event submitted against a
// campaign that is not ACTIVE. The event is dropped, not queued.
type InactiveCampaignError struct {
	ID     string
	Status CampaignStatus
}

func (e *InactiveCampaignError) Error() string {
	return fmt.Sprintf("campaign %s is %s, not ACTIVE", e.ID, e.Status)
}

// TransitionError reports an illegal lifecycle transition.
type TransitionError struct {
	ID   string
	From CampaignStatus
	To   CampaignStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("campaign %s cannot move from %s to %s", e.ID, e.From, e.To)
}

// AuthorizationError reports a non-administrator attempting a
// restricted operation.
type AuthorizationError struct {
	Role string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("role %q is not permitted", e.Role)
}

// InternalError wraps a persistence-layer failure. This subsystem does
// not retry; callers own any retry policy.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }
