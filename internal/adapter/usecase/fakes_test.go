package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"linkup-ads/internal/core/domain"
	"linkup-ads/internal/core/port"
)

// fakeStore is an in-memory stand-in for the three repositories. Its
// ApplyEvent honours the same contract as the SQL implementation: the
// read-check-write runs under a lock, spend is clamped at the ceiling
// and the campaign completes on exhaustion.
type fakeStore struct {
	mu        sync.Mutex
	campaigns map[string]*domain.Campaign
	creatives map[string]*domain.Creative
	events    []domain.TrafficEvent

	// statsFailures makes the next N AddCreativeStats calls fail.
	statsFailures int
	statsCalls    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		campaigns: make(map[string]*domain.Campaign),
		creatives: make(map[string]*domain.Creative),
	}
}

func (s *fakeStore) putCampaign(c domain.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[c.ID] = &c
}

func (s *fakeStore) putCreative(cr domain.Creative) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creatives[cr.ID] = &cr
}

func (s *fakeStore) campaign(id string) domain.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.campaigns[id]
}

func (s *fakeStore) creative(id string) domain.Creative {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.creatives[id]
}

// CampaignRepository

func (s *fakeStore) Create(_ context.Context, c *domain.Campaign, creatives []domain.Creative) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cc := *c
	s.campaigns[c.ID] = &cc
	for _, cr := range creatives {
		crc := cr
		s.creatives[cr.ID] = &crc
	}
	return nil
}

func (s *fakeStore) Get(_ context.Context, id string) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (s *fakeStore) SetStatus(_ context.Context, id string, from, to domain.CampaignStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return &domain.NotFoundError{Entity: "campaign", ID: id}
	}
	if c.Status != from {
		return &domain.TransitionError{ID: id, From: c.Status, To: to}
	}
	c.Status = to
	return nil
}

func (s *fakeStore) AttachPaymentProof(_ context.Context, id, proof string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return &domain.NotFoundError{Entity: "campaign", ID: id}
	}
	if c.Status != domain.StatusPendingPayment {
		return &domain.TransitionError{ID: id, From: c.Status, To: domain.StatusPendingVerification}
	}
	c.PaymentProof = proof
	c.Status = domain.StatusPendingVerification
	return nil
}

func (s *fakeStore) Activate(_ context.Context, id string, start, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return &domain.NotFoundError{Entity: "campaign", ID: id}
	}
	if c.Status != domain.StatusPendingApproval {
		return &domain.TransitionError{ID: id, From: c.Status, To: domain.StatusActive}
	}
	c.Status = domain.StatusActive
	c.StartDate = &start
	c.EndDate = &end
	for _, cr := range s.creatives {
		if cr.CampaignID == id && cr.ApprovalStatus == domain.ApprovalPending {
			cr.ApprovalStatus = domain.ApprovalApproved
			cr.IsActive = true
		}
	}
	return nil
}

func (s *fakeStore) Reject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return &domain.NotFoundError{Entity: "campaign", ID: id}
	}
	if c.Status != domain.StatusPendingApproval {
		return &domain.TransitionError{ID: id, From: c.Status, To: domain.StatusRejected}
	}
	c.Status = domain.StatusRejected
	for _, cr := range s.creatives {
		if cr.CampaignID == id {
			cr.ApprovalStatus = domain.ApprovalRejected
			cr.IsActive = false
		}
	}
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return &domain.NotFoundError{Entity: "campaign", ID: id}
	}
	if c.Spent > 0 && !force {
		return port.ErrSpendRecorded
	}
	delete(s.campaigns, id)
	for crID, cr := range s.creatives {
		if cr.CampaignID == id {
			delete(s.creatives, crID)
		}
	}
	return nil
}

func (s *fakeStore) Stats(_ context.Context, req port.StatsReq) (*port.StatsResp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var resp port.StatsResp
	for _, ev := range s.events {
		if req.CampaignID != nil && ev.CampaignID != *req.CampaignID {
			continue
		}
		if ev.CreatedAt.Before(req.From) || ev.CreatedAt.After(req.To) {
			continue
		}
		switch ev.Type {
		case domain.EventImpression:
			resp.Impressions++
		case domain.EventClick:
			resp.Clicks++
		}
		resp.Spend += ev.Cost
	}
	return &resp, nil
}

// fakeCreatives adapts fakeStore to port.CreativeRepository, whose Get
// signature collides with the campaign one.
type fakeCreatives struct{ *fakeStore }

func (f fakeCreatives) Get(ctx context.Context, id string) (*domain.Creative, error) {
	return f.GetCreative(ctx, id)
}

// CreativeRepository

func (s *fakeStore) ListActive(_ context.Context, campaignID string) ([]domain.Creative, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Creative
	for _, cr := range s.creatives {
		if cr.CampaignID == campaignID && cr.IsActive && cr.ApprovalStatus == domain.ApprovalApproved {
			out = append(out, *cr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *fakeStore) GetCreative(_ context.Context, id string) (*domain.Creative, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cr, ok := s.creatives[id]
	if !ok {
		return nil, nil
	}
	crc := *cr
	return &crc, nil
}

func (s *fakeStore) RecordDisplay(_ context.Context, creativeID string, shownAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cr, ok := s.creatives[creativeID]
	if !ok {
		return &domain.NotFoundError{Entity: "creative", ID: creativeID}
	}
	cr.LastShownAt = &shownAt
	cr.ImpressionsCount++
	return nil
}

// LedgerRepository

func (s *fakeStore) ApplyEvent(_ context.Context, ev *domain.TrafficEvent) (port.LedgerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res port.LedgerResult
	c, ok := s.campaigns[ev.CampaignID]
	if !ok {
		return res, &domain.NotFoundError{Entity: "campaign", ID: ev.CampaignID}
	}
	if c.Status != domain.StatusActive {
		return res, &domain.InactiveCampaignError{ID: ev.CampaignID, Status: c.Status}
	}
	cost := ev.Type.Cost()
	if c.Spent+cost > c.TotalBudget {
		c.Spent = c.TotalBudget
		c.Status = domain.StatusCompleted
		return port.LedgerResult{Exhausted: true, Spent: c.Spent, Remaining: 0, Status: c.Status}, nil
	}
	c.Spent += cost
	switch ev.Type {
	case domain.EventImpression:
		c.Impressions++
	case domain.EventClick:
		c.Clicks++
	}
	ev.Cost = cost
	ev.CreatedAt = time.Now().UTC()
	s.events = append(s.events, *ev)
	return port.LedgerResult{Spent: c.Spent, Remaining: c.TotalBudget - c.Spent, Status: c.Status}, nil
}

func (s *fakeStore) AddCreativeStats(_ context.Context, creativeID string, eventType domain.EventType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statsCalls++
	if s.statsFailures > 0 {
		s.statsFailures--
		return errors.New("stats update failed")
	}
	cr, ok := s.creatives[creativeID]
	if !ok {
		return &domain.NotFoundError{Entity: "creative", ID: creativeID}
	}
	switch eventType {
	case domain.EventImpression:
		cr.ImpressionsCount++
	case domain.EventClick:
		cr.ClicksCount++
	}
	return nil
}
