package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkup-ads/internal/core/domain"
	"linkup-ads/internal/core/port"
)

func newTestDelivery(store *fakeStore) *Delivery {
	ledger := NewCostLedger(store, testLogger())
	return NewDelivery(store, fakeCreatives{store}, ledger, testLogger())
}

func TestActiveCreativeUnknownCampaign(t *testing.T) {
	d := newTestDelivery(newFakeStore())

	_, err := d.ActiveCreative(context.Background(), "missing")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestActiveCreativeInactiveCampaign(t *testing.T) {
	store := newFakeStore()
	c := activeCampaign("c1", 1000)
	c.Status = domain.StatusPendingApproval
	store.putCampaign(c)
	d := newTestDelivery(store)

	_, err := d.ActiveCreative(context.Background(), "c1")
	var inactive *domain.InactiveCampaignError
	require.ErrorAs(t, err, &inactive)
}

func TestActiveCreativeNoneEligible(t *testing.T) {
	store := newFakeStore()
	store.putCampaign(activeCampaign("c1", 1000))
	store.putCreative(domain.Creative{
		ID: "cr1", CampaignID: "c1",
		ApprovalStatus: domain.ApprovalPending, IsActive: false,
	})
	d := newTestDelivery(store)

	_, err := d.ActiveCreative(context.Background(), "c1")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

// TestActiveCreativeRecordsDisplay: selection returns the due creative
// and the display side effect stamps lastShownAt and bumps the
// creative's impression counter.
func TestActiveCreativeRecordsDisplay(t *testing.T) {
	store := newFakeStore()
	store.putCampaign(activeCampaign("c1", 1000))
	store.putCreative(creativeAt("cr1", 0, 1, nil))
	cr := store.creative("cr1")
	cr.CampaignID = "c1"
	store.putCreative(cr)

	d := newTestDelivery(store)
	fixed := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return fixed }

	sel, err := d.ActiveCreative(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "cr1", sel.Creative.ID)
	assert.Equal(t, 1, sel.TotalCreatives)
	assert.Equal(t, 1, sel.RotationHours)
	require.NotNil(t, sel.NextRotation)
	assert.Equal(t, fixed.Add(time.Hour), *sel.NextRotation)

	stored := store.creative("cr1")
	require.NotNil(t, stored.LastShownAt)
	assert.Equal(t, fixed, *stored.LastShownAt)
	assert.Equal(t, int64(1), stored.ImpressionsCount)
}

// TestActiveCreativeRotation walks two creatives through a rotation:
// the never-shown one wins first, then the window keeps it on display
// until the window elapses for the next.
func TestActiveCreativeRotation(t *testing.T) {
	store := newFakeStore()
	store.putCampaign(activeCampaign("c1", 100000))
	a := creativeAt("a", 0, 1, nil)
	a.CampaignID = "c1"
	b := creativeAt("b", 1, 1, nil)
	b.CampaignID = "c1"
	store.putCreative(a)
	store.putCreative(b)

	d := newTestDelivery(store)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	sel, err := d.ActiveCreative(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "a", sel.Creative.ID)

	// b has never been shown, so it is due next
	sel, err = d.ActiveCreative(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "b", sel.Creative.ID)

	// both inside their windows: wrap to position 0
	now = now.Add(10 * time.Minute)
	sel, err = d.ActiveCreative(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "a", sel.Creative.ID)

	// an hour later a's refreshed window has elapsed again
	now = now.Add(time.Hour)
	sel, err = d.ActiveCreative(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "a", sel.Creative.ID)
}

func TestTrackEventDelegates(t *testing.T) {
	store := newFakeStore()
	store.putCampaign(activeCampaign("c1", 1000))
	d := newTestDelivery(store)

	resp, err := d.TrackEvent(context.Background(), port.TrackReq{
		CampaignID: "c1",
		EventType:  domain.EventClick,
	})
	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.Equal(t, domain.ClickCost, resp.Spent)
}

func TestStats(t *testing.T) {
	store := newFakeStore()
	store.putCampaign(activeCampaign("c1", 100000))
	d := newTestDelivery(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := d.TrackEvent(ctx, port.TrackReq{CampaignID: "c1", EventType: domain.EventImpression})
		require.NoError(t, err)
	}
	_, err := d.TrackEvent(ctx, port.TrackReq{CampaignID: "c1", EventType: domain.EventClick})
	require.NoError(t, err)

	stats, err := d.Stats(ctx, port.StatsReq{
		From: time.Now().Add(-time.Hour),
		To:   time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Impressions)
	assert.Equal(t, int64(1), stats.Clicks)
	assert.Equal(t, 3*domain.ImpressionCost+domain.ClickCost, stats.Spend)
}
