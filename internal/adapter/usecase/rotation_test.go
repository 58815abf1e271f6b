package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkup-ads/internal/core/domain"
)

func creativeAt(id string, order, rotationHours int, lastShown *time.Time) domain.Creative {
	return domain.Creative{
		ID:             id,
		Type:           domain.CreativeImage,
		ApprovalStatus: domain.ApprovalApproved,
		IsActive:       true,
		DisplayOrder:   order,
		RotationHours:  rotationHours,
		LastShownAt:    lastShown,
	}
}

func TestSelectCreativeEmpty(t *testing.T) {
	assert.Nil(t, selectCreative(nil, time.Now()))
}

func TestSelectCreativeSingle(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	shown := now.Add(-5 * time.Minute)
	creatives := []domain.Creative{creativeAt("a", 0, 1, &shown)}

	// a lone creative is served even inside its own window
	got := selectCreative(creatives, now)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
}

// TestSelectCreativeFirstDueWins checks the earliest-in-order due
// creative is chosen, not the one whose window elapsed longest ago.
func TestSelectCreativeFirstDueWins(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	longOverdue := now.Add(-10 * time.Hour)
	justDue := now.Add(-61 * time.Minute)
	creatives := []domain.Creative{
		creativeAt("a", 0, 1, &justDue),
		creativeAt("b", 1, 1, &longOverdue),
	}

	got := selectCreative(creatives, now)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
}

// TestSelectCreativeNeverShown: creative A at position 0 never shown,
// creative B shown 30 minutes ago with a 1 hour window. A's nil
// lastShownAt makes it immediately due, so A wins.
func TestSelectCreativeNeverShown(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	shownRecently := now.Add(-30 * time.Minute)
	creatives := []domain.Creative{
		creativeAt("a", 0, 1, nil),
		creativeAt("b", 1, 1, &shownRecently),
	}

	got := selectCreative(creatives, now)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
}

// TestSelectCreativeFallback: with every window still open selection
// wraps to position 0, not to the least recently shown creative.
func TestSelectCreativeFallback(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := now.Add(-10 * time.Minute)
	older := now.Add(-50 * time.Minute)
	creatives := []domain.Creative{
		creativeAt("a", 0, 1, &first),
		creativeAt("b", 1, 1, &older),
		creativeAt("c", 2, 1, &older),
	}

	got := selectCreative(creatives, now)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
}

// TestSelectCreativeDeterministic: repeated selection with the same
// inputs and instant returns the same creative.
func TestSelectCreativeDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	shown := now.Add(-2 * time.Hour)
	creatives := []domain.Creative{
		creativeAt("a", 0, 1, &shown),
		creativeAt("b", 1, 1, nil),
	}

	first := selectCreative(creatives, now)
	require.NotNil(t, first)
	for i := 0; i < 5; i++ {
		got := selectCreative(creatives, now)
		require.NotNil(t, got)
		assert.Equal(t, first.ID, got.ID)
	}
}

func TestSelectCreativeWindowBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exactlyOneHour := now.Add(-time.Hour)
	creatives := []domain.Creative{
		creativeAt("a", 0, 1, &exactlyOneHour),
	}

	// the window is inclusive: elapsed == rotationHours is due
	assert.True(t, creatives[0].Due(now))
	got := selectCreative(creatives, now)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
}
