package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreativeDue(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	never := Creative{RotationHours: 1}
	assert.True(t, never.Due(now))

	recent := now.Add(-30 * time.Minute)
	inside := Creative{RotationHours: 1, LastShownAt: &recent}
	assert.False(t, inside.Due(now))

	boundary := now.Add(-time.Hour)
	atBoundary := Creative{RotationHours: 1, LastShownAt: &boundary}
	assert.True(t, atBoundary.Due(now))

	old := now.Add(-90 * time.Minute)
	elapsed := Creative{RotationHours: 1, LastShownAt: &old}
	assert.True(t, elapsed.Due(now))
}

func TestCreativeNextRotation(t *testing.T) {
	never := Creative{RotationHours: 2}
	assert.Nil(t, never.NextRotation())

	shown := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cr := Creative{RotationHours: 2, LastShownAt: &shown}
	next := cr.NextRotation()
	require.NotNil(t, next)
	assert.Equal(t, shown.Add(2*time.Hour), *next)
}

func TestEventTypeCost(t *testing.T) {
	assert.Equal(t, ImpressionCost, EventImpression.Cost())
	assert.Equal(t, ClickCost, EventClick.Cost())
	assert.Less(t, ImpressionCost, ClickCost)
}
