package usecase

import (
	"time"

	"linkup-ads/internal/core/domain"
)

// selectCreative picks the single creative to display at the given
// instant. The input must already be in display order (displayOrder
// ascending, id as tie-break), which is the repository's contract.
//
// The first creative whose rotation window has elapsed wins; a creative
// never shown is immediately due. When every window is still open the
// selection falls back to position 0 rather than the least recently
// shown creative. Selection is read-only; the caller records the
// display afterwards.
func selectCreative(creatives []domain.Creative, now time.Time) *domain.Creative {
	if len(creatives) == 0 {
		return nil
	}
	for i := range creatives {
		if creatives[i].Due(now) {
			return &creatives[i]
		}
	}
	return &creatives[0]
}
