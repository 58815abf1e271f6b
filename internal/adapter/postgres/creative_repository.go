package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"linkup-ads/internal/core/domain"
)

const creativeColumns = `id, campaign_id, type, media_url, video_duration, cta,
	destination_url, approval_status, is_active, display_order, rotation_hours,
	last_shown_at, impressions_count, clicks_count, created_at, updated_at`

// CreativeRepository implements port.CreativeRepository using pgxpool.
type CreativeRepository struct {
	pool *pgxpool.Pool
}

// NewCreativeRepository returns a new repository instance.
func NewCreativeRepository(pool *pgxpool.Pool) *CreativeRepository {
	return &CreativeRepository{pool: pool}
}

// ListActive returns the campaign's approved, active creatives in
// rotation order. Id breaks displayOrder ties so the ordering is
// stable.
func (r *CreativeRepository) ListActive(ctx context.Context, campaignID string) ([]domain.Creative, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+creativeColumns+`
	FROM creatives
	WHERE campaign_id = $1 AND is_active = true AND approval_status = $2
	ORDER BY display_order ASC, id ASC`,
		campaignID, domain.ApprovalApproved)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Creative, error) {
		return scanCreative(row)
	})
}

// Get returns a creative by id, or nil when it does not exist.
func (r *CreativeRepository) Get(ctx context.Context, id string) (*domain.Creative, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+creativeColumns+` FROM creatives WHERE id = $1`, id)
	cr, err := scanCreative(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

// RecordDisplay stamps lastShownAt and bumps the creative's own
// impression counter after the selection has been served.
func (r *CreativeRepository) RecordDisplay(ctx context.Context, creativeID string, shownAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE creatives
	SET last_shown_at = $1, impressions_count = impressions_count + 1, updated_at = now()
	WHERE id = $2`,
		shownAt, creativeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "creative", ID: creativeID}
	}
	return nil
}

func scanCreative(row pgx.Row) (domain.Creative, error) {
	var cr domain.Creative
	err := row.Scan(
		&cr.ID, &cr.CampaignID, &cr.Type, &cr.MediaURL, &cr.VideoDuration, &cr.CTA,
		&cr.DestinationURL, &cr.ApprovalStatus, &cr.IsActive, &cr.DisplayOrder,
		&cr.RotationHours, &cr.LastShownAt, &cr.ImpressionsCount, &cr.ClicksCount,
		&cr.CreatedAt, &cr.UpdatedAt,
	)
	return cr, err
}
