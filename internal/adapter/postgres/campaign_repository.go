package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"linkup-ads/internal/core/domain"
	"linkup-ads/internal/core/port"
)

const campaignColumns = `id, owner_id, organization_id, name, objective,
	daily_budget, total_budget, duration_days, spent,
	impressions, clicks, conversions, status, payment_proof,
	start_date, end_date, created_at, updated_at`

// CampaignRepository implements port.CampaignRepository using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// Create stores the campaign and its creatives in one transaction.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign, creatives []domain.Creative) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	_, err = tx.Exec(ctx, `INSERT INTO campaigns
	(id, owner_id, organization_id, name, objective, daily_budget, total_budget,
	 duration_days, spent, impressions, clicks, conversions, status, payment_proof,
	 created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,0,0,0,0,$9,$10,$11,$11)`,
		c.ID, c.OwnerID, c.OrganizationID, c.Name, c.Objective,
		c.DailyBudget, c.TotalBudget, c.DurationDays, c.Status, c.PaymentProof, c.CreatedAt)
	if err != nil {
		return err
	}
	for i := range creatives {
		cr := &creatives[i]
		_, err = tx.Exec(ctx, `INSERT INTO creatives
	(id, campaign_id, type, media_url, video_duration, cta, destination_url,
	 approval_status, is_active, display_order, rotation_hours,
	 impressions_count, clicks_count, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,0,0,$12,$12)`,
			cr.ID, cr.CampaignID, cr.Type, cr.MediaURL, cr.VideoDuration, cr.CTA,
			cr.DestinationURL, cr.ApprovalStatus, cr.IsActive, cr.DisplayOrder,
			cr.RotationHours, cr.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

// Get returns a campaign by id, or nil when it does not exist.
func (r *CampaignRepository) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SetStatus performs a conditional status update so that a concurrent
// transition cannot be silently overwritten.
func (r *CampaignRepository) SetStatus(ctx context.Context, id string, from, to domain.CampaignStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.transitionConflict(ctx, id, to)
	}
	return nil
}

// AttachPaymentProof stores the proof reference and moves the campaign
// to PENDING_VERIFICATION.
func (r *CampaignRepository) AttachPaymentProof(ctx context.Context, id, proof string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns
	SET payment_proof = $1, status = $2, updated_at = now()
	WHERE id = $3 AND status = $4`,
		proof, domain.StatusPendingVerification, id, domain.StatusPendingPayment)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.transitionConflict(ctx, id, domain.StatusPendingVerification)
	}
	return nil
}

// Activate flips the campaign to ACTIVE and cascades its pending
// creatives to APPROVED/active. Both updates commit together.
func (r *CampaignRepository) Activate(ctx context.Context, id string, start, end time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `UPDATE campaigns
	SET status = $1, start_date = $2, end_date = $3, updated_at = now()
	WHERE id = $4 AND status = $5`,
		domain.StatusActive, start, end, id, domain.StatusPendingApproval)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = r.transitionConflict(ctx, id, domain.StatusActive)
		return err
	}
	_, err = tx.Exec(ctx, `UPDATE creatives
	SET approval_status = $1, is_active = true, updated_at = now()
	WHERE campaign_id = $2 AND approval_status = $3`,
		domain.ApprovalApproved, id, domain.ApprovalPending)
	return err
}

// Reject flips the campaign to REJECTED and cascades its creatives to
// REJECTED/inactive, atomically with the status change.
func (r *CampaignRepository) Reject(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx,
		`UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		domain.StatusRejected, id, domain.StatusPendingApproval)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = r.transitionConflict(ctx, id, domain.StatusRejected)
		return err
	}
	_, err = tx.Exec(ctx, `UPDATE creatives
	SET approval_status = $1, is_active = false, updated_at = now()
	WHERE campaign_id = $2`,
		domain.ApprovalRejected, id)
	return err
}

// Delete removes the campaign; creatives and event rows go with it via
// foreign keys. Campaigns with spend are refused unless force is set.
func (r *CampaignRepository) Delete(ctx context.Context, id string, force bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	var spent int64
	err = tx.QueryRow(ctx, `SELECT spent FROM campaigns WHERE id = $1 FOR UPDATE`, id).Scan(&spent)
	if errors.Is(err, pgx.ErrNoRows) {
		err = &domain.NotFoundError{Entity: "campaign", ID: id}
		return err
	}
	if err != nil {
		return err
	}
	if spent > 0 && !force {
		err = port.ErrSpendRecorded
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	return err
}

// Stats returns aggregated events for campaigns in a period.
func (r *CampaignRepository) Stats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	query := `SELECT
	COALESCE(count(*) FILTER (WHERE event_type = 'impression'), 0),
	COALESCE(count(*) FILTER (WHERE event_type = 'click'), 0),
	COALESCE(sum(cost), 0)
	FROM events WHERE created_at >= $1 AND created_at <= $2`
	args := []any{req.From, req.To}
	if req.CampaignID != nil {
		query += ` AND campaign_id = $3`
		args = append(args, *req.CampaignID)
	}
	var resp port.StatsResp
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&resp.Impressions, &resp.Clicks, &resp.Spend); err != nil {
		return nil, err
	}
	return &resp, nil
}

// transitionConflict distinguishes a missing campaign from one whose
// status changed underneath the caller.
func (r *CampaignRepository) transitionConflict(ctx context.Context, id string, to domain.CampaignStatus) error {
	var current domain.CampaignStatus
	err := r.pool.QueryRow(ctx, `SELECT status FROM campaigns WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.NotFoundError{Entity: "campaign", ID: id}
	}
	if err != nil {
		return err
	}
	return &domain.TransitionError{ID: id, From: current, To: to}
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.OrganizationID, &c.Name, &c.Objective,
		&c.DailyBudget, &c.TotalBudget, &c.DurationDays, &c.Spent,
		&c.Impressions, &c.Clicks, &c.Conversions, &c.Status, &c.PaymentProof,
		&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
