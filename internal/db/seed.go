package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo data: one active campaign with three rotating
// creatives, one waiting for approval, and a handful of events against
// the active one.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	activeID := uuid.NewString()
	_, err := pool.Exec(ctx, `INSERT INTO campaigns
	(id, owner_id, organization_id, name, objective, daily_budget, total_budget,
	 duration_days, spent, status, start_date, end_date, created_at, updated_at)
	VALUES ($1,'demo-owner','demo-org','Launch promo','brand-awareness',
	 50000, 500000, 10, 0, 'ACTIVE', now(), now() + interval '10 days', now(), now())
	ON CONFLICT DO NOTHING`, activeID)
	if err != nil {
		return err
	}

	creativeIDs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		crID := uuid.NewString()
		creativeIDs = append(creativeIDs, crID)
		_, err = pool.Exec(ctx, `INSERT INTO creatives
	(id, campaign_id, type, media_url, cta, destination_url,
	 approval_status, is_active, display_order, rotation_hours, created_at, updated_at)
	VALUES ($1,$2,'IMAGE',$3,'Learn more',$4,'APPROVED',true,$5,$6,now(),now())
	ON CONFLICT DO NOTHING`,
			crID, activeID,
			fmt.Sprintf("https://cdn.example.com/banner-%d.png", i+1),
			fmt.Sprintf("https://example.com/landing/%d", i+1),
			i, i+1)
		if err != nil {
			return err
		}
	}

	pendingID := uuid.NewString()
	_, err = pool.Exec(ctx, `INSERT INTO campaigns
	(id, owner_id, organization_id, name, objective, daily_budget, total_budget,
	 duration_days, spent, status, payment_proof, created_at, updated_at)
	VALUES ($1,'demo-owner','demo-org','Product teaser','lead-generation',
	 20000, 100000, 5, 0, 'PENDING_APPROVAL', 'receipt-42', now(), now())
	ON CONFLICT DO NOTHING`, pendingID)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `INSERT INTO creatives
	(id, campaign_id, type, media_url, video_duration, cta, destination_url,
	 approval_status, is_active, display_order, rotation_hours, created_at, updated_at)
	VALUES ($1,$2,'VIDEO','https://cdn.example.com/teaser.mp4',15,'Watch now',
	 'https://example.com/teaser','PENDING',false,0,2,now(),now())
	ON CONFLICT DO NOTHING`, uuid.NewString(), pendingID)
	if err != nil {
		return err
	}

	// a few impressions against the active campaign
	for i := 0; i < 5; i++ {
		_, err = pool.Exec(ctx, `INSERT INTO events
	(token, campaign_id, creative_id, event_type, cost, created_at)
	VALUES ($1,$2,$3,'impression',100,now())
	ON CONFLICT DO NOTHING`,
			uuid.NewString(), activeID, creativeIDs[i%len(creativeIDs)])
		if err != nil {
			return err
		}
	}
	_, err = pool.Exec(ctx,
		`UPDATE campaigns SET spent = 500, impressions = 5 WHERE id = $1`, activeID)
	return err
}
