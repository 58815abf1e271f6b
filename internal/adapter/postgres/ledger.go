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

// Ledger implements port.LedgerRepository. All spend mutation goes
// through ApplyEvent, which serializes per campaign with a row lock so
// concurrent events can never overshoot the budget ceiling.
type Ledger struct {
	pool *pgxpool.Pool
}

// NewLedger returns a new ledger instance.
func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

// ApplyEvent charges one traffic event against the campaign budget in
// a single transaction: lock the campaign row, check status and
// headroom, then either apply the increment and persist the event row,
// or clamp spend to the ceiling and complete the campaign. A clamped
// event is not committed, so the counters stay equal to the committed
// event count.
func (l *Ledger) ApplyEvent(ctx context.Context, ev *domain.TrafficEvent) (port.LedgerResult, error) {
	var res port.LedgerResult
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return res, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	var (
		spent, total int64
		status       domain.CampaignStatus
	)
	err = tx.QueryRow(ctx,
		`SELECT spent, total_budget, status FROM campaigns WHERE id = $1 FOR UPDATE`,
		ev.CampaignID).Scan(&spent, &total, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		err = &domain.NotFoundError{Entity: "campaign", ID: ev.CampaignID}
		return res, err
	}
	if err != nil {
		return res, err
	}
	if status != domain.StatusActive {
		err = &domain.InactiveCampaignError{ID: ev.CampaignID, Status: status}
		return res, err
	}

	cost := ev.Type.Cost()
	if spent+cost > total {
		// Budget exhaustion: clamp and complete instead of applying.
		_, err = tx.Exec(ctx,
			`UPDATE campaigns SET spent = total_budget, status = $1, updated_at = now() WHERE id = $2`,
			domain.StatusCompleted, ev.CampaignID)
		if err != nil {
			return res, err
		}
		res = port.LedgerResult{
			Exhausted: true,
			Spent:     total,
			Remaining: 0,
			Status:    domain.StatusCompleted,
		}
		return res, nil
	}

	counter := "impressions"
	if ev.Type == domain.EventClick {
		counter = "clicks"
	}
	// The row lock already serializes writers; the spend guard in the
	// WHERE clause keeps the ceiling invariant even so.
	_, err = tx.Exec(ctx,
		`UPDATE campaigns SET spent = spent + $1, `+counter+` = `+counter+` + 1, updated_at = now()
	 WHERE id = $2 AND spent + $1 <= total_budget`,
		cost, ev.CampaignID)
	if err != nil {
		return res, err
	}

	ev.Cost = cost
	ev.CreatedAt = time.Now().UTC()
	// An unresolvable creative id must not sink the campaign update, so
	// the event row only references creatives that exist.
	var creativeID *string
	if ev.CreativeID != "" {
		var exists bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM creatives WHERE id = $1)`, ev.CreativeID).Scan(&exists)
		if err != nil {
			return res, err
		}
		if exists {
			creativeID = &ev.CreativeID
		}
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO events (token, campaign_id, creative_id, event_type, cost, created_at)
	 VALUES ($1,$2,$3,$4,$5,$6)`,
		ev.Token, ev.CampaignID, creativeID, ev.Type, ev.Cost, ev.CreatedAt)
	if err != nil {
		return res, err
	}

	res = port.LedgerResult{
		Spent:     spent + cost,
		Remaining: total - spent - cost,
		Status:    status,
	}
	return res, nil
}

// AddCreativeStats mirrors one event into the creative's counters.
// Callers treat failures as best-effort; the campaign ledger is already
// committed by the time this runs.
func (l *Ledger) AddCreativeStats(ctx context.Context, creativeID string, eventType domain.EventType) error {
	counter := "impressions_count"
	if eventType == domain.EventClick {
		counter = "clicks_count"
	}
	tag, err := l.pool.Exec(ctx,
		`UPDATE creatives SET `+counter+` = `+counter+` + 1, updated_at = now() WHERE id = $1`,
		creativeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "creative", ID: creativeID}
	}
	return nil
}
