package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/vintry/internal/models"
)

// ChangeCounterRepository implements secondary.ChangeCounterRepository.
type ChangeCounterRepository struct {
	q dbtx
}

// NewChangeCounterRepository creates a SQLite change counter repository.
func NewChangeCounterRepository(q dbtx) *ChangeCounterRepository {
	return &ChangeCounterRepository{q: q}
}

// Get returns the counter, nil when the cellar has never recorded one.
func (r *ChangeCounterRepository) Get(ctx context.Context, cellarID string) (*models.ChangeCounter, error) {
	var (
		c              models.ChangeCounter
		lastReconfigAt sql.NullTime
	)
	err := r.q.QueryRowContext(ctx,
		"SELECT cellar_id, change_count, last_reconfig_at, updated_at FROM change_counters WHERE cellar_id = ?",
		cellarID,
	).Scan(&c.CellarID, &c.ChangeCount, &lastReconfigAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get change counter: %w", err)
	}
	if lastReconfigAt.Valid {
		t := lastReconfigAt.Time
		c.LastReconfigAt = &t
	}
	return &c, nil
}

// Increment adds n to the cellar's counter, creating it lazily.
func (r *ChangeCounterRepository) Increment(ctx context.Context, cellarID string, n int) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO change_counters (cellar_id, change_count, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(cellar_id) DO UPDATE SET
			change_count = change_count + excluded.change_count,
			updated_at = excluded.updated_at`,
		cellarID, n, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to increment change counter: %w", err)
	}
	return nil
}

// Reset zeroes the counter and stamps the reconfiguration time.
func (r *ChangeCounterRepository) Reset(ctx context.Context, cellarID string) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO change_counters (cellar_id, change_count, last_reconfig_at, updated_at)
		VALUES (?, 0, ?, ?)
		ON CONFLICT(cellar_id) DO UPDATE SET
			change_count = 0,
			last_reconfig_at = excluded.last_reconfig_at,
			updated_at = excluded.updated_at`,
		cellarID, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to reset change counter: %w", err)
	}
	return nil
}
