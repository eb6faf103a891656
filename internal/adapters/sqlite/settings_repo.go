package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SettingsRepository implements secondary.SettingsRepository.
type SettingsRepository struct {
	q dbtx
}

// NewSettingsRepository creates a SQLite settings repository.
func NewSettingsRepository(q dbtx) *SettingsRepository {
	return &SettingsRepository{q: q}
}

// Get returns a setting value, "" when unset.
func (r *SettingsRepository) Get(ctx context.Context, cellarID, key string) (string, error) {
	var value string
	err := r.q.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE cellar_id = ? AND key = ?",
		cellarID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// Set creates or replaces a setting.
func (r *SettingsRepository) Set(ctx context.Context, cellarID, key, value string) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO settings (cellar_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cellar_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		cellarID, key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
