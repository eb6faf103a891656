package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/vintry/internal/models"
)

// ReconfigurationRepository implements secondary.ReconfigurationRepository.
type ReconfigurationRepository struct {
	q dbtx
}

// NewReconfigurationRepository creates a SQLite reconfiguration repository.
func NewReconfigurationRepository(q dbtx) *ReconfigurationRepository {
	return &ReconfigurationRepository{q: q}
}

// Create persists a new reconfiguration record.
func (r *ReconfigurationRepository) Create(ctx context.Context, rec *models.Reconfiguration) error {
	planJSON, err := json.Marshal(rec.Plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	snapJSON, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	skippedJSON, _ := json.Marshal(orEmpty(rec.SkippedActions))
	autoJSON, _ := json.Marshal(orEmpty(rec.AutoSkipped))

	_, err = r.q.ExecContext(ctx,
		`INSERT INTO reconfigurations
			(id, cellar_id, plan_json, skipped_json, auto_skipped_json, snapshot_json, zones_changed, applied_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CellarID, string(planJSON), string(skippedJSON), string(autoJSON),
		string(snapJSON), rec.ZonesChanged, rec.AppliedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reconfiguration: %w", err)
	}
	return nil
}

// GetByID retrieves a record scoped to its cellar; nil when absent or
// owned by a different cellar.
func (r *ReconfigurationRepository) GetByID(ctx context.Context, id, cellarID string) (*models.Reconfiguration, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, cellar_id, plan_json, skipped_json, auto_skipped_json, snapshot_json, zones_changed, applied_at, undone_at
		FROM reconfigurations WHERE id = ? AND cellar_id = ?`,
		id, cellarID,
	)
	rec, err := scanReconfiguration(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

// MarkUndone stamps the record undone. Returns sql.ErrNoRows when the
// record was already undone, guarding against concurrent undo.
func (r *ReconfigurationRepository) MarkUndone(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE reconfigurations SET undone_at = ? WHERE id = ? AND undone_at IS NULL",
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark reconfiguration undone: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check undo update: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByCellar returns the cellar's most recent records.
func (r *ReconfigurationRepository) ListByCellar(ctx context.Context, cellarID string, limit int) ([]*models.Reconfiguration, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, cellar_id, plan_json, skipped_json, auto_skipped_json, snapshot_json, zones_changed, applied_at, undone_at
		FROM reconfigurations WHERE cellar_id = ? ORDER BY applied_at DESC LIMIT ?`,
		cellarID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconfigurations: %w", err)
	}
	defer rows.Close()

	var out []*models.Reconfiguration
	for rows.Next() {
		rec, err := scanReconfiguration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReconfiguration(row rowScanner) (*models.Reconfiguration, error) {
	var (
		rec         models.Reconfiguration
		planJSON    string
		skippedJSON string
		autoJSON    string
		snapJSON    string
		undoneAt    sql.NullTime
	)
	err := row.Scan(&rec.ID, &rec.CellarID, &planJSON, &skippedJSON, &autoJSON, &snapJSON,
		&rec.ZonesChanged, &rec.AppliedAt, &undoneAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan reconfiguration: %w", err)
	}

	if err := json.Unmarshal([]byte(planJSON), &rec.Plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan for %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(snapJSON), &rec.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot for %s: %w", rec.ID, err)
	}
	_ = json.Unmarshal([]byte(skippedJSON), &rec.SkippedActions)
	_ = json.Unmarshal([]byte(autoJSON), &rec.AutoSkipped)
	if undoneAt.Valid {
		t := undoneAt.Time
		rec.UndoneAt = &t
	}
	return &rec, nil
}

func orEmpty(xs []int) []int {
	if xs == nil {
		return []int{}
	}
	return xs
}
