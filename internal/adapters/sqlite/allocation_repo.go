package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/vintry/internal/models"
)

// AllocationRepository implements secondary.AllocationRepository.
type AllocationRepository struct {
	q dbtx
}

// NewAllocationRepository creates a SQLite allocation repository.
func NewAllocationRepository(q dbtx) *AllocationRepository {
	return &AllocationRepository{q: q}
}

// Get retrieves one zone's allocation, nil when absent. The persisted row
// list is parsed defensively: malformed values decode to an empty list.
func (r *AllocationRepository) Get(ctx context.Context, cellarID, zoneID string) (*models.Allocation, error) {
	var (
		raw       string
		wineCount int
		createdAt time.Time
		updatedAt time.Time
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT rows, wine_count, created_at, updated_at
		FROM zone_allocations WHERE cellar_id = ? AND zone_id = ?`,
		cellarID, zoneID,
	).Scan(&raw, &wineCount, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}
	return &models.Allocation{
		CellarID:  cellarID,
		ZoneID:    zoneID,
		Rows:      models.ParseRowList(raw),
		WineCount: wineCount,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// ListByCellar retrieves all allocations for a cellar ordered by zone ID.
func (r *AllocationRepository) ListByCellar(ctx context.Context, cellarID string) ([]*models.Allocation, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT zone_id, rows, wine_count, created_at, updated_at
		FROM zone_allocations WHERE cellar_id = ? ORDER BY zone_id`,
		cellarID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var out []*models.Allocation
	for rows.Next() {
		a := &models.Allocation{CellarID: cellarID}
		var raw string
		if err := rows.Scan(&a.ZoneID, &raw, &a.WineCount, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		a.Rows = models.ParseRowList(raw)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Upsert creates or replaces a zone's allocation.
func (r *AllocationRepository) Upsert(ctx context.Context, alloc *models.Allocation) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO zone_allocations (cellar_id, zone_id, rows, wine_count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cellar_id, zone_id) DO UPDATE SET
			rows = excluded.rows,
			wine_count = excluded.wine_count,
			updated_at = CURRENT_TIMESTAMP`,
		alloc.CellarID, alloc.ZoneID, models.EncodeRowList(alloc.Rows), alloc.WineCount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert allocation: %w", err)
	}
	return nil
}

// Delete removes a zone's allocation.
func (r *AllocationRepository) Delete(ctx context.Context, cellarID, zoneID string) error {
	_, err := r.q.ExecContext(ctx,
		"DELETE FROM zone_allocations WHERE cellar_id = ? AND zone_id = ?",
		cellarID, zoneID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete allocation: %w", err)
	}
	return nil
}
