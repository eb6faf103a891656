package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/vintry/internal/models"
)

// WineRepository implements secondary.WineRepository.
type WineRepository struct {
	q dbtx
}

// NewWineRepository creates a SQLite wine repository.
func NewWineRepository(q dbtx) *WineRepository {
	return &WineRepository{q: q}
}

// ListByZones returns wines assigned to any of the given zones, ordered
// by zone then name.
func (r *WineRepository) ListByZones(ctx context.Context, cellarID string, zoneIDs []string) ([]*models.Wine, error) {
	if len(zoneIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(zoneIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(zoneIDs)+1)
	args = append(args, cellarID)
	for _, z := range zoneIDs {
		args = append(args, z)
	}

	rows, err := r.q.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, cellar_id, name, color, grape, country, style, vintage, zone_id, created_at, updated_at
		FROM wines WHERE cellar_id = ? AND zone_id IN (%s)
		ORDER BY zone_id, name`, placeholders),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list wines by zones: %w", err)
	}
	defer rows.Close()

	var out []*models.Wine
	for rows.Next() {
		w, err := scanWine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// GetLocations returns wineID → current slot for the given wines. Wines
// without a slot, or unknown wines, are absent from the map.
func (r *WineRepository) GetLocations(ctx context.Context, cellarID string, wineIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(wineIDs))
	if len(wineIDs) == 0 {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(wineIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(wineIDs)+1)
	args = append(args, cellarID)
	for _, id := range wineIDs {
		args = append(args, id)
	}

	rows, err := r.q.QueryContext(ctx, fmt.Sprintf(
		"SELECT wine_id, location_code FROM slots WHERE cellar_id = ? AND wine_id IN (%s)", placeholders),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get wine locations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wineID, code string
		if err := rows.Scan(&wineID, &code); err != nil {
			return nil, fmt.Errorf("failed to scan wine location: %w", err)
		}
		out[wineID] = code
	}
	return out, rows.Err()
}

// SetZone reassigns one wine's zone identity.
func (r *WineRepository) SetZone(ctx context.Context, cellarID, wineID, zoneID string) error {
	_, err := r.q.ExecContext(ctx,
		"UPDATE wines SET zone_id = ?, updated_at = ? WHERE cellar_id = ? AND id = ?",
		nullString(zoneID), time.Now().UTC(), cellarID, wineID,
	)
	if err != nil {
		return fmt.Errorf("failed to set wine zone: %w", err)
	}
	return nil
}

// SetZoneBulk reassigns every wine in fromZone to toZone, returning the
// number updated.
func (r *WineRepository) SetZoneBulk(ctx context.Context, cellarID, fromZone, toZone string) (int, error) {
	res, err := r.q.ExecContext(ctx,
		"UPDATE wines SET zone_id = ?, updated_at = ? WHERE cellar_id = ? AND zone_id = ?",
		toZone, time.Now().UTC(), cellarID, fromZone,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk-reassign wines from %s: %w", fromZone, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count reassigned wines: %w", err)
	}
	return int(n), nil
}

// CountByCellar returns the cellar's total bottle count.
func (r *WineRepository) CountByCellar(ctx context.Context, cellarID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM wines WHERE cellar_id = ?", cellarID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count wines: %w", err)
	}
	return n, nil
}

func scanWine(rows *sql.Rows) (*models.Wine, error) {
	var (
		w       models.Wine
		grape   sql.NullString
		country sql.NullString
		style   sql.NullString
		vintage sql.NullInt64
		zoneID  sql.NullString
	)
	err := rows.Scan(&w.ID, &w.CellarID, &w.Name, &w.Color, &grape, &country, &style,
		&vintage, &zoneID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan wine: %w", err)
	}
	w.Grape = grape.String
	w.Country = country.String
	w.Style = style.String
	w.Vintage = int(vintage.Int64)
	w.ZoneID = zoneID.String
	return &w, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
