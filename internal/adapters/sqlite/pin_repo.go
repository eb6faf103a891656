package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/vintry/internal/models"
)

// ZonePinRepository implements secondary.ZonePinRepository.
type ZonePinRepository struct {
	q dbtx
}

// NewZonePinRepository creates a SQLite zone pin repository.
func NewZonePinRepository(q dbtx) *ZonePinRepository {
	return &ZonePinRepository{q: q}
}

// ListByCellar returns the cellar's pins ordered by zone then pin type.
func (r *ZonePinRepository) ListByCellar(ctx context.Context, cellarID string) ([]*models.ZonePin, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT id, cellar_id, zone_id, pin_type FROM zone_pins WHERE cellar_id = ? ORDER BY zone_id, pin_type",
		cellarID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list zone pins: %w", err)
	}
	defer rows.Close()

	var out []*models.ZonePin
	for rows.Next() {
		var p models.ZonePin
		if err := rows.Scan(&p.ID, &p.CellarID, &p.ZoneID, &p.PinType); err != nil {
			return nil, fmt.Errorf("failed to scan zone pin: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Add creates a pin. Adding an existing pin is a no-op.
func (r *ZonePinRepository) Add(ctx context.Context, pin *models.ZonePin) error {
	if pin.ID == "" {
		pin.ID = uuid.New().String()
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO zone_pins (id, cellar_id, zone_id, pin_type)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cellar_id, zone_id, pin_type) DO NOTHING`,
		pin.ID, pin.CellarID, pin.ZoneID, pin.PinType,
	)
	if err != nil {
		return fmt.Errorf("failed to add zone pin: %w", err)
	}
	return nil
}

// Remove deletes a pin. Removing an absent pin is a no-op.
func (r *ZonePinRepository) Remove(ctx context.Context, cellarID, zoneID, pinType string) error {
	_, err := r.q.ExecContext(ctx,
		"DELETE FROM zone_pins WHERE cellar_id = ? AND zone_id = ? AND pin_type = ?",
		cellarID, zoneID, pinType,
	)
	if err != nil {
		return fmt.Errorf("failed to remove zone pin: %w", err)
	}
	return nil
}
