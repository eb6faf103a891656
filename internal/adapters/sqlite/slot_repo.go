package sqlite

import (
	"context"
	"fmt"

	"github.com/example/vintry/internal/models"
)

// fridgeSlots is the number of fridge positions (F1..F9) seeded alongside
// the cellar grid. Fridge slots carry row_num 0.
const fridgeSlots = 9

// SlotRepository implements secondary.SlotRepository.
type SlotRepository struct {
	q dbtx
}

// NewSlotRepository creates a SQLite slot repository.
func NewSlotRepository(q dbtx) *SlotRepository {
	return &SlotRepository{q: q}
}

// OccupiedMap returns slot code → wine ID for every occupied slot.
func (r *SlotRepository) OccupiedMap(ctx context.Context, cellarID string) (map[string]string, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT location_code, wine_id FROM slots WHERE cellar_id = ? AND wine_id IS NOT NULL",
		cellarID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load occupied slots: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var code, wineID string
		if err := rows.Scan(&code, &wineID); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		out[code] = wineID
	}
	return out, rows.Err()
}

// CountOccupied returns the number of occupied slots.
func (r *SlotRepository) CountOccupied(ctx context.Context, cellarID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM slots WHERE cellar_id = ? AND wine_id IS NOT NULL",
		cellarID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count occupied slots: %w", err)
	}
	return n, nil
}

// Clear empties a slot.
func (r *SlotRepository) Clear(ctx context.Context, cellarID, code string) error {
	_, err := r.q.ExecContext(ctx,
		"UPDATE slots SET wine_id = NULL WHERE cellar_id = ? AND location_code = ?",
		cellarID, code,
	)
	if err != nil {
		return fmt.Errorf("failed to clear slot %s: %w", code, err)
	}
	return nil
}

// Assign places a wine in a slot.
func (r *SlotRepository) Assign(ctx context.Context, cellarID, code, wineID string) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE slots SET wine_id = ? WHERE cellar_id = ? AND location_code = ?",
		wineID, cellarID, code,
	)
	if err != nil {
		return fmt.Errorf("failed to assign slot %s: %w", code, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check slot assignment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("slot %s does not exist", code)
	}
	return nil
}

// Seed creates the full physical grid for a cellar if absent: cellar rows
// R1..R19 at their per-row capacities plus fridge positions F1..F9.
func (r *SlotRepository) Seed(ctx context.Context, cellarID string) error {
	for row := models.FirstRow; row <= models.LastRow; row++ {
		for col := 1; col <= models.RowCapacity(row); col++ {
			code := fmt.Sprintf("R%dC%d", row, col)
			if err := r.seedSlot(ctx, cellarID, code, row, col); err != nil {
				return err
			}
		}
	}
	for i := 1; i <= fridgeSlots; i++ {
		code := fmt.Sprintf("F%d", i)
		if err := r.seedSlot(ctx, cellarID, code, 0, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *SlotRepository) seedSlot(ctx context.Context, cellarID, code string, row, col int) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO slots (cellar_id, location_code, row_num, col_num)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cellar_id, location_code) DO NOTHING`,
		cellarID, code, row, col,
	)
	if err != nil {
		return fmt.Errorf("failed to seed slot %s: %w", code, err)
	}
	return nil
}
