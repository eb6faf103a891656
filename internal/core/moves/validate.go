package moves

import (
	"fmt"

	"github.com/example/vintry/internal/models"
)

// Validate checks a move batch against current wine locations and slot
// occupancy. It is batch-aware: a destination freed by an earlier move in
// the same batch counts as available. No conflicts means the batch is safe
// to execute atomically.
//
// wineLocations maps wine ID → current slot; occupied maps slot → wine ID.
func Validate(batch []models.Move, wineLocations map[string]string, occupied map[string]string) models.MoveValidation {
	var conflicts []models.MoveConflict
	add := func(wineID, format string, args ...any) {
		conflicts = append(conflicts, models.MoveConflict{WineID: wineID, Reason: fmt.Sprintf(format, args...)})
	}

	freed := make(map[string]bool, len(batch))
	claimed := make(map[string]string, len(batch))

	for _, mv := range batch {
		loc, known := wineLocations[mv.WineID]
		switch {
		case !known:
			add(mv.WineID, "wine not found")
			continue
		case loc == "":
			add(mv.WineID, "wine has no current slot")
			continue
		case loc != mv.From:
			add(mv.WineID, "wine is in %s, not %s", loc, mv.From)
			continue
		}

		if !IsValidSlot(mv.To) {
			add(mv.WineID, "invalid target slot %s", mv.To)
			continue
		}
		if prev, dup := claimed[mv.To]; dup {
			add(mv.WineID, "target %s already claimed by move of %s", mv.To, prev)
			continue
		}
		if holder, taken := occupied[mv.To]; taken && holder != mv.WineID && !freed[mv.To] {
			add(mv.WineID, "target %s is occupied by %s", mv.To, holder)
			continue
		}

		freed[mv.From] = true
		claimed[mv.To] = mv.WineID
	}

	return models.MoveValidation{Valid: len(conflicts) == 0, Conflicts: conflicts}
}
