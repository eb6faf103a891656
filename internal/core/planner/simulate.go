// Package planner orchestrates the layered planning pipeline: the
// deterministic solver draft, optional external refinement, heuristic
// gap-filling, contiguity repair, orphan recovery, and validation. Every
// layer is a pure function from an immutable row-map snapshot to a new
// action list; shared state is never mutated in place.
package planner

import (
	"github.com/example/vintry/internal/models"
)

// ApplyAction replays one action against a row-map snapshot, returning the
// resulting map and whether the action's preconditions held. The input map
// is never modified. The same replay rules run at generation time
// (simulation) and at apply time (persisted mutation), so the validator
// sees exactly what apply would do.
func ApplyAction(m models.RowMap, a models.Action) (models.RowMap, bool) {
	switch a.Type {
	case models.ActionReallocateRow:
		if !models.ContainsRow(m[a.SourceZone], a.Row) {
			return m, false
		}
		out := m.Clone()
		out[a.SourceZone] = models.RemoveRow(out[a.SourceZone], a.Row)
		out[a.TargetZone] = models.AddRow(out[a.TargetZone], a.Row)
		return out, true

	case models.ActionMergeZones, models.ActionRetireZone:
		if _, ok := m[a.SourceZone]; !ok {
			return m, false
		}
		out := m.Clone()
		for _, r := range out[a.SourceZone] {
			out[a.TargetZone] = models.AddRow(out[a.TargetZone], r)
		}
		delete(out, a.SourceZone)
		return out, true

	case models.ActionExpandZone:
		row := pickFreeRow(m, a.Row)
		if row == "" {
			return m, false
		}
		out := m.Clone()
		out[a.TargetZone] = models.AddRow(out[a.TargetZone], row)
		return out, true

	case models.ActionAssignOrphanRow:
		if m.OwnerOf(a.Row) != "" {
			return m, false
		}
		out := m.Clone()
		out[a.TargetZone] = models.AddRow(out[a.TargetZone], a.Row)
		return out, true
	}
	return m, false
}

// Simulate replays a full action list, skipping actions whose
// preconditions fail, and returns the resulting map plus the indices of
// skipped actions.
func Simulate(m models.RowMap, actions []models.Action) (models.RowMap, []int) {
	cur := m
	var skipped []int
	for i, a := range actions {
		next, ok := ApplyAction(cur, a)
		if !ok {
			skipped = append(skipped, i)
			continue
		}
		cur = next
	}
	return cur, skipped
}

// FreeRow returns the row an expand action would claim: the preferred row
// if unowned, else the lowest unowned row, else "". Callers that must
// distinguish "grid exhausted" from a stale precondition use this before
// replaying the action.
func FreeRow(m models.RowMap, preferred string) string {
	return pickFreeRow(m, preferred)
}

// pickFreeRow returns the preferred row if it is unowned, else the lowest
// unowned row, else "".
func pickFreeRow(m models.RowMap, preferred string) string {
	used := m.RowsInUse()
	if preferred != "" && models.IsValidRow(preferred) && !used[preferred] {
		return preferred
	}
	for n := models.FirstRow; n <= models.LastRow; n++ {
		if r := models.RowName(n); !used[r] {
			return r
		}
	}
	return ""
}
