package planner

import (
	"fmt"
	"sort"

	"github.com/example/vintry/internal/core/analysis"
	"github.com/example/vintry/internal/core/solver"
	"github.com/example/vintry/internal/models"
)

// GapFill is the third layer: it patches capacity deficits neither the
// solver nor refinement resolved. For each overflowing zone with no
// reallocation already targeting it, it emits one low-confidence
// reallocation from an underutilized donor, skipping pinned zones and rows
// already moved by earlier actions. When the plan is still empty it falls
// back to a single merge. The combined action count stays within the
// stability-bias cap.
func GapFill(
	m models.RowMap,
	actions []models.Action,
	utils []analysis.ZoneUtilization,
	candidates []solver.MergeCandidate,
	neverMerge map[string]bool,
	bias string,
) []models.Action {
	limit := models.MaxActionsFor(bias)

	addressed := make(map[string]bool)
	movedRows := make(map[string]bool)
	for _, a := range actions {
		if a.Type == models.ActionReallocateRow {
			addressed[a.TargetZone] = true
			movedRows[a.Row] = true
		}
	}

	out := actions
	overflowing := analysis.Overflowing(utils)
	for _, over := range overflowing {
		if len(out) >= limit {
			break
		}
		if addressed[over.ZoneID] {
			continue
		}
		row, donor := gapFillDonor(m, utils, over.ZoneID, neverMerge, movedRows)
		if donor == "" {
			continue
		}
		movedRows[row] = true
		out = append(out, models.Action{
			Type:       models.ActionReallocateRow,
			SourceZone: donor,
			TargetZone: over.ZoneID,
			Row:        row,
			Priority:   6,
			Reason:     fmt.Sprintf("gap-fill: %s still over capacity, taking %s from %s", over.ZoneID, row, donor),
		})
	}

	// Last resort for unrelieved pressure only. A cellar with no overflow
	// keeps its empty plan.
	if len(out) == 0 && len(overflowing) > 0 && len(candidates) > 0 {
		c := candidates[0]
		out = append(out, models.Action{
			Type:       models.ActionMergeZones,
			SourceZone: c.Source,
			TargetZone: c.Target,
			Priority:   6,
			Reason:     fmt.Sprintf("last resort: merge %s into %s (affinity %.1f)", c.Source, c.Target, c.Affinity),
		})
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// gapFillDonor finds the least-utilized donor zone that still has a row to
// spare which earlier actions have not touched.
func gapFillDonor(m models.RowMap, utils []analysis.ZoneUtilization, receiver string, neverMerge map[string]bool, movedRows map[string]bool) (row, donor string) {
	donors := analysis.Donors(utils)
	sort.Slice(donors, func(i, j int) bool {
		if donors[i].Utilization != donors[j].Utilization {
			return donors[i].Utilization < donors[j].Utilization
		}
		return donors[i].ZoneID < donors[j].ZoneID
	})

	for _, d := range donors {
		if d.ZoneID == receiver || neverMerge[d.ZoneID] {
			continue
		}
		rows := m[d.ZoneID]
		if len(rows) < 2 {
			continue
		}
		// Donate an edge row that has not already been moved.
		for _, candidate := range []string{rows[len(rows)-1], rows[0]} {
			if !movedRows[candidate] {
				return candidate, d.ZoneID
			}
		}
	}
	return "", ""
}
