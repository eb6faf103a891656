package planner

import (
	"fmt"
	"sort"

	"github.com/example/vintry/internal/core/analysis"
	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/zones"
)

// Undersized zones are the preferred homes for recovered rows.
const undersizedPct = 85.0

// RecoverOrphans emits assign_orphan_row actions for every grid row owned
// by no zone after the earlier layers ran. Each orphan goes to the nearest
// undersized zone whose color does not clash with the orphan's neighbours,
// else to any zone with spare capacity. This pass restores the row
// coverage invariant after layers that free a row without guaranteeing it
// lands somewhere.
func RecoverOrphans(m models.RowMap, utils []analysis.ZoneUtilization, reg *zones.Registry) []models.Action {
	used := m.RowsInUse()
	utilByZone := make(map[string]analysis.ZoneUtilization, len(utils))
	for _, u := range utils {
		utilByZone[u.ZoneID] = u
	}

	cur := m
	var actions []models.Action
	for n := models.FirstRow; n <= models.LastRow; n++ {
		row := models.RowName(n)
		if used[row] {
			continue
		}
		target := orphanTarget(cur, row, utilByZone, reg)
		if target == "" {
			continue
		}
		a := models.Action{
			Type:       models.ActionAssignOrphanRow,
			TargetZone: target,
			Row:        row,
			Priority:   5,
			Reason:     fmt.Sprintf("%s is unassigned; %s can absorb it", row, target),
		}
		actions = append(actions, a)
		next, ok := ApplyAction(cur, a)
		if ok {
			cur = next
		}
	}
	return actions
}

// orphanTarget picks the home for an orphan row: nearest undersized zone
// not clashing with the row's neighbours, falling back to any zone whose
// bottles fit its capacity plus the new row. Ties break by distance then
// zone ID.
func orphanTarget(m models.RowMap, row string, utils map[string]analysis.ZoneUtilization, reg *zones.Registry) string {
	ids := make([]string, 0, len(m))
	for zone := range m {
		ids = append(ids, zone)
	}
	sort.Strings(ids)

	pick := func(candidateOK func(zone string) bool) string {
		best, bestDist := "", -1
		for _, zone := range ids {
			if len(m[zone]) == 0 || !candidateOK(zone) {
				continue
			}
			// A buffer zone already owning its one row cannot take another.
			if reg.IsBuffer(zone) {
				continue
			}
			if clashesWithNeighbours(m, row, zone, reg) {
				continue
			}
			d := rowBlockDistance(row, m[zone])
			if bestDist < 0 || d < bestDist {
				best, bestDist = zone, d
			}
		}
		return best
	}

	if t := pick(func(zone string) bool {
		u, ok := utils[zone]
		return ok && (u.Overflow || u.Utilization > undersizedPct)
	}); t != "" {
		return t
	}
	return pick(func(zone string) bool {
		u := utils[zone]
		return u.BottleCount <= models.RowsCapacity(m[zone])
	})
}

// clashesWithNeighbours reports whether assigning row to zone would place
// incompatible colors in adjacent rows.
func clashesWithNeighbours(m models.RowMap, row, zone string, reg *zones.Registry) bool {
	color := reg.ColorOf(zone)
	n := models.RowNum(row)
	for _, adj := range []int{n - 1, n + 1} {
		if adj < models.FirstRow || adj > models.LastRow {
			continue
		}
		neighbour := m.OwnerOf(models.RowName(adj))
		if neighbour == "" || neighbour == zone {
			continue
		}
		if !models.ColorsCompatible(color, reg.ColorOf(neighbour)) {
			return true
		}
	}
	return false
}

func rowBlockDistance(row string, rows []string) int {
	n := models.RowNum(row)
	best := -1
	for _, r := range rows {
		d := n - models.RowNum(r)
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0
	}
	return best
}
