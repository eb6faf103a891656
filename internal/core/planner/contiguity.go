package planner

import (
	"fmt"
	"sort"

	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/zones"
)

// CountGaps returns the number of breaks in a zone's row range: zero means
// the rows form one unbroken numeric run.
func CountGaps(rows []string) int {
	if len(rows) < 2 {
		return 0
	}
	nums := make([]int, 0, len(rows))
	for _, r := range rows {
		if n := models.RowNum(r); n != 0 {
			nums = append(nums, n)
		}
	}
	sort.Ints(nums)
	gaps := 0
	for i := 1; i < len(nums); i++ {
		if nums[i] != nums[i-1]+1 {
			gaps++
		}
	}
	return gaps
}

// RepairContiguity post-processes the plan so each zone's rows form an
// unbroken range where a legal swap exists. A swap trades a row sandwiched
// in a zone's gap for one of the zone's own outlying rows, and is accepted
// only when it closes a gap for the broken zone, never worsens the other
// zone, and does not cross a red/white boundary (unless either zone's
// color is "any"). The row map is re-derived after each accepted swap so
// later repairs see corrected state; iteration stops when a full pass
// accepts nothing.
func RepairContiguity(base models.RowMap, actions []models.Action, reg *zones.Registry) []models.Action {
	out := actions
	for {
		cur, _ := Simulate(base, out)
		swap := findSwap(cur, reg)
		if swap == nil {
			return out
		}
		out = append(out, swap...)
	}
}

// findSwap returns the pair of reallocate actions for the first legal swap
// found, or nil. Zones are scanned in ID order, gap rows in numeric order.
func findSwap(m models.RowMap, reg *zones.Registry) []models.Action {
	ids := make([]string, 0, len(m))
	for zone := range m {
		ids = append(ids, zone)
	}
	sort.Strings(ids)

	for _, zone := range ids {
		rows := m[zone]
		if CountGaps(rows) == 0 {
			continue
		}
		lo := models.RowNum(rows[0])
		hi := models.RowNum(rows[len(rows)-1])

		for n := lo + 1; n < hi; n++ {
			gapRow := models.RowName(n)
			if models.ContainsRow(rows, gapRow) {
				continue
			}
			owner := m.OwnerOf(gapRow)
			if owner == "" || owner == zone {
				continue
			}
			if !models.ColorsCompatible(reg.ColorOf(zone), reg.ColorOf(owner)) {
				continue
			}
			// Try trading the gap row for each of the zone's own rows.
			for _, own := range rows {
				if legal := trySwap(m, zone, own, owner, gapRow); legal {
					reason := fmt.Sprintf("swap %s and %s so %s and %s stay contiguous", gapRow, own, zone, owner)
					return []models.Action{
						{Type: models.ActionReallocateRow, SourceZone: owner, TargetZone: zone, Row: gapRow, Priority: 4, Reason: reason},
						{Type: models.ActionReallocateRow, SourceZone: zone, TargetZone: owner, Row: own, Priority: 4, Reason: reason},
					}
				}
			}
		}
	}
	return nil
}

// trySwap simulates trading zone's own row for owner's gapRow and checks
// both zones come out no worse: the broken zone must strictly improve and
// the donor must not gain a gap it did not have.
func trySwap(m models.RowMap, zone, own, owner, gapRow string) bool {
	zoneBefore := CountGaps(m[zone])
	ownerBefore := CountGaps(m[owner])

	after := m.Clone()
	after[owner] = models.AddRow(models.RemoveRow(after[owner], gapRow), own)
	after[zone] = models.AddRow(models.RemoveRow(after[zone], own), gapRow)

	zoneAfter := CountGaps(after[zone])
	ownerAfter := CountGaps(after[owner])

	return zoneAfter < zoneBefore && zoneAfter == 0 && ownerAfter <= ownerBefore
}
