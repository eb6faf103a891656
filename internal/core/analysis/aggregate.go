package analysis

import (
	"sort"

	"github.com/example/vintry/internal/models"
)

// ZoneUtilization is the aggregated per-zone view the planning layers
// consume.
type ZoneUtilization struct {
	ZoneID      string
	BottleCount int
	RowCount    int
	Capacity    int
	Utilization float64 // percent, 0 when the zone has no capacity
	Overflow    bool
	Misplaced   int
	Correct     int
}

// Utilization thresholds used across the pipeline.
const (
	OverflowPct = 100.0
	DonorPct    = 40.0
)

// Aggregate joins an analysis report with the current row map into
// per-zone utilization, ordered by zone ID. Zones present in the row map
// but absent from the report still appear with zero bottles so they remain
// visible as donors; zones in the report with no rows yet appear as
// overflowing so the pipeline can find them a home.
func Aggregate(report *Report, rowMap models.RowMap) []ZoneUtilization {
	byZone := make(map[string]ZoneReport, len(report.Zones))
	for _, zr := range report.Zones {
		byZone[zr.ZoneID] = zr
	}

	seen := make(map[string]bool, len(rowMap))
	ids := make([]string, 0, len(rowMap))
	for zone := range rowMap {
		ids = append(ids, zone)
		seen[zone] = true
	}
	for _, zr := range report.Zones {
		if !seen[zr.ZoneID] {
			ids = append(ids, zr.ZoneID)
		}
	}
	sort.Strings(ids)

	out := make([]ZoneUtilization, 0, len(ids))
	for _, zone := range ids {
		rows := rowMap[zone]
		capacity := models.RowsCapacity(rows)
		zr := byZone[zone]

		u := ZoneUtilization{
			ZoneID:      zone,
			BottleCount: zr.BottleCount,
			RowCount:    len(rows),
			Capacity:    capacity,
			Misplaced:   zr.MisplacedCount,
			Correct:     zr.CorrectCount,
		}
		if capacity > 0 {
			u.Utilization = float64(zr.BottleCount) / float64(capacity) * 100
		} else if zr.BottleCount > 0 {
			u.Utilization = OverflowPct + 1
		}
		u.Overflow = u.Utilization > OverflowPct
		out = append(out, u)
	}
	return out
}

// Overflowing filters utilization entries above capacity.
func Overflowing(utils []ZoneUtilization) []ZoneUtilization {
	var out []ZoneUtilization
	for _, u := range utils {
		if u.Overflow {
			out = append(out, u)
		}
	}
	return out
}

// Donors filters underutilized zones that can give up a row: below the
// donor threshold with more than one row.
func Donors(utils []ZoneUtilization) []ZoneUtilization {
	var out []ZoneUtilization
	for _, u := range utils {
		if u.Utilization < DonorPct && u.RowCount > 1 {
			out = append(out, u)
		}
	}
	return out
}
