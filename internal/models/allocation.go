package models

import "time"

// Allocation is the persisted mapping of a zone to its currently owned
// rows within one cellar. The union of all allocations in a cellar must
// cover the grid exactly once.
type Allocation struct {
	CellarID  string
	ZoneID    string
	Rows      []string
	WineCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RowMap is a zone → owned rows snapshot used by the planning pipeline.
// Pipeline layers treat RowMaps as immutable: every transformation returns
// a fresh map.
type RowMap map[string][]string

// Clone returns a deep copy of the map.
func (m RowMap) Clone() RowMap {
	out := make(RowMap, len(m))
	for zone, rows := range m {
		cp := make([]string, len(rows))
		copy(cp, rows)
		out[zone] = cp
	}
	return out
}

// OwnerOf returns the zone owning the given row, or "" if no zone does.
func (m RowMap) OwnerOf(row string) string {
	for zone, rows := range m {
		if ContainsRow(rows, row) {
			return zone
		}
	}
	return ""
}

// RowsInUse returns the set of all rows owned by any zone.
func (m RowMap) RowsInUse() map[string]bool {
	used := make(map[string]bool)
	for _, rows := range m {
		for _, r := range rows {
			used[r] = true
		}
	}
	return used
}

// BuildRowMap converts a list of allocations into a RowMap snapshot.
func BuildRowMap(allocs []*Allocation) RowMap {
	m := make(RowMap, len(allocs))
	for _, a := range allocs {
		rows := make([]string, len(a.Rows))
		copy(rows, a.Rows)
		SortRows(rows)
		m[a.ZoneID] = rows
	}
	return m
}
