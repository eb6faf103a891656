package models

import "time"

// AllocationSnapshot captures one zone's allocation at apply time.
type AllocationSnapshot struct {
	ZoneID    string   `json:"zoneId"`
	Rows      []string `json:"rows"`
	WineCount int      `json:"wineCount"`
}

// Snapshot is the before-image persisted with every reconfiguration. It is
// sufficient to fully undo the change: the affected zones' allocations and
// the affected wines' zone identities.
type Snapshot struct {
	Allocations []AllocationSnapshot `json:"allocations"`
	WineZones   map[string]string    `json:"wineZones"`
}

// Reconfiguration is the persisted record of an applied plan. Records are
// never deleted, only marked undone.
type Reconfiguration struct {
	ID             string
	CellarID       string
	Plan           Plan
	SkippedActions []int
	AutoSkipped    []int
	Snapshot       Snapshot
	ZonesChanged   int
	AppliedAt      time.Time
	UndoneAt       *time.Time
}

// ChangeCounter tracks bottle-level change volume per cellar since the last
// reconfiguration. Consulted by the threshold gate.
type ChangeCounter struct {
	CellarID       string
	ChangeCount    int
	LastReconfigAt *time.Time
	UpdatedAt      time.Time
}
