package models

import "fmt"

// Action types. Each action is one typed mutation request against the zone
// layout.
const (
	ActionReallocateRow   = "reallocate_row"
	ActionMergeZones      = "merge_zones"
	ActionRetireZone      = "retire_zone"
	ActionExpandZone      = "expand_zone"
	ActionAssignOrphanRow = "assign_orphan_row"
)

// Action is one proposed mutation in a plan.
//
//   - reallocate_row: move Row from SourceZone to TargetZone.
//   - merge_zones / retire_zone: fold SourceZone (all rows and wines) into
//     TargetZone and delete its allocation.
//   - expand_zone: give TargetZone one currently unassigned row (Row is a
//     preference, not a requirement).
//   - assign_orphan_row: give TargetZone the orphaned Row.
type Action struct {
	Type       string `json:"type"`
	SourceZone string `json:"sourceZone,omitempty"`
	TargetZone string `json:"targetZone,omitempty"`
	Row        string `json:"row,omitempty"`
	Priority   int    `json:"priority"`
	Reason     string `json:"reason"`
}

// Validate checks structural correctness: a known type, the zone and row
// fields its type requires, and a well-formed row identifier where one is
// present.
func (a Action) Validate() error {
	switch a.Type {
	case ActionReallocateRow:
		if a.SourceZone == "" || a.TargetZone == "" {
			return fmt.Errorf("reallocate_row requires source and target zones")
		}
		if !IsValidRow(a.Row) {
			return fmt.Errorf("reallocate_row has invalid row %q", a.Row)
		}
	case ActionMergeZones, ActionRetireZone:
		if a.SourceZone == "" || a.TargetZone == "" {
			return fmt.Errorf("%s requires source and target zones", a.Type)
		}
		if a.SourceZone == a.TargetZone {
			return fmt.Errorf("%s source and target are the same zone", a.Type)
		}
	case ActionExpandZone:
		if a.TargetZone == "" {
			return fmt.Errorf("expand_zone requires a target zone")
		}
		if a.Row != "" && !IsValidRow(a.Row) {
			return fmt.Errorf("expand_zone has invalid row %q", a.Row)
		}
	case ActionAssignOrphanRow:
		if a.TargetZone == "" {
			return fmt.Errorf("assign_orphan_row requires a target zone")
		}
		if !IsValidRow(a.Row) {
			return fmt.Errorf("assign_orphan_row has invalid row %q", a.Row)
		}
	default:
		return fmt.Errorf("unknown action type %q", a.Type)
	}
	return nil
}

// Describe renders a one-line human summary of the action.
func (a Action) Describe() string {
	switch a.Type {
	case ActionReallocateRow:
		return fmt.Sprintf("move %s from %s to %s", a.Row, a.SourceZone, a.TargetZone)
	case ActionMergeZones:
		return fmt.Sprintf("merge %s into %s", a.SourceZone, a.TargetZone)
	case ActionRetireZone:
		return fmt.Sprintf("retire %s into %s", a.SourceZone, a.TargetZone)
	case ActionExpandZone:
		return fmt.Sprintf("expand %s", a.TargetZone)
	case ActionAssignOrphanRow:
		return fmt.Sprintf("assign orphan %s to %s", a.Row, a.TargetZone)
	}
	return a.Type
}
