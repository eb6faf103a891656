package planner

import "github.com/example/vintry/internal/models"

// FilterForZone narrows a plan to actions involving one focus zone.
// Orphan-row assignments are always retained even when they target other
// zones: dropping them would leave rows unowned after the filtered plan
// runs, breaking the coverage invariant.
func FilterForZone(plan models.Plan, zoneID string) models.Plan {
	out := plan
	out.Actions = nil
	for _, a := range plan.Actions {
		if a.Type == models.ActionAssignOrphanRow || a.SourceZone == zoneID || a.TargetZone == zoneID {
			out.Actions = append(out.Actions, a)
		}
	}
	return out
}
