// Package primary defines the primary ports (driving interfaces) for the
// reconfiguration engine. Every call is tenant-scoped by a cellar ID.
package primary

import (
	"context"

	"github.com/example/vintry/internal/models"
)

// ReconfigService is the zone reconfiguration surface: plan generation,
// transactional apply with undo, and the change-threshold gate.
type ReconfigService interface {
	// GeneratePlan runs the planning pipeline and stores the result.
	GeneratePlan(ctx context.Context, cellarID string, req GeneratePlanRequest) (*GeneratePlanResponse, error)

	// ApplyPlan executes a stored plan transactionally.
	ApplyPlan(ctx context.Context, cellarID string, req ApplyPlanRequest) (*ApplyPlanResponse, error)

	// Undo reverts an applied reconfiguration from its snapshot.
	Undo(ctx context.Context, cellarID, reconfigurationID string) error

	// CheckThreshold reports whether enough change has accumulated to
	// justify generating a new plan.
	CheckThreshold(ctx context.Context, cellarID string) (*ThresholdStatus, error)
}

// GeneratePlanRequest tunes one plan-generation run.
type GeneratePlanRequest struct {
	IncludeRetirements bool
	IncludeNewZones    bool
	StabilityBias      string // low | moderate | high
	Force              bool   // bypass the threshold gate
}

// GeneratePlanResponse carries the stored plan. When the threshold gate
// blocks generation, Plan is nil and Threshold explains why.
type GeneratePlanResponse struct {
	PlanID    string
	Plan      *models.Plan
	Threshold *ThresholdStatus
}

// ApplyPlanRequest names the stored plan and the action indices to skip.
type ApplyPlanRequest struct {
	PlanID      string
	SkipActions []int
}

// ApplyPlanResponse reports what an apply did.
type ApplyPlanResponse struct {
	ReconfigurationID  string
	ZonesChanged       int
	ActionsApplied     int
	ActionsSkipped     int // requested skips
	ActionsAutoSkipped int // stale preconditions at apply time
	CanUndo            bool
}

// ThresholdStatus is the structured result of the change-threshold gate.
// A blocked gate is not an error: it carries the numbers the caller needs
// to decide whether to wait or force.
type ThresholdStatus struct {
	Allowed      bool `json:"allowed"`
	ChangeCount  int  `json:"changeCount,omitempty"`
	Threshold    int  `json:"threshold,omitempty"`
	ThresholdPct int  `json:"thresholdPct,omitempty"`
	TotalBottles int  `json:"totalBottles,omitempty"`
}
