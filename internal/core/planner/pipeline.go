package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/vintry/internal/core/analysis"
	"github.com/example/vintry/internal/core/solver"
	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/zones"
)

// Pipeline wires the planning layers together. Reasoner may be nil, in
// which case refinement and review are skipped and the deterministic
// output stands.
type Pipeline struct {
	Registry *zones.Registry
	Reasoner Reasoner
	Warn     WarnFunc
}

// GenerateInput is one plan-generation request plus the state it runs
// against.
type GenerateInput struct {
	CellarID           string
	Report             *analysis.Report
	RowMap             models.RowMap
	Pins               []models.ZonePin
	StabilityBias      string
	IncludeRetirements bool
	IncludeNewZones    bool
}

// GenerateResult carries the finished plan and the review telemetry to
// persist.
type GenerateResult struct {
	Plan      models.Plan
	Telemetry ReviewTelemetry
}

// Generate runs the full pipeline: aggregate → solver → refinement →
// gap-fill → contiguity repair → orphan recovery → validation → review.
func (p *Pipeline) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	if in.Report == nil {
		return nil, fmt.Errorf("analysis report is required")
	}

	utils := analysis.Aggregate(in.Report, in.RowMap)
	if !in.IncludeNewZones {
		utils = withoutUnallocated(utils, in.RowMap)
	}

	neverMerge := make(map[string]bool)
	neverRetire := make(map[string]bool)
	for _, pin := range in.Pins {
		switch pin.PinType {
		case models.PinNeverMerge:
			neverMerge[pin.ZoneID] = true
		case models.PinNeverRetire:
			neverRetire[pin.ZoneID] = true
		}
	}

	colorIssues := in.Report.ColorAdjacency
	if len(colorIssues) == 0 {
		colorIssues = ColorViolations(in.RowMap, p.Registry)
	}

	// Layer 1: deterministic baseline.
	draft := solver.Solve(solver.Input{
		Utilization:        utils,
		RowMap:             in.RowMap,
		Registry:           p.Registry,
		NeverMerge:         neverMerge,
		NeverRetire:        neverRetire,
		StabilityBias:      in.StabilityBias,
		ColorIssues:        colorIssues,
		IncludeRetirements: in.IncludeRetirements,
	})

	bottles := make(map[string]int, len(utils))
	for _, u := range utils {
		bottles[u.ZoneID] = u.BottleCount
	}
	candidates := solver.MergeCandidates(p.Registry, bottles, neverMerge)

	snapshot := StateSnapshot{
		CellarID:        in.CellarID,
		Utilization:     utils,
		Overflowing:     zoneIDs(analysis.Overflowing(utils)),
		Donors:          zoneIDs(analysis.Donors(utils)),
		MergeCandidates: candidates,
		ScatteredWines:  in.Report.ScatteredWines,
		ColorIssues:     colorIssues,
		RowMap:          in.RowMap,
	}

	plan := models.Plan{Reasoning: draft.Reasoning, Actions: draft.Actions}

	// Layer 2: optional external refinement, best-effort.
	plan = Refine(ctx, p.Reasoner, snapshot, plan, p.Registry, p.Warn)

	// Layer 3: heuristic gap-fill for deficits the earlier layers missed.
	plan.Actions = GapFill(in.RowMap, plan.Actions, utils, candidates, neverMerge, in.StabilityBias)

	// Repair passes restore physical invariants and may exceed the
	// stability cap; leaving a row orphaned is never acceptable.
	plan.Actions = RepairContiguity(in.RowMap, plan.Actions, p.Registry)

	simulated, _ := Simulate(in.RowMap, plan.Actions)
	plan.Actions = append(plan.Actions, RecoverOrphans(simulated, utils, p.Registry)...)

	if diags := ValidatePlan(in.RowMap, plan.Actions, p.Registry); len(diags) > 0 {
		return nil, fmt.Errorf("generated plan failed validation: %s", strings.Join(diags, "; "))
	}

	plan.Summary = summarize(plan.Actions, utils, in.Report, in.RowMap)

	score := ComplexityScore(Scenario{
		OverflowCount:    len(analysis.Overflowing(utils)),
		ColorIssueCount:  len(colorIssues),
		PinnedCount:      len(neverMerge),
		DraftActionCount: len(draft.Actions),
		ScatteredCount:   len(in.Report.ScatteredWines),
	})

	plan, tel := Review(ctx, p.Reasoner, snapshot, plan, score, p.Registry, p.Warn)
	return &GenerateResult{Plan: plan, Telemetry: tel}, nil
}

// withoutUnallocated drops report-only zones so no action can route rows
// to a zone that has none today.
func withoutUnallocated(utils []analysis.ZoneUtilization, m models.RowMap) []analysis.ZoneUtilization {
	out := utils[:0:0]
	for _, u := range utils {
		if _, ok := m[u.ZoneID]; ok {
			out = append(out, u)
		}
	}
	return out
}

func zoneIDs(utils []analysis.ZoneUtilization) []string {
	out := make([]string, 0, len(utils))
	for _, u := range utils {
		out = append(out, u.ZoneID)
	}
	return out
}

// summarize estimates the plan's blast radius. Per-row bottle counts are
// not in the report, so row moves are costed at the zone's average bottles
// per row.
func summarize(actions []models.Action, utils []analysis.ZoneUtilization, report *analysis.Report, m models.RowMap) models.PlanSummary {
	byZone := make(map[string]analysis.ZoneUtilization, len(utils))
	for _, u := range utils {
		byZone[u.ZoneID] = u
	}

	zonesChanged := make(map[string]bool)
	bottles := 0
	for _, a := range actions {
		if a.SourceZone != "" {
			zonesChanged[a.SourceZone] = true
		}
		if a.TargetZone != "" {
			zonesChanged[a.TargetZone] = true
		}
		switch a.Type {
		case models.ActionMergeZones, models.ActionRetireZone:
			bottles += byZone[a.SourceZone].BottleCount
		case models.ActionReallocateRow, models.ActionAssignOrphanRow:
			if u := byZone[a.SourceZone]; u.RowCount > 0 {
				bottles += u.BottleCount / u.RowCount
			}
		}
	}

	return models.PlanSummary{
		ZonesChanged:    len(zonesChanged),
		BottlesAffected: bottles,
		MisplacedBefore: report.Summary.TotalMisplaced,
		MisplacedAfter:  report.Summary.TotalMisplaced,
	}
}
