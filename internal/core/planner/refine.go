package planner

import (
	"context"
	"fmt"

	"github.com/example/vintry/internal/core/analysis"
	"github.com/example/vintry/internal/core/solver"
	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/zones"
)

// StateSnapshot is the serialized cellar state sent to the reasoning
// service alongside a draft plan.
type StateSnapshot struct {
	CellarID        string                     `json:"cellarId"`
	Utilization     []analysis.ZoneUtilization `json:"utilization"`
	Overflowing     []string                   `json:"overflowing"`
	Donors          []string                   `json:"donors"`
	MergeCandidates []solver.MergeCandidate    `json:"mergeCandidates"`
	ScatteredWines  []analysis.ScatteredGroup  `json:"scatteredWines"`
	ColorIssues     []analysis.AdjacencyIssue  `json:"colorIssues"`
	RowMap          models.RowMap              `json:"rowMap"`
}

// Proposal is the {reasoning, actions} shape the reasoning service returns.
type Proposal struct {
	Reasoning string          `json:"reasoning"`
	Actions   []models.Action `json:"actions"`
}

// ReviewRequest asks the reasoning service for a second opinion on a plan.
type ReviewRequest struct {
	Snapshot StateSnapshot
	Plan     models.Plan
	Escalate bool // use the more capable review model
}

// ReviewResponse is the reviewer's verdict. Actions carries the patched
// action list when Verdict is "patch".
type ReviewResponse struct {
	Verdict string          `json:"verdict"`
	Reason  string          `json:"reason"`
	Actions []models.Action `json:"actions,omitempty"`
}

// Reasoner is the external reasoning service at the planning boundary.
// Both methods are advisory: callers must treat every error as a signal to
// fall back, never as a failure.
type Reasoner interface {
	ProposePlan(ctx context.Context, snapshot StateSnapshot, draft models.Plan) (*Proposal, error)
	ReviewPlan(ctx context.Context, req ReviewRequest) (*ReviewResponse, error)
}

// WarnFunc receives pipeline warnings (filtered actions, fallbacks).
type WarnFunc func(format string, args ...any)

func (w WarnFunc) warnf(format string, args ...any) {
	if w != nil {
		w(format, args...)
	}
}

// Refine is the optional second layer: it hands the draft and the state
// snapshot to the reasoning service and re-validates whatever comes back.
// On any failure the draft is returned untouched; refinement is
// best-effort, never a hard dependency.
func Refine(ctx context.Context, r Reasoner, snapshot StateSnapshot, draft models.Plan, reg *zones.Registry, warn WarnFunc) models.Plan {
	if r == nil {
		return draft
	}
	prop, err := r.ProposePlan(ctx, snapshot, draft)
	if err != nil || prop == nil {
		warn.warnf("plan refinement unavailable, using deterministic draft: %v", err)
		return draft
	}

	actions := SanitizeActions(prop.Actions, snapshot.RowMap, reg, warn)
	if len(actions) == 0 && len(draft.Actions) > 0 {
		warn.warnf("refinement returned no usable actions, keeping draft")
		return draft
	}

	refined := draft
	refined.Actions = actions
	if prop.Reasoning != "" {
		refined.Reasoning = prop.Reasoning
	}
	return refined
}

// SanitizeActions re-validates externally-sourced actions: structurally
// invalid actions and unknown zone identifiers are dropped, reallocations
// whose row is not owned by the stated source are dropped, and actions
// that would introduce a new color-adjacency violation are flagged in
// their reason but kept for downstream handling.
func SanitizeActions(actions []models.Action, m models.RowMap, reg *zones.Registry, warn WarnFunc) []models.Action {
	before := len(ColorViolations(m, reg))

	cur := m
	out := make([]models.Action, 0, len(actions))
	for _, a := range actions {
		if err := a.Validate(); err != nil {
			warn.warnf("dropping malformed action: %v", err)
			continue
		}
		if a.SourceZone != "" && !reg.Has(a.SourceZone) {
			warn.warnf("dropping action with unknown zone %q", a.SourceZone)
			continue
		}
		if a.TargetZone != "" && !reg.Has(a.TargetZone) {
			warn.warnf("dropping action with unknown zone %q", a.TargetZone)
			continue
		}
		if a.Type == models.ActionReallocateRow && !models.ContainsRow(cur[a.SourceZone], a.Row) {
			warn.warnf("dropping reallocation: %s does not own %s", a.SourceZone, a.Row)
			continue
		}

		next, ok := ApplyAction(cur, a)
		if ok {
			if zone := bufferOverLimit(next, reg); zone != "" && bufferOverLimit(cur, reg) == "" {
				warn.warnf("dropping action: buffer zone %s is limited to one row", zone)
				continue
			}
			if after := len(ColorViolations(next, reg)); after > before {
				a.Reason = fmt.Sprintf("%s [flagged: introduces color-adjacency conflict]", a.Reason)
			}
			cur = next
		}
		out = append(out, a)
	}
	return out
}

// bufferOverLimit returns the ID of a buffer zone holding more than one
// row, or empty when the cap holds everywhere.
func bufferOverLimit(m models.RowMap, reg *zones.Registry) string {
	for zone, rows := range m {
		if len(rows) > 1 && reg.IsBuffer(zone) {
			return zone
		}
	}
	return ""
}

// ColorViolations lists adjacent row pairs owned by color-incompatible
// zones.
func ColorViolations(m models.RowMap, reg *zones.Registry) []analysis.AdjacencyIssue {
	var out []analysis.AdjacencyIssue
	for n := models.FirstRow; n < models.LastRow; n++ {
		a, b := models.RowName(n), models.RowName(n+1)
		za, zb := m.OwnerOf(a), m.OwnerOf(b)
		if za == "" || zb == "" || za == zb {
			continue
		}
		ca, cb := reg.ColorOf(za), reg.ColorOf(zb)
		if !models.ColorsCompatible(ca, cb) {
			out = append(out, analysis.AdjacencyIssue{RowA: a, RowB: b, ZoneA: za, ZoneB: zb, ColorA: ca, ColorB: cb})
		}
	}
	return out
}
