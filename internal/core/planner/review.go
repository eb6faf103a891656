package planner

import (
	"context"
	"time"

	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/zones"
)

// ReviewTelemetry is persisted for every review attempt regardless of
// outcome.
type ReviewTelemetry struct {
	Verdict        string
	Escalated      bool
	FallbackUsed   bool
	LatencyMs      int64
	StabilityScore float64
}

// Review runs the optional second opinion over a drafted plan. Complex
// scenarios (score at or above the escalation threshold) use the more
// capable review model. The reviewer may approve the plan unchanged, patch
// it with targeted edits (re-validated like any external output), or
// reject it with a reason. Review failures fall back to approving the
// plan as drafted.
func Review(ctx context.Context, r Reasoner, snapshot StateSnapshot, plan models.Plan, score float64, reg *zones.Registry, warn WarnFunc) (models.Plan, ReviewTelemetry) {
	stability := 1.0 - score
	meta := &models.ReviewMetadata{
		Verdict:        models.VerdictApprove,
		StabilityScore: stability,
		Escalated:      score >= EscalationThreshold,
	}
	tel := ReviewTelemetry{
		Verdict:        models.VerdictApprove,
		Escalated:      meta.Escalated,
		StabilityScore: stability,
	}

	if r == nil {
		plan.Review = meta
		return plan, tel
	}

	start := time.Now()
	resp, err := r.ReviewPlan(ctx, ReviewRequest{Snapshot: snapshot, Plan: plan, Escalate: meta.Escalated})
	tel.LatencyMs = time.Since(start).Milliseconds()

	if err != nil || resp == nil {
		warn.warnf("plan review unavailable, approving as drafted: %v", err)
		tel.FallbackUsed = true
		plan.Review = meta
		return plan, tel
	}

	switch resp.Verdict {
	case models.VerdictPatch:
		patched := SanitizeActions(resp.Actions, snapshot.RowMap, reg, warn)
		if len(patched) > 0 {
			meta.Verdict = models.VerdictPatch
			meta.PatchesApplied = len(patched)
			plan.Actions = patched
		} else {
			warn.warnf("review patch produced no valid actions, keeping drafted plan")
		}
	case models.VerdictReject:
		meta.Verdict = models.VerdictReject
	default:
		// Anything unrecognised counts as approval of the draft.
	}
	meta.Reason = resp.Reason

	tel.Verdict = meta.Verdict
	plan.Review = meta
	return plan, tel
}
