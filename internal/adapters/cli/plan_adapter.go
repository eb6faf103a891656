// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/ports/primary"
)

// PlanAdapter is a thin adapter that translates CLI operations to
// ReconfigService calls. It depends only on the service interface,
// enabling testing with mocks.
type PlanAdapter struct {
	service primary.ReconfigService
	out     io.Writer
}

// NewPlanAdapter creates a new PlanAdapter with the given service.
func NewPlanAdapter(service primary.ReconfigService, out io.Writer) *PlanAdapter {
	return &PlanAdapter{
		service: service,
		out:     out,
	}
}

// Generate runs the planning pipeline and renders the resulting plan.
func (a *PlanAdapter) Generate(ctx context.Context, cellarID string, req primary.GeneratePlanRequest) error {
	resp, err := a.service.GeneratePlan(ctx, cellarID, req)
	if err != nil {
		return err
	}

	if resp.Plan == nil {
		a.renderBlocked(resp.Threshold)
		return nil
	}

	fmt.Fprintf(a.out, "✓ Generated plan %s\n", resp.PlanID)
	a.RenderPlan(resp.Plan)
	fmt.Fprintf(a.out, "\nApply within %s:  vintry plan apply %s\n", models.PlanTTL, resp.PlanID)
	return nil
}

// Apply executes a stored plan and reports the result.
func (a *PlanAdapter) Apply(ctx context.Context, cellarID string, req primary.ApplyPlanRequest) error {
	resp, err := a.service.ApplyPlan(ctx, cellarID, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Applied plan: %d zones changed, %d actions applied\n",
		resp.ZonesChanged, resp.ActionsApplied)
	if resp.ActionsSkipped > 0 {
		fmt.Fprintf(a.out, "  %d actions skipped on request\n", resp.ActionsSkipped)
	}
	if resp.ActionsAutoSkipped > 0 {
		fmt.Fprintf(a.out, "  %s %d actions auto-skipped (state changed since planning)\n",
			color.New(color.FgYellow).Sprint("!"), resp.ActionsAutoSkipped)
	}
	fmt.Fprintf(a.out, "\nUndo with:  vintry plan undo %s\n", resp.ReconfigurationID)
	return nil
}

// Undo reverts an applied reconfiguration.
func (a *PlanAdapter) Undo(ctx context.Context, cellarID, reconfigurationID string) error {
	if err := a.service.Undo(ctx, cellarID, reconfigurationID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Reverted reconfiguration %s\n", reconfigurationID)
	return nil
}

// Check renders the threshold gate status.
func (a *PlanAdapter) Check(ctx context.Context, cellarID string) error {
	status, err := a.service.CheckThreshold(ctx, cellarID)
	if err != nil {
		return err
	}

	if status.Allowed {
		fmt.Fprintf(a.out, "%s Enough change accumulated; plan generation is allowed\n",
			color.New(color.FgGreen).Sprint("✓"))
		return nil
	}
	a.renderBlocked(status)
	return nil
}

// RenderPlan prints a plan's reasoning, actions, summary, and review.
func (a *PlanAdapter) RenderPlan(plan *models.Plan) {
	if plan.Reasoning != "" {
		fmt.Fprintf(a.out, "\n%s\n", plan.Reasoning)
	}

	if len(plan.Actions) == 0 {
		fmt.Fprintln(a.out, "\nNo actions needed; the cellar layout is already coherent")
	} else {
		fmt.Fprintf(a.out, "\n%-3s %-20s %-4s %s\n", "#", "ACTION", "PRI", "DETAIL")
		fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
		for i, act := range plan.Actions {
			fmt.Fprintf(a.out, "%-3d %-20s %-4d %s\n", i+1, act.Type, act.Priority, act.Describe())
			if act.Reason != "" {
				fmt.Fprintf(a.out, "    %s\n", color.New(color.Faint).Sprint(act.Reason))
			}
		}
	}

	s := plan.Summary
	fmt.Fprintf(a.out, "\nZones changed: %d   Bottles affected: ~%d   Misplaced: %d → %d\n",
		s.ZonesChanged, s.BottlesAffected, s.MisplacedBefore, s.MisplacedAfter)

	if r := plan.Review; r != nil {
		verdict := r.Verdict
		switch r.Verdict {
		case models.VerdictApprove:
			verdict = color.New(color.FgGreen).Sprint(r.Verdict)
		case models.VerdictPatch:
			verdict = color.New(color.FgYellow).Sprint(r.Verdict)
		case models.VerdictReject:
			verdict = color.New(color.FgRed).Sprint(r.Verdict)
		}
		fmt.Fprintf(a.out, "Review: %s (stability %.2f)", verdict, r.StabilityScore)
		if r.Escalated {
			fmt.Fprint(a.out, " [escalated]")
		}
		if r.Reason != "" {
			fmt.Fprintf(a.out, ": %s", r.Reason)
		}
		fmt.Fprintln(a.out)
	}
}

func (a *PlanAdapter) renderBlocked(status *primary.ThresholdStatus) {
	fmt.Fprintf(a.out, "%s Not enough change since the last reconfiguration\n",
		color.New(color.FgYellow).Sprint("!"))
	fmt.Fprintf(a.out, "  %d of %d changed bottles (%d%% of %d)\n",
		status.ChangeCount, status.Threshold, status.ThresholdPct, status.TotalBottles)
	fmt.Fprintln(a.out, "  Use --force to plan anyway")
}
