package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/vintry/internal/ports/primary"
	"github.com/example/vintry/internal/wire"
)

// PlanCmd returns the plan command group.
func PlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate, inspect, apply, and undo zone reconfiguration plans",
	}
	cmd.AddCommand(planGenerateCmd())
	cmd.AddCommand(planShowCmd())
	cmd.AddCommand(planApplyCmd())
	cmd.AddCommand(planUndoCmd())
	cmd.AddCommand(planCheckCmd())
	cmd.AddCommand(planHistoryCmd())
	return cmd
}

func planGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a reconfiguration plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			retire, _ := cmd.Flags().GetBool("retire")
			newZones, _ := cmd.Flags().GetBool("new-zones")
			stability, _ := cmd.Flags().GetString("stability")
			force, _ := cmd.Flags().GetBool("force")

			if stability == "" {
				stability = wire.Config().DefaultStability
			}

			return wire.PlanAdapter().Generate(cmd.Context(), wire.Config().CellarID, primary.GeneratePlanRequest{
				IncludeRetirements: retire,
				IncludeNewZones:    newZones,
				StabilityBias:      stability,
				Force:              force,
			})
		},
	}
	cmd.Flags().Bool("retire", false, "allow retirement of empty zones")
	cmd.Flags().Bool("new-zones", false, "allow allocating rows to zones with no allocation yet")
	cmd.Flags().String("stability", "", "stability bias: low, moderate, or high")
	cmd.Flags().Bool("force", false, "bypass the change-threshold gate")
	return cmd
}

func planShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [plan-id]",
		Short: "Show a stored plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cellarID := wire.Config().CellarID
			stored, err := wire.Plans().Get(cmd.Context(), args[0], cellarID)
			if err != nil {
				return fmt.Errorf("failed to load plan: %w", err)
			}
			if stored == nil {
				return fmt.Errorf("plan %s not found or expired", args[0])
			}

			fmt.Printf("Plan %s (created %s)\n", stored.ID, stored.CreatedAt.Format("2006-01-02 15:04"))
			wire.PlanAdapter().RenderPlan(&stored.Plan)
			return nil
		},
	}
}

func planApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [plan-id]",
		Short: "Apply a stored plan transactionally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skipRaw, _ := cmd.Flags().GetString("skip")
			skips, err := parseSkipList(skipRaw)
			if err != nil {
				return err
			}

			return wire.PlanAdapter().Apply(cmd.Context(), wire.Config().CellarID, primary.ApplyPlanRequest{
				PlanID:      args[0],
				SkipActions: skips,
			})
		},
	}
	cmd.Flags().String("skip", "", "comma-separated 1-based action numbers to skip, e.g. 2,5")
	return cmd
}

func planUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo [reconfiguration-id]",
		Short: "Revert an applied reconfiguration from its snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PlanAdapter().Undo(cmd.Context(), wire.Config().CellarID, args[0])
		},
	}
}

func planCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check whether enough change has accumulated to plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PlanAdapter().Check(cmd.Context(), wire.Config().CellarID)
		},
	}
}

func planHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List applied reconfigurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			recs, err := wire.Reconfigurations().ListByCellar(cmd.Context(), wire.Config().CellarID, limit)
			if err != nil {
				return fmt.Errorf("failed to list reconfigurations: %w", err)
			}

			if len(recs) == 0 {
				fmt.Println("No reconfigurations applied yet")
				return nil
			}

			fmt.Printf("\n%-38s %-18s %-7s %s\n", "ID", "APPLIED", "ZONES", "STATUS")
			fmt.Println("────────────────────────────────────────────────────────────────────────")
			for _, r := range recs {
				status := "applied"
				if r.UndoneAt != nil {
					status = "undone"
				}
				fmt.Printf("%-38s %-18s %-7d %s\n",
					r.ID, r.AppliedAt.Format("2006-01-02 15:04"), r.ZonesChanged, status)
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum records to show")
	return cmd
}

// parseSkipList converts the 1-based --skip flag into 0-based indices.
func parseSkipList(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid action number %q in --skip", part)
		}
		out = append(out, n-1)
	}
	return out, nil
}
