package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/vintry/internal/app"
	"github.com/example/vintry/internal/wire"
)

// SettingsCmd returns the settings command group.
func SettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage per-cellar settings overrides",
	}
	cmd.AddCommand(settingsThresholdCmd())
	return cmd
}

func settingsThresholdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "threshold [pct]",
		Short: "Show or set the change-threshold percentage (0 disables the gate)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cellarID := wire.Config().CellarID

			if len(args) == 0 {
				raw, err := wire.Settings().Get(cmd.Context(), cellarID, app.SettingReconfigThresholdPct)
				if err != nil {
					return fmt.Errorf("failed to read setting: %w", err)
				}
				if raw == "" {
					fmt.Printf("Threshold: %d%% (default)\n", wire.Config().ThresholdPct)
				} else {
					fmt.Printf("Threshold: %s%% (cellar override)\n", raw)
				}
				return nil
			}

			pct, err := strconv.Atoi(args[0])
			if err != nil || pct < 0 || pct > 100 {
				return fmt.Errorf("threshold must be an integer between 0 and 100")
			}

			if err := wire.Settings().Set(cmd.Context(), cellarID, app.SettingReconfigThresholdPct, strconv.Itoa(pct)); err != nil {
				return fmt.Errorf("failed to save setting: %w", err)
			}
			if pct == 0 {
				fmt.Println("✓ Threshold gate disabled")
			} else {
				fmt.Printf("✓ Threshold set to %d%%\n", pct)
			}
			return nil
		},
	}
}
