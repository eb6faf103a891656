package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/wire"
)

// PinCmd returns the pin command group.
func PinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Manage zone pins (planner constraints)",
		Long:  "Pin zones so the planner never merges or never retires them",
	}
	cmd.AddCommand(pinAddCmd())
	cmd.AddCommand(pinRemoveCmd())
	cmd.AddCommand(pinListCmd())
	return cmd
}

func validPinType(t string) bool {
	return t == models.PinNeverMerge || t == models.PinNeverRetire
}

func pinAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [zone-id] [never_merge|never_retire]",
		Short: "Pin a zone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			zoneID, pinType := args[0], args[1]
			if !wire.Registry().Has(zoneID) {
				return fmt.Errorf("unknown zone %q", zoneID)
			}
			if !validPinType(pinType) {
				return fmt.Errorf("pin type must be %s or %s", models.PinNeverMerge, models.PinNeverRetire)
			}

			err := wire.Pins().Add(cmd.Context(), &models.ZonePin{
				CellarID: wire.Config().CellarID,
				ZoneID:   zoneID,
				PinType:  pinType,
			})
			if err != nil {
				return fmt.Errorf("failed to add pin: %w", err)
			}
			fmt.Printf("✓ Pinned %s as %s\n", zoneID, pinType)
			return nil
		},
	}
}

func pinRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [zone-id] [never_merge|never_retire]",
		Short: "Remove a zone pin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			zoneID, pinType := args[0], args[1]
			if !validPinType(pinType) {
				return fmt.Errorf("pin type must be %s or %s", models.PinNeverMerge, models.PinNeverRetire)
			}

			if err := wire.Pins().Remove(cmd.Context(), wire.Config().CellarID, zoneID, pinType); err != nil {
				return fmt.Errorf("failed to remove pin: %w", err)
			}
			fmt.Printf("✓ Unpinned %s (%s)\n", zoneID, pinType)
			return nil
		},
	}
}

func pinListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List zone pins",
		RunE: func(cmd *cobra.Command, args []string) error {
			pins, err := wire.Pins().ListByCellar(cmd.Context(), wire.Config().CellarID)
			if err != nil {
				return fmt.Errorf("failed to list pins: %w", err)
			}

			if len(pins) == 0 {
				fmt.Println("No zone pins")
				return nil
			}

			fmt.Printf("\n%-16s %s\n", "ZONE", "PIN")
			fmt.Println("──────────────────────────────")
			for _, p := range pins {
				fmt.Printf("%-16s %s\n", p.ZoneID, p.PinType)
			}
			fmt.Println()
			return nil
		},
	}
}
