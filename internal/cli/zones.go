package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/wire"
)

// ZonesCmd returns the zones command.
func ZonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the zone registry and current row allocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cellarID := wire.Config().CellarID
			allocs, err := wire.Allocations().ListByCellar(cmd.Context(), cellarID)
			if err != nil {
				return fmt.Errorf("failed to load allocations: %w", err)
			}

			byZone := make(map[string]*models.Allocation, len(allocs))
			for _, a := range allocs {
				byZone[a.ZoneID] = a
			}

			fmt.Printf("\n%-16s %-10s %-22s %-8s %s\n", "ZONE", "COLOR", "ROWS", "BOTTLES", "CAPACITY")
			fmt.Println("────────────────────────────────────────────────────────────────────────")
			for _, z := range wire.Registry().All() {
				rows, bottles, capacity := "-", 0, 0
				if a := byZone[z.ID]; a != nil {
					if len(a.Rows) > 0 {
						rows = strings.Join(a.Rows, ",")
					}
					bottles = a.WineCount
					capacity = models.RowsCapacity(a.Rows)
				}
				fmt.Printf("%-16s %-10s %-22s %-8d %d\n", z.ID, z.Color, rows, bottles, capacity)
			}
			fmt.Println()
			return nil
		},
	}
}
