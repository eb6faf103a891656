package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vintry/internal/db"
	"github.com/example/vintry/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the vintry database",
		Long:  `Initialize the vintry database at ~/.vintry/vintry.db and seed the physical slot grid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing vintry database at %s\n", dbPath)

			if err := db.InitSchema(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			// Seed the physical grid: cellar rows R1..R19 plus fridge F1..F9.
			cellarID := wire.Config().CellarID
			if err := wire.Slots().Seed(cmd.Context(), cellarID); err != nil {
				return fmt.Errorf("failed to seed slot grid: %w", err)
			}

			fmt.Printf("✓ Slot grid seeded for cellar %s\n", cellarID)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  vintry zones")
			fmt.Println("  vintry plan generate")

			return nil
		},
	}
}
