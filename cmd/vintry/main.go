package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/vintry/internal/cli"
	"github.com/example/vintry/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "vintry",
		Short:   "vintry - wine cellar zone reconfiguration",
		Version: version.String(),
		Long: `vintry manages the physical layout of a wine cellar: it plans zone-to-row
reallocations from the analysis report, applies them transactionally with
undo, and executes direct bottle moves.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.PlanCmd())
	rootCmd.AddCommand(cli.MoveCmd())
	rootCmd.AddCommand(cli.ZonesCmd())
	rootCmd.AddCommand(cli.PinCmd())
	rootCmd.AddCommand(cli.SettingsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
