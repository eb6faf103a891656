package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/ports/primary"
)

// MoveAdapter translates CLI move operations to MoveService calls.
type MoveAdapter struct {
	service primary.MoveService
	out     io.Writer
}

// NewMoveAdapter creates a new MoveAdapter with the given service.
func NewMoveAdapter(service primary.MoveService, out io.Writer) *MoveAdapter {
	return &MoveAdapter{
		service: service,
		out:     out,
	}
}

// Execute validates and runs a move batch, rendering either the conflict
// report or the per-move results.
func (a *MoveAdapter) Execute(ctx context.Context, cellarID string, batch []models.Move) error {
	resp, err := a.service.ExecuteMoves(ctx, cellarID, batch)
	if err != nil {
		return err
	}

	if !resp.Validation.Valid {
		fmt.Fprintf(a.out, "%s Batch rejected; nothing was moved\n",
			color.New(color.FgRed).Sprint("✗"))
		for _, c := range resp.Validation.Conflicts {
			fmt.Fprintf(a.out, "  %s: %s\n", c.WineID, c.Reason)
		}
		return fmt.Errorf("%d move conflicts", len(resp.Validation.Conflicts))
	}

	for _, r := range resp.Results {
		from := r.From
		if from == "" {
			from = "(unplaced)"
		}
		fmt.Fprintf(a.out, "  %s: %s → %s\n", r.WineID, from, r.To)
	}
	fmt.Fprintf(a.out, "%s Moved %d bottles\n", color.New(color.FgGreen).Sprint("✓"), resp.Moved)
	return nil
}
