package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/vintry/internal/core/moves"
	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/wire"
)

// MoveCmd returns the move command group.
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Execute direct bottle-slot moves",
	}
	cmd.AddCommand(moveExecCmd())
	return cmd
}

func moveExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec [batch.json]",
		Short: "Validate and atomically execute a move batch",
		Long: `Execute a batch of bottle moves. The batch is a JSON array of
{"wineId", "from", "to"} objects, read from a file or from stdin when the
argument is "-".

Moves can also be given inline: repeated --move WINE:FROM:TO flags, or the
paired form --wines W1,W2 --from R1C1..R1C2 --to R2C1..R2C2 where ranges
expand in order and must match the wine count.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moveFlags, _ := cmd.Flags().GetStringArray("move")
			wines, _ := cmd.Flags().GetString("wines")

			var batch []models.Move
			var err error
			switch {
			case len(args) == 1:
				batch, err = readMoveBatch(args[0])
			case len(moveFlags) > 0:
				batch, err = parseMoveFlags(moveFlags)
			case wines != "":
				from, _ := cmd.Flags().GetString("from")
				to, _ := cmd.Flags().GetString("to")
				batch, err = pairMoves(wines, from, to)
			default:
				return fmt.Errorf("provide a batch file, --move flags, or --wines with --from/--to")
			}
			if err != nil {
				return err
			}

			return wire.MoveAdapter().Execute(cmd.Context(), wire.Config().CellarID, batch)
		},
	}
	cmd.Flags().StringArray("move", nil, "move as WINE:FROM:TO (repeatable)")
	cmd.Flags().String("wines", "", "comma-separated wine IDs for the paired form")
	cmd.Flags().String("from", "", "source slot or range, e.g. R1C1..R1C3")
	cmd.Flags().String("to", "", "target slot or range, e.g. R2C1..R2C3")
	return cmd
}

func readMoveBatch(path string) ([]models.Move, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read move batch: %w", err)
	}

	var batch []models.Move
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, fmt.Errorf("malformed move batch: %w", err)
	}
	return batch, nil
}

func parseMoveFlags(flags []string) ([]models.Move, error) {
	out := make([]models.Move, 0, len(flags))
	for _, f := range flags {
		parts := strings.SplitN(f, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("invalid --move %q, expected WINE:FROM:TO", f)
		}
		out = append(out, models.Move{
			WineID: parts[0],
			From:   strings.ToUpper(strings.TrimSpace(parts[1])),
			To:     strings.ToUpper(strings.TrimSpace(parts[2])),
		})
	}
	return out, nil
}

// pairMoves zips a wine list with expanded from/to slot ranges.
func pairMoves(wines, from, to string) ([]models.Move, error) {
	ids := splitList(wines)
	fromSlots := expandRangeArg(from)
	toSlots := expandRangeArg(to)

	if len(ids) == 0 || len(fromSlots) != len(ids) || len(toSlots) != len(ids) {
		return nil, fmt.Errorf("--wines, --from, and --to must name the same number of entries (%d wines, %d from, %d to)",
			len(ids), len(fromSlots), len(toSlots))
	}

	out := make([]models.Move, len(ids))
	for i, id := range ids {
		out[i] = models.Move{WineID: id, From: fromSlots[i], To: toSlots[i]}
	}
	return out, nil
}

func expandRangeArg(arg string) []string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil
	}
	if start, end, ok := strings.Cut(arg, ".."); ok {
		return moves.ExpandRange(start, end)
	}
	return []string{strings.ToUpper(arg)}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
