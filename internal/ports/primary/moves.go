package primary

import (
	"context"

	"github.com/example/vintry/internal/models"
)

// MoveService validates and atomically executes direct bottle-slot moves,
// independent of zone planning.
type MoveService interface {
	ExecuteMoves(ctx context.Context, cellarID string, moves []models.Move) (*ExecuteMovesResponse, error)
}

// ExecuteMovesResponse reports the batch outcome. When validation fails,
// Moved is 0, Results is empty, and Validation lists the conflicts; no
// state was touched.
type ExecuteMovesResponse struct {
	Moved      int                   `json:"moved"`
	Results    []models.MoveResult   `json:"results"`
	Validation models.MoveValidation `json:"validation"`
}
