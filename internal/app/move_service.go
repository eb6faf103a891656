package app

import (
	"context"
	"fmt"

	"github.com/example/vintry/internal/core/moves"
	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/ports/primary"
	"github.com/example/vintry/internal/ports/secondary"
)

// MoveServiceImpl implements primary.MoveService: validated, atomic
// bottle-slot moves independent of zone planning.
type MoveServiceImpl struct {
	wines secondary.WineRepository
	slots secondary.SlotRepository
	uow   secondary.UnitOfWork
	cache secondary.CacheInvalidator
	logw  secondary.LogWriter
}

// NewMoveService creates the move executor.
func NewMoveService(wines secondary.WineRepository, slots secondary.SlotRepository, uow secondary.UnitOfWork, cache secondary.CacheInvalidator, logw secondary.LogWriter) *MoveServiceImpl {
	return &MoveServiceImpl{wines: wines, slots: slots, uow: uow, cache: cache, logw: logw}
}

// ExecuteMoves validates the batch and, only if every move is legal,
// executes it inside one transaction. The total occupied-slot count is
// captured before any mutation and re-counted after: a mismatch (for
// example a double-cleared slot) aborts the entire transaction.
func (s *MoveServiceImpl) ExecuteMoves(ctx context.Context, cellarID string, batch []models.Move) (*primary.ExecuteMovesResponse, error) {
	if len(batch) == 0 {
		return &primary.ExecuteMovesResponse{Validation: models.MoveValidation{Valid: true}}, nil
	}

	wineIDs := make([]string, 0, len(batch))
	for _, mv := range batch {
		wineIDs = append(wineIDs, mv.WineID)
	}
	locations, err := s.wines.GetLocations(ctx, cellarID, wineIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load wine locations: %w", err)
	}
	occupied, err := s.slots.OccupiedMap(ctx, cellarID)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot occupancy: %w", err)
	}

	validation := moves.Validate(batch, locations, occupied)
	if !validation.Valid {
		return &primary.ExecuteMovesResponse{Validation: validation}, nil
	}

	results := make([]models.MoveResult, 0, len(batch))
	err = s.uow.InTx(ctx, func(ctx context.Context, stores secondary.TxStores) error {
		before, err := stores.Slots().CountOccupied(ctx, cellarID)
		if err != nil {
			return fmt.Errorf("failed to count occupied slots: %w", err)
		}

		for _, mv := range batch {
			if err := stores.Slots().Clear(ctx, cellarID, mv.From); err != nil {
				return fmt.Errorf("failed to clear %s: %w", mv.From, err)
			}
			if err := stores.Slots().Assign(ctx, cellarID, mv.To, mv.WineID); err != nil {
				return fmt.Errorf("failed to assign %s to %s: %w", mv.WineID, mv.To, err)
			}
			if mv.ZoneID != "" {
				if err := stores.Wines().SetZone(ctx, cellarID, mv.WineID, mv.ZoneID); err != nil {
					return fmt.Errorf("failed to update zone for %s: %w", mv.WineID, err)
				}
			}
			results = append(results, models.MoveResult{WineID: mv.WineID, From: mv.From, To: mv.To, Moved: true})
		}

		after, err := stores.Slots().CountOccupied(ctx, cellarID)
		if err != nil {
			return fmt.Errorf("failed to re-count occupied slots: %w", err)
		}
		if after != before {
			return fmt.Errorf("%w: occupied slot count changed from %d to %d", ErrIntegrity, before, after)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateCellar(ctx, cellarID)
	}
	return &primary.ExecuteMovesResponse{
		Moved:      len(results),
		Results:    results,
		Validation: validation,
	}, nil
}
