package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/vintry/internal/core/planner"
	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/ports/primary"
	"github.com/example/vintry/internal/ports/secondary"
)

// ApplyPlan executes a stored plan inside one transaction. Each non-skipped
// action is replayed in order against live state; actions whose
// preconditions no longer hold (allocations can change between generation
// and apply) are skipped with a warning rather than aborting. The row
// coverage check gates the commit, and a before-snapshot is persisted so
// the whole change can be undone.
func (s *ReconfigServiceImpl) ApplyPlan(ctx context.Context, cellarID string, req primary.ApplyPlanRequest) (*primary.ApplyPlanResponse, error) {
	stored, err := s.plans.Get(ctx, req.PlanID, cellarID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if stored == nil {
		return nil, ErrPlanNotFound
	}
	plan := stored.Plan
	if plan.Review != nil && plan.Review.Verdict == models.VerdictReject {
		return nil, ErrPlanRejected
	}

	skip := make(map[int]bool, len(req.SkipActions))
	for _, i := range req.SkipActions {
		skip[i] = true
	}

	resp := &primary.ApplyPlanResponse{CanUndo: true}
	recID := uuid.NewString()

	err = s.uow.InTx(ctx, func(ctx context.Context, stores secondary.TxStores) error {
		allocs, err := stores.Allocations().ListByCellar(ctx, cellarID)
		if err != nil {
			return fmt.Errorf("failed to load allocations: %w", err)
		}
		before := models.BuildRowMap(allocs)
		wineCounts := make(map[string]int, len(allocs))
		for _, a := range allocs {
			wineCounts[a.ZoneID] = a.WineCount
		}

		affected := affectedZones(plan.Actions)
		snapshot, err := buildSnapshot(ctx, stores, cellarID, affected, allocs)
		if err != nil {
			return err
		}

		// Replay. The row map is recomputed incrementally so later actions
		// see earlier ones' effects.
		cur := before
		var autoSkipped []int
		for i, a := range plan.Actions {
			if skip[i] {
				continue
			}
			if a.Type == models.ActionExpandZone {
				row := planner.FreeRow(cur, a.Row)
				if row == "" {
					return fmt.Errorf("%w: cannot expand %s", ErrNoAvailableRow, a.TargetZone)
				}
				a.Row = row
			}
			next, ok := planner.ApplyAction(cur, a)
			if !ok {
				autoSkipped = append(autoSkipped, i)
				s.warn(ctx, cellarID, "apply", fmt.Sprintf("skipping stale action %d (%s): preconditions no longer hold", i, a.Describe()))
				continue
			}
			cur = next
			resp.ActionsApplied++

			if a.Type == models.ActionMergeZones || a.Type == models.ActionRetireZone {
				if _, err := stores.Wines().SetZoneBulk(ctx, cellarID, a.SourceZone, a.TargetZone); err != nil {
					return fmt.Errorf("failed to move wines from %s to %s: %w", a.SourceZone, a.TargetZone, err)
				}
				wineCounts[a.TargetZone] += wineCounts[a.SourceZone]
				delete(wineCounts, a.SourceZone)
			}
		}

		// Pre-commit gate: the grid must still be covered exactly once and
		// no buffer zone may end up with more than its single row.
		diags := planner.ValidateCoverage(cur)
		diags = append(diags, planner.ValidateRowLimits(cur, s.registry)...)
		if len(diags) > 0 {
			return fmt.Errorf("%w: %s", ErrIntegrity, strings.Join(diags, "; "))
		}

		if err := persistRowMapDiff(ctx, stores.Allocations(), cellarID, before, cur, wineCounts); err != nil {
			return err
		}

		zonesChanged := changedZones(before, cur)
		resp.ZonesChanged = len(zonesChanged)
		resp.ActionsSkipped = len(req.SkipActions)
		resp.ActionsAutoSkipped = len(autoSkipped)

		rec := &models.Reconfiguration{
			ID:             recID,
			CellarID:       cellarID,
			Plan:           plan,
			SkippedActions: req.SkipActions,
			AutoSkipped:    autoSkipped,
			Snapshot:       snapshot,
			ZonesChanged:   resp.ZonesChanged,
			AppliedAt:      time.Now().UTC(),
		}
		if err := stores.Reconfigurations().Create(ctx, rec); err != nil {
			return fmt.Errorf("failed to record reconfiguration: %w", err)
		}

		if err := stores.Counters().Reset(ctx, cellarID); err != nil {
			return fmt.Errorf("failed to reset change counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.ReconfigurationID = recID
	if err := s.plans.Delete(ctx, req.PlanID); err != nil {
		s.warn(ctx, cellarID, "plan_store", fmt.Sprintf("failed to delete applied plan %s: %v", req.PlanID, err))
	}
	if s.cache != nil {
		s.cache.InvalidateCellar(ctx, cellarID)
	}
	return resp, nil
}

// Undo reverts an applied reconfiguration: current allocations for the
// affected zones are dropped and the snapshot's allocations and wine zone
// identities are re-inserted verbatim. All-or-nothing.
func (s *ReconfigServiceImpl) Undo(ctx context.Context, cellarID, reconfigurationID string) error {
	rec, err := s.reconfigs.GetByID(ctx, reconfigurationID, cellarID)
	if err != nil {
		return fmt.Errorf("failed to load reconfiguration: %w", err)
	}
	if rec == nil {
		return ErrReconfigNotFound
	}
	if rec.UndoneAt != nil {
		return ErrAlreadyUndone
	}

	err = s.uow.InTx(ctx, func(ctx context.Context, stores secondary.TxStores) error {
		affected := affectedZones(rec.Plan.Actions)
		for _, snap := range rec.Snapshot.Allocations {
			affected[snap.ZoneID] = true
		}
		for zone := range affected {
			if err := stores.Allocations().Delete(ctx, cellarID, zone); err != nil {
				return fmt.Errorf("failed to clear allocation for %s: %w", zone, err)
			}
		}
		for _, snap := range rec.Snapshot.Allocations {
			if err := stores.Allocations().Upsert(ctx, &models.Allocation{
				CellarID:  cellarID,
				ZoneID:    snap.ZoneID,
				Rows:      snap.Rows,
				WineCount: snap.WineCount,
			}); err != nil {
				return fmt.Errorf("failed to restore allocation for %s: %w", snap.ZoneID, err)
			}
		}
		for wineID, zone := range rec.Snapshot.WineZones {
			if err := stores.Wines().SetZone(ctx, cellarID, wineID, zone); err != nil {
				return fmt.Errorf("failed to restore wine %s: %w", wineID, err)
			}
		}
		// A concurrent undo can win between the pre-check above and here;
		// MarkUndone reports that as no rows updated.
		if err := stores.Reconfigurations().MarkUndone(ctx, rec.ID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrAlreadyUndone
			}
			return fmt.Errorf("failed to mark reconfiguration undone: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.InvalidateCellar(ctx, cellarID)
	}
	return nil
}

// affectedZones collects every zone named by the plan's actions.
func affectedZones(actions []models.Action) map[string]bool {
	out := make(map[string]bool)
	for _, a := range actions {
		if a.SourceZone != "" {
			out[a.SourceZone] = true
		}
		if a.TargetZone != "" {
			out[a.TargetZone] = true
		}
	}
	return out
}

// buildSnapshot captures the before-image: the affected zones' current
// allocations and the affected wines' zone identities.
func buildSnapshot(ctx context.Context, stores secondary.TxStores, cellarID string, affected map[string]bool, allocs []*models.Allocation) (models.Snapshot, error) {
	snap := models.Snapshot{WineZones: make(map[string]string)}

	zoneIDs := make([]string, 0, len(affected))
	for zone := range affected {
		zoneIDs = append(zoneIDs, zone)
	}
	sort.Strings(zoneIDs)

	byZone := make(map[string]*models.Allocation, len(allocs))
	for _, a := range allocs {
		byZone[a.ZoneID] = a
	}
	for _, zone := range zoneIDs {
		a := byZone[zone]
		if a == nil {
			continue
		}
		rows := make([]string, len(a.Rows))
		copy(rows, a.Rows)
		snap.Allocations = append(snap.Allocations, models.AllocationSnapshot{
			ZoneID:    zone,
			Rows:      rows,
			WineCount: a.WineCount,
		})
	}

	wines, err := stores.Wines().ListByZones(ctx, cellarID, zoneIDs)
	if err != nil {
		return snap, fmt.Errorf("failed to snapshot wines: %w", err)
	}
	for _, w := range wines {
		snap.WineZones[w.ID] = w.ZoneID
	}
	return snap, nil
}

// persistRowMapDiff writes only the allocations that actually changed and
// deletes allocations for zones that no longer own rows.
func persistRowMapDiff(ctx context.Context, repo secondary.AllocationRepository, cellarID string, before, after models.RowMap, wineCounts map[string]int) error {
	for zone := range before {
		if _, ok := after[zone]; !ok {
			if err := repo.Delete(ctx, cellarID, zone); err != nil {
				return fmt.Errorf("failed to delete allocation for %s: %w", zone, err)
			}
		}
	}
	for zone, rows := range after {
		if sameRows(before[zone], rows) {
			if _, existed := before[zone]; existed {
				continue
			}
		}
		if err := repo.Upsert(ctx, &models.Allocation{
			CellarID:  cellarID,
			ZoneID:    zone,
			Rows:      rows,
			WineCount: wineCounts[zone],
		}); err != nil {
			return fmt.Errorf("failed to persist allocation for %s: %w", zone, err)
		}
	}
	return nil
}

// changedZones lists zones whose row sets differ between the two maps.
func changedZones(before, after models.RowMap) []string {
	var out []string
	for zone := range before {
		if _, ok := after[zone]; !ok {
			out = append(out, zone)
		}
	}
	for zone, rows := range after {
		if prev, ok := before[zone]; !ok || !sameRows(prev, rows) {
			out = append(out, zone)
		}
	}
	sort.Strings(out)
	return out
}

func sameRows(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
