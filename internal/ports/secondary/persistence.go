// Package secondary defines the secondary ports (driven adapters) for the
// application: persistence, the analysis engine, the reasoning service,
// cache invalidation, and warning logs.
package secondary

import (
	"context"

	"github.com/example/vintry/internal/models"
)

// AllocationRepository persists zone→rows allocations per cellar.
type AllocationRepository interface {
	// Get retrieves one zone's allocation, nil when absent.
	Get(ctx context.Context, cellarID, zoneID string) (*models.Allocation, error)

	// ListByCellar retrieves all allocations for a cellar ordered by zone ID.
	ListByCellar(ctx context.Context, cellarID string) ([]*models.Allocation, error)

	// Upsert creates or replaces a zone's allocation.
	Upsert(ctx context.Context, alloc *models.Allocation) error

	// Delete removes a zone's allocation (zone retired into another).
	Delete(ctx context.Context, cellarID, zoneID string) error
}

// PlanStore is the short-lived, tenant-scoped plan holder. Plans expire
// models.PlanTTL after creation; expiry is enforced at read time and
// expired rows are garbage-collected opportunistically on writes.
type PlanStore interface {
	// Put persists a plan for a cellar and returns its opaque ID.
	Put(ctx context.Context, cellarID string, plan models.Plan) (string, error)

	// Get returns the plan only if it belongs to the cellar and is still
	// within its lifetime; nil otherwise. Wrong tenant and expired are
	// both "not found".
	Get(ctx context.Context, planID, cellarID string) (*models.StoredPlan, error)

	// Delete removes a stored plan.
	Delete(ctx context.Context, planID string) error
}

// ReconfigurationRepository persists applied-plan records. Records are
// only ever marked undone, never deleted.
type ReconfigurationRepository interface {
	Create(ctx context.Context, rec *models.Reconfiguration) error
	GetByID(ctx context.Context, id, cellarID string) (*models.Reconfiguration, error)
	MarkUndone(ctx context.Context, id string) error
	ListByCellar(ctx context.Context, cellarID string, limit int) ([]*models.Reconfiguration, error)
}

// ChangeCounterRepository tracks bottle-level change volume per cellar.
type ChangeCounterRepository interface {
	// Get returns the counter, nil when the cellar has never recorded one.
	Get(ctx context.Context, cellarID string) (*models.ChangeCounter, error)

	// Increment adds n to the cellar's counter, creating it lazily.
	Increment(ctx context.Context, cellarID string, n int) error

	// Reset zeroes the counter and stamps the reconfiguration time.
	Reset(ctx context.Context, cellarID string) error
}

// ZonePinRepository persists per-zone planner constraints.
type ZonePinRepository interface {
	ListByCellar(ctx context.Context, cellarID string) ([]*models.ZonePin, error)
	Add(ctx context.Context, pin *models.ZonePin) error
	Remove(ctx context.Context, cellarID, zoneID, pinType string) error
}

// WineRepository exposes the wine mutations reconfiguration needs.
type WineRepository interface {
	// ListByZones returns wines assigned to any of the given zones.
	ListByZones(ctx context.Context, cellarID string, zoneIDs []string) ([]*models.Wine, error)

	// GetLocations returns wineID → current slot for the given wines.
	// Missing wines are absent from the map.
	GetLocations(ctx context.Context, cellarID string, wineIDs []string) (map[string]string, error)

	// SetZone reassigns one wine's zone identity.
	SetZone(ctx context.Context, cellarID, wineID, zoneID string) error

	// SetZoneBulk reassigns every wine in fromZone to toZone, returning
	// the number updated.
	SetZoneBulk(ctx context.Context, cellarID, fromZone, toZone string) (int, error)

	// CountByCellar returns the cellar's total bottle count.
	CountByCellar(ctx context.Context, cellarID string) (int, error)
}

// SlotRepository exposes the physical slot grid.
type SlotRepository interface {
	// OccupiedMap returns slot code → wine ID for every occupied slot.
	OccupiedMap(ctx context.Context, cellarID string) (map[string]string, error)

	// CountOccupied returns the number of occupied slots.
	CountOccupied(ctx context.Context, cellarID string) (int, error)

	// Clear empties a slot.
	Clear(ctx context.Context, cellarID, code string) error

	// Assign places a wine in a slot.
	Assign(ctx context.Context, cellarID, code, wineID string) error

	// Seed creates the full physical grid for a cellar if absent.
	Seed(ctx context.Context, cellarID string) error
}

// SettingsRepository holds per-cellar settings overrides.
type SettingsRepository interface {
	// Get returns a setting value, "" when unset.
	Get(ctx context.Context, cellarID, key string) (string, error)
	Set(ctx context.Context, cellarID, key, value string) error
}

// ReviewTelemetryRecord is one persisted review outcome.
type ReviewTelemetryRecord struct {
	CellarID       string
	PlanID         string
	Verdict        string
	Escalated      bool
	FallbackUsed   bool
	LatencyMs      int64
	StabilityScore float64
}

// ReviewTelemetryRepository persists review telemetry regardless of
// review outcome.
type ReviewTelemetryRepository interface {
	Record(ctx context.Context, rec *ReviewTelemetryRecord) error
}

// LogWriter receives warnings the engine wants on record: filtered
// refined actions, actions skipped at apply time, GC failures. Failures
// to log are swallowed by callers.
type LogWriter interface {
	Warn(ctx context.Context, cellarID, event, detail string) error
}

// CacheInvalidator is notified after every successful apply or undo so
// dependent caches drop derived state for the cellar.
type CacheInvalidator interface {
	InvalidateCellar(ctx context.Context, cellarID string)
}
