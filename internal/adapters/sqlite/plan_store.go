package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/ports/secondary"
)

// PlanStore implements secondary.PlanStore over the stored_plans table.
// It is durable across process restarts and safe with multiple service
// instances: expiry is enforced at read time and expired rows are
// garbage-collected opportunistically on writes.
type PlanStore struct {
	q    dbtx
	logw secondary.LogWriter

	// now is swappable in tests.
	now func() time.Time
}

// NewPlanStore creates the plan store. logWriter is optional.
func NewPlanStore(q dbtx, logw secondary.LogWriter) *PlanStore {
	return &PlanStore{q: q, logw: logw, now: time.Now}
}

// Put persists a plan for a cellar and returns its opaque ID.
func (s *PlanStore) Put(ctx context.Context, cellarID string, plan models.Plan) (string, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("failed to encode plan: %w", err)
	}

	id := uuid.NewString()
	_, err = s.q.ExecContext(ctx,
		"INSERT INTO stored_plans (id, cellar_id, plan_json, created_at) VALUES (?, ?, ?, ?)",
		id, cellarID, string(data), s.now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to store plan: %w", err)
	}

	// Fire-and-forget GC of expired plans. Failure is logged, never
	// raised to the caller.
	if _, err := s.q.ExecContext(ctx,
		"DELETE FROM stored_plans WHERE created_at < ?",
		s.now().UTC().Add(-models.PlanTTL),
	); err != nil && s.logw != nil {
		_ = s.logw.Warn(ctx, cellarID, "plan_store", fmt.Sprintf("plan GC failed: %v", err))
	}

	return id, nil
}

// Get returns the plan only if it belongs to the cellar and is within its
// lifetime. Wrong tenant and expired both return nil.
func (s *PlanStore) Get(ctx context.Context, planID, cellarID string) (*models.StoredPlan, error) {
	var (
		data      string
		createdAt time.Time
	)
	err := s.q.QueryRowContext(ctx,
		"SELECT plan_json, created_at FROM stored_plans WHERE id = ? AND cellar_id = ?",
		planID, cellarID,
	).Scan(&data, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	if s.now().UTC().Sub(createdAt.UTC()) > models.PlanTTL {
		return nil, nil
	}

	var plan models.Plan
	if err := json.Unmarshal([]byte(data), &plan); err != nil {
		return nil, fmt.Errorf("failed to decode stored plan %s: %w", planID, err)
	}
	return &models.StoredPlan{ID: planID, CellarID: cellarID, Plan: plan, CreatedAt: createdAt}, nil
}

// Delete removes a stored plan.
func (s *PlanStore) Delete(ctx context.Context, planID string) error {
	_, err := s.q.ExecContext(ctx, "DELETE FROM stored_plans WHERE id = ?", planID)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	return nil
}
