package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/vintry/internal/ports/secondary"
)

// ReviewTelemetryRepository implements secondary.ReviewTelemetryRepository.
type ReviewTelemetryRepository struct {
	q dbtx
}

// NewReviewTelemetryRepository creates a SQLite review telemetry repository.
func NewReviewTelemetryRepository(q dbtx) *ReviewTelemetryRepository {
	return &ReviewTelemetryRepository{q: q}
}

// Record persists one review outcome.
func (r *ReviewTelemetryRepository) Record(ctx context.Context, rec *secondary.ReviewTelemetryRecord) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO review_telemetry
			(id, cellar_id, plan_id, verdict, escalated, fallback_used, latency_ms, stability_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), rec.CellarID, rec.PlanID, rec.Verdict,
		rec.Escalated, rec.FallbackUsed, rec.LatencyMs, rec.StabilityScore,
	)
	if err != nil {
		return fmt.Errorf("failed to record review telemetry: %w", err)
	}
	return nil
}
