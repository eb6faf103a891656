package sqlite

import (
	"context"
	"testing"

	"github.com/example/vintry/internal/ports/secondary"
)

func TestSettingsRepository(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewSettingsRepository(conn)
	ctx := context.Background()

	// Unset reads as empty.
	got, err := repo.Get(ctx, testCellar, "reconfig_threshold_pct")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}

	if err := repo.Set(ctx, testCellar, "reconfig_threshold_pct", "25"); err != nil {
		t.Fatal(err)
	}
	got, err = repo.Get(ctx, testCellar, "reconfig_threshold_pct")
	if err != nil {
		t.Fatal(err)
	}
	if got != "25" {
		t.Fatalf("got %q, want 25", got)
	}

	// Set overwrites.
	if err := repo.Set(ctx, testCellar, "reconfig_threshold_pct", "0"); err != nil {
		t.Fatal(err)
	}
	got, err = repo.Get(ctx, testCellar, "reconfig_threshold_pct")
	if err != nil {
		t.Fatal(err)
	}
	if got != "0" {
		t.Fatalf("got %q, want 0", got)
	}

	// Scoped per cellar.
	got, err = repo.Get(ctx, "other-cellar", "reconfig_threshold_pct")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Fatalf("expected empty value for other cellar, got %q", got)
	}
}

func TestReviewTelemetryRepositoryRecord(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewReviewTelemetryRepository(conn)

	err := repo.Record(context.Background(), &secondary.ReviewTelemetryRecord{
		CellarID:       testCellar,
		PlanID:         "plan-1",
		Verdict:        "approve",
		Escalated:      true,
		LatencyMs:      420,
		StabilityScore: 0.4,
	})
	if err != nil {
		t.Fatal(err)
	}

	var verdict string
	var escalated int
	if err := conn.QueryRow("SELECT verdict, escalated FROM review_telemetry WHERE plan_id = 'plan-1'").Scan(&verdict, &escalated); err != nil {
		t.Fatal(err)
	}
	if verdict != "approve" || escalated != 1 {
		t.Fatalf("unexpected row: verdict=%q escalated=%d", verdict, escalated)
	}
}

func TestLogWriterWarn(t *testing.T) {
	conn := setupTestDB(t)
	logw := NewLogWriter(conn)

	if err := logw.Warn(context.Background(), testCellar, "planner", "dropped malformed action"); err != nil {
		t.Fatal(err)
	}
	if err := logw.Warn(context.Background(), "", "plan_store", "GC failed"); err != nil {
		t.Fatal(err)
	}

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM activity_log").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("activity_log rows = %d, want 2", count)
	}
}
