package app

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/vintry/internal/adapters/sqlite"
	"github.com/example/vintry/internal/core/analysis"
	"github.com/example/vintry/internal/db"
	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/zones"
)

const testCellar = "test-cellar"

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// Every pooled connection to :memory: is a distinct database; keep one.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// stubReports serves a canned analysis report.
type stubReports struct {
	report *analysis.Report
}

func (s stubReports) GetReport(_ context.Context, cellarID string) (*analysis.Report, error) {
	if s.report == nil {
		return nil, fmt.Errorf("no report for %s", cellarID)
	}
	return s.report, nil
}

// countingCache records invalidations.
type countingCache struct {
	invalidations int
}

func (c *countingCache) InvalidateCellar(context.Context, string) {
	c.invalidations++
}

func newTestService(t *testing.T, conn *sql.DB, report *analysis.Report) (*ReconfigServiceImpl, *countingCache) {
	t.Helper()
	reg, err := zones.Load()
	if err != nil {
		t.Fatalf("failed to load zone registry: %v", err)
	}

	logw := sqlite.NewLogWriter(conn)
	cache := &countingCache{}
	svc := NewReconfigService(ReconfigDeps{
		Registry:            reg,
		Reports:             stubReports{report: report},
		Allocs:              sqlite.NewAllocationRepository(conn),
		Plans:               sqlite.NewPlanStore(conn, logw),
		Reconfigs:           sqlite.NewReconfigurationRepository(conn),
		Counters:            sqlite.NewChangeCounterRepository(conn),
		Pins:                sqlite.NewZonePinRepository(conn),
		Wines:               sqlite.NewWineRepository(conn),
		Settings:            sqlite.NewSettingsRepository(conn),
		Telemetry:           sqlite.NewReviewTelemetryRepository(conn),
		UoW:                 sqlite.NewUnitOfWork(conn),
		Cache:               cache,
		Log:                 logw,
		DefaultThresholdPct: DefaultThresholdPct,
	})
	return svc, cache
}

func seedWine(t *testing.T, conn *sql.DB, id, zoneID string) {
	t.Helper()
	_, err := conn.Exec(
		"INSERT INTO wines (id, cellar_id, name, color, zone_id) VALUES (?, ?, ?, 'red', ?)",
		id, testCellar, "wine "+id, zoneID,
	)
	if err != nil {
		t.Fatalf("failed to seed wine %s: %v", id, err)
	}
}

func seedAllocation(t *testing.T, conn *sql.DB, zoneID string, rows []string, wineCount int) {
	t.Helper()
	repo := sqlite.NewAllocationRepository(conn)
	err := repo.Upsert(context.Background(), &models.Allocation{
		CellarID:  testCellar,
		ZoneID:    zoneID,
		Rows:      rows,
		WineCount: wineCount,
	})
	if err != nil {
		t.Fatalf("failed to seed allocation for %s: %v", zoneID, err)
	}
}

// seedCoveredGrid allocates all 19 rows across five zones.
func seedCoveredGrid(t *testing.T, conn *sql.DB) {
	t.Helper()
	seedAllocation(t, conn, "bold_red", []string{"R1", "R2", "R3", "R4"}, 20)
	seedAllocation(t, conn, "bordeaux_blend", []string{"R5"}, 6)
	seedAllocation(t, conn, "light_red", []string{"R6", "R7", "R8", "R9"}, 12)
	seedAllocation(t, conn, "crisp_white", []string{"R10", "R11", "R12", "R13", "R14", "R15"}, 18)
	seedAllocation(t, conn, "sparkling", []string{"R16", "R17", "R18", "R19"}, 10)
}
