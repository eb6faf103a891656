package sqlite

import (
	"context"
	"testing"

	"github.com/example/vintry/internal/models"
)

func TestAllocationRepositoryUpsertAndGet(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewAllocationRepository(conn)
	ctx := context.Background()

	err := repo.Upsert(ctx, &models.Allocation{
		CellarID: testCellar, ZoneID: "bold_red", Rows: []string{"R1", "R2"}, WineCount: 12,
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(ctx, testCellar, "bold_red")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.WineCount != 12 || len(got.Rows) != 2 || got.Rows[0] != "R1" {
		t.Fatalf("unexpected allocation: %+v", got)
	}

	// Upsert replaces.
	err = repo.Upsert(ctx, &models.Allocation{
		CellarID: testCellar, ZoneID: "bold_red", Rows: []string{"R1", "R2", "R3"}, WineCount: 15,
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err = repo.Get(ctx, testCellar, "bold_red")
	if err != nil {
		t.Fatal(err)
	}
	if got.WineCount != 15 || len(got.Rows) != 3 {
		t.Fatalf("unexpected allocation after replace: %+v", got)
	}
}

func TestAllocationRepositoryGetMissing(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewAllocationRepository(conn)

	got, err := repo.Get(context.Background(), testCellar, "bold_red")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestAllocationRepositoryListOrdered(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewAllocationRepository(conn)
	ctx := context.Background()

	for _, zone := range []string{"sparkling", "bold_red", "crisp_white"} {
		if err := repo.Upsert(ctx, &models.Allocation{CellarID: testCellar, ZoneID: zone, Rows: []string{"R1"}}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := repo.ListByCellar(ctx, testCellar)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 allocations, got %d", len(list))
	}
	want := []string{"bold_red", "crisp_white", "sparkling"}
	for i, zone := range want {
		if list[i].ZoneID != zone {
			t.Fatalf("list[%d] = %s, want %s", i, list[i].ZoneID, zone)
		}
	}
}

func TestAllocationRepositoryParsesMalformedRows(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewAllocationRepository(conn)
	ctx := context.Background()

	// A row list written by a legacy path, not valid JSON.
	if _, err := conn.Exec(
		"INSERT INTO zone_allocations (cellar_id, zone_id, rows) VALUES (?, ?, ?)",
		testCellar, "bold_red", "R2, R1, R1",
	); err != nil {
		t.Fatal(err)
	}
	if _, err := conn.Exec(
		"INSERT INTO zone_allocations (cellar_id, zone_id, rows) VALUES (?, ?, ?)",
		testCellar, "light_red", "{garbage",
	); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(ctx, testCellar, "bold_red")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Rows) != 2 || got.Rows[0] != "R1" || got.Rows[1] != "R2" {
		t.Fatalf("expected canonical [R1 R2], got %v", got.Rows)
	}

	got, err = repo.Get(ctx, testCellar, "light_red")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Rows) != 0 {
		t.Fatalf("expected empty rows for garbage input, got %v", got.Rows)
	}
}

func TestAllocationRepositoryDelete(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewAllocationRepository(conn)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &models.Allocation{CellarID: testCellar, ZoneID: "bold_red", Rows: []string{"R1"}}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, testCellar, "bold_red"); err != nil {
		t.Fatal(err)
	}
	got, err := repo.Get(ctx, testCellar, "bold_red")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("expected allocation to be gone")
	}
}
