package sqlite

import (
	"context"
	"testing"
)

func TestWineRepositoryListByZones(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewWineRepository(conn)
	ctx := context.Background()

	seedWine(t, conn, "w1", "Barolo", "red", "italian_red")
	seedWine(t, conn, "w2", "Amarone", "red", "italian_red")
	seedWine(t, conn, "w3", "Sancerre", "white", "crisp_white")
	seedWine(t, conn, "w4", "Rioja", "red", "bold_red")

	wines, err := repo.ListByZones(ctx, testCellar, []string{"italian_red", "crisp_white"})
	if err != nil {
		t.Fatal(err)
	}
	if len(wines) != 3 {
		t.Fatalf("expected 3 wines, got %d", len(wines))
	}
	// Ordered by zone then name.
	if wines[0].ID != "w3" || wines[1].Name != "Amarone" || wines[2].Name != "Barolo" {
		t.Fatalf("unexpected order: %v, %v, %v", wines[0].Name, wines[1].Name, wines[2].Name)
	}

	none, err := repo.ListByZones(ctx, testCellar, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no wines for empty zone list, got %d", len(none))
	}
}

func TestWineRepositoryGetLocations(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewWineRepository(conn)
	slots := NewSlotRepository(conn)
	ctx := context.Background()

	if err := slots.Seed(ctx, testCellar); err != nil {
		t.Fatal(err)
	}
	seedWine(t, conn, "w1", "Barolo", "red", "italian_red")
	seedWine(t, conn, "w2", "Sancerre", "white", "crisp_white")
	if err := slots.Assign(ctx, testCellar, "R7C2", "w1"); err != nil {
		t.Fatal(err)
	}

	locs, err := repo.GetLocations(ctx, testCellar, []string{"w1", "w2", "ghost"})
	if err != nil {
		t.Fatal(err)
	}
	if locs["w1"] != "R7C2" {
		t.Fatalf("w1 location = %q, want R7C2", locs["w1"])
	}
	// Unplaced and unknown wines are simply absent.
	if _, ok := locs["w2"]; ok {
		t.Fatal("expected unplaced wine to be absent")
	}
	if _, ok := locs["ghost"]; ok {
		t.Fatal("expected unknown wine to be absent")
	}
}

func TestWineRepositorySetZone(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewWineRepository(conn)
	ctx := context.Background()

	seedWine(t, conn, "w1", "Barolo", "red", "italian_red")
	if err := repo.SetZone(ctx, testCellar, "w1", "bold_red"); err != nil {
		t.Fatal(err)
	}

	var zone string
	if err := conn.QueryRow("SELECT zone_id FROM wines WHERE id = 'w1'").Scan(&zone); err != nil {
		t.Fatal(err)
	}
	if zone != "bold_red" {
		t.Fatalf("zone = %q, want bold_red", zone)
	}
}

func TestWineRepositorySetZoneBulk(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewWineRepository(conn)
	ctx := context.Background()

	seedWine(t, conn, "w1", "Barolo", "red", "italian_red")
	seedWine(t, conn, "w2", "Amarone", "red", "italian_red")
	seedWine(t, conn, "w3", "Rioja", "red", "bold_red")

	n, err := repo.SetZoneBulk(ctx, testCellar, "italian_red", "bold_red")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("reassigned = %d, want 2", n)
	}

	count, err := repo.CountByCellar(ctx, testCellar)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Fatalf("total = %d, want 3", count)
	}

	wines, err := repo.ListByZones(ctx, testCellar, []string{"bold_red"})
	if err != nil {
		t.Fatal(err)
	}
	if len(wines) != 3 {
		t.Fatalf("bold_red wines = %d, want 3", len(wines))
	}
}
