package sqlite

import (
	"context"
	"testing"
)

func TestChangeCounterLifecycle(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewChangeCounterRepository(conn)
	ctx := context.Background()

	got, err := repo.Get(ctx, testCellar)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected no counter yet, got %+v", got)
	}

	// Lazy creation on first increment; no reconfiguration stamp yet.
	if err := repo.Increment(ctx, testCellar, 3); err != nil {
		t.Fatal(err)
	}
	if err := repo.Increment(ctx, testCellar, 2); err != nil {
		t.Fatal(err)
	}
	got, err = repo.Get(ctx, testCellar)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ChangeCount != 5 {
		t.Fatalf("unexpected counter: %+v", got)
	}
	if got.LastReconfigAt != nil {
		t.Fatal("expected no reconfiguration stamp before first reset")
	}

	// Reset zeroes the count and stamps the time.
	if err := repo.Reset(ctx, testCellar); err != nil {
		t.Fatal(err)
	}
	got, err = repo.Get(ctx, testCellar)
	if err != nil {
		t.Fatal(err)
	}
	if got.ChangeCount != 0 || got.LastReconfigAt == nil {
		t.Fatalf("unexpected counter after reset: %+v", got)
	}

	// Counting resumes from zero.
	if err := repo.Increment(ctx, testCellar, 1); err != nil {
		t.Fatal(err)
	}
	got, err = repo.Get(ctx, testCellar)
	if err != nil {
		t.Fatal(err)
	}
	if got.ChangeCount != 1 {
		t.Fatalf("ChangeCount = %d, want 1", got.ChangeCount)
	}
}
