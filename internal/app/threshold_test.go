package app

import (
	"context"
	"strconv"
	"testing"
)

func TestComputeAbsoluteThreshold(t *testing.T) {
	tests := []struct {
		pct, total, want int
	}{
		{10, 60, 6},
		{10, 65, 7}, // ceil
		{10, 5, 2},  // floor of 2
		{1, 1, 2},
		{0, 100, 0}, // disabled
		{100, 50, 50},
	}
	for _, tt := range tests {
		if got := ComputeAbsoluteThreshold(tt.pct, tt.total); got != tt.want {
			t.Errorf("ComputeAbsoluteThreshold(%d, %d) = %d, want %d", tt.pct, tt.total, got, tt.want)
		}
	}
}

func TestCheckThresholdFirstUseAllowed(t *testing.T) {
	conn := setupTestDB(t)
	svc, _ := newTestService(t, conn, nil)
	ctx := context.Background()

	// No counter row at all.
	status, err := svc.CheckThreshold(ctx, testCellar)
	if err != nil {
		t.Fatal(err)
	}
	if !status.Allowed {
		t.Fatal("expected first-ever use to be allowed")
	}

	// A counter created by bottle adds, but no reconfiguration yet.
	counters := svc.counters
	if err := counters.Increment(ctx, testCellar, 3); err != nil {
		t.Fatal(err)
	}
	status, err = svc.CheckThreshold(ctx, testCellar)
	if err != nil {
		t.Fatal(err)
	}
	if !status.Allowed {
		t.Fatal("expected null last_reconfig_at to be allowed")
	}
}

func TestCheckThresholdGate(t *testing.T) {
	conn := setupTestDB(t)
	svc, _ := newTestService(t, conn, nil)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		seedWine(t, conn, "w"+strconv.Itoa(i), "bold_red")
	}

	// A reconfiguration has happened; two changes since.
	if err := svc.counters.Reset(ctx, testCellar); err != nil {
		t.Fatal(err)
	}
	if err := svc.counters.Increment(ctx, testCellar, 2); err != nil {
		t.Fatal(err)
	}

	status, err := svc.CheckThreshold(ctx, testCellar)
	if err != nil {
		t.Fatal(err)
	}
	if status.Allowed {
		t.Fatal("expected gate to block below threshold")
	}
	if status.ChangeCount != 2 || status.Threshold != 6 || status.ThresholdPct != 10 || status.TotalBottles != 60 {
		t.Fatalf("unexpected status: %+v", status)
	}

	// Enough accumulated changes open the gate.
	if err := svc.counters.Increment(ctx, testCellar, 4); err != nil {
		t.Fatal(err)
	}
	status, err = svc.CheckThreshold(ctx, testCellar)
	if err != nil {
		t.Fatal(err)
	}
	if !status.Allowed {
		t.Fatal("expected gate to open at threshold")
	}
}

func TestCheckThresholdSettingOverride(t *testing.T) {
	conn := setupTestDB(t)
	svc, _ := newTestService(t, conn, nil)
	ctx := context.Background()

	seedWine(t, conn, "w1", "bold_red")
	if err := svc.counters.Reset(ctx, testCellar); err != nil {
		t.Fatal(err)
	}

	// Zero disables the gate entirely.
	if err := svc.settings.Set(ctx, testCellar, SettingReconfigThresholdPct, "0"); err != nil {
		t.Fatal(err)
	}
	status, err := svc.CheckThreshold(ctx, testCellar)
	if err != nil {
		t.Fatal(err)
	}
	if !status.Allowed {
		t.Fatal("expected pct=0 to disable the gate")
	}

	// Out-of-range override falls back to the default percentage.
	if err := svc.settings.Set(ctx, testCellar, SettingReconfigThresholdPct, "250"); err != nil {
		t.Fatal(err)
	}
	status, err = svc.CheckThreshold(ctx, testCellar)
	if err != nil {
		t.Fatal(err)
	}
	if status.Allowed {
		t.Fatal("expected out-of-range override to fall back to the default gate")
	}
	if status.ThresholdPct != DefaultThresholdPct {
		t.Fatalf("ThresholdPct = %d, want %d", status.ThresholdPct, DefaultThresholdPct)
	}
}
