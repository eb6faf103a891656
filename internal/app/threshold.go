package app

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/example/vintry/internal/ports/primary"
)

// Threshold gate defaults. The per-cellar setting overrides the
// environment-level default, which overrides the hard default.
const (
	DefaultThresholdPct         = 10
	SettingReconfigThresholdPct = "reconfig_threshold_pct"
)

// ComputeAbsoluteThreshold converts a percentage of the collection into an
// absolute change count, with a floor of 2 so tiny collections are not
// gated on a single bottle. pct 0 disables the gate entirely.
func ComputeAbsoluteThreshold(pct, totalBottles int) int {
	if pct == 0 {
		return 0
	}
	n := int(math.Ceil(float64(pct) / 100 * float64(totalBottles)))
	if n < 2 {
		return 2
	}
	return n
}

// CheckThreshold compares the cellar's accumulated change counter against
// the effective threshold. First-ever use (no counter, or a counter whose
// last reconfiguration stamp is still null) is always allowed.
func (s *ReconfigServiceImpl) CheckThreshold(ctx context.Context, cellarID string) (*primary.ThresholdStatus, error) {
	pct := s.effectiveThresholdPct(ctx, cellarID)
	if pct == 0 {
		return &primary.ThresholdStatus{Allowed: true}, nil
	}

	counter, err := s.counters.Get(ctx, cellarID)
	if err != nil {
		return nil, fmt.Errorf("failed to read change counter: %w", err)
	}
	if counter == nil || counter.LastReconfigAt == nil {
		return &primary.ThresholdStatus{Allowed: true}, nil
	}

	total, err := s.wines.CountByCellar(ctx, cellarID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bottles: %w", err)
	}

	threshold := ComputeAbsoluteThreshold(pct, total)
	if counter.ChangeCount >= threshold {
		return &primary.ThresholdStatus{Allowed: true}, nil
	}
	return &primary.ThresholdStatus{
		Allowed:      false,
		ChangeCount:  counter.ChangeCount,
		Threshold:    threshold,
		ThresholdPct: pct,
		TotalBottles: total,
	}, nil
}

// effectiveThresholdPct resolves the threshold percentage: per-cellar
// setting, then the configured default, then the hard default. Values
// outside 0..100 are rejected at each level.
func (s *ReconfigServiceImpl) effectiveThresholdPct(ctx context.Context, cellarID string) int {
	if raw, err := s.settings.Get(ctx, cellarID, SettingReconfigThresholdPct); err == nil && raw != "" {
		if pct, err := strconv.Atoi(raw); err == nil && pct >= 0 && pct <= 100 {
			return pct
		}
	}
	if s.defaultThresholdPct >= 0 && s.defaultThresholdPct <= 100 {
		return s.defaultThresholdPct
	}
	return DefaultThresholdPct
}
