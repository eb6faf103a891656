package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vintry/internal/core/analysis"
	"github.com/example/vintry/internal/core/solver"
	"github.com/example/vintry/internal/models"
)

func gapFillFixture() (models.RowMap, []analysis.ZoneUtilization) {
	m := models.RowMap{
		"bold_red":    {"R1", "R2"},
		"light_red":   {"R5", "R6"},
		"crisp_white": {"R10", "R11", "R12"},
	}
	utils := []analysis.ZoneUtilization{
		{ZoneID: "bold_red", BottleCount: 30, RowCount: 2, Capacity: 16, Utilization: 187.5, Overflow: true},
		{ZoneID: "crisp_white", BottleCount: 3, RowCount: 3, Capacity: 27, Utilization: 11.1},
		{ZoneID: "light_red", BottleCount: 4, RowCount: 2, Capacity: 18, Utilization: 22.2},
	}
	return m, utils
}

func TestGapFillRelievesUnaddressedOverflow(t *testing.T) {
	m, utils := gapFillFixture()

	out := GapFill(m, nil, utils, nil, nil, models.StabilityModerate)
	require.Len(t, out, 1)
	a := out[0]
	assert.Equal(t, models.ActionReallocateRow, a.Type)
	assert.Equal(t, "crisp_white", a.SourceZone) // least utilized donor
	assert.Equal(t, "bold_red", a.TargetZone)
	assert.Equal(t, "R12", a.Row) // donates its trailing edge row
	assert.Equal(t, 6, a.Priority)
}

func TestGapFillSkipsAddressedZone(t *testing.T) {
	m, utils := gapFillFixture()
	existing := []models.Action{
		{Type: models.ActionReallocateRow, SourceZone: "light_red", TargetZone: "bold_red", Row: "R6", Priority: 1},
	}

	out := GapFill(m, existing, utils, nil, nil, models.StabilityModerate)
	assert.Equal(t, existing, out)
}

func TestGapFillSkipsPinnedDonor(t *testing.T) {
	m, utils := gapFillFixture()
	pinned := map[string]bool{"crisp_white": true}

	out := GapFill(m, nil, utils, nil, pinned, models.StabilityModerate)
	require.Len(t, out, 1)
	assert.Equal(t, "light_red", out[0].SourceZone)
	assert.Equal(t, "R6", out[0].Row)
}

func TestGapFillMergeFallbackWhenNoDonorExists(t *testing.T) {
	m := models.RowMap{"bold_red": {"R1", "R2"}, "bordeaux_blend": {"R3"}}
	// bordeaux_blend is over capacity but nobody qualifies as a donor, so
	// the only relief left is a merge.
	utils := []analysis.ZoneUtilization{
		{ZoneID: "bold_red", BottleCount: 10, RowCount: 2, Capacity: 16, Utilization: 62.5},
		{ZoneID: "bordeaux_blend", BottleCount: 12, RowCount: 1, Capacity: 9, Utilization: 133.3, Overflow: true},
	}
	candidates := []solver.MergeCandidate{
		{Source: "bordeaux_blend", Target: "bold_red", Affinity: 0.8},
	}

	out := GapFill(m, nil, utils, candidates, nil, models.StabilityModerate)
	require.Len(t, out, 1)
	assert.Equal(t, models.ActionMergeZones, out[0].Type)
	assert.Equal(t, "bordeaux_blend", out[0].SourceZone)
	assert.Equal(t, "bold_red", out[0].TargetZone)
	assert.Equal(t, 6, out[0].Priority)
}

func TestGapFillQuietCellarStaysEmpty(t *testing.T) {
	m := models.RowMap{"bold_red": {"R1", "R2"}, "bordeaux_blend": {"R3"}}
	utils := []analysis.ZoneUtilization{
		{ZoneID: "bold_red", BottleCount: 10, RowCount: 2, Capacity: 16, Utilization: 62.5},
		{ZoneID: "bordeaux_blend", BottleCount: 5, RowCount: 1, Capacity: 9, Utilization: 55.6},
	}
	candidates := []solver.MergeCandidate{
		{Source: "bordeaux_blend", Target: "bold_red", Affinity: 0.8},
	}

	assert.Empty(t, GapFill(m, nil, utils, candidates, nil, models.StabilityModerate))
}

func TestGapFillHonorsStabilityCap(t *testing.T) {
	m, utils := gapFillFixture()
	existing := []models.Action{
		{Type: models.ActionExpandZone, TargetZone: "light_red"},
		{Type: models.ActionExpandZone, TargetZone: "light_red"},
		{Type: models.ActionExpandZone, TargetZone: "light_red"},
	}

	// High stability caps the plan at three actions, so the overflow stays
	// unpatched rather than growing the plan.
	out := GapFill(m, existing, utils, nil, nil, models.StabilityHigh)
	assert.Len(t, out, 3)
}
