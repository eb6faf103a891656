package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/zones"
)

func loadRegistry(t *testing.T) *zones.Registry {
	t.Helper()
	reg, err := zones.Load()
	require.NoError(t, err)
	return reg
}

func TestCountGaps(t *testing.T) {
	assert.Equal(t, 0, CountGaps(nil))
	assert.Equal(t, 0, CountGaps([]string{"R5"}))
	assert.Equal(t, 0, CountGaps([]string{"R3", "R4", "R5"}))
	assert.Equal(t, 1, CountGaps([]string{"R3", "R5"}))
	assert.Equal(t, 2, CountGaps([]string{"R1", "R3", "R9"}))
}

func TestRepairContiguityClosesSandwichedGap(t *testing.T) {
	reg := loadRegistry(t)
	m := models.RowMap{
		"bold_red":  {"R1", "R3"},
		"light_red": {"R2"},
	}

	out := RepairContiguity(m, nil, reg)
	require.Len(t, out, 2)

	// The gap row moves into the broken zone and one of its own rows goes
	// the other way, both at contiguity-repair priority.
	assert.Equal(t, models.ActionReallocateRow, out[0].Type)
	assert.Equal(t, "light_red", out[0].SourceZone)
	assert.Equal(t, "bold_red", out[0].TargetZone)
	assert.Equal(t, "R2", out[0].Row)
	assert.Equal(t, 4, out[0].Priority)

	assert.Equal(t, "bold_red", out[1].SourceZone)
	assert.Equal(t, "light_red", out[1].TargetZone)
	assert.Equal(t, 4, out[1].Priority)

	after, skipped := Simulate(m, out)
	assert.Empty(t, skipped)
	assert.Equal(t, 0, CountGaps(after["bold_red"]))
	assert.Equal(t, 0, CountGaps(after["light_red"]))
}

func TestRepairContiguityRespectsColorBoundary(t *testing.T) {
	reg := loadRegistry(t)
	m := models.RowMap{
		"bold_red":    {"R1", "R3"},
		"crisp_white": {"R2"},
	}

	out := RepairContiguity(m, nil, reg)
	assert.Empty(t, out)
}

func TestRepairContiguitySwapsAcrossAnyColor(t *testing.T) {
	reg := loadRegistry(t)
	m := models.RowMap{
		"bold_red":  {"R1", "R3"},
		"sparkling": {"R2"},
	}

	out := RepairContiguity(m, nil, reg)
	require.Len(t, out, 2)
	assert.Equal(t, "sparkling", out[0].SourceZone)
	assert.Equal(t, "R2", out[0].Row)
}

func TestRepairContiguityNoGapsNoActions(t *testing.T) {
	reg := loadRegistry(t)
	m := models.RowMap{
		"bold_red":  {"R1", "R2"},
		"light_red": {"R3", "R4"},
	}
	assert.Empty(t, RepairContiguity(m, nil, reg))
}
