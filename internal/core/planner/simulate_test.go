package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vintry/internal/models"
)

func TestApplyActionReallocate(t *testing.T) {
	m := models.RowMap{"a": {"R1", "R2"}, "b": {"R3"}}

	out, ok := ApplyAction(m, models.Action{Type: models.ActionReallocateRow, SourceZone: "a", TargetZone: "b", Row: "R2"})
	require.True(t, ok)
	assert.Equal(t, []string{"R1"}, out["a"])
	assert.Equal(t, []string{"R2", "R3"}, out["b"])
	// Input untouched.
	assert.Equal(t, []string{"R1", "R2"}, m["a"])

	// Source does not own the row: precondition fails, map unchanged.
	same, ok := ApplyAction(m, models.Action{Type: models.ActionReallocateRow, SourceZone: "a", TargetZone: "b", Row: "R9"})
	assert.False(t, ok)
	assert.Equal(t, m, same)
}

func TestApplyActionMerge(t *testing.T) {
	m := models.RowMap{"a": {"R1", "R2"}, "b": {"R3"}}

	out, ok := ApplyAction(m, models.Action{Type: models.ActionMergeZones, SourceZone: "a", TargetZone: "b"})
	require.True(t, ok)
	_, exists := out["a"]
	assert.False(t, exists)
	assert.Equal(t, []string{"R1", "R2", "R3"}, out["b"])

	_, ok = ApplyAction(m, models.Action{Type: models.ActionRetireZone, SourceZone: "ghost", TargetZone: "b"})
	assert.False(t, ok)
}

func TestApplyActionExpand(t *testing.T) {
	m := models.RowMap{"a": {"R1"}}

	// Preferred row honoured when free.
	out, ok := ApplyAction(m, models.Action{Type: models.ActionExpandZone, TargetZone: "a", Row: "R5"})
	require.True(t, ok)
	assert.Contains(t, out["a"], "R5")

	// Preferred row taken: lowest free row instead.
	m2 := models.RowMap{"a": {"R1"}, "b": {"R5"}}
	out, ok = ApplyAction(m2, models.Action{Type: models.ActionExpandZone, TargetZone: "a", Row: "R5"})
	require.True(t, ok)
	assert.Contains(t, out["a"], "R2")

	// Full grid: expansion fails.
	full := models.RowMap{"a": models.AllRows()}
	_, ok = ApplyAction(full, models.Action{Type: models.ActionExpandZone, TargetZone: "b"})
	assert.False(t, ok)
	assert.Equal(t, "", FreeRow(full, ""))
}

func TestApplyActionOrphan(t *testing.T) {
	m := models.RowMap{"a": {"R1"}}

	out, ok := ApplyAction(m, models.Action{Type: models.ActionAssignOrphanRow, TargetZone: "a", Row: "R2"})
	require.True(t, ok)
	assert.Equal(t, []string{"R1", "R2"}, out["a"])

	// Owned rows are not orphans.
	_, ok = ApplyAction(m, models.Action{Type: models.ActionAssignOrphanRow, TargetZone: "a", Row: "R1"})
	assert.False(t, ok)
}

func TestSimulateSkipsFailedActions(t *testing.T) {
	m := models.RowMap{"a": {"R1", "R2"}, "b": {"R3"}}
	actions := []models.Action{
		{Type: models.ActionReallocateRow, SourceZone: "a", TargetZone: "b", Row: "R1"},
		{Type: models.ActionReallocateRow, SourceZone: "a", TargetZone: "b", Row: "R9"}, // stale
		{Type: models.ActionReallocateRow, SourceZone: "b", TargetZone: "a", Row: "R1"}, // sees the first move
	}

	out, skipped := Simulate(m, actions)
	assert.Equal(t, []int{1}, skipped)
	assert.Equal(t, []string{"R1", "R2"}, out["a"])
	assert.Equal(t, []string{"R3"}, out["b"])
}

func fullCoverage() models.RowMap {
	// All 19 rows split across four zones, contiguous blocks.
	return models.RowMap{
		"bold_red":    {"R1", "R2", "R3", "R4", "R5"},
		"light_red":   {"R6", "R7", "R8", "R9", "R10"},
		"crisp_white": {"R11", "R12", "R13", "R14", "R15"},
		"sparkling":   {"R16", "R17", "R18", "R19"},
	}
}

func TestValidateCoverage(t *testing.T) {
	assert.Empty(t, ValidateCoverage(fullCoverage()))

	missing := fullCoverage()
	missing["sparkling"] = []string{"R16", "R17", "R18"}
	assert.Equal(t, []string{"Missing row: R19"}, ValidateCoverage(missing))

	dup := fullCoverage()
	dup["bold_red"] = append(dup["bold_red"], "R19")
	assert.Equal(t, []string{"Duplicate row: R19"}, ValidateCoverage(dup))
}

func TestValidatePlan(t *testing.T) {
	m := fullCoverage()
	reg := loadRegistry(t)

	// A reallocation preserves coverage.
	ok := []models.Action{{Type: models.ActionReallocateRow, SourceZone: "bold_red", TargetZone: "light_red", Row: "R5"}}
	assert.Empty(t, ValidatePlan(m, ok, reg))

	// Simulation skips a stale action, so coverage still holds.
	stale := []models.Action{{Type: models.ActionReallocateRow, SourceZone: "bold_red", TargetZone: "light_red", Row: "R11"}}
	assert.Empty(t, ValidatePlan(m, stale, reg))
}

func TestValidateRowLimitsBufferCap(t *testing.T) {
	reg := loadRegistry(t)

	m := fullCoverage()
	m["sparkling"] = []string{"R16", "R17", "R18"}
	m["buffer"] = []string{"R19"}
	assert.Empty(t, ValidateRowLimits(m, reg))

	m["sparkling"] = []string{"R16", "R17"}
	m["buffer"] = []string{"R18", "R19"}
	assert.Equal(t, []string{"Buffer zone over limit: buffer holds 2 rows"}, ValidateRowLimits(m, reg))

	// The plan validator surfaces the same diagnostic after simulation.
	m2 := fullCoverage()
	m2["sparkling"] = []string{"R16", "R17", "R18"}
	m2["buffer"] = []string{"R19"}
	grow := []models.Action{{Type: models.ActionReallocateRow, SourceZone: "sparkling", TargetZone: "buffer", Row: "R18"}}
	assert.Contains(t, ValidatePlan(m2, grow, reg), "Buffer zone over limit: buffer holds 2 rows")
}
