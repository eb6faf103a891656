package planner

import (
	"fmt"

	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/zones"
)

// ValidateCoverage checks the row coverage invariant: each of the 19 grid
// rows assigned to exactly one zone. It returns diagnostics, empty when the
// map is valid. Pure; this is the canonical correctness oracle used both at
// generation time and as the pre-commit gate at apply time.
func ValidateCoverage(m models.RowMap) []string {
	owners := make(map[string]int, models.LastRow)
	for _, rows := range m {
		for _, r := range rows {
			owners[r]++
		}
	}

	var diags []string
	for n := models.FirstRow; n <= models.LastRow; n++ {
		row := models.RowName(n)
		switch {
		case owners[row] == 0:
			diags = append(diags, fmt.Sprintf("Missing row: %s", row))
		case owners[row] > 1:
			diags = append(diags, fmt.Sprintf("Duplicate row: %s", row))
		}
	}
	return diags
}

// ValidateRowLimits checks per-zone row caps: a buffer zone holds at most
// one row.
func ValidateRowLimits(m models.RowMap, reg *zones.Registry) []string {
	var diags []string
	for _, z := range reg.All() {
		if !z.Buffer {
			continue
		}
		if n := len(m[z.ID]); n > 1 {
			diags = append(diags, fmt.Sprintf("Buffer zone over limit: %s holds %d rows", z.ID, n))
		}
	}
	return diags
}

// ValidatePlan simulates a plan's actions against the current map and runs
// the coverage and row-limit checks on the result.
func ValidatePlan(m models.RowMap, actions []models.Action, reg *zones.Registry) []string {
	after, _ := Simulate(m, actions)
	diags := ValidateCoverage(after)
	return append(diags, ValidateRowLimits(after, reg)...)
}
