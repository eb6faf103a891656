package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplexityScore(t *testing.T) {
	tests := []struct {
		name string
		s    Scenario
		want float64
	}{
		{"quiet cellar", Scenario{}, 0.0},
		{"factors at their limits score nothing", Scenario{OverflowCount: 3, ColorIssueCount: 2, PinnedCount: 2, DraftActionCount: 4, ScatteredCount: 5}, 0.0},
		{"one factor", Scenario{OverflowCount: 4}, 0.2},
		{"three factors hit escalation", Scenario{OverflowCount: 4, ColorIssueCount: 3, PinnedCount: 3}, 0.6},
		{"all five factors", Scenario{OverflowCount: 10, ColorIssueCount: 10, PinnedCount: 10, DraftActionCount: 10, ScatteredCount: 10}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComplexityScore(tt.s), 1e-9)
		})
	}
}

func TestEscalationBoundary(t *testing.T) {
	assert.False(t, ComplexityScore(Scenario{OverflowCount: 4, ColorIssueCount: 3}) >= EscalationThreshold)
	assert.True(t, ComplexityScore(Scenario{OverflowCount: 4, ColorIssueCount: 3, DraftActionCount: 5}) >= EscalationThreshold)
}
