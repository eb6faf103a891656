package planner

// Scenario summarizes how hard a reconfiguration is. Each factor that
// holds contributes 0.2 to the complexity score.
type Scenario struct {
	OverflowCount    int // zones over capacity
	ColorIssueCount  int // outstanding color-adjacency violations
	PinnedCount      int // never-merge pins in force
	DraftActionCount int // solver output size
	ScatteredCount   int // scattered-wine groups
}

// EscalationThreshold is the complexity score at which review escalates to
// the more capable model.
const EscalationThreshold = 0.6

// ComplexityScore grades a scenario 0.0–1.0 from five independent factors,
// capped at 1.0.
func ComplexityScore(s Scenario) float64 {
	score := 0.0
	if s.OverflowCount > 3 {
		score += 0.2
	}
	if s.ColorIssueCount > 2 {
		score += 0.2
	}
	if s.PinnedCount > 2 {
		score += 0.2
	}
	if s.DraftActionCount > 4 {
		score += 0.2
	}
	if s.ScatteredCount > 5 {
		score += 0.2
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
