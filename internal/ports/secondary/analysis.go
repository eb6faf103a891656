package secondary

import (
	"context"

	"github.com/example/vintry/internal/core/analysis"
)

// AnalysisProvider supplies the external analysis engine's report for a
// cellar. The engine itself (classification, misplacement, adjacency
// detection) lives outside this core.
type AnalysisProvider interface {
	GetReport(ctx context.Context, cellarID string) (*analysis.Report, error)
}
