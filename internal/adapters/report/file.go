// Package report adapts the external analysis engine's output into the
// planning pipeline. The engine writes its report as a JSON file; this
// adapter reads and decodes it at the AnalysisProvider boundary.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/example/vintry/internal/core/analysis"
)

// FileProvider implements secondary.AnalysisProvider over a JSON report
// file on disk.
type FileProvider struct {
	path string
}

// NewFileProvider creates a provider reading from the given path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// GetReport reads and decodes the report file. The file's cellarId must
// match the requested cellar; a mismatch means the report on disk is for
// a different cellar and must not drive planning.
func (p *FileProvider) GetReport(ctx context.Context, cellarID string) (*analysis.Report, error) {
	if p.path == "" {
		return nil, fmt.Errorf("no analysis report configured")
	}

	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis report: %w", err)
	}

	var rep analysis.Report
	if err := json.Unmarshal(raw, &rep); err != nil {
		return nil, fmt.Errorf("malformed analysis report %s: %w", p.path, err)
	}
	if rep.CellarID != "" && rep.CellarID != cellarID {
		return nil, fmt.Errorf("analysis report is for cellar %s, not %s", rep.CellarID, cellarID)
	}
	rep.CellarID = cellarID
	return &rep, nil
}
