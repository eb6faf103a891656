// Package analysis defines the report consumed from the external cellar
// analysis engine and the utilization aggregation derived from it. The
// engine itself (classification, misplacement detection) is an external
// collaborator; this package only speaks its output format.
package analysis

// ZoneReport is the per-zone slice of an analysis report.
type ZoneReport struct {
	ZoneID         string `json:"zoneId"`
	BottleCount    int    `json:"bottleCount"`
	MisplacedCount int    `json:"misplacedCount"`
	CorrectCount   int    `json:"correctCount"`
}

// Alert types emitted by the analysis engine.
const (
	AlertCapacityOverflow = "capacity_overflow"
	AlertColorAdjacency   = "color_adjacency"
)

// Alert is one analysis finding.
type Alert struct {
	Type     string `json:"type"`
	ZoneID   string `json:"zoneId,omitempty"`
	Severity string `json:"severity,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// ScatteredGroup describes one wine spread across distant slots.
type ScatteredGroup struct {
	WineID    string   `json:"wineId"`
	Locations []string `json:"locations"`
}

// AdjacencyIssue is a color conflict between two physically adjacent rows.
type AdjacencyIssue struct {
	RowA   string `json:"rowA"`
	RowB   string `json:"rowB"`
	ZoneA  string `json:"zoneA"`
	ZoneB  string `json:"zoneB"`
	ColorA string `json:"colorA"`
	ColorB string `json:"colorB"`
}

// Summary carries report-level totals.
type Summary struct {
	TotalBottles   int `json:"totalBottles"`
	TotalMisplaced int `json:"totalMisplaced"`
}

// Report is the full analysis engine output for one cellar.
type Report struct {
	CellarID       string           `json:"cellarId"`
	Zones          []ZoneReport     `json:"zones"`
	Alerts         []Alert          `json:"alerts"`
	ScatteredWines []ScatteredGroup `json:"scatteredWines"`
	ColorAdjacency []AdjacencyIssue `json:"colorAdjacency"`
	Summary        Summary          `json:"summary"`
}
