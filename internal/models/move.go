package models

// Move is one proposed bottle relocation.
type Move struct {
	WineID     string  `json:"wineId"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	ZoneID     string  `json:"zoneId,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// MoveConflict describes why one move in a batch is invalid.
type MoveConflict struct {
	WineID string `json:"wineId"`
	Reason string `json:"reason"`
}

// MoveValidation is the structured report produced before any mutation.
type MoveValidation struct {
	Valid     bool           `json:"valid"`
	Conflicts []MoveConflict `json:"conflicts,omitempty"`
}

// MoveResult reports the outcome of a single executed move.
type MoveResult struct {
	WineID string `json:"wineId"`
	From   string `json:"from"`
	To     string `json:"to"`
	Moved  bool   `json:"moved"`
}
