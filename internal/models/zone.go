package models

// Zone colors. "any" zones accept neighbours of either color.
const (
	ColorRed   = "red"
	ColorWhite = "white"
	ColorAny   = "any"
)

// Zone is a logical storage category from the static registry. Zones are
// read-only to the reconfiguration engine; classification of wines into
// zones is owned by an external collaborator.
type Zone struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Color         string   `yaml:"color"`
	Grapes        []string `yaml:"grapes"`
	Countries     []string `yaml:"countries"`
	Styles        []string `yaml:"styles"`
	PreferredRows [2]int   `yaml:"preferred_rows"`
	Buffer        bool     `yaml:"buffer"`
}

// ColorsCompatible reports whether two zone colors may sit in adjacent rows.
func ColorsCompatible(a, b string) bool {
	if a == ColorAny || b == ColorAny {
		return true
	}
	return a == b
}

// Zone pin types. Pins constrain what the planner may do with a zone.
const (
	PinNeverMerge  = "never_merge"
	PinNeverRetire = "never_retire"
)

// ZonePin is a per-zone planner constraint.
type ZonePin struct {
	ID       string
	CellarID string
	ZoneID   string
	PinType  string
}

// Stability bias bounds how many actions a generated plan may contain.
const (
	StabilityLow      = "low"
	StabilityModerate = "moderate"
	StabilityHigh     = "high"
)

// MaxActionsFor returns the action cap for a stability bias. Unknown values
// get the moderate cap.
func MaxActionsFor(bias string) int {
	switch bias {
	case StabilityHigh:
		return 3
	case StabilityLow:
		return 10
	default:
		return 6
	}
}
