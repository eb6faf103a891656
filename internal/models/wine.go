package models

import (
	"strings"
	"time"
)

// Wine colours as normalised at import time. Reds and whites drive the
// adjacency rules; rosé and sparkling live in "any"-coloured zones.
const (
	WineRed       = "red"
	WineWhite     = "white"
	WineRose      = "rose"
	WineSparkling = "sparkling"
)

// Wine is a bottle record. ZoneID is set by the external classifier or by
// reconfiguration actions; Location is the current slot code ("" when
// unplaced).
type Wine struct {
	ID        string
	CellarID  string
	Name      string
	Color     string
	Grape     string
	Country   string
	Style     string
	Vintage   int
	ZoneID    string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeColor maps free-text colour values onto the canonical set.
// Unrecognised values default to white, matching the original import rules.
func NormalizeColor(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	switch c {
	case "red":
		return WineRed
	case "white":
		return WineWhite
	case "rose", "rosé":
		return WineRose
	}
	if strings.Contains(c, "sparkl") || strings.Contains(c, "prosecco") || strings.Contains(c, "champagne") {
		return WineSparkling
	}
	return WineWhite
}
