// Package zones holds the static zone registry. Zone definitions ship with
// the binary; classification rules are consulted for merge affinity, never
// for classifying wines (an external collaborator owns that).
package zones

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/example/vintry/internal/models"
)

//go:embed zones.yaml
var registryFS embed.FS

// Registry is an immutable set of zone definitions.
type Registry struct {
	zones map[string]*models.Zone
	order []string
}

type registryFile struct {
	Zones []*models.Zone `yaml:"zones"`
}

// Load parses the embedded zone definitions.
func Load() (*Registry, error) {
	data, err := registryFS.ReadFile("zones.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read zone registry: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from raw YAML. Exposed for tests.
func Parse(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse zone registry: %w", err)
	}

	r := &Registry{zones: make(map[string]*models.Zone, len(file.Zones))}
	for _, z := range file.Zones {
		if z.ID == "" {
			return nil, fmt.Errorf("zone registry entry missing id")
		}
		if _, dup := r.zones[z.ID]; dup {
			return nil, fmt.Errorf("duplicate zone id %q", z.ID)
		}
		switch z.Color {
		case models.ColorRed, models.ColorWhite, models.ColorAny:
		default:
			return nil, fmt.Errorf("zone %s has unknown color %q", z.ID, z.Color)
		}
		r.zones[z.ID] = z
		r.order = append(r.order, z.ID)
	}
	sort.Strings(r.order)
	return r, nil
}

// Get returns the zone definition for an ID, or nil when unknown.
func (r *Registry) Get(id string) *models.Zone {
	return r.zones[id]
}

// Has reports whether the registry knows the zone ID.
func (r *Registry) Has(id string) bool {
	_, ok := r.zones[id]
	return ok
}

// All returns every zone ordered by ID for deterministic iteration.
func (r *Registry) All() []*models.Zone {
	out := make([]*models.Zone, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.zones[id])
	}
	return out
}

// IsBuffer reports whether the zone is a buffer zone. Buffer zones hold
// at most one row.
func (r *Registry) IsBuffer(id string) bool {
	z := r.zones[id]
	return z != nil && z.Buffer
}

// ColorOf returns a zone's effective color, defaulting to "any" for
// unknown zones so adjacency checks fail open rather than crash.
func (r *Registry) ColorOf(id string) string {
	if z := r.zones[id]; z != nil {
		return z.Color
	}
	return models.ColorAny
}
