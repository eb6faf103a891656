package solver

import (
	"sort"

	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/zones"
)

// Affinity weights. Two zones qualify as merge candidates when their
// combined score clears MergeThreshold.
const (
	weightColor    = 0.3
	weightGrape    = 0.2
	weightCountry  = 0.2
	weightStyle    = 0.3
	MergeThreshold = 0.5
)

// MergeCandidate is a pair of zones similar enough to consolidate.
// Source is the zone that would fold into Target.
type MergeCandidate struct {
	Source   string
	Target   string
	Affinity float64
}

// Affinity scores how alike two zones are.
func Affinity(a, b *models.Zone) float64 {
	if a == nil || b == nil {
		return 0
	}
	score := 0.0
	if a.Color == b.Color {
		score += weightColor
	}
	if overlaps(a.Grapes, b.Grapes) {
		score += weightGrape
	}
	if overlaps(a.Countries, b.Countries) {
		score += weightCountry
	}
	if overlaps(a.Styles, b.Styles) {
		score += weightStyle
	}
	return score
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// MergeCandidates enumerates qualifying zone pairs, excluding buffer zones
// and zones pinned never_merge. For each pair the zone with fewer bottles
// is the source. Ordered by descending affinity, then source zone ID, so
// candidate selection is deterministic.
func MergeCandidates(reg *zones.Registry, bottles map[string]int, neverMerge map[string]bool) []MergeCandidate {
	all := reg.All()
	var out []MergeCandidate
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			if a.Buffer || b.Buffer || neverMerge[a.ID] || neverMerge[b.ID] {
				continue
			}
			score := Affinity(a, b)
			if score <= MergeThreshold {
				continue
			}
			src, dst := a.ID, b.ID
			if bottles[src] > bottles[dst] {
				src, dst = dst, src
			}
			out = append(out, MergeCandidate{Source: src, Target: dst, Affinity: score})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Affinity != out[j].Affinity {
			return out[i].Affinity > out[j].Affinity
		}
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}
