// Package solver is the deterministic first layer of the planning
// pipeline: a dependency-free baseline that turns utilization data into
// candidate actions. Given identical input it produces identical output;
// ties break by zone ID and row number.
package solver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/vintry/internal/core/analysis"
	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/zones"
)

// Input is everything the solver consults. It never reaches outside this
// struct: no clock, no store, no network.
type Input struct {
	Utilization        []analysis.ZoneUtilization
	RowMap             models.RowMap
	Registry           *zones.Registry
	NeverMerge         map[string]bool
	NeverRetire        map[string]bool
	StabilityBias      string
	ColorIssues        []analysis.AdjacencyIssue
	IncludeRetirements bool
}

// Result is the solver's draft plan.
type Result struct {
	Actions   []models.Action
	Reasoning string
}

// Solve produces the Layer-1 draft: row reallocations for overflowing
// zones from underutilized donors, optional retirements of empty zones,
// and a consolidation merge when reallocation cannot help.
func Solve(in Input) Result {
	var (
		actions []models.Action
		notes   []string
	)

	overflows := analysis.Overflowing(in.Utilization)
	donors := newDonorPool(analysis.Donors(in.Utilization), in.RowMap)

	bottles := make(map[string]int, len(in.Utilization))
	for _, u := range in.Utilization {
		bottles[u.ZoneID] = u.BottleCount
	}
	candidates := MergeCandidates(in.Registry, bottles, in.NeverMerge)

	// Overflow relief: one donated row per overflowing zone per pass.
	var unrelieved []string
	for _, over := range overflows {
		row, donor := donors.take(over.ZoneID, in.RowMap[over.ZoneID])
		if donor == "" {
			unrelieved = append(unrelieved, over.ZoneID)
			continue
		}
		actions = append(actions, models.Action{
			Type:       models.ActionReallocateRow,
			SourceZone: donor,
			TargetZone: over.ZoneID,
			Row:        row,
			Priority:   1,
			Reason:     fmt.Sprintf("%s is over capacity (%.0f%%); %s is underutilized", over.ZoneID, over.Utilization, donor),
		})
		notes = append(notes, fmt.Sprintf("relieving %s with %s from %s", over.ZoneID, row, donor))
	}

	// Empty zones retire into their closest relative.
	if in.IncludeRetirements {
		for _, u := range in.Utilization {
			z := in.Registry.Get(u.ZoneID)
			if z == nil || z.Buffer || u.BottleCount > 0 || u.RowCount == 0 || in.NeverRetire[u.ZoneID] {
				continue
			}
			target := bestRetireTarget(in.Registry, u.ZoneID, in.Utilization, in.NeverMerge)
			if target == "" {
				continue
			}
			actions = append(actions, models.Action{
				Type:       models.ActionRetireZone,
				SourceZone: u.ZoneID,
				TargetZone: target,
				Priority:   2,
				Reason:     fmt.Sprintf("%s holds no bottles; its rows free up for %s", u.ZoneID, target),
			})
			notes = append(notes, fmt.Sprintf("retiring empty zone %s into %s", u.ZoneID, target))
		}
	}

	// When an overflowing zone found no donor, a merge is the remaining
	// deterministic lever: folding a compatible small zone elsewhere frees
	// its rows.
	if len(unrelieved) > 0 && len(candidates) > 0 {
		c := candidates[0]
		if !mergeAlreadyPlanned(actions, c) {
			actions = append(actions, models.Action{
				Type:       models.ActionMergeZones,
				SourceZone: c.Source,
				TargetZone: c.Target,
				Priority:   3,
				Reason:     fmt.Sprintf("no donor rows for %s; merging %s into %s (affinity %.1f) frees %d row(s)", strings.Join(unrelieved, ", "), c.Source, c.Target, c.Affinity, len(in.RowMap[c.Source])),
			})
			notes = append(notes, fmt.Sprintf("merging %s into %s to free rows", c.Source, c.Target))
		}
	}

	if len(in.ColorIssues) > 0 {
		notes = append(notes, fmt.Sprintf("%d color-adjacency issue(s) outstanding; repair pass will attempt swaps", len(in.ColorIssues)))
	}

	actions = capActions(actions, models.MaxActionsFor(in.StabilityBias))

	reasoning := "No layout pressure detected; current allocation stands."
	if len(notes) > 0 {
		reasoning = strings.Join(notes, "; ")
	}
	return Result{Actions: actions, Reasoning: reasoning}
}

// capActions keeps at most n actions, preferring lower priority values and
// preserving relative order within a priority.
func capActions(actions []models.Action, n int) []models.Action {
	if len(actions) <= n {
		return actions
	}
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Priority < actions[j].Priority
	})
	return actions[:n]
}

func mergeAlreadyPlanned(actions []models.Action, c MergeCandidate) bool {
	for _, a := range actions {
		if (a.Type == models.ActionMergeZones || a.Type == models.ActionRetireZone) &&
			(a.SourceZone == c.Source || a.TargetZone == c.Source) {
			return true
		}
	}
	return false
}

// bestRetireTarget picks the highest-affinity non-pinned zone; ties break
// by zone ID via registry ordering.
func bestRetireTarget(reg *zones.Registry, zoneID string, utils []analysis.ZoneUtilization, neverMerge map[string]bool) string {
	z := reg.Get(zoneID)
	best, bestScore := "", 0.0
	for _, u := range utils {
		if u.ZoneID == zoneID || neverMerge[u.ZoneID] {
			continue
		}
		other := reg.Get(u.ZoneID)
		if other == nil || other.Buffer {
			continue
		}
		if score := Affinity(z, other); score > bestScore {
			best, bestScore = u.ZoneID, score
		}
	}
	return best
}

// donorPool hands out edge rows from underutilized zones, never the same
// row twice and never a donor's last row.
type donorPool struct {
	order []string
	rows  map[string][]string
	util  map[string]float64
}

func newDonorPool(donors []analysis.ZoneUtilization, rowMap models.RowMap) *donorPool {
	p := &donorPool{rows: make(map[string][]string), util: make(map[string]float64)}
	for _, d := range donors {
		rows := make([]string, len(rowMap[d.ZoneID]))
		copy(rows, rowMap[d.ZoneID])
		models.SortRows(rows)
		p.order = append(p.order, d.ZoneID)
		p.rows[d.ZoneID] = rows
		p.util[d.ZoneID] = d.Utilization
	}
	sort.Strings(p.order)
	return p
}

// take selects the donor with the lowest utilization (ties by zone ID) and
// hands over whichever edge row sits closest to the receiver's rows, so
// donated rows tend to land adjacent to where they are needed.
func (p *donorPool) take(receiver string, receiverRows []string) (row, donor string) {
	best := ""
	for _, id := range p.order {
		if id == receiver || len(p.rows[id]) < 2 {
			continue
		}
		if best == "" || p.util[id] < p.util[best] {
			best = id
		}
	}
	if best == "" {
		return "", ""
	}

	rows := p.rows[best]
	first, last := rows[0], rows[len(rows)-1]
	row = first
	if rowDistance(last, receiverRows) < rowDistance(first, receiverRows) {
		row = last
	}
	p.rows[best] = models.RemoveRow(rows, row)
	return row, best
}

func rowDistance(row string, target []string) int {
	if len(target) == 0 {
		return 0
	}
	n := models.RowNum(row)
	best := -1
	for _, t := range target {
		d := n - models.RowNum(t)
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
