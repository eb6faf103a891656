// Package moves validates proposed bottle relocations against the slot
// grid before anything touches persisted state.
package moves

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/example/vintry/internal/models"
)

var cellarSlotRe = regexp.MustCompile(`^R(\d+)C(\d+)$`)

// IsValidSlot reports whether code names a physical slot: cellar slots
// R{row}C{col} within the grid, or fridge slots F1..F9.
func IsValidSlot(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if strings.HasPrefix(code, "F") {
		n, err := strconv.Atoi(code[1:])
		return err == nil && n >= 1 && n <= 9
	}
	m := cellarSlotRe.FindStringSubmatch(code)
	if m == nil {
		return false
	}
	row, _ := strconv.Atoi(m[1])
	col, _ := strconv.Atoi(m[2])
	if row < models.FirstRow || row > models.LastRow {
		return false
	}
	return col >= 1 && col <= models.RowCapacity(row)
}

// SlotRow returns the grid row a cellar slot sits in ("" for fridge slots
// and invalid codes).
func SlotRow(code string) string {
	m := cellarSlotRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(code)))
	if m == nil {
		return ""
	}
	row, _ := strconv.Atoi(m[1])
	if row < models.FirstRow || row > models.LastRow {
		return ""
	}
	return models.RowName(row)
}

// ExpandRange expands a location range like "R10C1".."R10C3" into the
// explicit slot list. A missing end yields just the start. Multi-row
// ranges are not expanded.
func ExpandRange(start, end string) []string {
	start = strings.ToUpper(strings.TrimSpace(start))
	end = strings.ToUpper(strings.TrimSpace(end))
	if end == "" {
		return []string{start}
	}

	if strings.HasPrefix(start, "F") && strings.HasPrefix(end, "F") {
		a, err1 := strconv.Atoi(start[1:])
		b, err2 := strconv.Atoi(end[1:])
		if err1 != nil || err2 != nil || b < a {
			return []string{start}
		}
		out := make([]string, 0, b-a+1)
		for i := a; i <= b; i++ {
			out = append(out, fmt.Sprintf("F%d", i))
		}
		return out
	}

	ms := cellarSlotRe.FindStringSubmatch(start)
	me := cellarSlotRe.FindStringSubmatch(end)
	if ms == nil || me == nil || ms[1] != me[1] {
		return []string{start}
	}
	row, _ := strconv.Atoi(ms[1])
	from, _ := strconv.Atoi(ms[2])
	to, _ := strconv.Atoi(me[2])
	if to < from {
		return []string{start}
	}
	out := make([]string, 0, to-from+1)
	for c := from; c <= to; c++ {
		out = append(out, fmt.Sprintf("R%dC%d", row, c))
	}
	return out
}
