package models

import (
	"encoding/json"
	"sort"
	"strings"
)

// ParseRowList decodes a persisted row-list value into a canonical ordered
// list of row identifiers. Values arrive either as a JSON array
// (`["R3","R4"]`) or as bare comma-separated text (`R3,R4`), depending on
// which code path wrote them. Malformed input yields an empty list, never an
// error: the persistence boundary must not blow up on a bad row.
func ParseRowList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []string{}
	}

	var rows []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &rows); err != nil {
			return []string{}
		}
	} else {
		rows = strings.Split(raw, ",")
	}

	out := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		n := RowNum(r)
		if n == 0 || seen[RowName(n)] {
			continue
		}
		seen[RowName(n)] = true
		out = append(out, RowName(n))
	}
	SortRows(out)
	return out
}

// EncodeRowList serializes a row list to its canonical JSON form.
func EncodeRowList(rows []string) string {
	if rows == nil {
		rows = []string{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// SortRows orders row identifiers numerically in place.
func SortRows(rows []string) {
	sort.Slice(rows, func(i, j int) bool {
		return RowNum(rows[i]) < RowNum(rows[j])
	})
}

// ContainsRow reports whether rows includes the given row identifier.
func ContainsRow(rows []string, row string) bool {
	for _, r := range rows {
		if r == row {
			return true
		}
	}
	return false
}

// RemoveRow returns rows with the given row removed. The input slice is not
// modified.
func RemoveRow(rows []string, row string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r != row {
			out = append(out, r)
		}
	}
	return out
}

// AddRow returns rows with the given row appended in numeric position.
// Adding a row that is already present is a no-op.
func AddRow(rows []string, row string) []string {
	if ContainsRow(rows, row) {
		return rows
	}
	out := make([]string, len(rows), len(rows)+1)
	copy(out, rows)
	out = append(out, row)
	SortRows(out)
	return out
}
