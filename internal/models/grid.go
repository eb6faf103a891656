package models

import (
	"fmt"
	"strconv"
	"strings"
)

// The cellar grid is fixed: rows R1 through R19. Row 1 holds 7 bottles,
// every other row holds 9.
const (
	FirstRow = 1
	LastRow  = 19
)

// RowCapacity returns the bottle capacity of a cellar row.
func RowCapacity(rowNum int) int {
	if rowNum == 1 {
		return 7
	}
	return 9
}

// RowName returns the canonical identifier for a row number, e.g. "R5".
func RowName(rowNum int) string {
	return fmt.Sprintf("R%d", rowNum)
}

// RowNum parses a row identifier like "R5" into its number.
// Returns 0 for anything that is not a valid row identifier.
func RowNum(row string) int {
	row = strings.TrimSpace(row)
	if len(row) < 2 || (row[0] != 'R' && row[0] != 'r') {
		return 0
	}
	n, err := strconv.Atoi(row[1:])
	if err != nil || n < FirstRow || n > LastRow {
		return 0
	}
	return n
}

// IsValidRow reports whether row names a row on the physical grid.
func IsValidRow(row string) bool {
	return RowNum(row) != 0
}

// AllRows returns every row identifier on the grid in ascending order.
func AllRows() []string {
	rows := make([]string, 0, LastRow)
	for n := FirstRow; n <= LastRow; n++ {
		rows = append(rows, RowName(n))
	}
	return rows
}

// RowsCapacity sums the bottle capacity of the given rows. Unknown
// identifiers contribute nothing.
func RowsCapacity(rows []string) int {
	total := 0
	for _, r := range rows {
		if n := RowNum(r); n != 0 {
			total += RowCapacity(n)
		}
	}
	return total
}
