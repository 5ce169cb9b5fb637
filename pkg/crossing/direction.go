package crossing

import (
	"fmt"
	"sort"
)

// Direction names one side of a grid cell.
type Direction string

const (
	North Direction = "N"
	South Direction = "S"
	East  Direction = "E"
	West  Direction = "W"
)

// Directions lists all four directions in a stable order.
func Directions() []Direction {
	return []Direction{North, South, East, West}
}

// ParseDirection accepts the toolkit's single-letter keys.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case North, South, East, West:
		return d, nil
	}
	return "", fmt.Errorf("crossing: unknown direction %q", s)
}

// DirectionCounts maps each boundary of one cell to the number of routing
// nodes crossing it. Boundaries that face off the grid are absent.
type DirectionCounts map[Direction]int

// Total sums the counts over all present directions.
func (d DirectionCounts) Total() int {
	total := 0
	for _, n := range d {
		total += n
	}
	return total
}

// GridCounts maps column → row → DirectionCounts.
type GridCounts map[int]map[int]DirectionCounts

// Columns returns the column indices in ascending order.
func (g GridCounts) Columns() []int {
	cols := make([]int, 0, len(g))
	for c := range g {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	return cols
}

// Rows returns the row indices of one column in ascending order.
func (g GridCounts) Rows(col int) []int {
	rows := make([]int, 0, len(g[col]))
	for r := range g[col] {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}

// Cell returns the counts of one cell.
func (g GridCounts) Cell(col, row int) (DirectionCounts, bool) {
	rows, ok := g[col]
	if !ok {
		return nil, false
	}
	counts, ok := rows[row]
	return counts, ok
}
