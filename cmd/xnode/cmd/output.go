package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/OpenTraceLab/xnode/pkg/config"
	"github.com/OpenTraceLab/xnode/pkg/crossing"
	"github.com/OpenTraceLab/xnode/pkg/placement"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func printDirections(w io.Writer, format string, counts crossing.DirectionCounts) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, counts)
	case config.FormatTable:
		t := newTable(directionHeaders()...)
		t.Row(directionCells(counts)...)
		_, err := fmt.Fprintln(w, t.Render())
		return err
	}
	_, err := fmt.Fprintln(w, counts)
	return err
}

func printGrid(w io.Writer, format string, grid crossing.GridCounts) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, grid)
	case config.FormatTable:
		t := newTable(append([]string{"COL", "ROW"}, directionHeaders()...)...)
		for _, c := range grid.Columns() {
			for _, r := range grid.Rows(c) {
				row := []string{strconv.Itoa(c), strconv.Itoa(r)}
				t.Row(append(row, directionCells(grid[c][r])...)...)
			}
		}
		_, err := fmt.Fprintln(w, t.Render())
		return err
	}
	_, err := fmt.Fprintln(w, grid)
	return err
}

func printMetrics(w io.Writer, format string, pblocks []placement.PBlockUtilization) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, pblocks)
	case config.FormatTable:
		kinds := utilizationKinds(pblocks)
		t := newTable(append([]string{"PBLOCK"}, kinds...)...)
		for _, p := range pblocks {
			row := []string{p.Name}
			for _, k := range kinds {
				if n, ok := p.Utilization[k]; ok {
					row = append(row, strconv.Itoa(n))
				} else {
					row = append(row, "-")
				}
			}
			t.Row(row...)
		}
		_, err := fmt.Fprintln(w, t.Render())
		return err
	}
	for _, p := range pblocks {
		if _, err := fmt.Fprintf(w, "PBlock: %s; Utilization: %v\n", p.Name, p.Utilization); err != nil {
			return err
		}
	}
	return nil
}

func directionHeaders() []string {
	var out []string
	for _, d := range crossing.Directions() {
		out = append(out, string(d))
	}
	return out
}

// directionCells renders counts in Directions() order, "-" where a
// boundary faces off the grid.
func directionCells(counts crossing.DirectionCounts) []string {
	var out []string
	for _, d := range crossing.Directions() {
		if n, ok := counts[d]; ok {
			out = append(out, strconv.Itoa(n))
		} else {
			out = append(out, "-")
		}
	}
	return out
}

func utilizationKinds(pblocks []placement.PBlockUtilization) []string {
	seen := make(map[string]bool)
	var kinds []string
	for _, p := range pblocks {
		for k := range p.Utilization {
			if !seen[k] {
				seen[k] = true
				kinds = append(kinds, k)
			}
		}
	}
	sort.Strings(kinds)
	return kinds
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
