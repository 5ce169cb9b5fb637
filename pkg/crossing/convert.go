package crossing

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/xnode/pkg/javamap"
)

// Nesting depth of each result shape.
const (
	directionDepth = 1 // direction → count
	gridDepth      = 3 // column → row → direction → count
)

// decodeDirections parses a rendered HashMap<String, Integer>.
func decodeDirections(text string) (DirectionCounts, error) {
	v, err := javamap.ParseString(text)
	if err != nil {
		return nil, err
	}
	tree, err := javamap.Copy(v, directionDepth)
	if err != nil {
		return nil, err
	}
	return directionsFromTree(tree, "")
}

// decodeGrid parses a rendered
// HashMap<Integer, HashMap<Integer, HashMap<String, Integer>>>.
func decodeGrid(text string) (GridCounts, error) {
	v, err := javamap.ParseString(text)
	if err != nil {
		return nil, err
	}
	tree, err := javamap.Copy(v, gridDepth)
	if err != nil {
		return nil, err
	}

	grid := make(GridCounts, len(tree))
	for colKey, colNode := range tree {
		col, err := strconv.Atoi(colKey)
		if err != nil {
			return nil, fmt.Errorf("crossing: column key %q is not an integer", colKey)
		}
		rows := colNode.(javamap.Tree)
		grid[col] = make(map[int]DirectionCounts, len(rows))
		for rowKey, rowNode := range rows {
			row, err := strconv.Atoi(rowKey)
			if err != nil {
				return nil, fmt.Errorf("crossing: row key %q in column %d is not an integer", rowKey, col)
			}
			counts, err := directionsFromTree(rowNode.(javamap.Tree), fmt.Sprintf("[%d][%d]", col, row))
			if err != nil {
				return nil, err
			}
			grid[col][row] = counts
		}
	}
	return grid, nil
}

func directionsFromTree(tree javamap.Tree, at string) (DirectionCounts, error) {
	counts := make(DirectionCounts, len(tree))
	for key, leaf := range tree {
		d, err := ParseDirection(key)
		if err != nil {
			return nil, fmt.Errorf("%w at %s", err, cellLabel(at))
		}
		n, ok := leaf.(int64)
		if !ok {
			return nil, fmt.Errorf("crossing: null count for %s at %s", d, cellLabel(at))
		}
		counts[d] = int(n)
	}
	return counts, nil
}

func cellLabel(at string) string {
	if at == "" {
		return "cell"
	}
	return "cell " + at
}
