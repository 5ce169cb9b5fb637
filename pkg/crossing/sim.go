package crossing

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/xnode/pkg/javamap"
	"github.com/OpenTraceLab/xnode/pkg/jvm"
	"github.com/OpenTraceLab/xnode/pkg/placement"
)

// SimDevice stands in for the toolkit with a synthetic clock-region grid.
// It answers the counter entry points and the placement metrics entry
// point in the toolkit's own textual format.
type SimDevice struct {
	Name    string
	Columns int
	Rows    int

	// Count returns the nodes crossing the north (d == North) or east
	// (d == East) boundary of cell (col, row). South and west counts are
	// read from the neighbour, as the toolkit does. Nil uses DefaultCount.
	Count func(col, row int, d Direction) int

	// Checkpoints, when set, lists the checkpoint paths that "exist".
	Checkpoints map[string]bool
}

// NewSimDevice returns a simulated device with the given clock-region grid.
func NewSimDevice(name string, columns, rows int) *SimDevice {
	return &SimDevice{Name: name, Columns: columns, Rows: rows}
}

// DefaultCount is a deterministic count for simulated boundaries.
func DefaultCount(col, row int, d Direction) int {
	if d == East {
		return 12000 + 100*col + row
	}
	return 9000 + 100*col + 10*row
}

// Runtime wraps the device in a jvm.SimRuntime.
func (s *SimDevice) Runtime() *jvm.SimRuntime {
	return jvm.NewSimRuntime(s.Answer)
}

// Cell returns the expected counts of one cell of a cols × rows grid.
func (s *SimDevice) Cell(col, row, cols, rows int) DirectionCounts {
	count := s.Count
	if count == nil {
		count = DefaultCount
	}

	counts := make(DirectionCounts, 4)
	if row < rows-1 {
		counts[North] = count(col, row, North)
	}
	if row > 0 {
		counts[South] = count(col, row-1, North)
	}
	if col < cols-1 {
		counts[East] = count(col, row, East)
	}
	if col > 0 {
		counts[West] = count(col-1, row, East)
	}
	return counts
}

// Grid returns the expected counts of every cell of a cols × rows grid.
func (s *SimDevice) Grid(cols, rows int) GridCounts {
	grid := make(GridCounts, cols)
	for c := 0; c < cols; c++ {
		grid[c] = make(map[int]DirectionCounts, rows)
		for r := 0; r < rows; r++ {
			grid[c][r] = s.Cell(c, r, cols, rows)
		}
	}
	return grid
}

// Answer implements jvm.InvokeHook.
func (s *SimDevice) Answer(call jvm.Call) (*jvm.Result, error) {
	key := call.Class + "." + call.Method
	switch key {
	case CRCounterClass + "." + SingleCRMethod:
		return s.answerSingle(call)
	case CRCounterClass + "." + AllCRMethod:
		return s.answerAllCR(call)
	case PBlockCounterClass + "." + AllPBlockMethod:
		return s.answerAllPBlock(call)
	case placement.ExtractorClass + "." + placement.ExtractMethod:
		return s.answerMetrics(call)
	}
	return nil, noSuchMethod(call)
}

func (s *SimDevice) answerSingle(call jvm.Call) (*jvm.Result, error) {
	if !signature(call, jvm.ArgString, jvm.ArgInt, jvm.ArgInt) {
		return nil, noSuchMethod(call)
	}
	if res, err := s.open(call); res != nil || err != nil {
		return res, err
	}
	col, row := call.Args[1].Int, call.Args[2].Int
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Columns {
		return &jvm.Result{Null: true, Output: "Invalid row or column number\n"}, nil
	}

	out := fmt.Sprintf("Device: %s; col(X): %d/%d; row(Y): %d/%d\n", s.Name, col, s.Columns, row, s.Rows)
	return &jvm.Result{
		Value:  renderDirections(s.Cell(col, row, s.Columns, s.Rows)).String(),
		Output: out,
	}, nil
}

func (s *SimDevice) answerAllCR(call jvm.Call) (*jvm.Result, error) {
	if !signature(call, jvm.ArgString) {
		return nil, noSuchMethod(call)
	}
	if res, err := s.open(call); res != nil || err != nil {
		return res, err
	}

	var out strings.Builder
	fmt.Fprintf(&out, "Device: %s; col(X): %d; row(Y): %d\n", s.Name, s.Columns, s.Rows)
	for c := 0; c < s.Columns; c++ {
		for r := 0; r < s.Rows; r++ {
			fmt.Fprintf(&out, "CLOCKREGION: X %d/%d; Y %d/%d done\n", c, s.Columns, r, s.Rows)
		}
	}
	return &jvm.Result{
		Value:  renderGrid(s.Grid(s.Columns, s.Rows)).String(),
		Output: out.String(),
	}, nil
}

func (s *SimDevice) answerAllPBlock(call jvm.Call) (*jvm.Result, error) {
	if !signature(call, jvm.ArgString, jvm.ArgInt, jvm.ArgInt) {
		return nil, noSuchMethod(call)
	}
	if res, err := s.open(call); res != nil || err != nil {
		return res, err
	}
	cols, rows := call.Args[1].Int, call.Args[2].Int
	if cols < 0 || cols >= s.Columns {
		return nil, assertion(call, "Invalid column number", "")
	}
	if rows < 0 || rows >= s.Rows {
		return nil, assertion(call, "Invalid row number", "")
	}

	var out strings.Builder
	fmt.Fprintf(&out, "Device: %s; total_col(X): %d; total_row(Y): %d\n", s.Name, cols, rows)
	out.WriteString("Extracting node counts for pblocks in different directions:\n")
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			fmt.Fprintf(&out, "  PBlock %s\tdone\n", s.pblockName(c, r, cols, rows))
		}
	}
	return &jvm.Result{
		Value:  renderGrid(s.Grid(cols, rows)).String(),
		Output: out.String(),
	}, nil
}

func (s *SimDevice) answerMetrics(call jvm.Call) (*jvm.Result, error) {
	if !signature(call, jvm.ArgString) {
		return nil, noSuchMethod(call)
	}
	if res, err := s.open(call); res != nil || err != nil {
		return res, err
	}

	var out strings.Builder
	for c := 0; c < s.Columns; c++ {
		for r := 0; r < s.Rows; r++ {
			util := javamap.MapOf(
				javamap.Pair(javamap.WordOf("CLB_LUTS"), javamap.IntOf(int64(1000+10*c+r))),
				javamap.Pair(javamap.WordOf("CLB_REGS"), javamap.IntOf(int64(2000+10*c+r))),
				javamap.Pair(javamap.WordOf("DSPS"), javamap.IntOf(int64(c+r))),
			)
			fmt.Fprintf(&out, "PBlock: %s; Utilization: %s\n", s.pblockName(c, r, s.Columns, s.Rows), util)
		}
	}
	return &jvm.Result{Null: true, Output: out.String()}, nil
}

// open mimics Design.readCheckpoint failing on a missing file.
func (s *SimDevice) open(call jvm.Call) (*jvm.Result, error) {
	path := call.Args[0].Str
	if s.Checkpoints == nil || s.Checkpoints[path] {
		return nil, nil
	}
	return nil, assertion(call, "Design is null", fmt.Sprintf("Error: %s (No such file or directory)\n", path))
}

func (s *SimDevice) pblockName(col, row, cols, rows int) string {
	width, height := s.Columns/cols, s.Rows/rows
	return fmt.Sprintf("X%dY%dX%dY%d", col*width, row*height, (col+1)*width-1, (row+1)*height-1)
}

func signature(call jvm.Call, kinds ...jvm.ArgKind) bool {
	if len(call.Args) != len(kinds) {
		return false
	}
	for i, k := range kinds {
		if call.Args[i].Kind != k {
			return false
		}
	}
	return true
}

func noSuchMethod(call jvm.Call) error {
	return &jvm.ToolkitError{
		Class:   call.Class,
		Method:  call.Method,
		Type:    "java.lang.NoSuchMethodException",
		Message: call.Class + "." + call.Method,
	}
}

func assertion(call jvm.Call, msg, output string) error {
	return &jvm.ToolkitError{
		Class:   call.Class,
		Method:  call.Method,
		Type:    "java.lang.AssertionError",
		Message: msg,
		Output:  output,
	}
}

// javaKeyOrder is the order java.util.HashMap iterates the direction keys.
var javaKeyOrder = []Direction{South, East, West, North}

func renderDirections(counts DirectionCounts) *javamap.Value {
	var entries []*javamap.Entry
	for _, d := range javaKeyOrder {
		if n, ok := counts[d]; ok {
			entries = append(entries, javamap.Pair(javamap.WordOf(string(d)), javamap.IntOf(int64(n))))
		}
	}
	return javamap.MapOf(entries...)
}

func renderGrid(grid GridCounts) *javamap.Value {
	var cols []*javamap.Entry
	for _, c := range grid.Columns() {
		var rows []*javamap.Entry
		for _, r := range grid.Rows(c) {
			rows = append(rows, javamap.Pair(javamap.IntOf(int64(r)), renderDirections(grid[c][r])))
		}
		cols = append(cols, javamap.Pair(javamap.IntOf(int64(c)), javamap.MapOf(rows...)))
	}
	return javamap.MapOf(cols...)
}
