package crossing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/xnode/pkg/jvm"
)

// Toolkit classes and entry points.
const (
	CRCounterClass     = "com.xilinx.rapidwright.examples.CrossingCRNodeCounter"
	PBlockCounterClass = "com.xilinx.rapidwright.examples.CrossingPBlockNodeCounter"

	SingleCRMethod  = "getSinglePBlockCrossingCRNodeCount"
	AllCRMethod     = "getAllPBlockCrossingCRNodeCount"
	AllPBlockMethod = "getAllPBlockCrossingNodeCount"
)

// ErrNoResult is returned when the toolkit answers with null, which it does
// for coordinates outside the device.
var ErrNoResult = errors.New("crossing: toolkit returned no result")

// Counter asks the toolkit for crossing-node counts. It adds no checks of
// its own: paths and coordinates go to the toolkit untouched and toolkit
// failures come back as *jvm.ToolkitError.
type Counter struct {
	inv jvm.Invoker
}

// NewCounter returns a Counter that calls through inv.
func NewCounter(inv jvm.Invoker) *Counter {
	return &Counter{inv: inv}
}

// ClockRegion counts the nodes crossing each boundary of clock region
// (col, row). Cells on the device edge have two or three directions.
func (c *Counter) ClockRegion(ctx context.Context, dcp string, col, row int) (DirectionCounts, error) {
	call := jvm.Call{
		Class:  CRCounterClass,
		Method: SingleCRMethod,
		Args:   []jvm.Arg{jvm.StringArg(dcp), jvm.IntArg(col), jvm.IntArg(row)},
	}
	text, err := c.invoke(ctx, call)
	if err != nil {
		return nil, err
	}
	counts, err := decodeDirections(text)
	if err != nil {
		return nil, fmt.Errorf("crossing: %s returned an unexpected shape: %w", call.Method, err)
	}
	return counts, nil
}

// AllClockRegions counts crossing nodes for every clock region of the
// checkpoint's device. The grid extent comes from the device itself.
func (c *Counter) AllClockRegions(ctx context.Context, dcp string) (GridCounts, error) {
	return c.grid(ctx, jvm.Call{
		Class:  CRCounterClass,
		Method: AllCRMethod,
		Args:   []jvm.Arg{jvm.StringArg(dcp)},
	})
}

// AllPBlocks counts crossing nodes between the pblocks of a cols × rows
// floorplan grid. Pblocks are found through the checkpoint's
// create_pblock/resize_pblock constraints.
func (c *Counter) AllPBlocks(ctx context.Context, dcp string, cols, rows int) (GridCounts, error) {
	return c.grid(ctx, jvm.Call{
		Class:  PBlockCounterClass,
		Method: AllPBlockMethod,
		Args:   []jvm.Arg{jvm.StringArg(dcp), jvm.IntArg(cols), jvm.IntArg(rows)},
	})
}

func (c *Counter) grid(ctx context.Context, call jvm.Call) (GridCounts, error) {
	text, err := c.invoke(ctx, call)
	if err != nil {
		return nil, err
	}
	grid, err := decodeGrid(text)
	if err != nil {
		return nil, fmt.Errorf("crossing: %s returned an unexpected shape: %w", call.Method, err)
	}
	return grid, nil
}

func (c *Counter) invoke(ctx context.Context, call jvm.Call) (string, error) {
	log := Logger().With(zap.String("method", call.Method))

	res, err := c.inv.Invoke(ctx, call)
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(strings.TrimSpace(res.Output), "\n") {
		if line != "" {
			log.Debug("toolkit", zap.String("output", line))
		}
	}
	if res.Null {
		if out := strings.TrimSpace(res.Output); out != "" {
			return "", fmt.Errorf("%w from %s: %s", ErrNoResult, call.Method, lastLine(out))
		}
		return "", fmt.Errorf("%w from %s", ErrNoResult, call.Method)
	}
	return res.Value, nil
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
