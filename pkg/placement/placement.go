// Package placement collects per-pblock resource utilization from a placed
// checkpoint through the toolkit's PlacementMetricExtractor.
package placement

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/xnode/pkg/javamap"
	"github.com/OpenTraceLab/xnode/pkg/jvm"
)

// Toolkit entry point. It returns nothing and prints one line per pblock.
const (
	ExtractorClass = "com.xilinx.rapidwright.examples.PlacementMetricExtractor"
	ExtractMethod  = "getAllPBlockPlacementMetrics"
)

var (
	reportLine = regexp.MustCompile(`^PBlock: (\S+); Utilization: (\{.*\})\s*$`)
	regionName = regexp.MustCompile(`^.*X(\d+)Y(\d+).*X(\d+)Y(\d+).*$`)
)

// Region is the clock-region rectangle a pblock name encodes, e.g.
// X0Y12X3Y15 spans X0..X3, Y12..Y15.
type Region struct {
	X0, Y0, X1, Y1 int
}

func (r Region) String() string {
	return fmt.Sprintf("X%dY%dX%dY%d", r.X0, r.Y0, r.X1, r.Y1)
}

// ParseRegion extracts the first and last XnYn pair from a pblock name.
func ParseRegion(name string) (Region, error) {
	m := regionName.FindStringSubmatch(name)
	if m == nil {
		return Region{}, fmt.Errorf("placement: pblock name %q does not encode a region", name)
	}
	var xy [4]int
	for i := range xy {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Region{}, fmt.Errorf("placement: pblock name %q: %w", name, err)
		}
		xy[i] = n
	}
	return Region{X0: xy[0], Y0: xy[1], X1: xy[2], Y1: xy[3]}, nil
}

// PBlockUtilization is the used-resource count of one pblock, keyed by the
// toolkit's utilization type names.
type PBlockUtilization struct {
	Name        string         `json:"name"`
	Region      Region         `json:"region"`
	Utilization map[string]int `json:"utilization"`
}

// Extract runs the extractor on dcp and returns one entry per pblock,
// ordered by region (bottom row first, then left to right).
func Extract(ctx context.Context, inv jvm.Invoker, dcp string) ([]PBlockUtilization, error) {
	res, err := inv.Invoke(ctx, jvm.Call{
		Class:  ExtractorClass,
		Method: ExtractMethod,
		Args:   []jvm.Arg{jvm.StringArg(dcp)},
	})
	if err != nil {
		return nil, err
	}
	return ParseReport(res.Output)
}

// ParseReport picks the "PBlock: ...; Utilization: {...}" lines out of the
// extractor's output. Other lines are ignored.
func ParseReport(output string) ([]PBlockUtilization, error) {
	var out []PBlockUtilization

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		m := reportLine.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}

		region, err := ParseRegion(m[1])
		if err != nil {
			return nil, err
		}
		v, err := javamap.ParseString(m[2])
		if err != nil {
			return nil, fmt.Errorf("placement: pblock %s: %w", m[1], err)
		}
		tree, err := javamap.Copy(v, 1)
		if err != nil {
			return nil, fmt.Errorf("placement: pblock %s: %w", m[1], err)
		}

		util := make(map[string]int, len(tree))
		for k, leaf := range tree {
			n, ok := leaf.(int64)
			if !ok {
				return nil, fmt.Errorf("placement: pblock %s: null count for %s", m[1], k)
			}
			util[k] = int(n)
		}
		out = append(out, PBlockUtilization{Name: m[1], Region: region, Utilization: util})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("placement: reading report: %w", err)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Region, out[j].Region
		if a.Y0 != b.Y0 {
			return a.Y0 < b.Y0
		}
		if a.X0 != b.X0 {
			return a.X0 < b.X0
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
