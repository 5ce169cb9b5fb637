package placement

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OpenTraceLab/xnode/pkg/jvm"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		name    string
		want    Region
		wantErr bool
	}{
		{"X0Y12X3Y15", Region{0, 12, 3, 15}, false},
		{"CR_X4Y8_To_CR_X7Y11", Region{4, 8, 7, 11}, false},
		{"pblock_dynamic", Region{}, true},
	}

	for _, tt := range tests {
		got, err := ParseRegion(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRegion(%q) expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRegion(%q): %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRegion(%q) = %+v, want %+v", tt.name, got, tt.want)
		}
		if got.String() != tt.name && tt.name == "X0Y12X3Y15" {
			t.Errorf("String() = %q", got.String())
		}
	}
}

const sampleReport = `create_pblock X0Y0X3Y3
resize_pblock [get_pblocks X4Y0X7Y3] -add {CLOCKREGION_X4Y0:CLOCKREGION_X7Y3}
PBlock: X4Y0X7Y3; Utilization: {CLB_LUTS=120, DSPS=4}
SiteInst: SLICE_X0Y0; Cell #: 0
PBlock: X0Y4X3Y7; Utilization: {CLB_LUTS=7, DSPS=0}
PBlock: X0Y0X3Y3; Utilization: {CLB_LUTS=300, DSPS=12}
`

func TestParseReport(t *testing.T) {
	got, err := ParseReport(sampleReport)
	if err != nil {
		t.Fatalf("ParseReport failed: %v", err)
	}

	want := []PBlockUtilization{
		{Name: "X0Y0X3Y3", Region: Region{0, 0, 3, 3}, Utilization: map[string]int{"CLB_LUTS": 300, "DSPS": 12}},
		{Name: "X4Y0X7Y3", Region: Region{4, 0, 7, 3}, Utilization: map[string]int{"CLB_LUTS": 120, "DSPS": 4}},
		{Name: "X0Y4X3Y7", Region: Region{0, 4, 3, 7}, Utilization: map[string]int{"CLB_LUTS": 7, "DSPS": 0}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseReport mismatch (-want +got):\n%s", diff)
	}
}

func TestParseReportErrors(t *testing.T) {
	bad := []string{
		"PBlock: X0Y0X1Y1; Utilization: {CLB_LUTS=1}}",
		"PBlock: X0Y0X1Y1; Utilization: {CLB_LUTS={A=1}}",
		"PBlock: X0Y0X1Y1; Utilization: {CLB_LUTS=null}",
		"PBlock: dynamic; Utilization: {CLB_LUTS=1}",
	}
	for _, input := range bad {
		if _, err := ParseReport(input); err == nil {
			t.Errorf("ParseReport(%q) expected error", input)
		}
	}

	got, err := ParseReport("nothing to see\n")
	if err != nil || len(got) != 0 {
		t.Errorf("ParseReport(noise) = %v, %v", got, err)
	}
}

func TestExtract(t *testing.T) {
	rt := jvm.NewSimRuntime(func(call jvm.Call) (*jvm.Result, error) {
		if call.Class != ExtractorClass || call.Method != ExtractMethod {
			t.Errorf("unexpected call %s", call)
		}
		return &jvm.Result{Null: true, Output: sampleReport}, nil
	})

	got, err := Extract(context.Background(), rt, "placed.dcp")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d pblocks, want 3", len(got))
	}

	call, _ := rt.LastCall()
	if len(call.Args) != 1 || call.Args[0].Str != "placed.dcp" {
		t.Errorf("unexpected args %v", call.Args)
	}
}

func TestExtractPropagatesToolkitError(t *testing.T) {
	want := &jvm.ToolkitError{Type: "java.lang.AssertionError", Message: "resize_pblock [...] -remove {...} not considered yet!"}
	rt := jvm.NewSimRuntime(func(jvm.Call) (*jvm.Result, error) { return nil, want })

	_, err := Extract(context.Background(), rt, "placed.dcp")
	var te *jvm.ToolkitError
	if !errors.As(err, &te) || te != want {
		t.Fatalf("error = %v, want the toolkit error", err)
	}
}
