package jvm

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRequest(t *testing.T) {
	tests := []Call{
		{Class: "a.B", Method: "m"},
		{
			Class:  "com.xilinx.rapidwright.examples.CrossingCRNodeCounter",
			Method: "getSinglePBlockCrossingCRNodeCount",
			Args:   []Arg{StringArg("/tmp/my design/top.dcp"), IntArg(0), IntArg(3)},
		},
		{
			Class:  "a.B",
			Method: "m",
			Args:   []Arg{StringArg("tab\there+plus&amp=eq\nnewline ünïcode"), IntArg(-1)},
		},
	}

	for _, want := range tests {
		line, err := encodeRequest(42, want)
		if err != nil {
			t.Fatalf("encodeRequest(%s): %v", want, err)
		}
		if strings.Count(line, "\n") != 1 || !strings.HasSuffix(line, "\n") {
			t.Fatalf("request must be a single line, got %q", line)
		}

		id, got, err := decodeRequest(line)
		if err != nil {
			t.Fatalf("decodeRequest(%q): %v", line, err)
		}
		if id != 42 {
			t.Errorf("id = %d, want 42", id)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestEncodeRequestErrors(t *testing.T) {
	bad := []Call{
		{Method: "m"},
		{Class: "a.B"},
		{Class: "a\tB", Method: "m"},
		{Class: "a.B", Method: "m", Args: []Arg{IntArg(1 << 40)}},
		{Class: "a.B", Method: "m", Args: []Arg{{Kind: 9}}},
	}
	for _, c := range bad {
		if _, err := encodeRequest(1, c); err == nil {
			t.Errorf("encodeRequest(%+v) expected error", c)
		}
	}
}

func TestDecodeResponse(t *testing.T) {
	line := `{"id":3,"ok":false,"null":false,"value":"","output":"Device: xcu250\n","error":{"type":"java.lang.AssertionError","message":"col 1; row 2","trace":"at X"}}`
	resp, err := decodeResponse([]byte(line))
	if err != nil {
		t.Fatalf("decodeResponse: %v", err)
	}
	if resp.ID != 3 || resp.OK || resp.Error == nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Error.Message != "col 1; row 2" {
		t.Errorf("message = %q", resp.Error.Message)
	}
	if resp.Output != "Device: xcu250\n" {
		t.Errorf("output = %q", resp.Output)
	}

	if _, err := decodeResponse([]byte("Device: xcu250")); err == nil {
		t.Error("expected error for non-JSON line")
	}
}

func TestCallString(t *testing.T) {
	c := Call{Class: "a.B", Method: "m", Args: []Arg{StringArg("x.dcp"), IntArg(2)}}
	if got, want := c.String(), `a.B.m("x.dcp", 2)`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestConfigArguments(t *testing.T) {
	cfg := Config{
		EnableAssertions: true,
		JVMArgs:          []string{"-Xmx8g"},
		ClassPath:        []string{"a.jar", "b.jar"},
	}
	got := cfg.arguments("/tmp/XnodeBridge.java")
	want := []string{"-ea", "-Xmx8g", "-cp", "a.jar" + pathSep + "b.jar", "/tmp/XnodeBridge.java"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("arguments mismatch (-want +got):\n%s", diff)
	}

	cfg = Config{}
	if got := cfg.arguments("B.java"); len(got) != 1 || got[0] != "B.java" {
		t.Errorf("arguments without options = %v", got)
	}
}
