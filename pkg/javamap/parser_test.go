package javamap

import (
	"testing"
)

func TestParseFlatMap(t *testing.T) {
	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}

	v, err := parser.ParseString("{E=12480, N=9200}")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if v.Kind() != KindMap {
		t.Fatalf("Expected map, got %s", v.Kind())
	}
	if len(v.Map.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(v.Map.Entries))
	}

	n, ok := v.Lookup("E")
	if !ok {
		t.Fatal("Key E not found")
	}
	got, err := n.Int64()
	if err != nil {
		t.Fatalf("Int64 failed: %v", err)
	}
	if got != 12480 {
		t.Errorf("Expected E=12480, got %d", got)
	}
}

func TestParseNestedMap(t *testing.T) {
	input := "{0={0={E=12480, N=9200}, 1={S=9200, E=11000}}, 1={0={W=12480}}}"

	v, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	col, ok := v.Lookup("0")
	if !ok {
		t.Fatal("column 0 missing")
	}
	row, ok := col.Lookup("1")
	if !ok {
		t.Fatal("row 1 missing")
	}
	s, ok := row.Lookup("S")
	if !ok {
		t.Fatal("S missing")
	}
	if s.Int != "9200" {
		t.Errorf("Expected S=9200, got %q", s.Int)
	}

	if v.String() != input {
		t.Errorf("String() = %q, want %q", v.String(), input)
	}
}

func TestParseEmptyAndNull(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"{}", KindMap},
		{"[]", KindList},
		{"null", KindNull},
		{"  42 ", KindInt},
		{"-7", KindInt},
		{"NODE_HLONG", KindWord},
	}

	for _, tt := range tests {
		v, err := ParseString(tt.input)
		if err != nil {
			t.Errorf("ParseString(%q) error: %v", tt.input, err)
			continue
		}
		if v.Kind() != tt.kind {
			t.Errorf("ParseString(%q) kind = %s, want %s", tt.input, v.Kind(), tt.kind)
		}
	}
}

func TestParseWordsWithSpaces(t *testing.T) {
	v, err := ParseString("{CLB LUTs=120, RAMB36s/FIFOs=4}")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if _, ok := v.Lookup("CLB LUTs"); !ok {
		t.Errorf("Expected key %q, entries: %s", "CLB LUTs", v)
	}
	if _, ok := v.Lookup("RAMB36s/FIFOs"); !ok {
		t.Errorf("Expected key %q, entries: %s", "RAMB36s/FIFOs", v)
	}
}

func TestParseList(t *testing.T) {
	v, err := ParseString("[0, 12, 3, 15]")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(v.List.Items) != 4 {
		t.Fatalf("Expected 4 items, got %d", len(v.List.Items))
	}
	if v.List.Items[1].Int != "12" {
		t.Errorf("Expected second item 12, got %q", v.List.Items[1].Int)
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"{E=1",
		"{E=1,}",
		"{=1}",
		"{E=1}}",
		"",
	}
	for _, input := range inputs {
		if _, err := ParseString(input); err == nil {
			t.Errorf("ParseString(%q) expected error", input)
		}
	}
}

func TestBuildersRender(t *testing.T) {
	v := MapOf(
		Pair(IntOf(0), MapOf(Pair(WordOf("N"), IntOf(3)))),
		Pair(IntOf(1), Null()),
	)
	if got, want := v.String(), "{0={N=3}, 1=null}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if ListOf(IntOf(1), WordOf("a")).String() != "[1, a]" {
		t.Errorf("unexpected list rendering")
	}
}

func TestParseDigitLedWords(t *testing.T) {
	v, err := ParseString("{7 Series=1, 36Kb BRAM=-2, 0={N=3}, [1, -4]=5}")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	tests := []struct {
		key  string
		kind Kind
	}{
		{"7 Series", KindInt},
		{"36Kb BRAM", KindInt},
		{"0", KindMap},
	}
	for _, tt := range tests {
		got, ok := v.Lookup(tt.key)
		if !ok {
			t.Errorf("Expected key %q, entries: %s", tt.key, v)
			continue
		}
		if got.Kind() != tt.kind {
			t.Errorf("%q kind = %s, want %s", tt.key, got.Kind(), tt.kind)
		}
	}

	if k := v.Map.Entries[0].Key.Kind(); k != KindWord {
		t.Errorf("\"7 Series\" lexed as %s, want word", k)
	}
	if k := v.Map.Entries[2].Key.Kind(); k != KindInt {
		t.Errorf("\"0\" lexed as %s, want int", k)
	}
	list := v.Map.Entries[3].Key
	if list.Kind() != KindList || list.List.Items[1].Int != "-4" {
		t.Errorf("list key = %s", list)
	}
	if n, _ := v.Map.Entries[1].Value.Int64(); n != -2 {
		t.Errorf("36Kb BRAM = %d, want -2", n)
	}
}
