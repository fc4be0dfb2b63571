package humanjson

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestFormatScalarPassThrough(t *testing.T) {
	cases := []struct {
		in       any
		expected string
	}{
		{nil, "null\n"},
		{true, "true\n"},
		{false, "false\n"},
		{42, "42\n"},
		{"hi", "\"hi\"\n"},
	}
	for _, tc := range cases {
		out, err := Format(tc.in, nil)
		if err != nil {
			t.Fatalf("Format(%v) failed: %v", tc.in, err)
		}
		if out != tc.expected {
			t.Fatalf("Format(%v) = %q, expected %q", tc.in, out, tc.expected)
		}
	}
}

func TestFormatSingleLineObject(t *testing.T) {
	out, err := Format(map[string]any{"a": 1}, nil)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if out != "{ \"a\": 1 }\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestFormatEmptyContainers(t *testing.T) {
	for _, opts := range []*Options{nil, {Indent: 2, Width: 120, Spacing: ModeAll, TrailingNewline: true}} {
		out, err := Format(map[string]any{}, opts)
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if out != "{}\n" {
			t.Fatalf("empty object: got %q", out)
		}
		out, err = Format([]any{}, opts)
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if out != "[]\n" {
			t.Fatalf("empty array: got %q", out)
		}
	}
}

func TestFormatPriorityOrdering(t *testing.T) {
	opts := *DefaultOptions
	opts.PriorityKeys = []string{"name", "version"}
	out, err := Format(map[string]any{"z": 1, "name": "x", "version": "1.0", "a": 2}, &opts)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	const expected = "{ \"name\": \"x\", \"version\": \"1.0\", \"a\": 2, \"z\": 1 }\n"
	if out != expected {
		t.Fatalf("unexpected order\nexpected: %q\nactual:   %q", expected, out)
	}
}

func TestFormatAbsenceDropping(t *testing.T) {
	out, err := Format(map[string]any{"a": 1, "b": Absent, "c": 3}, nil)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if out != "{ \"a\": 1, \"c\": 3 }\n" {
		t.Fatalf("Absent member should be dropped, got %q", out)
	}
}

func TestFormatArrayAbsenceNulling(t *testing.T) {
	out, err := Format([]any{"a", Absent}, nil)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if out != "[\"a\", null]\n" {
		t.Fatalf("Absent element should become null, got %q", out)
	}
}

func TestFormatAbsentRoot(t *testing.T) {
	out, err := Format(Absent, nil)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if out != "\n" {
		t.Fatalf("Absent root should render empty plus newline, got %q", out)
	}

	opts := *DefaultOptions
	opts.TrailingNewline = false
	out, err = Format(Absent, &opts)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if out != "" {
		t.Fatalf("Absent root without newline should be empty, got %q", out)
	}
}

func TestFormatFillGrouping(t *testing.T) {
	opts := *DefaultOptions
	opts.Width = 10
	out, err := Format([]any{1, 2, 3, 4, 5, 6, 7}, &opts)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	const expected = "[\n  1, 2, 3,\n  4, 5, 6,\n  7\n]\n"
	if out != expected {
		t.Fatalf("unexpected fill grouping\nexpected:\n%q\nactual:\n%q", expected, out)
	}
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if len(line) > opts.Width {
			t.Fatalf("line %q exceeds width %d", line, opts.Width)
		}
	}
}

func TestFormatObjectFill(t *testing.T) {
	opts := *DefaultOptions
	opts.Width = 22
	opts.Fill = ModeAll
	out, err := Format(map[string]any{"a": 1, "b": 2, "c": 3, "d": 4, "e": 55555}, &opts)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	const expected = "{\n  \"a\": 1, \"b\": 2,\n  \"c\": 3, \"d\": 4,\n  \"e\": 55555\n}\n"
	if out != expected {
		t.Fatalf("unexpected object fill\nexpected:\n%q\nactual:\n%q", expected, out)
	}
}

func TestFormatFillDisqualifiedByNormalizedScalars(t *testing.T) {
	opts := *DefaultOptions
	opts.Width = 10

	// Plain strings fill-wrap onto a shared line.
	out, err := Format([]any{"a", "b"}, &opts)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if out != "[\n  \"a\", \"b\"\n]\n" {
		t.Fatalf("expected packed strings, got %q", out)
	}

	// A value that merely normalizes to a string disqualifies the group.
	out, err = Format([]any{repA{}, repB{}}, &opts)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if out != "[\n  \"a\",\n  \"b\"\n]\n" {
		t.Fatalf("expected one element per line, got %q", out)
	}
}

type repA struct{}

func (repA) JSONRepresentation() any { return "a" }

type repB struct{}

func (repB) JSONRepresentation() any { return "b" }

func TestFormatExpansion(t *testing.T) {
	opts := *DefaultOptions
	opts.Width = 20
	v := map[string]any{
		"aa": []any{1, 2, 3},
		"bb": map[string]any{"cc": true, "dd": 1},
	}
	out, err := Format(v, &opts)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	const expected = "{\n  \"aa\": [1, 2, 3],\n  \"bb\": {\n    \"cc\": true,\n    \"dd\": 1\n  }\n}\n"
	if out != expected {
		t.Fatalf("unexpected expansion\nexpected:\n%s\nactual:\n%s", expected, out)
	}
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if len(line) > opts.Width {
			t.Fatalf("line %q exceeds width %d", line, opts.Width)
		}
	}
}

func TestFormatAtomicTokenExceedsWidth(t *testing.T) {
	opts := *DefaultOptions
	opts.Width = 16
	long := "this token is far wider than the budget"
	out, err := Format(map[string]any{"k": long}, &opts)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(out, "\""+long+"\"") {
		t.Fatalf("long token must be emitted whole, got %q", out)
	}
}

func TestFormatSpacingModes(t *testing.T) {
	cases := []struct {
		spacing  Mode
		arr, obj string
	}{
		{ModeNone, "[1, 2]\n", "{\"a\": 1}\n"},
		{ModeArray, "[ 1, 2 ]\n", "{\"a\": 1}\n"},
		{ModeObject, "[1, 2]\n", "{ \"a\": 1 }\n"},
		{ModeAll, "[ 1, 2 ]\n", "{ \"a\": 1 }\n"},
	}
	for _, tc := range cases {
		opts := *DefaultOptions
		opts.Spacing = tc.spacing
		out, err := Format([]any{1, 2}, &opts)
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if out != tc.arr {
			t.Fatalf("spacing %v: array got %q, expected %q", tc.spacing, out, tc.arr)
		}
		out, err = Format(map[string]any{"a": 1}, &opts)
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if out != tc.obj {
			t.Fatalf("spacing %v: object got %q, expected %q", tc.spacing, out, tc.obj)
		}
	}
}

func TestFormatZeroIndentDisablesWrapping(t *testing.T) {
	opts := *DefaultOptions
	opts.Indent = 0
	opts.Width = 10
	out, err := Format([]any{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, &opts)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if out != "[1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12]\n" {
		t.Fatalf("zero indent should render on one line, got %q", out)
	}
}

func TestFormatSortDisabled(t *testing.T) {
	opts := *DefaultOptions
	opts.SortKeys = false
	o := NewObject().Set("z", 1).Set("name", "x").Set("a", 2)
	out, err := Format(o, &opts)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if out != "{ \"z\": 1, \"name\": \"x\", \"a\": 2 }\n" {
		t.Fatalf("expected insertion order, got %q", out)
	}
}

func TestFormatDeterminism(t *testing.T) {
	v := map[string]any{
		"gamma": []any{1, 2, 3},
		"alpha": map[string]any{"x": 1, "y": 2, "z": 3},
		"beta":  "s",
		"name":  "top",
	}
	first, err := Format(v, nil)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := Format(v, nil)
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if again != first {
			t.Fatalf("output changed between calls\nfirst: %q\nagain: %q", first, again)
		}
	}
}

func TestFormatShapeIdempotence(t *testing.T) {
	const src = `{"name":"demo","items":[1,2.5,"three",null,true],"meta":{"count":3,"tags":["a","b"]}}`
	in := decodeNumber(t, []byte(src))

	out, err := Format(in, nil)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	back := decodeNumber(t, []byte(out))
	if !reflect.DeepEqual(in, back) {
		t.Fatalf("reparsed output differs from input\ninput:  %#v\noutput: %#v", in, back)
	}
}

func decodeNumber(t *testing.T, data []byte) any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return v
}

func TestFormatStringEscapes(t *testing.T) {
	out, err := Format("quote \" slash \\ tab \t bell \x07", nil)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if out != "\"quote \\\" slash \\\\ tab \\t bell \\u0007\"\n" {
		t.Fatalf("unexpected escaping: %q", out)
	}
}

func TestFormatTo(t *testing.T) {
	f, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var buf bytes.Buffer
	if err := f.FormatTo(&buf, map[string]any{"a": 1}); err != nil {
		t.Fatalf("FormatTo failed: %v", err)
	}
	if buf.String() != "{ \"a\": 1 }\n" {
		t.Fatalf("unexpected writer output: %q", buf.String())
	}
}

func TestNewRejectsMalformedOptions(t *testing.T) {
	if _, err := New(&Options{Indent: -1, Width: 120}); err == nil {
		t.Fatalf("expected error for negative indent")
	}
	if _, err := New(&Options{Indent: 2, Width: 0}); err == nil {
		t.Fatalf("expected error for non-positive width")
	}
}

func TestNewCopiesOptions(t *testing.T) {
	opts := *DefaultOptions
	opts.PriorityKeys = []string{"name"}
	f, err := New(&opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	opts.PriorityKeys[0] = "zzz"
	opts.Width = 1

	out, err := f.Format(map[string]any{"a": 1, "name": "x"})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if out != "{ \"name\": \"x\", \"a\": 1 }\n" {
		t.Fatalf("formatter must not observe later option mutation, got %q", out)
	}
}

func TestStringifyLegacySignature(t *testing.T) {
	v := map[string]any{"a": 1}

	out, err := Stringify(v, NoIndent, 2, nil)
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	if out != "{ \"a\": 1 }\n" {
		t.Fatalf("legacy call should reinterpret width as indent, got %q", out)
	}

	out, err = Stringify([]any{1, 2, 3, 4, 5, 6, 7}, NoIndent, 2, nil)
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	if !strings.HasPrefix(out, "[1, 2, 3") {
		t.Fatalf("legacy call should use the default width, got %q", out)
	}

	if _, err := Stringify(v, -1, 50, nil); err == nil {
		t.Fatalf("negative indent with a real width must be rejected")
	}
}

func TestStringifyExplicitArguments(t *testing.T) {
	out, err := Stringify([]any{1, 2, 3, 4, 5, 6, 7}, 2, 10, nil)
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	if out != "[\n  1, 2, 3,\n  4, 5, 6,\n  7\n]\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"none": ModeNone, "": ModeNone, "Array": ModeArray,
		"OBJECT": ModeObject, "all": ModeAll,
	}
	for in, expected := range cases {
		m, err := ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q) failed: %v", in, err)
		}
		if m != expected {
			t.Fatalf("ParseMode(%q) = %v, expected %v", in, m, expected)
		}
	}
	if _, err := ParseMode("sideways"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
