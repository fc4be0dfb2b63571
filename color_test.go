package humanjson

import (
	"strings"
	"testing"

	"github.com/colinbendell/human-json/internal/ansi"
)

func TestColorizeNoPaletteIsIdentity(t *testing.T) {
	out, err := Format(map[string]any{"name": "x", "n": 1, "ok": true, "nil": nil}, nil)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	colored := Colorize([]byte(out), NoColorPalette())
	if colored != out {
		t.Fatalf("zero palette must not alter output\nexpected: %q\nactual:   %q", out, colored)
	}
}

func TestColorizeStylesKeysAndValues(t *testing.T) {
	pal := ColorPalette{Key: ansi.Cyan, String: ansi.Green, Number: ansi.Magenta, Null: ansi.Faint}
	colored := Colorize([]byte("{ \"name\": \"x\", \"n\": 1, \"nil\": null }"), pal)

	if !strings.Contains(colored, ansi.Cyan+"\"name\""+ansi.Reset) {
		t.Fatalf("expected styled key, got %q", colored)
	}
	if !strings.Contains(colored, ansi.Green+"\"x\""+ansi.Reset) {
		t.Fatalf("expected styled string value, got %q", colored)
	}
	if !strings.Contains(colored, ansi.Magenta+"1"+ansi.Reset) {
		t.Fatalf("expected styled number, got %q", colored)
	}
	if !strings.Contains(colored, ansi.Faint+"null"+ansi.Reset) {
		t.Fatalf("expected styled null, got %q", colored)
	}
}

func TestColorizeStringAware(t *testing.T) {
	pal := ColorPalette{String: ansi.Green, Brackets: ansi.Blue}
	// Braces, colons, and escaped quotes inside the string must stay
	// part of the string token.
	colored := Colorize([]byte("[\"{not: structure} \\\" [done]\"]"), pal)

	expected := ansi.Blue + "[" + ansi.Reset +
		ansi.Green + "\"{not: structure} \\\" [done]\"" + ansi.Reset +
		ansi.Blue + "]" + ansi.Reset
	if colored != expected {
		t.Fatalf("string content misclassified\nexpected: %q\nactual:   %q", expected, colored)
	}
}

func TestResolvePalette(t *testing.T) {
	if _, err := ResolvePalette("does-not-exist", true); err == nil {
		t.Fatalf("expected error for unknown palette")
	}
	pal, err := ResolvePalette("none", true)
	if err != nil {
		t.Fatalf("ResolvePalette failed: %v", err)
	}
	if pal != (ColorPalette{}) {
		t.Fatalf("palette none should disable styling: %#v", pal)
	}
	pal, err = ResolvePalette("tokyo-night", false)
	if err != nil {
		t.Fatalf("ResolvePalette failed: %v", err)
	}
	if pal != (ColorPalette{}) {
		t.Fatalf("color disabled should yield the zero palette: %#v", pal)
	}
	pal, err = ResolvePalette("", true)
	if err != nil {
		t.Fatalf("ResolvePalette failed: %v", err)
	}
	if pal.Key == "" {
		t.Fatalf("default palette should style keys")
	}
}

func TestPaletteNamesIncludesNone(t *testing.T) {
	names := PaletteNames()
	found := false
	for _, n := range names {
		if n == "none" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected \"none\" in %v", names)
	}
}
