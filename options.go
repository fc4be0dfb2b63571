package humanjson

import (
	"fmt"
	"strings"
)

// Mode selects which container delimiters a policy applies to. It is
// used both for Options.Spacing (padding inside brackets and braces)
// and Options.Fill (packing runs of simple values onto shared lines).
type Mode uint8

const (
	// ModeNone applies the policy to neither container kind.
	ModeNone Mode = iota
	// ModeArray applies the policy to arrays only.
	ModeArray
	// ModeObject applies the policy to objects only.
	ModeObject
	// ModeAll applies the policy to arrays and objects.
	ModeAll
)

func (m Mode) has(open byte) bool {
	switch m {
	case ModeAll:
		return true
	case ModeArray:
		return open == '['
	case ModeObject:
		return open == '{'
	default:
		return false
	}
}

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeArray:
		return "array"
	case ModeObject:
		return "object"
	case ModeAll:
		return "all"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode converts a mode name to a Mode. Matching is
// case-insensitive; the empty string means ModeNone.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModeNone, nil
	case "array":
		return ModeArray, nil
	case "object":
		return ModeObject, nil
	case "all":
		return ModeAll, nil
	}
	return ModeNone, fmt.Errorf("humanjson: unknown mode %q (use one of: none, array, object, all)", s)
}

// Options controls layout. A Formatter copies its Options at
// construction; mutating them afterwards has no effect.
type Options struct {
	// Indent is the number of spaces per nesting level. Default 2.
	// Zero disables width-based wrapping entirely: without
	// indentation there is no column to wrap to, so everything
	// renders on a single line.
	Indent int
	// Width is the soft cap on rendered line width. Default 120. A
	// single token wider than the cap is emitted whole, unsplit.
	Width int
	// SortKeys orders object keys with the priority comparator. When
	// false, keys keep their insertion order. Default true.
	SortKeys bool
	// PriorityKeys sort ahead of all other keys, in the order given.
	// Matching is case-insensitive; original casing is preserved in
	// output. Default DefaultPriorityKeys.
	PriorityKeys []string
	// Spacing pads the inside of the named container delimiters with
	// one space. Commas and colons always get a trailing space
	// regardless. Default ModeObject.
	Spacing Mode
	// Fill packs consecutive simple sibling values several per line
	// when the named container kind has to expand. Default ModeArray.
	Fill Mode
	// TrailingNewline appends exactly one newline to the output.
	// Default true.
	TrailingNewline bool
}

// DefaultPriorityKeys is the priority list used when
// Options.PriorityKeys is nil.
var DefaultPriorityKeys = []string{"name", "id", "value", "version", "date", "errors"}

// DefaultOptions holds the fallback configuration.
var DefaultOptions = &Options{
	Indent:          2,
	Width:           120,
	SortKeys:        true,
	PriorityKeys:    DefaultPriorityKeys,
	Spacing:         ModeObject,
	Fill:            ModeArray,
	TrailingNewline: true,
}

func (o *Options) validate() error {
	if o.Indent < 0 {
		return fmt.Errorf("humanjson: negative indent %d", o.Indent)
	}
	if o.Width <= 0 {
		return fmt.Errorf("humanjson: non-positive width %d", o.Width)
	}
	if o.Spacing > ModeAll {
		return fmt.Errorf("humanjson: invalid spacing mode %d", o.Spacing)
	}
	if o.Fill > ModeAll {
		return fmt.Errorf("humanjson: invalid fill mode %d", o.Fill)
	}
	return nil
}
