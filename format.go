package humanjson

import "io"

// Formatter renders values with a fixed configuration. It holds no
// mutable state across calls and is safe for concurrent use, provided
// the input values themselves are not mutated mid-call.
type Formatter struct {
	opts Options
	cmp  *keyComparator
}

// New validates opts and returns a Formatter. A nil opts selects
// DefaultOptions. The options are copied, so mutating opts afterwards
// does not affect the Formatter.
func New(opts *Options) (*Formatter, error) {
	if opts == nil {
		opts = DefaultOptions
	}
	o := *opts
	if o.PriorityKeys == nil {
		o.PriorityKeys = DefaultPriorityKeys
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	o.PriorityKeys = append([]string(nil), o.PriorityKeys...)
	return &Formatter{opts: o, cmp: newKeyComparator(o.PriorityKeys)}, nil
}

// Format renders v as human readable JSON. It never fails for
// acyclic, JSON-representable input; cyclic containers yield
// ErrCyclicValue and pathological nesting yields ErrMaxDepth. An
// Absent root renders as the empty string. Output ends with exactly
// one newline when TrailingNewline is set, none otherwise, and is
// byte-for-byte deterministic for an unchanged input.
func (f *Formatter) Format(v any) (string, error) {
	nrm := acquireNormalizer(f.cmp)
	nd, err := nrm.normalize(v)
	releaseNormalizer(nrm)
	if err != nil {
		return "", err
	}
	r := acquireRenderer(f.opts, f.cmp)
	out, ok := r.render(nd, 0, 0)
	releaseRenderer(r)
	if !ok {
		out = ""
	}
	if f.opts.TrailingNewline {
		out += "\n"
	}
	return out, nil
}

// FormatTo renders v and writes the result to w.
func (f *Formatter) FormatTo(w io.Writer, v any) error {
	s, err := f.Format(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

// Format renders v using opts (nil selects DefaultOptions).
func Format(v any, opts *Options) (string, error) {
	f, err := New(opts)
	if err != nil {
		return "", err
	}
	return f.Format(v)
}

// NoIndent is the explicit "no value" marker for Stringify's indent
// argument.
const NoIndent = -1

// Stringify mirrors the classic three-argument stringify call shape.
// When indent is the NoIndent marker (any negative value) and width is
// a small number under 10, the pair is reinterpreted as (unused,
// indent), so call sites written for the two-space stringify signature
// keep working unchanged. opts supplies the remaining configuration
// (nil selects DefaultOptions); its Indent and Width are overridden by
// the arguments.
func Stringify(v any, indent, width int, opts *Options) (string, error) {
	if indent < 0 && width > 0 && width < 10 {
		indent, width = width, DefaultOptions.Width
	}
	var o Options
	if opts != nil {
		o = *opts
	} else {
		o = *DefaultOptions
	}
	o.Indent = indent
	o.Width = width
	return Format(v, &o)
}
