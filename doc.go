// Package humanjson renders already-parsed values as human readable
// JSON: short containers stay on one line, runs of simple values are
// packed several per line ("fill wrapping"), and everything else
// expands across indented lines, all under a configurable width budget.
// Object keys sort deterministically with a configurable priority list
// so diffs stay stable and the interesting keys come first.
//
// The package is not a parser; it consumes values that are already in
// memory (typically the result of json.Unmarshal, or plain Go values).
//
// Basic usage:
//
//	out, err := humanjson.Format(map[string]any{"id": 7, "tags": []any{"a", "b"}}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(out)
//
// Custom configuration:
//
//	opts := *humanjson.DefaultOptions
//	opts.Width = 80
//	opts.Fill = humanjson.ModeAll
//	f, err := humanjson.New(&opts)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := f.Format(v)
package humanjson
