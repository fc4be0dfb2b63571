package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	humanjson "github.com/colinbendell/human-json"
	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"
	"pkt.systems/jpact"
)

type cliConfig struct {
	indent    int
	width     int
	noSort    bool
	first     []string
	spacing   string
	fill      string
	noNewline bool
	palette   string
	noColor   bool
	compact   bool
}

func main() {
	var cfg cliConfig
	flag.IntVar(&cfg.indent, "indent", 2, "spaces per nesting level (0 disables wrapping)")
	flag.IntVar(&cfg.width, "width", 120, "soft cap on line width")
	flag.BoolVar(&cfg.noSort, "no-sort", false, "keep object keys in input order")
	flag.StringSliceVar(&cfg.first, "first", humanjson.DefaultPriorityKeys, "keys to sort ahead of all others")
	flag.StringVar(&cfg.spacing, "spacing", "object", "pad inside delimiters: none, array, object or all")
	flag.StringVar(&cfg.fill, "fill", "array", "pack simple siblings per line: none, array, object or all")
	flag.BoolVar(&cfg.noNewline, "no-newline", false, "omit the trailing newline")
	flag.StringVar(&cfg.palette, "palette", "default", "color palette (\"none\" disables)")
	flag.BoolVar(&cfg.noColor, "no-color", false, "disable colorized output, even when writing to a TTY")
	flag.BoolVar(&cfg.compact, "compact", false, "emit one compacted document per line instead of formatting")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	formatter, palette, err := configure(cfg, colorableStdout())
	if err != nil {
		fmt.Fprintf(os.Stderr, "humanjson: %v\n", err)
		os.Exit(2)
	}

	for _, path := range paths {
		data, err := readInput(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "humanjson: %v\n", err)
			os.Exit(1)
		}
		if cfg.compact {
			err = compactStream(os.Stdout, data)
		} else {
			err = formatStream(os.Stdout, data, formatter, palette)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "humanjson: %s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

func colorableStdout() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// configure turns CLI flags into a Formatter and a resolved palette.
func configure(cfg cliConfig, tty bool) (*humanjson.Formatter, humanjson.ColorPalette, error) {
	opts, err := buildOptions(cfg)
	if err != nil {
		return nil, humanjson.ColorPalette{}, err
	}
	formatter, err := humanjson.New(opts)
	if err != nil {
		return nil, humanjson.ColorPalette{}, err
	}
	palette, err := humanjson.ResolvePalette(cfg.palette, tty && !cfg.noColor)
	if err != nil {
		return nil, humanjson.ColorPalette{}, err
	}
	return formatter, palette, nil
}

func buildOptions(cfg cliConfig) (*humanjson.Options, error) {
	spacing, err := humanjson.ParseMode(cfg.spacing)
	if err != nil {
		return nil, err
	}
	fill, err := humanjson.ParseMode(cfg.fill)
	if err != nil {
		return nil, err
	}
	return &humanjson.Options{
		Indent:          cfg.indent,
		Width:           cfg.width,
		SortKeys:        !cfg.noSort,
		PriorityKeys:    cfg.first,
		Spacing:         spacing,
		Fill:            fill,
		TrailingNewline: !cfg.noNewline,
	}, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// formatStream decodes one or more JSON documents from data and writes
// each formatted (and, when the palette styles anything, colorized).
func formatStream(w io.Writer, data []byte, formatter *humanjson.Formatter, palette humanjson.ColorPalette) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		out, err := formatter.Format(v)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, humanjson.Colorize([]byte(out), palette)); err != nil {
			return err
		}
	}
}

// compactStream writes one compacted document per line, preserving the
// raw token text of each document.
func compactStream(w io.Writer, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := jpact.CompactWriter(w, bytes.NewReader(raw), 0); err != nil {
			return err
		}
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
}
