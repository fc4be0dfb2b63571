package humanjson

import (
	"fmt"
	"sort"
	"strings"

	"github.com/colinbendell/human-json/internal/ansi"
)

const (
	paletteDefaultName = "default"
	paletteNoneName    = "none"
)

var paletteRegistry = map[string]ansi.Palette{
	paletteDefaultName: ansi.PaletteJQDefault,
	"jq":               ansi.PaletteJQDefault,
	"classic":          ansi.PaletteDefault,
	"catppuccin-mocha": ansi.PaletteCatppuccinMocha,
	"doom-dracula":     ansi.PaletteDoomDracula,
	"gruvbox-light":    ansi.PaletteGruvboxLight,
	"monokai-vibrant":  ansi.PaletteMonokaiVibrant,
	"tokyo-night":      ansi.PaletteTokyoNight,
}

// PaletteNames returns the sorted list of palette names, including "none".
func PaletteNames() []string {
	names := make([]string, 0, len(paletteRegistry)+1)
	for name := range paletteRegistry {
		names = append(names, name)
	}
	names = append(names, paletteNoneName)
	sort.Strings(names)
	return names
}

// ResolvePalette returns the ColorPalette for the given name, with the
// empty string meaning the default. The special name "none" disables
// colouring. When enableColor is false a no-color palette is returned
// regardless of the selection (still validating the name).
func ResolvePalette(name string, enableColor bool) (ColorPalette, error) {
	n := paletteDefaultName
	if strings.TrimSpace(name) != "" {
		n = strings.ToLower(strings.TrimSpace(name))
	}

	if n == paletteNoneName {
		return NoColorPalette(), nil
	}

	ap, ok := paletteRegistry[n]
	if !ok {
		return ColorPalette{}, fmt.Errorf("unknown palette %q (use one of: %s)", n, strings.Join(PaletteNames(), ", "))
	}

	if !enableColor {
		return NoColorPalette(), nil
	}
	return colorPaletteFromAnsi(ap), nil
}

func colorPaletteFromAnsi(ap ansi.Palette) ColorPalette {
	brackets := ap.Brackets
	if brackets == "" {
		brackets = ap.Nil
	}
	punct := ap.Punctuation
	if punct == "" {
		punct = brackets
	}

	return ColorPalette{
		Key:         ap.Key,
		String:      ap.String,
		Number:      ap.Num,
		True:        ap.Bool,
		False:       ap.Bool,
		Null:        ap.Nil,
		Brackets:    brackets,
		Punctuation: punct,
	}
}

// NoColorPalette disables all styling while keeping the colorizer path shared.
func NoColorPalette() ColorPalette {
	return ColorPalette{}
}
