// Package ansi provides ANSI escape sequences and palette presets for
// JSON token classes. The palette values are derived from
// pkt.systems/pslog/ansi (MIT License); only the token classes this
// module colors are included.
package ansi

// Base ANSI escape codes.
const (
	Reset         = "\x1b[0m"
	Bold          = "\x1b[1m"
	Faint         = "\x1b[90m"
	Red           = "\x1b[31m"
	Green         = "\x1b[32m"
	Yellow        = "\x1b[33m"
	Blue          = "\x1b[34m"
	Magenta       = "\x1b[35m"
	Cyan          = "\x1b[36m"
	Gray          = "\x1b[37m"
	BrightRed     = "\x1b[1;31m"
	BrightGreen   = "\x1b[1;32m"
	BrightYellow  = "\x1b[1;33m"
	BrightBlue    = "\x1b[1;34m"
	BrightMagenta = "\x1b[1;35m"
	BrightCyan    = "\x1b[1;36m"
	BrightWhite   = "\x1b[1;37m"
)

// Palette holds the escape sequence for each JSON token class. Empty
// fields mean no styling for that class.
type Palette struct {
	Key         string
	String      string
	Num         string
	Bool        string
	Nil         string
	Brackets    string
	Punctuation string
}

// PaletteJQDefault mirrors jq's default JQ_COLORS:
// 0;90:null, 0;39:false, 0;39:true, 0;39:numbers, 0;32:strings,
// 1;39:arrays, 1;39:objects, 1;34:keys.
var PaletteJQDefault = Palette{
	Key:         "\x1b[1;34m",
	String:      "\x1b[0;32m",
	Num:         "\x1b[0;39m",
	Bool:        "\x1b[0;39m",
	Nil:         "\x1b[0;90m",
	Brackets:    "\x1b[1;39m",
	Punctuation: "\x1b[1;39m",
}

// PaletteDefault is a 16-colour friendly fallback.
var PaletteDefault = Palette{
	Key:         Cyan,
	String:      BrightBlue,
	Num:         Magenta,
	Bool:        Yellow,
	Nil:         Faint,
	Brackets:    Faint,
	Punctuation: Faint,
}

// PaletteDoomDracula mirrors doom-dracula with pink, purple, and cyan accents.
var PaletteDoomDracula = Palette{
	Key:         "\x1b[38;5;219m",
	String:      "\x1b[38;5;141m",
	Num:         "\x1b[38;5;111m",
	Bool:        "\x1b[38;5;81m",
	Nil:         "\x1b[38;5;240m",
	Brackets:    "\x1b[38;5;147m",
	Punctuation: "\x1b[38;5;95m",
}

// PaletteGruvboxLight is a Gruvbox light variant with warm browns and turquoise hints.
var PaletteGruvboxLight = Palette{
	Key:         "\x1b[38;5;130m",
	String:      "\x1b[38;5;108m",
	Num:         "\x1b[38;5;66m",
	Bool:        "\x1b[38;5;142m",
	Nil:         "\x1b[38;5;180m",
	Brackets:    "\x1b[38;5;136m",
	Punctuation: "\x1b[38;5;180m",
}

// PaletteMonokaiVibrant supplies a Monokai-inspired mix of neon yellows and minty greens.
var PaletteMonokaiVibrant = Palette{
	Key:         "\x1b[38;5;229m",
	String:      "\x1b[38;5;121m",
	Num:         "\x1b[38;5;198m",
	Bool:        "\x1b[38;5;118m",
	Nil:         "\x1b[38;5;59m",
	Brackets:    "\x1b[38;5;141m",
	Punctuation: "\x1b[38;5;59m",
}

// PaletteTokyoNight draws on Tokyo Night's neon blues, violets, and warm highlights.
var PaletteTokyoNight = Palette{
	Key:         "\x1b[38;5;69m",
	String:      "\x1b[38;5;110m",
	Num:         "\x1b[38;5;176m",
	Bool:        "\x1b[38;5;117m",
	Nil:         "\x1b[38;5;244m",
	Brackets:    "\x1b[38;5;74m",
	Punctuation: "\x1b[38;5;244m",
}

// PaletteCatppuccinMocha recreates Catppuccin Mocha with soft pastels and rosewater highlights.
var PaletteCatppuccinMocha = Palette{
	Key:         "\x1b[38;5;217m",
	String:      "\x1b[38;5;183m",
	Num:         "\x1b[38;5;147m",
	Bool:        "\x1b[38;5;152m",
	Nil:         "\x1b[38;5;244m",
	Brackets:    "\x1b[38;5;182m",
	Punctuation: "\x1b[38;5;244m",
}
