package humanjson

import (
	"bytes"
	"strings"

	"github.com/colinbendell/human-json/internal/ansi"
)

// ColorPalette holds the ANSI escape sequence for each JSON token
// class. Empty fields leave that class unstyled; the zero value
// disables styling entirely.
type ColorPalette struct {
	Key         string
	String      string
	Number      string
	True        string
	False       string
	Null        string
	Brackets    string
	Punctuation string
}

// Colorize walks formatted JSON output and wraps each token in the
// palette's escape sequences. The scan is string-aware: quoted
// content, including escaped quotes, is never mistaken for structure.
// Whitespace and indentation pass through untouched, so the layout is
// preserved exactly.
func Colorize(src []byte, pal ColorPalette) string {
	var sb strings.Builder
	sb.Grow(len(src) + len(src)/2)

	type stackFrame struct {
		kind      byte
		expectKey bool
	}
	stack := make([]stackFrame, 0, 8)

	for i := 0; i < len(src); {
		ch := src[i]
		switch ch {
		case '{':
			stack = append(stack, stackFrame{kind: '{', expectKey: true})
			styleString(&sb, pal.Brackets, "{")
			i++
		case '[':
			stack = append(stack, stackFrame{kind: '[', expectKey: false})
			styleString(&sb, pal.Brackets, "[")
			i++
		case '}':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			styleString(&sb, pal.Brackets, "}")
			i++
			if len(stack) > 0 && stack[len(stack)-1].kind == '{' {
				stack[len(stack)-1].expectKey = false
			}
		case ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			styleString(&sb, pal.Brackets, "]")
			i++
		case ':':
			styleString(&sb, pal.Punctuation, ":")
			if len(stack) > 0 && stack[len(stack)-1].kind == '{' {
				stack[len(stack)-1].expectKey = false
			}
			i++
		case ',':
			styleString(&sb, pal.Punctuation, ",")
			if len(stack) > 0 && stack[len(stack)-1].kind == '{' {
				stack[len(stack)-1].expectKey = true
			}
			i++
		case '"':
			start := i
			i++
			for i < len(src) {
				if src[i] == '\\' && i+1 < len(src) {
					i += 2
					continue
				}
				if src[i] == '"' {
					i++
					break
				}
				i++
			}
			segment := string(src[start:i])
			isKey := len(stack) > 0 && stack[len(stack)-1].kind == '{' && stack[len(stack)-1].expectKey
			if isKey {
				styleString(&sb, pal.Key, segment)
				stack[len(stack)-1].expectKey = false
			} else {
				styleString(&sb, pal.String, segment)
			}
		default:
			if (ch >= '0' && ch <= '9') || ch == '-' {
				start := i
				i++
				for i < len(src) {
					c := src[i]
					if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' {
						i++
					} else {
						break
					}
				}
				styleString(&sb, pal.Number, string(src[start:i]))
				continue
			}
			if len(src)-i >= 4 && bytes.Equal(src[i:i+4], []byte("true")) {
				styleString(&sb, pal.True, "true")
				i += 4
				continue
			}
			if len(src)-i >= 5 && bytes.Equal(src[i:i+5], []byte("false")) {
				styleString(&sb, pal.False, "false")
				i += 5
				continue
			}
			if len(src)-i >= 4 && bytes.Equal(src[i:i+4], []byte("null")) {
				styleString(&sb, pal.Null, "null")
				i += 4
				continue
			}
			sb.WriteByte(ch)
			i++
		}
	}
	return sb.String()
}

func styleString(sb *strings.Builder, seq, s string) {
	if seq == "" {
		sb.WriteString(s)
		return
	}
	sb.WriteString(seq)
	sb.WriteString(s)
	sb.WriteString(ansi.Reset)
}
