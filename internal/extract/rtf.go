package extract

import (
	"bytes"
	"fmt"
	"strings"
)

// rtfSkipGroups are destinations whose content is document machinery
// (font and color tables, style definitions, metadata, embedded
// objects), never body text.
var rtfSkipGroups = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"listtable":  true,
	"info":       true,
	"pict":       true,
	"object":     true,
	"header":     true,
	"footer":     true,
}

// extractRTF pulls body text from RTF bytes in one pass over the control
// stream. Skipped destinations and `{\*` extension groups are dropped
// whole, paragraph and cell breaks become whitespace, and \'hh and \uN
// escapes are decoded (bytes above 0x7F as Latin-1). Every other control
// word is formatting and is ignored, as are raw newlines in the file.
// The \uc fallback count is assumed to be 1, the writer default.
func extractRTF(content []byte) (string, error) {
	if !bytes.HasPrefix(content, []byte(`{\rtf`)) {
		return "", fmt.Errorf("extract rtf: missing {\\rtf header")
	}
	var b strings.Builder
	depth := 0
	skipAbove := -1 // while set, suppress output until depth returns to it

	i := 0
	for i < len(content) {
		switch c := content[i]; c {
		case '{':
			depth++
			i++
			if skipAbove < 0 && rtfSkipsGroup(content[i:]) {
				skipAbove = depth - 1
			}
		case '}':
			depth--
			i++
			if skipAbove >= 0 && depth <= skipAbove {
				skipAbove = -1
			}
		case '\\':
			i += rtfControl(content[i:], &b, skipAbove >= 0)
		case '\r', '\n':
			i++
		default:
			if skipAbove < 0 {
				b.WriteByte(c)
			}
			i++
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// rtfSkipsGroup reports whether the group opening at rest (the byte
// right after its brace) is a destination to drop.
func rtfSkipsGroup(rest []byte) bool {
	if len(rest) < 2 || rest[0] != '\\' {
		return false
	}
	if rest[1] == '*' {
		return true
	}
	j := 1
	for j < len(rest) && isRTFLetter(rest[j]) {
		j++
	}
	return rtfSkipGroups[string(rest[1:j])]
}

// rtfControl consumes one control word or symbol at rest, whose first
// byte is the backslash, and returns the number of bytes consumed. Any
// text the control stands for is written to b unless skipping.
func rtfControl(rest []byte, b *strings.Builder, skipping bool) int {
	if len(rest) < 2 {
		return len(rest)
	}
	next := rest[1]

	if !isRTFLetter(next) {
		switch next {
		case '\\', '{', '}':
			if !skipping {
				b.WriteByte(next)
			}
		case '~':
			if !skipping {
				b.WriteByte(' ')
			}
		case '_':
			if !skipping {
				b.WriteByte('-')
			}
		case '\'':
			if len(rest) >= 4 {
				if v, ok := rtfHexByte(rest[2], rest[3]); ok {
					if !skipping {
						b.WriteRune(rune(v))
					}
					return 4
				}
			}
		}
		return 2
	}

	// Control word: letters, optional signed decimal parameter, and an
	// optional space delimiter that belongs to the control.
	j := 1
	for j < len(rest) && isRTFLetter(rest[j]) {
		j++
	}
	word := string(rest[1:j])
	param := 0
	hasParam := false
	if j < len(rest) && (rest[j] == '-' || isDigit(rest[j])) {
		neg := rest[j] == '-'
		if neg {
			j++
		}
		for j < len(rest) && isDigit(rest[j]) {
			param = param*10 + int(rest[j]-'0')
			j++
		}
		if neg {
			param = -param
		}
		hasParam = true
	}
	if j < len(rest) && rest[j] == ' ' {
		j++
	}
	if skipping {
		return j
	}

	switch word {
	case "par", "line", "row", "sect", "page":
		b.WriteByte('\n')
	case "tab", "cell", "emspace", "enspace":
		b.WriteByte(' ')
	case "u":
		if hasParam {
			r := param
			if r < 0 {
				r += 0x10000
			}
			b.WriteRune(rune(r))
			// Consume the fallback character, which may itself be an
			// \'hh escape.
			if j+3 < len(rest) && rest[j] == '\\' && rest[j+1] == '\'' {
				j += 4
			} else if j < len(rest) && rest[j] != '\\' && rest[j] != '{' && rest[j] != '}' {
				j++
			}
		}
	}
	return j
}

func isRTFLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func rtfHexByte(hi, lo byte) (byte, bool) {
	h, ok1 := hexVal(hi)
	l, ok2 := hexVal(lo)
	return h<<4 | l, ok1 && ok2
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
