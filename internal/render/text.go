package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText wraps text to a display width. Korean and other wide
// characters count as two cells.
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		result []string
		line   string
	)
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= width:
			line += " " + word
		default:
			result = append(result, line)
			line = word
		}
	}
	return append(result, line)
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		switch {
		case inEscape:
			if c == 'm' {
				inEscape = false
			}
		case c == '\033':
			inEscape = true
		default:
			result.WriteRune(c)
		}
	}
	return result.String()
}

// visibleWidth is the number of terminal cells s occupies.
func visibleWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}
