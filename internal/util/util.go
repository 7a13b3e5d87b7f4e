// internal/util/util.go
package util

import (
	"os"
	"strings"
	"unicode/utf8"
)

const (
	// TableCellWidth is the soft line limit, in characters, for wrapped table cells.
	TableCellWidth = 60
	// TableLineBreak separates wrapped lines inside a markdown table cell.
	TableLineBreak = "<br>"
)

// WriteFile writes data to a file with 0o644 permissions.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// WrapTableCell flattens text onto one line and soft-wraps it at
// TableCellWidth characters, joining the lines with TableLineBreak so the
// result fits in a single markdown table cell. Words are never split; a word
// longer than the limit sits alone on its own line.
func WrapTableCell(text string) string {
	return wrapWords(strings.ReplaceAll(text, "\n", " "), TableCellWidth, TableLineBreak)
}

func wrapWords(text string, width int, sep string) string {
	var lines []string
	var cur strings.Builder
	curLen := 0
	for _, w := range strings.Fields(text) {
		wLen := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+wLen > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += wLen
	}
	if curLen > 0 {
		lines = append(lines, cur.String())
	}
	return strings.Join(lines, sep)
}
