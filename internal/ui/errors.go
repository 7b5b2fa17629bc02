package ui

import (
	"strings"
	"unicode/utf8"
)

const (
	errorPrefix    = "Error: "
	maxErrorLines  = 2
	minErrorWidth  = 10
	truncationMark = "..."
)

// formatErrorForDisplay word-wraps an error to at most maxErrorLines lines
// of maxWidth runes, marking truncation with "...".
func formatErrorForDisplay(err error, maxWidth int) string {
	if err == nil {
		return ""
	}
	words := strings.Fields(err.Error())
	if len(words) == 0 {
		return errorPrefix + "unknown error"
	}
	maxWidth = max(maxWidth, minErrorWidth)

	var lines []string
	var line strings.Builder
	width := max(maxWidth-utf8.RuneCountInString(errorPrefix), minErrorWidth)
	truncated := false
	for _, word := range words {
		n := utf8.RuneCountInString(line.String())
		if n > 0 && n+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line.String())
			line.Reset()
			width = maxWidth
			if len(lines) == maxErrorLines {
				truncated = true
				break
			}
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if !truncated && line.Len() > 0 {
		lines = append(lines, line.String())
	}

	if truncated {
		last := []rune(lines[len(lines)-1])
		if keep := maxWidth - utf8.RuneCountInString(truncationMark); len(last) > keep {
			last = last[:keep]
		}
		lines[len(lines)-1] = string(last) + truncationMark
	}
	return errorPrefix + strings.Join(lines, "\n")
}
