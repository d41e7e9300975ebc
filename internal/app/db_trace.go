package app

import (
	"strings"
	"unicode"
)

const maxTracedQueryLength = 512

// formatDBQueryForTrace collapses whitespace, drops "--" line comments and
// masks single-quoted literals so span attributes never carry user input
// such as squad names.
func formatDBQueryForTrace(query string) string {
	var b strings.Builder
	b.Grow(min(len(query), maxTracedQueryLength+3))

	pendingSpace := false
	for _, line := range strings.Split(query, "\n") {
		if i := strings.Index(line, "--"); i >= 0 && !strings.Contains(line[:i], "'") {
			line = line[:i]
		}
		inLiteral := false
		for _, r := range line {
			switch {
			case r == '\'':
				if !inLiteral {
					if pendingSpace && b.Len() > 0 {
						b.WriteByte(' ')
					}
					pendingSpace = false
					b.WriteString("'?'")
				}
				inLiteral = !inLiteral
			case inLiteral:
			case unicode.IsSpace(r):
				pendingSpace = true
			default:
				if pendingSpace && b.Len() > 0 {
					b.WriteByte(' ')
				}
				pendingSpace = false
				b.WriteRune(r)
			}
		}
		pendingSpace = true
	}

	out := b.String()
	if len(out) <= maxTracedQueryLength {
		return out
	}
	return out[:maxTracedQueryLength] + "..."
}
