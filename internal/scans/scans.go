// Package scans implements the cross-cutting analyzers. Unlike the
// per-language engines, these run for every input regardless of the
// declared language; a few individual rules narrow themselves to the
// languages they apply to.
package scans

import (
	"strings"

	"github.com/snaplint/snaplint/internal/diag"
)

// Scanner is one cross-cutting pass. Scan receives the full text, its
// line split, and the declared language name.
type Scanner interface {
	Scan(text string, lines []string, language string) []diag.Diagnostic
}

// appliesTo reports whether a rule restricted to langs covers language.
// An empty restriction covers everything.
func appliesTo(langs []string, language string) bool {
	if len(langs) == 0 {
		return true
	}
	for _, l := range langs {
		if l == language {
			return true
		}
	}
	return false
}

func leadingIndent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isCommentLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "#") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}

// blockEnd finds the line index just past the block opened at start,
// using indentation as the scope signal. The block runs until the first
// non-blank, non-comment line at or above the opener's indent. This
// covers Python blocks and formatted brace blocks alike: the closing
// brace sits at the opener's indent and terminates the block.
func blockEnd(lines []string, start int) int {
	base := leadingIndent(lines[start])
	for i := start + 1; i < len(lines); i++ {
		if isBlank(lines[i]) || isCommentLine(strings.TrimSpace(lines[i])) {
			continue
		}
		if leadingIndent(lines[i]) <= base {
			return i
		}
	}
	return len(lines)
}
