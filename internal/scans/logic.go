package scans

import (
	"regexp"
	"strings"

	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

// LogicScanner flags constant conditions, loops with no visible exit,
// cramped comparison operators, and unreachable statements after a
// return.
type LogicScanner struct {
	cfg           config.Analysis
	alwaysTrueRe  *regexp.Regexp
	alwaysFalseRe *regexp.Regexp
	infiniteRe    *regexp.Regexp
	exitRe        *regexp.Regexp
	tightCmpRe    *regexp.Regexp
	returnRe      *regexp.Regexp
	blockTailRe   *regexp.Regexp
}

// NewLogicScanner builds the logic pass.
func NewLogicScanner(cfg config.Analysis) *LogicScanner {
	return &LogicScanner{
		cfg:           cfg,
		alwaysTrueRe:  regexp.MustCompile(`\b(if|while)\s*\(\s*(true|1)\s*\)|\b(if|while)\s+True\b`),
		alwaysFalseRe: regexp.MustCompile(`\bif\s*\(\s*(false|0)\s*\)|\bif\s+False\b`),
		infiniteRe:    regexp.MustCompile(`\bwhile\s*\(\s*(true|1)\s*\)|\bwhile\s+True\b|\bfor\s*\(\s*;;\s*\)`),
		exitRe:        regexp.MustCompile(`\b(break|return)\b`),
		tightCmpRe:    regexp.MustCompile(`\w(==|!=|<=|>=)\w`),
		returnRe:      regexp.MustCompile(`^return\b`),
		blockTailRe:   regexp.MustCompile(`^(else|elif|except|finally|catch|case|default)\b`),
	}
}

// Scan runs the line checks and the unreachable-code tracker.
func (s *LogicScanner) Scan(text string, lines []string, language string) []diag.Diagnostic {
	var out []diag.Diagnostic

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isBlank(line) || isCommentLine(trimmed) {
			continue
		}
		n := i + 1

		if s.alwaysTrueRe.MatchString(line) {
			out = append(out, diag.AtLine(diag.CategoryLogic, n, "condition is always true"))
		}
		if s.alwaysFalseRe.MatchString(line) {
			out = append(out, diag.AtLine(diag.CategoryLogic, n,
				"condition is always false; the branch never runs"))
		}
		if s.infiniteRe.MatchString(line) && !s.blockHasExit(lines, i) {
			out = append(out, diag.AtLine(diag.CategoryLogic, n,
				"infinite loop with no break or return"))
		}
		if s.tightCmpRe.MatchString(line) {
			out = append(out, diag.AtLine(diag.CategoryLogic, n,
				"comparison operator without surrounding whitespace"))
		}
	}

	out = append(out, s.checkUnreachable(lines)...)
	return out
}

// blockHasExit scans the loop body opened at index i, including the
// opener line itself, for a break or return.
func (s *LogicScanner) blockHasExit(lines []string, i int) bool {
	end := blockEnd(lines, i)
	for j := i; j < end; j++ {
		if s.exitRe.MatchString(lines[j]) {
			return true
		}
	}
	return false
}

// checkUnreachable arms after a return statement and flags the next
// statement in the same block, once. Closing braces, dedents, and
// branch continuations (else, catch, ...) end the block and reset the
// tracker.
func (s *LogicScanner) checkUnreachable(lines []string) []diag.Diagnostic {
	var out []diag.Diagnostic
	armed := false
	flagged := false
	armedIndent := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isBlank(line) || isCommentLine(trimmed) {
			continue
		}
		indent := leadingIndent(line)

		if armed || flagged {
			blockEnded := strings.HasPrefix(trimmed, "}") ||
				indent < armedIndent ||
				s.blockTailRe.MatchString(trimmed)
			if blockEnded {
				armed = false
				flagged = false
			}
		}
		if armed {
			out = append(out, diag.AtLine(diag.CategoryLogic, i+1,
				"unreachable code after return statement"))
			armed = false
			flagged = true
		}
		if !flagged && s.returnRe.MatchString(trimmed) {
			armed = true
			armedIndent = indent
		}
	}
	return out
}
