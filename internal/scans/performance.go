package scans

import (
	"regexp"
	"strings"

	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

// PerformanceScanner flags nested loops, logging inside loops, and
// functions that outgrow the configured line threshold. Loop and
// function extents are tracked through indentation, which covers both
// indentation-scoped and formatted brace-scoped code.
type PerformanceScanner struct {
	cfg       config.Analysis
	loopRe    *regexp.Regexp
	logRe     *regexp.Regexp
	controlRe *regexp.Regexp
	pyFuncRe  *regexp.Regexp
}

// NewPerformanceScanner builds the performance pass.
func NewPerformanceScanner(cfg config.Analysis) *PerformanceScanner {
	return &PerformanceScanner{
		cfg:       cfg,
		loopRe:    regexp.MustCompile(`^(for|while)\b`),
		logRe:     regexp.MustCompile(`print\s*\(|console\.(log|error|warn|info|debug)\s*\(|System\.(out|err)\.print|cout\s*<<|printf\s*\(`),
		controlRe: regexp.MustCompile(`^(if|else|for|while|switch|case|try|catch|do|elif|except|finally)\b`),
		pyFuncRe:  regexp.MustCompile(`^def\s+\w+.*:$`),
	}
}

// Scan runs the loop tracker and the function length check in one walk.
func (s *PerformanceScanner) Scan(text string, lines []string, language string) []diag.Diagnostic {
	var out []diag.Diagnostic
	out = append(out, s.checkLoops(lines)...)
	out = append(out, s.checkFunctionLength(lines)...)
	return out
}

// checkLoops keeps a stack of open loop indents. A loop stays open
// until a code line at or above its indent appears. A loop keyword with
// the stack non-empty is a nested loop; a logging call with the stack
// non-empty is logging inside a loop.
func (s *PerformanceScanner) checkLoops(lines []string) []diag.Diagnostic {
	var out []diag.Diagnostic
	var stack []int

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isBlank(line) || isCommentLine(trimmed) {
			continue
		}
		indent := leadingIndent(line)

		for len(stack) > 0 && indent <= stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
		}

		if s.loopRe.MatchString(trimmed) {
			if len(stack) > 0 {
				out = append(out, diag.AtLine(diag.CategoryPerformance, i+1,
					"nested loop; inner body runs once per outer iteration"))
			}
			stack = append(stack, indent)
		}

		if len(stack) > 0 && s.logRe.MatchString(line) {
			out = append(out, diag.AtLine(diag.CategoryPerformance, i+1,
				"logging call inside a loop"))
		}
	}
	return out
}

// checkFunctionLength measures each function from its declaration line
// to the end of its block.
func (s *PerformanceScanner) checkFunctionLength(lines []string) []diag.Diagnostic {
	var out []diag.Diagnostic
	limit := s.cfg.LongFunctionLines

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !s.isFunctionDecl(trimmed) {
			continue
		}
		span := blockEnd(lines, i) - i
		if span > limit {
			out = append(out, diag.AtLinef(diag.CategoryPerformance, i+1,
				"function spans %d lines (threshold %d); consider splitting it", span, limit))
		}
	}
	return out
}

// isFunctionDecl recognizes function openers across the supported
// languages: Python defs, JS function statements, and brace-opened
// signatures that are not control statements.
func (s *PerformanceScanner) isFunctionDecl(trimmed string) bool {
	if s.pyFuncRe.MatchString(trimmed) {
		return true
	}
	if strings.HasPrefix(trimmed, "function") {
		return true
	}
	if s.controlRe.MatchString(trimmed) {
		return false
	}
	return strings.HasSuffix(trimmed, "{") &&
		strings.Contains(trimmed, "(") &&
		strings.Contains(trimmed, ")")
}
