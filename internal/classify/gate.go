package classify

import (
	"regexp"

	"github.com/snaplint/snaplint/internal/config"
)

// PlainTextGate decides whether input is prose rather than code before
// any diagnostic pass runs. Short input matching almost none of the
// code indicators is prose; long input is always treated as code so
// unusual but real files are never silently discarded.
type PlainTextGate struct {
	indicators    []*regexp.Regexp
	maxChars      int
	minIndicators int
}

// NewPlainTextGate builds the gate with thresholds from cfg.
func NewPlainTextGate(cfg config.Analysis) *PlainTextGate {
	g := &PlainTextGate{
		maxChars:      cfg.PlainTextMaxChars,
		minIndicators: cfg.PlainTextMinIndicators,
	}
	g.initializeIndicators()
	return g
}

// initializeIndicators builds the fixed code-indicator set. Each pattern
// contributes at most one point no matter how often it matches.
func (g *PlainTextGate) initializeIndicators() {
	g.indicators = []*regexp.Regexp{
		// comparison and logical operator clusters
		regexp.MustCompile(`==|!=|<=|>=|&&|\|\||=>|->`),
		// statement keywords
		regexp.MustCompile(`\b(if|else|for|while|return|function|def|class|import|include|public|private|const|let|var|void|print)\b`),
		// call syntax
		regexp.MustCompile(`\w+\s*\([^)]*\)`),
		// index syntax
		regexp.MustCompile(`\w+\[[^\]]*\]`),
		// member call
		regexp.MustCompile(`\w+\.\w+\s*\(`),
		// comment markers
		regexp.MustCompile(`//|#|/\*|\*/`),
		// include/import statements
		regexp.MustCompile(`#include|\bimport\s+\w|\bfrom\s+[\w.]+\s+import\b|require\s*\(|using\s+namespace|\bpackage\s+[\w.]+`),
		// quoted literals
		regexp.MustCompile("\"[^\"]*\"|'[^']*'|`[^`]*`"),
		// compound operators and assignment
		regexp.MustCompile(`\+=|-=|\*=|/=|%=|\+\+|--|=\s*[\w"'({\[]`),
		// deep indentation
		regexp.MustCompile(`(?m)^( {4,}|\t+)\S`),
		// statement-terminating semicolons
		regexp.MustCompile(`(?m);\s*$`),
		// identifier followed by a block, or opener ending a line
		regexp.MustCompile(`(?m)\w+\s*\{|[{(]\s*$`),
		// array or object literal shape
		regexp.MustCompile(`[\[{]\s*["'\w]`),
	}
}

// IsPlainText reports whether text is prose. Both conditions are
// required: fewer than minIndicators distinct indicator matches AND
// length under maxChars.
func (g *PlainTextGate) IsPlainText(text string) bool {
	if len(text) >= g.maxChars {
		return false
	}
	matched := 0
	for _, re := range g.indicators {
		if re.MatchString(text) {
			matched++
			if matched >= g.minIndicators {
				return false
			}
		}
	}
	return true
}

// IndicatorCount returns how many distinct indicator patterns match,
// mainly for debug output.
func (g *PlainTextGate) IndicatorCount(text string) int {
	matched := 0
	for _, re := range g.indicators {
		if re.MatchString(text) {
			matched++
		}
	}
	return matched
}
