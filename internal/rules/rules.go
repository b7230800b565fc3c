// Package rules implements the per-language heuristic engines. Each
// engine runs ordered passes over the line list, accumulating an
// AnalysisState that lives for exactly one invocation. All checks are
// textual; none of them parse.
package rules

import (
	"regexp"
	"strings"

	"github.com/snaplint/snaplint/internal/catalog"
	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

// AnalysisState is the mutable bookkeeping for one engine invocation.
// Created per call, never shared across calls or languages.
type AnalysisState struct {
	BraceBalance int
	ParenBalance int

	// Python block tracking.
	IndentBaseline int
	ExpectedIndent bool

	// Class body tracking for methods.
	InClass     bool
	ClassIndent int
}

// Engine is one language's rule pipeline.
type Engine interface {
	Language() string
	Analyze(text string, lines []string) []diag.Diagnostic
}

// ForLanguage resolves the engine for a declared language. The mapping
// is closed over the supported names; Other and anything unrecognized
// get the generic engine, which adds nothing beyond the shared passes.
func ForLanguage(name string, cfg config.Analysis) Engine {
	switch name {
	case catalog.LangPython:
		return NewPythonEngine(cfg)
	case catalog.LangJavaScript:
		return NewJavaScriptEngine(cfg)
	case catalog.LangJava:
		return NewJavaEngine(cfg)
	case catalog.LangCPP:
		return NewCPPEngine(cfg)
	default:
		return NewGenericEngine(cfg)
	}
}

// TypoPair maps a language-specific misspelling to its correction.
type TypoPair struct {
	Wrong   string
	Correct string

	re *regexp.Regexp
}

func newTypoTable(pairs []TypoPair) []TypoPair {
	for i := range pairs {
		pairs[i].re = regexp.MustCompile(`\b` + regexp.QuoteMeta(pairs[i].Wrong) + `\b`)
	}
	return pairs
}

// checkTypoTable reports one diagnostic per distinct misspelling. A
// match is suppressed when the correctly spelled token appears on the
// same line, so a line already using the correct word alongside an
// unrelated near-miss is not flagged.
func checkTypoTable(lines []string, pairs []TypoPair) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, pair := range pairs {
		for i, line := range lines {
			if !pair.re.MatchString(line) {
				continue
			}
			if strings.Contains(line, pair.Correct) {
				continue
			}
			out = append(out, diag.AtLinef(diag.CategorySyntax, i+1,
				"possible typo: %q should be %q", pair.Wrong, pair.Correct))
			break
		}
	}
	return out
}

// ImportPair ties a usage token to the import text expected alongside
// it. Matching is textual co-occurrence, not symbol resolution; any of
// the accepted import spellings satisfies the pair.
type ImportPair struct {
	Token   string
	Imports []string
	Hint    string
}

// checkImportPairs emits a missing-import diagnostic for every pair
// whose token appears while none of its import spellings do.
func checkImportPairs(text string, pairs []ImportPair) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, p := range pairs {
		if !strings.Contains(text, p.Token) {
			continue
		}
		found := false
		for _, imp := range p.Imports {
			if strings.Contains(text, imp) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, diag.Newf(diag.CategorySyntax,
				"%q is used but %q is missing", p.Token, p.Hint))
		}
	}
	return out
}

// leadingIndent measures the leading whitespace of a line in characters.
// Tabs count as one; the measure only needs to be comparable within one
// document.
func leadingIndent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// reportBraceBalance converts a final running counter into the signed
// magnitude diagnostics the engines share.
func reportBraceBalance(balance int, what string) (diag.Diagnostic, bool) {
	switch {
	case balance > 0:
		return diag.Newf(diag.CategorySyntax, "Missing %d closing %s", balance, what), true
	case balance < 0:
		return diag.Newf(diag.CategorySyntax, "Extra %d closing %s", -balance, what), true
	default:
		return diag.Diagnostic{}, false
	}
}

// countBraces feeds the running balance counters from the line list.
// Lines accepted by skip are left out of the count.
func countBraces(lines []string, state *AnalysisState, countParens bool, skip func(string) bool) {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if skip != nil && skip(trimmed) {
			continue
		}
		state.BraceBalance += strings.Count(line, "{") - strings.Count(line, "}")
		if countParens {
			state.ParenBalance += strings.Count(line, "(") - strings.Count(line, ")")
		}
	}
}

// checkMissingSemicolons flags lines matching a statement shape that end
// without ";", "{" or "}". The check is deliberately line-local:
// statements split across lines will misfire, and that behavior is part
// of the observable contract. Do not add lookahead here.
func checkMissingSemicolons(lines []string, shapes []*regexp.Regexp, skip func(string) bool) []diag.Diagnostic {
	var out []diag.Diagnostic
	for i, line := range lines {
		if isBlank(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if skip != nil && skip(trimmed) {
			continue
		}
		if strings.HasSuffix(trimmed, ";") || strings.HasSuffix(trimmed, "{") || strings.HasSuffix(trimmed, "}") {
			continue
		}
		for _, re := range shapes {
			if re.MatchString(trimmed) {
				out = append(out, diag.AtLine(diag.CategorySyntax, i+1, "possible missing semicolon"))
				break
			}
		}
	}
	return out
}

func isSlashComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*")
}
