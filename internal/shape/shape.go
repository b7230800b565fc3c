// Package shape implements the language-agnostic structural checks:
// bracket and quote balance over the whole text, per-line hygiene
// checks, and the universal misspelling scan.
package shape

import (
	"regexp"
	"strings"

	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

// TypoPair maps a misspelling to its correction. The compiled form is a
// word-boundary match so corrections never fire inside larger words.
type TypoPair struct {
	Wrong   string
	Correct string

	re *regexp.Regexp
}

type bracketPair struct {
	open  byte
	close byte
	name  string
}

// Analyzer runs the text-shape checks. Construct once and reuse; it is
// stateless between calls.
type Analyzer struct {
	cfg            config.Analysis
	typos          []TypoPair
	credentialRe   *regexp.Regexp
	localAddressRe *regexp.Regexp
	emptyMarkerRe  *regexp.Regexp
	commentMarkers []string
}

// NewAnalyzer builds the analyzer with thresholds from cfg.
func NewAnalyzer(cfg config.Analysis) *Analyzer {
	a := &Analyzer{
		cfg:            cfg,
		commentMarkers: []string{"//", "#", "/*"},
	}
	a.initializeTypoTable()
	a.credentialRe = regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|api_?key|access_?key|token)\b\s*[:=]\s*["'][^"']+["']`)
	a.localAddressRe = regexp.MustCompile(`["'][^"']*(localhost|127\.0\.0\.1)[^"']*["']`)
	a.emptyMarkerRe = regexp.MustCompile(`(?i)\b(TODO|FIXME)\b\s*:?\s*$`)
	return a
}

// initializeTypoTable builds the universal misspelling list. Entries are
// generic programming words; language keywords live with their engines.
func (a *Analyzer) initializeTypoTable() {
	pairs := []TypoPair{
		{Wrong: "functoin", Correct: "function"},
		{Wrong: "funciton", Correct: "function"},
		{Wrong: "retrun", Correct: "return"},
		{Wrong: "reutrn", Correct: "return"},
		{Wrong: "pritn", Correct: "print"},
		{Wrong: "lenght", Correct: "length"},
		{Wrong: "widht", Correct: "width"},
		{Wrong: "heigth", Correct: "height"},
		{Wrong: "flase", Correct: "false"},
		{Wrong: "ture", Correct: "true"},
		{Wrong: "treu", Correct: "true"},
		{Wrong: "nulll", Correct: "null"},
		{Wrong: "recieve", Correct: "receive"},
		{Wrong: "seperate", Correct: "separate"},
		{Wrong: "definately", Correct: "definitely"},
		{Wrong: "occured", Correct: "occurred"},
	}
	for i := range pairs {
		pairs[i].re = regexp.MustCompile(`\b` + regexp.QuoteMeta(pairs[i].Wrong) + `\b`)
	}
	a.typos = pairs
}

// Analyze runs all shape checks in order: whole-text balance, per-line
// checks, then the universal typo scan.
func (a *Analyzer) Analyze(text string, lines []string) []diag.Diagnostic {
	var out []diag.Diagnostic
	out = append(out, a.checkBalance(text)...)
	out = append(out, a.checkLines(lines)...)
	out = append(out, a.checkTypos(text, lines)...)
	return out
}

// checkBalance counts bracket characters over the whole text and reports
// one diagnostic per mismatched pair, citing both counts. Quotes use
// parity since they are not nestable.
func (a *Analyzer) checkBalance(text string) []diag.Diagnostic {
	var out []diag.Diagnostic

	pairs := []bracketPair{
		{'(', ')', "parentheses"},
		{'{', '}', "braces"},
		{'[', ']', "brackets"},
	}
	for _, p := range pairs {
		opens := strings.Count(text, string(p.open))
		closes := strings.Count(text, string(p.close))
		if opens != closes {
			out = append(out, diag.Newf(diag.CategorySyntax,
				"Unbalanced %s: %d opening, %d closing", p.name, opens, closes))
		}
	}

	quotes := []struct {
		ch   string
		name string
	}{
		{`'`, "single"},
		{`"`, "double"},
		{"`", "backtick"},
	}
	for _, q := range quotes {
		if n := strings.Count(text, q.ch); n%2 != 0 {
			out = append(out, diag.Newf(diag.CategorySyntax,
				"Unmatched %s quote: %d found (odd count)", q.name, n))
		}
	}

	return out
}

func (a *Analyzer) isCommentLine(trimmed string) bool {
	for _, marker := range a.commentMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// checkLines runs the per-line hygiene checks, skipping blank lines and
// comment-led lines.
func (a *Analyzer) checkLines(lines []string) []diag.Diagnostic {
	var out []diag.Diagnostic
	indentStyle := a.prevailingIndent(lines)

	for i, line := range lines {
		n := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || a.isCommentLine(trimmed) {
			continue
		}

		if trimmed == ";" {
			out = append(out, diag.AtLine(diag.CategorySyntax, n, "empty statement (lone semicolon)"))
		}
		if line != strings.TrimRight(line, " \t") {
			out = append(out, diag.AtLine(diag.CategoryQuality, n, "trailing whitespace"))
		}
		if len(line) > a.cfg.MaxLineLength {
			out = append(out, diag.AtLinef(diag.CategoryQuality, n,
				"line exceeds %d characters (%d)", a.cfg.MaxLineLength, len(line)))
		}
		if d, ok := a.checkIndent(line, n, indentStyle); ok {
			out = append(out, d)
		}
		if a.emptyMarkerRe.MatchString(line) {
			out = append(out, diag.AtLine(diag.CategoryQuality, n, "TODO/FIXME marker without description"))
		}
		if m := a.credentialRe.FindStringSubmatch(line); m != nil {
			out = append(out, diag.AtLinef(diag.CategorySecurity, n,
				"hardcoded credential detected (%s)", strings.ToLower(m[1])))
		} else if m := a.localAddressRe.FindStringSubmatch(line); m != nil {
			out = append(out, diag.AtLinef(diag.CategorySecurity, n,
				"hardcoded network address (%s)", m[1]))
		}
	}

	return out
}

// prevailingIndent inspects how the document indents: "tab", "space",
// or "" when neither appears.
func (a *Analyzer) prevailingIndent(lines []string) string {
	tabs, spaces := 0, 0
	for _, line := range lines {
		if strings.HasPrefix(line, "\t") {
			tabs++
		} else if strings.HasPrefix(line, "    ") {
			spaces++
		}
	}
	switch {
	case tabs > spaces:
		return "tab"
	case spaces > tabs:
		return "space"
	default:
		if tabs > 0 {
			return "tab"
		}
		return ""
	}
}

func (a *Analyzer) checkIndent(line string, n int, style string) (diag.Diagnostic, bool) {
	switch style {
	case "space":
		if strings.HasPrefix(line, "\t") {
			return diag.AtLine(diag.CategoryQuality, n,
				"mixed indentation (tab-indented line in a space-indented file)"), true
		}
	case "tab":
		if strings.HasPrefix(line, "    ") {
			return diag.AtLine(diag.CategoryQuality, n,
				"mixed indentation (space-indented line in a tab-indented file)"), true
		}
	}
	return diag.Diagnostic{}, false
}

// checkTypos reports one diagnostic per distinct misspelling found,
// anchored at its first occurrence, regardless of how many times the
// word repeats.
func (a *Analyzer) checkTypos(text string, lines []string) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, pair := range a.typos {
		if !pair.re.MatchString(text) {
			continue
		}
		line := 0
		for i, l := range lines {
			if pair.re.MatchString(l) {
				line = i + 1
				break
			}
		}
		if line > 0 {
			out = append(out, diag.AtLinef(diag.CategorySyntax, line,
				"possible typo: %q should be %q", pair.Wrong, pair.Correct))
		} else {
			out = append(out, diag.Newf(diag.CategorySyntax,
				"possible typo: %q should be %q", pair.Wrong, pair.Correct))
		}
	}
	return out
}
