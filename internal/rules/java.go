package rules

import (
	"regexp"
	"strings"

	"github.com/snaplint/snaplint/internal/catalog"
	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

// JavaEngine tracks both brace and parenthesis balance and adds the
// structural presence checks: real Java files have a class, and files
// past a size floor are expected to carry a main method.
type JavaEngine struct {
	cfg         config.Analysis
	stmtShapes  []*regexp.Regexp
	stringEqRe  *regexp.Regexp
	classRe     *regexp.Regexp
	typos       []TypoPair
	importPairs []ImportPair
}

// NewJavaEngine builds the Java rule engine.
func NewJavaEngine(cfg config.Analysis) *JavaEngine {
	e := &JavaEngine{cfg: cfg}
	e.stmtShapes = []*regexp.Regexp{
		regexp.MustCompile(`^(int|long|short|byte|double|float|boolean|char|String|var|final)\b\s+\w+`),
		regexp.MustCompile(`^[\w.\[\]]+\s*[-+*/%]?=\s*[^=]`),
		regexp.MustCompile(`^return\b`),
		regexp.MustCompile(`^[\w.]+\s*\(.*\)\s*$`),
	}
	e.stringEqRe = regexp.MustCompile(`"[^"]*"\s*==|==\s*"[^"]*"`)
	e.classRe = regexp.MustCompile(`\bclass\s+\w+`)
	e.initializeTypoTable()
	e.initializeImportPairs()
	return e
}

func (e *JavaEngine) initializeTypoTable() {
	e.typos = newTypoTable([]TypoPair{
		{Wrong: "pubilc", Correct: "public"},
		{Wrong: "pulbic", Correct: "public"},
		{Wrong: "pivate", Correct: "private"},
		{Wrong: "statci", Correct: "static"},
		{Wrong: "vodi", Correct: "void"},
		{Wrong: "Stirng", Correct: "String"},
		{Wrong: "Strnig", Correct: "String"},
		{Wrong: "Sytem", Correct: "System"},
		{Wrong: "systme", Correct: "System"},
		{Wrong: "mian", Correct: "main"},
	})
}

func (e *JavaEngine) initializeImportPairs() {
	e.importPairs = []ImportPair{
		{Token: "ArrayList", Imports: []string{"import java.util"}, Hint: "import java.util.ArrayList"},
		{Token: "HashMap", Imports: []string{"import java.util"}, Hint: "import java.util.HashMap"},
		{Token: "HashSet", Imports: []string{"import java.util"}, Hint: "import java.util.HashSet"},
		{Token: "Scanner", Imports: []string{"import java.util"}, Hint: "import java.util.Scanner"},
		{Token: "List<", Imports: []string{"import java.util"}, Hint: "import java.util.List"},
		{Token: "Map<", Imports: []string{"import java.util"}, Hint: "import java.util.Map"},
		{Token: "BufferedReader", Imports: []string{"import java.io"}, Hint: "import java.io.BufferedReader"},
		{Token: "FileReader", Imports: []string{"import java.io"}, Hint: "import java.io.FileReader"},
		{Token: "IOException", Imports: []string{"import java.io"}, Hint: "import java.io.IOException"},
		{Token: "Pattern.compile", Imports: []string{"import java.util.regex"}, Hint: "import java.util.regex.Pattern"},
	}
}

func (e *JavaEngine) Language() string { return catalog.LangJava }

// Analyze runs the ordered passes: brace and paren balance, semicolon
// heuristic, string comparison check, structural presence, import
// co-occurrence, misspellings.
func (e *JavaEngine) Analyze(text string, lines []string) []diag.Diagnostic {
	state := &AnalysisState{}
	var out []diag.Diagnostic

	countBraces(lines, state, true, e.skipLine)
	if d, ok := reportBraceBalance(state.BraceBalance, "brace(s)"); ok {
		out = append(out, d)
	}
	if d, ok := reportBraceBalance(state.ParenBalance, "parenthesis(es)"); ok {
		out = append(out, d)
	}

	out = append(out, checkMissingSemicolons(lines, e.stmtShapes, e.skipLine)...)
	out = append(out, e.checkStringComparison(lines)...)
	out = append(out, e.checkStructure(text)...)
	out = append(out, checkImportPairs(text, e.importPairs)...)
	out = append(out, checkTypoTable(lines, e.typos)...)
	return out
}

// skipLine exempts comments and annotations from line-local checks.
func (e *JavaEngine) skipLine(trimmed string) bool {
	return isSlashComment(trimmed) || strings.HasPrefix(trimmed, "@")
}

func (e *JavaEngine) checkStringComparison(lines []string) []diag.Diagnostic {
	var out []diag.Diagnostic
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if e.skipLine(trimmed) {
			continue
		}
		if e.stringEqRe.MatchString(line) {
			out = append(out, diag.AtLine(diag.CategoryLogic, i+1,
				"string comparison with ==; use .equals()"))
		}
	}
	return out
}

// checkStructure runs once over the whole text after the line passes.
// The size floors keep short snippets and fragments from being flagged
// as incomplete programs.
func (e *JavaEngine) checkStructure(text string) []diag.Diagnostic {
	var out []diag.Diagnostic
	if len(text) > e.cfg.JavaClassMinChars && !e.classRe.MatchString(text) {
		out = append(out, diag.New(diag.CategorySyntax, "no class declaration found"))
	}
	if len(text) > e.cfg.JavaMainMinChars && !strings.Contains(text, "public static void main") {
		out = append(out, diag.New(diag.CategorySyntax,
			"no main method found (expected 'public static void main')"))
	}
	return out
}
