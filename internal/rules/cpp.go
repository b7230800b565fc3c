package rules

import (
	"regexp"
	"strings"

	"github.com/snaplint/snaplint/internal/catalog"
	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

// CPPEngine tracks brace balance and checks stream operator usage.
// Preprocessor lines are exempt from the statement checks.
type CPPEngine struct {
	cfg         config.Analysis
	stmtShapes  []*regexp.Regexp
	coutRe      *regexp.Regexp
	cinRe       *regexp.Regexp
	streamRe    *regexp.Regexp
	typos       []TypoPair
	importPairs []ImportPair
}

// NewCPPEngine builds the C++ rule engine.
func NewCPPEngine(cfg config.Analysis) *CPPEngine {
	e := &CPPEngine{cfg: cfg}
	e.stmtShapes = []*regexp.Regexp{
		regexp.MustCompile(`^(int|long|short|double|float|bool|char|auto|void|unsigned|std::\w+)\b\s+\w+`),
		regexp.MustCompile(`^[\w.\[\]>-]+\s*[-+*/%]?=\s*[^=]`),
		regexp.MustCompile(`^return\b`),
		regexp.MustCompile(`^[\w:]+\s*\(.*\)\s*$`),
	}
	e.coutRe = regexp.MustCompile(`\bcout\b`)
	e.cinRe = regexp.MustCompile(`\bcin\b`)
	e.streamRe = regexp.MustCompile(`\b(cout|cin|endl)\b`)
	e.initializeTypoTable()
	e.initializeImportPairs()
	return e
}

func (e *CPPEngine) initializeTypoTable() {
	e.typos = newTypoTable([]TypoPair{
		{Wrong: "inculde", Correct: "include"},
		{Wrong: "incldue", Correct: "include"},
		{Wrong: "cuot", Correct: "cout"},
		{Wrong: "ocut", Correct: "cout"},
		{Wrong: "nmaespace", Correct: "namespace"},
		{Wrong: "naemspace", Correct: "namespace"},
		{Wrong: "itn", Correct: "int"},
		{Wrong: "mian", Correct: "main"},
		{Wrong: "pritnf", Correct: "printf"},
		{Wrong: "ednl", Correct: "endl"},
	})
}

func (e *CPPEngine) initializeImportPairs() {
	e.importPairs = []ImportPair{
		{Token: "cout", Imports: []string{"#include <iostream>"}, Hint: "#include <iostream>"},
		{Token: "cin", Imports: []string{"#include <iostream>"}, Hint: "#include <iostream>"},
		{Token: "endl", Imports: []string{"#include <iostream>"}, Hint: "#include <iostream>"},
		{Token: "std::string", Imports: []string{"#include <string>"}, Hint: "#include <string>"},
		{Token: "std::vector", Imports: []string{"#include <vector>"}, Hint: "#include <vector>"},
		{Token: "std::map", Imports: []string{"#include <map>"}, Hint: "#include <map>"},
		{Token: "printf", Imports: []string{"#include <cstdio>", "#include <stdio.h>"}, Hint: "#include <cstdio>"},
		{Token: "malloc", Imports: []string{"#include <cstdlib>", "#include <stdlib.h>"}, Hint: "#include <cstdlib>"},
	}
}

func (e *CPPEngine) Language() string { return catalog.LangCPP }

// Analyze runs the ordered passes: brace balance, semicolon heuristic,
// stream operator checks, import co-occurrence, misspellings.
func (e *CPPEngine) Analyze(text string, lines []string) []diag.Diagnostic {
	state := &AnalysisState{}
	var out []diag.Diagnostic

	countBraces(lines, state, false, e.skipLine)
	if d, ok := reportBraceBalance(state.BraceBalance, "brace(s)"); ok {
		out = append(out, d)
	}

	out = append(out, checkMissingSemicolons(lines, e.stmtShapes, e.skipLine)...)
	out = append(out, e.checkStreams(text, lines)...)
	out = append(out, checkImportPairs(text, e.importPairs)...)
	out = append(out, checkTypoTable(lines, e.typos)...)
	return out
}

// skipLine exempts comments and preprocessor directives.
func (e *CPPEngine) skipLine(trimmed string) bool {
	return isSlashComment(trimmed) || strings.HasPrefix(trimmed, "#")
}

// checkStreams verifies that cout and cin carry their stream operators
// and that stream names resolve, either through std:: or a visible
// using-directive.
func (e *CPPEngine) checkStreams(text string, lines []string) []diag.Diagnostic {
	var out []diag.Diagnostic
	hasUsingStd := strings.Contains(text, "using namespace std")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if e.skipLine(trimmed) {
			continue
		}
		if e.coutRe.MatchString(line) && !strings.Contains(line, "<<") {
			out = append(out, diag.AtLine(diag.CategorySyntax, i+1, "cout without << operator"))
		}
		if e.cinRe.MatchString(line) && !strings.Contains(line, ">>") {
			out = append(out, diag.AtLine(diag.CategorySyntax, i+1, "cin without >> operator"))
		}
		if !hasUsingStd && e.streamRe.MatchString(line) && !strings.Contains(line, "std::") {
			out = append(out, diag.AtLine(diag.CategorySyntax, i+1,
				"stream name used without std:: prefix and no 'using namespace std' in file"))
		}
	}
	return out
}
