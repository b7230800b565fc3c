package rules

import (
	"regexp"
	"strings"

	"github.com/snaplint/snaplint/internal/catalog"
	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

// PythonEngine tracks block structure through indentation instead of
// braces: a line ending in ":" promises a deeper-indented block on the
// next non-blank line.
type PythonEngine struct {
	cfg           config.Analysis
	controlRe     *regexp.Regexp
	classRe       *regexp.Regexp
	defNoParamsRe *regexp.Regexp
	typos         []TypoPair
	importPairs   []ImportPair
}

// NewPythonEngine builds the Python rule engine.
func NewPythonEngine(cfg config.Analysis) *PythonEngine {
	e := &PythonEngine{cfg: cfg}
	e.controlRe = regexp.MustCompile(`^(if|elif|else|for|while|def|class|try|except|finally|with)\b`)
	e.classRe = regexp.MustCompile(`^class\s+\w+`)
	e.defNoParamsRe = regexp.MustCompile(`^def\s+(\w+)\s*\(\s*\)\s*:`)
	e.initializeTypoTable()
	e.initializeImportPairs()
	return e
}

func (e *PythonEngine) initializeTypoTable() {
	e.typos = newTypoTable([]TypoPair{
		{Wrong: "improt", Correct: "import"},
		{Wrong: "imoprt", Correct: "import"},
		{Wrong: "prnit", Correct: "print"},
		{Wrong: "slef", Correct: "self"},
		{Wrong: "elfi", Correct: "elif"},
		{Wrong: "dfe", Correct: "def"},
		{Wrong: "Flase", Correct: "False"},
		{Wrong: "Ture", Correct: "True"},
		{Wrong: "Nnoe", Correct: "None"},
		{Wrong: "whlie", Correct: "while"},
		{Wrong: "wihle", Correct: "while"},
		{Wrong: "contiune", Correct: "continue"},
	})
}

func (e *PythonEngine) initializeImportPairs() {
	e.importPairs = []ImportPair{
		{Token: "np.", Imports: []string{"import numpy"}, Hint: "import numpy as np"},
		{Token: "pd.", Imports: []string{"import pandas"}, Hint: "import pandas as pd"},
		{Token: "plt.", Imports: []string{"import matplotlib"}, Hint: "import matplotlib.pyplot as plt"},
		{Token: "os.path", Imports: []string{"import os"}, Hint: "import os"},
		{Token: "sys.argv", Imports: []string{"import sys"}, Hint: "import sys"},
		{Token: "re.match", Imports: []string{"import re"}, Hint: "import re"},
		{Token: "re.search", Imports: []string{"import re"}, Hint: "import re"},
		{Token: "re.compile", Imports: []string{"import re"}, Hint: "import re"},
		{Token: "json.dumps", Imports: []string{"import json"}, Hint: "import json"},
		{Token: "json.loads", Imports: []string{"import json"}, Hint: "import json"},
		{Token: "random.", Imports: []string{"import random"}, Hint: "import random"},
		{Token: "math.", Imports: []string{"import math"}, Hint: "import math"},
		{Token: "requests.", Imports: []string{"import requests"}, Hint: "import requests"},
		{Token: "datetime.now", Imports: []string{"import datetime", "from datetime"}, Hint: "from datetime import datetime"},
	}
}

func (e *PythonEngine) Language() string { return catalog.LangPython }

// Analyze runs the ordered passes: block structure, method shape,
// import co-occurrence, misspellings.
func (e *PythonEngine) Analyze(text string, lines []string) []diag.Diagnostic {
	state := &AnalysisState{}
	var out []diag.Diagnostic
	out = append(out, e.checkBlocks(lines, state)...)
	out = append(out, e.checkMethods(lines, state)...)
	out = append(out, checkImportPairs(text, e.importPairs)...)
	out = append(out, checkTypoTable(lines, e.typos)...)
	return out
}

// checkBlocks runs the indentation state machine and the missing-colon
// check. A control line ending in ":" arms the expectation; the next
// non-blank, non-comment line must sit deeper than the baseline or the
// block is reported missing. The expectation is disarmed either way so
// one ":" yields at most one report.
func (e *PythonEngine) checkBlocks(lines []string, state *AnalysisState) []diag.Diagnostic {
	var out []diag.Diagnostic
	for i, line := range lines {
		if isBlank(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		indent := leadingIndent(line)

		if state.ExpectedIndent {
			if indent <= state.IndentBaseline {
				out = append(out, diag.AtLine(diag.CategorySyntax, i+1, "expected indented block"))
			}
			state.ExpectedIndent = false
		}

		if m := e.controlRe.FindStringSubmatch(trimmed); m != nil && !strings.HasSuffix(trimmed, ":") {
			out = append(out, diag.AtLinef(diag.CategorySyntax, i+1,
				"missing colon after %q statement", m[1]))
		}

		if strings.HasSuffix(trimmed, ":") {
			state.ExpectedIndent = true
			state.IndentBaseline = indent
		}
	}
	return out
}

// checkMethods flags zero-parameter defs inside a class body, which are
// missing at least self. Top-level functions are exempt.
func (e *PythonEngine) checkMethods(lines []string, state *AnalysisState) []diag.Diagnostic {
	var out []diag.Diagnostic
	for i, line := range lines {
		if isBlank(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		indent := leadingIndent(line)

		if e.classRe.MatchString(trimmed) {
			state.InClass = true
			state.ClassIndent = indent
			continue
		}
		if state.InClass && indent <= state.ClassIndent {
			state.InClass = false
		}
		if state.InClass {
			if m := e.defNoParamsRe.FindStringSubmatch(trimmed); m != nil {
				out = append(out, diag.AtLinef(diag.CategorySyntax, i+1,
					"method %q is missing the self parameter", m[1]))
			}
		}
	}
	return out
}
