package rules

import (
	"regexp"
	"strings"

	"github.com/snaplint/snaplint/internal/catalog"
	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

// JavaScriptEngine tracks brace balance line by line and applies the
// line-local semicolon heuristic.
type JavaScriptEngine struct {
	cfg         config.Analysis
	stmtShapes  []*regexp.Regexp
	varRe       *regexp.Regexp
	typos       []TypoPair
	importPairs []ImportPair
}

// NewJavaScriptEngine builds the JavaScript rule engine.
func NewJavaScriptEngine(cfg config.Analysis) *JavaScriptEngine {
	e := &JavaScriptEngine{cfg: cfg}
	e.stmtShapes = []*regexp.Regexp{
		regexp.MustCompile(`^(var|let|const)\s+\w+`),
		regexp.MustCompile(`^[\w.$\[\]]+\s*[-+*/%]?=\s*[^=]`),
		regexp.MustCompile(`^return\b`),
		regexp.MustCompile(`^[\w.$]+\s*\(.*\)\s*$`),
	}
	e.varRe = regexp.MustCompile(`\bvar\s+\w+`)
	e.initializeTypoTable()
	e.initializeImportPairs()
	return e
}

func (e *JavaScriptEngine) initializeTypoTable() {
	e.typos = newTypoTable([]TypoPair{
		{Wrong: "functon", Correct: "function"},
		{Wrong: "fucntion", Correct: "function"},
		{Wrong: "cosnt", Correct: "const"},
		{Wrong: "conosle", Correct: "console"},
		{Wrong: "consle", Correct: "console"},
		{Wrong: "docuemnt", Correct: "document"},
		{Wrong: "docment", Correct: "document"},
		{Wrong: "undefiend", Correct: "undefined"},
		{Wrong: "udnefined", Correct: "undefined"},
		{Wrong: "reqiure", Correct: "require"},
	})
}

func (e *JavaScriptEngine) initializeImportPairs() {
	e.importPairs = []ImportPair{
		{Token: "fs.readFileSync", Imports: []string{`require('fs')`, `require("fs")`, `from 'fs'`, `from "fs"`}, Hint: "const fs = require('fs')"},
		{Token: "fs.writeFileSync", Imports: []string{`require('fs')`, `require("fs")`, `from 'fs'`, `from "fs"`}, Hint: "const fs = require('fs')"},
		{Token: "path.join", Imports: []string{`require('path')`, `require("path")`, `from 'path'`, `from "path"`}, Hint: "const path = require('path')"},
		{Token: "axios.", Imports: []string{`require('axios')`, `require("axios")`, `from 'axios'`, `from "axios"`}, Hint: "import axios from 'axios'"},
		{Token: "express(", Imports: []string{`require('express')`, `require("express")`, `from 'express'`, `from "express"`}, Hint: "const express = require('express')"},
		{Token: "useState(", Imports: []string{`from 'react'`, `from "react"`, `require('react')`, `require("react")`}, Hint: "import { useState } from 'react'"},
		{Token: "useEffect(", Imports: []string{`from 'react'`, `from "react"`, `require('react')`, `require("react")`}, Hint: "import { useEffect } from 'react'"},
		{Token: "$(", Imports: []string{"jquery", "jQuery"}, Hint: "a jQuery import"},
	}
}

func (e *JavaScriptEngine) Language() string { return catalog.LangJavaScript }

// Analyze runs the ordered passes: brace balance, semicolon heuristic,
// var discouragement, import co-occurrence, misspellings.
func (e *JavaScriptEngine) Analyze(text string, lines []string) []diag.Diagnostic {
	state := &AnalysisState{}
	var out []diag.Diagnostic

	countBraces(lines, state, false, isSlashComment)
	if d, ok := reportBraceBalance(state.BraceBalance, "brace(s)"); ok {
		out = append(out, d)
	}

	out = append(out, checkMissingSemicolons(lines, e.stmtShapes, isSlashComment)...)
	out = append(out, e.checkVarUsage(lines)...)
	out = append(out, checkImportPairs(text, e.importPairs)...)
	out = append(out, checkTypoTable(lines, e.typos)...)
	return out
}

func (e *JavaScriptEngine) checkVarUsage(lines []string) []diag.Diagnostic {
	var out []diag.Diagnostic
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isSlashComment(trimmed) {
			continue
		}
		if e.varRe.MatchString(line) {
			out = append(out, diag.AtLine(diag.CategoryQuality, i+1,
				"'var' declaration; prefer 'const' or 'let'"))
		}
	}
	return out
}
