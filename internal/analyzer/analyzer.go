// Package analyzer assembles the full pipeline: plain-text gate,
// text-shape checks, the per-language engine, and the cross-cutting
// scans, in a fixed order, feeding one de-duplicating diagnostic set.
package analyzer

import (
	"strings"

	"github.com/snaplint/snaplint/internal/catalog"
	"github.com/snaplint/snaplint/internal/classify"
	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/debug"
	"github.com/snaplint/snaplint/internal/diag"
	"github.com/snaplint/snaplint/internal/rules"
	"github.com/snaplint/snaplint/internal/scans"
	"github.com/snaplint/snaplint/internal/shape"
)

// PlainTextMessage is the informational diagnostic for input the gate
// rejects as prose.
const PlainTextMessage = "Input looks like plain text rather than source code; no code analysis performed."

// Analyzer owns the constructed passes. Construct once and share; all
// passes are read-only after construction, so concurrent Analyze calls
// are safe.
type Analyzer struct {
	cfg         config.Analysis
	catalog     *catalog.Catalog
	classifier  *classify.Classifier
	gate        *classify.PlainTextGate
	shape       *shape.Analyzer
	security    *scans.SecurityScanner
	performance *scans.PerformanceScanner
	quality     *scans.QualityScanner
	logic       *scans.LogicScanner
}

// New builds an analyzer against the default signal catalog.
func New(cfg config.Analysis) *Analyzer {
	cat := catalog.Default()
	return &Analyzer{
		cfg:         cfg,
		catalog:     cat,
		classifier:  classify.NewClassifier(cat),
		gate:        classify.NewPlainTextGate(cfg),
		shape:       shape.NewAnalyzer(cfg),
		security:    scans.NewSecurityScanner(cfg),
		performance: scans.NewPerformanceScanner(cfg),
		quality:     scans.NewQualityScanner(cfg),
		logic:       scans.NewLogicScanner(cfg),
	}
}

// NewDefault builds an analyzer with default thresholds.
func NewDefault() *Analyzer {
	return New(config.Default().Analysis)
}

// ClassifyLanguage scores the text against every language profile and
// returns the winner, or "unknown" when nothing scores.
func (a *Analyzer) ClassifyLanguage(text string) string {
	return a.classifier.Classify(text)
}

// Scores exposes the per-language classification scores.
func (a *Analyzer) Scores(text string) map[string]int {
	return a.classifier.Scores(text)
}

// Analyze runs the full pipeline. It is total: any text and any
// declared language produce a non-empty, finalized set. Unrecognized
// language names degrade to the generic engine with a note; empty and
// plain-text input short-circuit with a single informational
// diagnostic.
func (a *Analyzer) Analyze(text, declaredLanguage string) *diag.Set {
	set := diag.NewSet()

	if strings.TrimSpace(text) == "" {
		set.Add(diag.New(diag.CategoryGeneric, "no input provided; nothing to analyze"))
		return set.Finalize()
	}

	lang := declaredLanguage
	if !a.supported(lang) {
		set.Add(diag.Newf(diag.CategoryGeneric,
			"unsupported language %q; running language-agnostic checks only", declaredLanguage))
		lang = catalog.LangOther
	}

	if a.gate.IsPlainText(text) {
		set.Add(diag.New(diag.CategoryGeneric, PlainTextMessage))
		return set.Finalize()
	}

	lines := strings.Split(text, "\n")
	engine := rules.ForLanguage(lang, a.cfg)

	a.runPass(set, "shape", func() []diag.Diagnostic { return a.shape.Analyze(text, lines) })
	a.runPass(set, "language", func() []diag.Diagnostic { return engine.Analyze(text, lines) })
	a.runPass(set, "security", func() []diag.Diagnostic { return a.security.Scan(text, lines, lang) })
	a.runPass(set, "performance", func() []diag.Diagnostic { return a.performance.Scan(text, lines, lang) })
	a.runPass(set, "quality", func() []diag.Diagnostic { return a.quality.Scan(text, lines, lang) })
	a.runPass(set, "logic", func() []diag.Diagnostic { return a.logic.Scan(text, lines, lang) })
	a.runPass(set, "mismatch", func() []diag.Diagnostic { return a.checkLanguageMismatch(text, lang) })

	return set.Finalize()
}

// runPass appends one pass's findings. A panicking pass contributes
// nothing; the remaining passes still run.
func (a *Analyzer) runPass(set *diag.Set, name string, pass func() []diag.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			debug.LogAnalysis("pass %s recovered: %v\n", name, r)
		}
	}()
	set.Append(pass()...)
}

// checkLanguageMismatch warns when the declared language disagrees with
// what the classifier sees. Unknown detections stay quiet: absence of
// signal is not disagreement. Other is an explicit opt-out of language
// claims, not a classifiable one, so it can never mismatch either.
func (a *Analyzer) checkLanguageMismatch(text, lang string) []diag.Diagnostic {
	if lang == catalog.LangOther || !a.catalog.IsDeclared(lang) {
		return nil
	}
	detected := a.classifier.Classify(text)
	if detected == catalog.Unknown || detected == lang {
		return nil
	}
	return []diag.Diagnostic{diag.Newf(diag.CategoryGeneric,
		"declared language %s but the content resembles %s", lang, detected)}
}

// supported reports whether the declared name is one the pipeline
// recognizes, including the explicit Other.
func (a *Analyzer) supported(lang string) bool {
	return lang == catalog.LangOther || a.catalog.IsDeclared(lang)
}
