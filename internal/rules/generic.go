package rules

import (
	"github.com/snaplint/snaplint/internal/catalog"
	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

// GenericEngine is the fallback for "Other" and unrecognized language
// names. It contributes nothing of its own: the language-agnostic shape
// and cross-cutting passes already cover everything that can be said
// without knowing the language.
type GenericEngine struct {
	cfg config.Analysis
}

// NewGenericEngine builds the fallback engine.
func NewGenericEngine(cfg config.Analysis) *GenericEngine {
	return &GenericEngine{cfg: cfg}
}

func (e *GenericEngine) Language() string { return catalog.LangOther }

func (e *GenericEngine) Analyze(text string, lines []string) []diag.Diagnostic {
	return nil
}
