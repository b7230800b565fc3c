package rules

import (
	"testing"

	"github.com/snaplint/snaplint/internal/catalog"
	"github.com/snaplint/snaplint/internal/config"
)

func TestForLanguageDispatch(t *testing.T) {
	cfg := config.Default().Analysis

	tests := []struct {
		declared string
		want     string
	}{
		{catalog.LangPython, catalog.LangPython},
		{catalog.LangJavaScript, catalog.LangJavaScript},
		{catalog.LangJava, catalog.LangJava},
		{catalog.LangCPP, catalog.LangCPP},
		{catalog.LangOther, catalog.LangOther},
		{"Ruby", catalog.LangOther},
		{"", catalog.LangOther},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			e := ForLanguage(tt.declared, cfg)
			if e == nil {
				t.Fatal("ForLanguage returned nil")
			}
			if got := e.Language(); got != tt.want {
				t.Errorf("ForLanguage(%q).Language() = %q, want %q", tt.declared, got, tt.want)
			}
		})
	}
}

func TestGenericEngineAddsNothing(t *testing.T) {
	e := NewGenericEngine(config.Default().Analysis)
	ds := runEngine(e, "some text { with unbalanced braces\nand no semicolons\n")
	if len(ds) != 0 {
		t.Errorf("generic engine must not emit diagnostics, got %v", messagesOf(ds))
	}
}

func TestTypoTableWordBoundaries(t *testing.T) {
	pairs := newTypoTable([]TypoPair{{Wrong: "itn", Correct: "int"}})

	ds := checkTypoTable([]string{"itn counter = 0;"}, pairs)
	if len(ds) != 1 {
		t.Fatalf("expected one diagnostic, got %v", messagesOf(ds))
	}

	// Substring occurrences inside longer words do not match.
	ds = checkTypoTable([]string{"position = witness.locate();"}, pairs)
	if len(ds) != 0 {
		t.Errorf("embedded substring must not match: %v", messagesOf(ds))
	}
}

func TestLeadingIndent(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"code", 0},
		{"    code", 4},
		{"\tcode", 1},
		{"\t\t  code", 4},
		{"", 0},
	}
	for _, tt := range tests {
		if got := leadingIndent(tt.line); got != tt.want {
			t.Errorf("leadingIndent(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}
