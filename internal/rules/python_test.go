package rules

import (
	"strings"
	"testing"

	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

func runEngine(e Engine, text string) []diag.Diagnostic {
	return e.Analyze(text, strings.Split(text, "\n"))
}

func hasMessage(ds []diag.Diagnostic, substr string) bool {
	for _, d := range ds {
		if strings.Contains(d.Message, substr) {
			return true
		}
	}
	return false
}

func countMessages(ds []diag.Diagnostic, substr string) int {
	n := 0
	for _, d := range ds {
		if strings.Contains(d.Message, substr) {
			n++
		}
	}
	return n
}

func messagesOf(ds []diag.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Message
	}
	return out
}

func TestPythonExpectedIndentation(t *testing.T) {
	e := NewPythonEngine(config.Default().Analysis)

	tests := []struct {
		name     string
		text     string
		wantFlag bool
	}{
		{
			name:     "missing indent after if",
			text:     "if x:\ny = 1\n",
			wantFlag: true,
		},
		{
			name:     "properly indented block",
			text:     "if x:\n    y = 1\n",
			wantFlag: false,
		},
		{
			name:     "blank line between opener and body",
			text:     "def f():\n\n    return 1\n",
			wantFlag: false,
		},
		{
			name:     "dedent after else opener",
			text:     "if x:\n    y = 1\nelse:\nz = 2\n",
			wantFlag: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := runEngine(e, tt.text)
			if got := hasMessage(ds, "expected indented block"); got != tt.wantFlag {
				t.Errorf("expected indented block flag = %v, want %v; diagnostics: %v",
					got, tt.wantFlag, messagesOf(ds))
			}
		})
	}
}

func TestPythonExpectedIndentationReportsOncePerOpener(t *testing.T) {
	e := NewPythonEngine(config.Default().Analysis)
	// One unindented opener body, then normal code at the same level.
	ds := runEngine(e, "if x:\ny = 1\nz = 2\n")
	if got := countMessages(ds, "expected indented block"); got != 1 {
		t.Errorf("expected exactly 1 indentation diagnostic, got %d: %v", got, messagesOf(ds))
	}
}

func TestPythonMissingColon(t *testing.T) {
	e := NewPythonEngine(config.Default().Analysis)

	ds := runEngine(e, "if x > 1\n    y = 2\n")
	if !hasMessage(ds, `Line 1: missing colon after "if" statement`) {
		t.Errorf("expected missing colon diagnostic, got %v", messagesOf(ds))
	}

	ds = runEngine(e, "for item in items:\n    use(item)\n")
	if hasMessage(ds, "missing colon") {
		t.Errorf("colon present, nothing to flag: %v", messagesOf(ds))
	}
}

func TestPythonMethodMissingSelf(t *testing.T) {
	e := NewPythonEngine(config.Default().Analysis)

	text := "class Greeter:\n    def greet():\n        print(\"hi\")\n"
	ds := runEngine(e, text)
	if !hasMessage(ds, `method "greet" is missing the self parameter`) {
		t.Errorf("expected missing self diagnostic, got %v", messagesOf(ds))
	}

	// Top-level functions take no self.
	ds = runEngine(e, "def main():\n    pass\n")
	if hasMessage(ds, "missing the self parameter") {
		t.Errorf("top-level def must not be flagged: %v", messagesOf(ds))
	}

	// A method that dedented out of the class body is top level again.
	text = "class A:\n    x = 1\ndef helper():\n    pass\n"
	ds = runEngine(e, text)
	if hasMessage(ds, "missing the self parameter") {
		t.Errorf("def after dedent must not be flagged: %v", messagesOf(ds))
	}
}

func TestPythonImportPairs(t *testing.T) {
	e := NewPythonEngine(config.Default().Analysis)

	ds := runEngine(e, "arr = np.array([1, 2, 3])\n")
	if !hasMessage(ds, `"np." is used but "import numpy as np" is missing`) {
		t.Errorf("expected missing numpy import, got %v", messagesOf(ds))
	}

	ds = runEngine(e, "import numpy as np\narr = np.array([1, 2, 3])\n")
	if hasMessage(ds, "import numpy") {
		t.Errorf("import present, nothing to flag: %v", messagesOf(ds))
	}
}

func TestPythonTypoSuppressedByCorrectToken(t *testing.T) {
	e := NewPythonEngine(config.Default().Analysis)

	// The correct word on the same line suppresses the report.
	ds := runEngine(e, "slef = self\n")
	if hasMessage(ds, `"slef"`) {
		t.Errorf("typo with correction on same line must be suppressed: %v", messagesOf(ds))
	}

	ds = runEngine(e, "slef.value = 3\n")
	if !hasMessage(ds, `possible typo: "slef" should be "self"`) {
		t.Errorf("expected slef typo diagnostic, got %v", messagesOf(ds))
	}
}
