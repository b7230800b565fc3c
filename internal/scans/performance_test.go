package scans

import (
	"strings"
	"testing"

	"github.com/snaplint/snaplint/internal/catalog"
	"github.com/snaplint/snaplint/internal/config"
)

func TestPerformanceNestedLoops(t *testing.T) {
	s := NewPerformanceScanner(config.Default().Analysis)

	tests := []struct {
		name     string
		text     string
		wantFlag bool
	}{
		{
			name:     "nested python loops",
			text:     "for row in rows:\n    for cell in row:\n        use(cell)\n",
			wantFlag: true,
		},
		{
			name:     "nested brace loops",
			text:     "for (int i = 0; i < n; i++) {\n    for (int j = 0; j < n; j++) {\n    }\n}\n",
			wantFlag: true,
		},
		{
			name:     "sibling loops are not nested",
			text:     "for a in xs:\n    use(a)\nfor b in ys:\n    use(b)\n",
			wantFlag: false,
		},
		{
			name:     "single loop",
			text:     "while pending:\n    drain()\n",
			wantFlag: false,
		},
		{
			name:     "loop keyword in comment is ignored",
			text:     "for a in xs:\n    # for each entry\n    use(a)\n",
			wantFlag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := scan(s, tt.text, catalog.LangPython)
			if got := hasMessage(ds, "nested loop"); got != tt.wantFlag {
				t.Errorf("nested loop flag = %v, want %v; diagnostics: %v",
					got, tt.wantFlag, messagesOf(ds))
			}
		})
	}
}

func TestPerformanceLoggingInsideLoop(t *testing.T) {
	s := NewPerformanceScanner(config.Default().Analysis)

	ds := scan(s, "for item in items:\n    print(item)\n", catalog.LangPython)
	if !hasMessage(ds, "Line 2: logging call inside a loop") {
		t.Errorf("expected logging-in-loop diagnostic, got %v", messagesOf(ds))
	}

	ds = scan(s, "print(header)\nfor item in items:\n    total += item\n", catalog.LangPython)
	if hasMessage(ds, "logging call inside a loop") {
		t.Errorf("logging before the loop must not be flagged: %v", messagesOf(ds))
	}

	ds = scan(s, "while (queue.poll()) {\n    console.log(entry);\n}\n", catalog.LangJavaScript)
	if !hasMessage(ds, "logging call inside a loop") {
		t.Errorf("expected console.log diagnostic, got %v", messagesOf(ds))
	}
}

func TestPerformanceLongFunction(t *testing.T) {
	s := NewPerformanceScanner(config.Default().Analysis)

	long := "def big():\n" + strings.Repeat("    step()\n", 55)
	ds := scan(s, long, catalog.LangPython)
	if !hasMessage(ds, "consider splitting") {
		t.Errorf("expected long function diagnostic, got %v", messagesOf(ds))
	}

	short := "def small():\n" + strings.Repeat("    step()\n", 10)
	ds = scan(s, short, catalog.LangPython)
	if hasMessage(ds, "consider splitting") {
		t.Errorf("short function must not be flagged: %v", messagesOf(ds))
	}

	braced := "public void run() {\n" + strings.Repeat("    step();\n", 60) + "}\n"
	ds = scan(s, braced, catalog.LangJava)
	if !hasMessage(ds, "consider splitting") {
		t.Errorf("expected long method diagnostic, got %v", messagesOf(ds))
	}
}
