package classify

import (
	"testing"

	"github.com/snaplint/snaplint/internal/catalog"
)

func newTestClassifier() *Classifier {
	return NewClassifier(catalog.Default())
}

func TestClassifyLanguages(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "cpp hello",
			text: "#include <iostream>\nint main(){}",
			want: catalog.LangCPP,
		},
		{
			name: "python function",
			text: "def greet(name):\n    print(f\"hello {name}\")\n    return None\n",
			want: catalog.LangPython,
		},
		{
			name: "javascript snippet",
			text: "const x = 1;\nfunction hello() {\n  console.log(x);\n}\n",
			want: catalog.LangJavaScript,
		},
		{
			name: "java class",
			text: "public class Main {\n    public static void main(String[] args) {\n        System.out.println(\"hi\");\n    }\n}\n",
			want: catalog.LangJava,
		},
		{
			name: "empty string",
			text: "",
			want: catalog.Unknown,
		},
		{
			name: "whitespace only",
			text: "   \n\t\n",
			want: catalog.Unknown,
		},
		{
			name: "no signals",
			text: "lorem ipsum dolor sit amet",
			want: catalog.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q\nscores: %v", tt.text, got, tt.want, c.Scores(tt.text))
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := newTestClassifier()
	text := "def f():\n    return 1\n"
	first := c.Classify(text)
	for i := 0; i < 10; i++ {
		if got := c.Classify(text); got != first {
			t.Fatalf("classification not deterministic: %q then %q", first, got)
		}
	}
}

func TestTieBreakFirstProfileWins(t *testing.T) {
	c := newTestClassifier()
	// One JavaScript keyword and one Java keyword, two points each.
	// JavaScript precedes Java in catalog order, so it keeps the lead.
	text := "const public"
	scores := c.Scores(text)
	if scores[catalog.LangJavaScript] != scores[catalog.LangJava] {
		t.Fatalf("test input no longer ties: %v", scores)
	}
	if got := c.Classify(text); got != catalog.LangJavaScript {
		t.Errorf("tie should resolve to earliest profile, got %q", got)
	}
}

func TestIndentationBonus(t *testing.T) {
	c := newTestClassifier()

	// Indented prose carries no keyword or regex signals, so the score
	// is exactly the bonus.
	text := "    alpha\n    beta\n    gamma\n"
	if got := c.Scores(text)[catalog.LangPython]; got != indentBonusScore {
		t.Errorf("expected bare indentation bonus %d, got %d", indentBonusScore, got)
	}

	// Below the one-fifth fraction there is no bonus.
	flat := "alpha\nbeta\ngamma\ndelta\nepsilon\n    indented\n"
	if got := c.Scores(flat)[catalog.LangPython]; got != 0 {
		t.Errorf("expected no bonus for mostly flat text, got %d", got)
	}
}

func TestValidate(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name     string
		text     string
		declared string
		want     bool
	}{
		{"matching declaration", "def f():\n    pass\n", catalog.LangPython, true},
		{"mismatched declaration", "def f():\n    pass\n", catalog.LangJava, false},
		{"unknown cannot contradict", "lorem ipsum", catalog.LangJava, true},
		{"empty cannot contradict", "", catalog.LangPython, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Validate(tt.text, tt.declared); got != tt.want {
				t.Errorf("Validate(%q, %q) = %v, want %v", tt.text, tt.declared, got, tt.want)
			}
		})
	}
}
