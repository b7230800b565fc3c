package rules

import (
	"strings"
	"testing"

	"github.com/snaplint/snaplint/internal/config"
)

func TestJavaBraceAndParenBalance(t *testing.T) {
	e := NewJavaEngine(config.Default().Analysis)

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "missing closing brace",
			text: "public class A {\n  int x = 1;\n",
			want: "Missing 1 closing brace(s)",
		},
		{
			name: "missing closing parenthesis",
			text: "System.out.println(\"hi\";\n",
			want: "Missing 1 closing parenthesis(es)",
		},
		{
			name: "extra closing parenthesis",
			text: "int x = f(a));\n",
			want: "Extra 1 closing parenthesis(es)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := runEngine(e, tt.text)
			if !hasMessage(ds, tt.want) {
				t.Errorf("want %q, got %v", tt.want, messagesOf(ds))
			}
		})
	}
}

func TestJavaAnnotationLinesSkipBalance(t *testing.T) {
	e := NewJavaEngine(config.Default().Analysis)
	ds := runEngine(e, "@Foo(\nint x = 1;\n")
	if hasMessage(ds, "parenthesis") {
		t.Errorf("annotation line must not feed the paren counter: %v", messagesOf(ds))
	}
}

func TestJavaStringComparison(t *testing.T) {
	e := NewJavaEngine(config.Default().Analysis)

	ds := runEngine(e, "if (name == \"admin\") {\n}\n")
	if !hasMessage(ds, "Line 1: string comparison with ==; use .equals()") {
		t.Errorf("expected string comparison diagnostic, got %v", messagesOf(ds))
	}

	ds = runEngine(e, "if (name.equals(\"admin\")) {\n}\n")
	if hasMessage(ds, "string comparison") {
		t.Errorf(".equals must not be flagged: %v", messagesOf(ds))
	}
}

func TestJavaStructuralPresence(t *testing.T) {
	e := NewJavaEngine(config.Default().Analysis)

	// Above the main floor, with a class but no main method.
	bigNoMain := "public class Account {\n" +
		strings.Repeat("    private int balanceValue;\n", 7) + "}\n"
	if len(bigNoMain) <= 200 {
		t.Fatalf("fixture too short: %d chars", len(bigNoMain))
	}
	ds := runEngine(e, bigNoMain)
	if !hasMessage(ds, "no main method found (expected 'public static void main')") {
		t.Errorf("expected missing main diagnostic, got %v", messagesOf(ds))
	}
	if hasMessage(ds, "no class declaration") {
		t.Errorf("class is present, must not be flagged: %v", messagesOf(ds))
	}

	// Same file with a main method is structurally complete.
	withMain := strings.Replace(bigNoMain, "}\n",
		"    public static void main(String[] args) {}\n}\n", 1)
	ds = runEngine(e, withMain)
	if hasMessage(ds, "no main method") || hasMessage(ds, "no class declaration") {
		t.Errorf("complete program must pass structure checks: %v", messagesOf(ds))
	}

	// Between the floors: class check fires, main check stays quiet.
	mid := strings.Repeat("int value = 1;\n", 8)
	if len(mid) <= 100 || len(mid) > 200 {
		t.Fatalf("fixture out of range: %d chars", len(mid))
	}
	ds = runEngine(e, mid)
	if !hasMessage(ds, "no class declaration found") {
		t.Errorf("expected missing class diagnostic, got %v", messagesOf(ds))
	}
	if hasMessage(ds, "no main method") {
		t.Errorf("below the main floor, must not be flagged: %v", messagesOf(ds))
	}

	// Short fragments never trip structure checks.
	ds = runEngine(e, "int x = 1;\n")
	if hasMessage(ds, "no class declaration") || hasMessage(ds, "no main method") {
		t.Errorf("short fragment must pass structure checks: %v", messagesOf(ds))
	}
}

func TestJavaImportPairs(t *testing.T) {
	e := NewJavaEngine(config.Default().Analysis)

	ds := runEngine(e, "ArrayList<String> names = new ArrayList<>();\n")
	if !hasMessage(ds, `"ArrayList" is used but "import java.util.ArrayList" is missing`) {
		t.Errorf("expected missing ArrayList import, got %v", messagesOf(ds))
	}

	ds = runEngine(e, "import java.util.ArrayList;\nArrayList<String> names = new ArrayList<>();\n")
	if hasMessage(ds, "is missing") {
		t.Errorf("import present, nothing to flag: %v", messagesOf(ds))
	}
}

func TestJavaTypos(t *testing.T) {
	e := NewJavaEngine(config.Default().Analysis)

	ds := runEngine(e, "pubilc static void run() {\n}\n")
	if !hasMessage(ds, `possible typo: "pubilc" should be "public"`) {
		t.Errorf("expected pubilc typo diagnostic, got %v", messagesOf(ds))
	}

	ds = runEngine(e, "Sytem.out.println(x);\n")
	if !hasMessage(ds, `possible typo: "Sytem" should be "System"`) {
		t.Errorf("expected Sytem typo diagnostic, got %v", messagesOf(ds))
	}
}
