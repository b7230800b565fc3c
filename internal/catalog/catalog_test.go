package catalog

import "testing"

func TestDefaultProfileOrder(t *testing.T) {
	c := Default()
	want := []string{LangPython, LangJavaScript, LangJava, LangCPP}
	profiles := c.Profiles()
	if len(profiles) != len(want) {
		t.Fatalf("expected %d profiles, got %d", len(want), len(profiles))
	}
	for i, name := range want {
		if profiles[i].Name != name {
			t.Errorf("profile %d: expected %s, got %s", i, name, profiles[i].Name)
		}
	}
}

func TestKeywordCountUsesWordBoundaries(t *testing.T) {
	c := Default()
	var python LanguageProfile
	for _, p := range c.Profiles() {
		if p.Name == LangPython {
			python = p
		}
	}

	var importSignal Signal
	for _, s := range python.Signals {
		if s.Kind == KindKeyword && s.Pattern == "import" {
			importSignal = s
		}
	}
	if importSignal.Pattern == "" {
		t.Fatal("python profile lost its import keyword")
	}

	if got := importSignal.Count("import os\nimport sys"); got != 2 {
		t.Errorf("expected 2 import occurrences, got %d", got)
	}
	// "important" must not count as "import".
	if got := importSignal.Count("this is important"); got != 0 {
		t.Errorf("substring must not match keyword, got %d", got)
	}
}

func TestSignalWeights(t *testing.T) {
	c := Default()
	for _, p := range c.Profiles() {
		for _, s := range p.Signals {
			switch s.Kind {
			case KindKeyword:
				if s.Weight != KeywordWeight {
					t.Errorf("%s keyword %q has weight %d", p.Name, s.Pattern, s.Weight)
				}
			case KindRegex:
				if s.Weight != RegexWeight {
					t.Errorf("%s regex %q has weight %d", p.Name, s.Pattern, s.Weight)
				}
			}
		}
	}
}

func TestOnlyPythonIsIndentationSensitive(t *testing.T) {
	c := Default()
	for _, p := range c.Profiles() {
		if p.IndentationSensitive != (p.Name == LangPython) {
			t.Errorf("%s: unexpected IndentationSensitive=%v", p.Name, p.IndentationSensitive)
		}
	}
}

func TestIsDeclared(t *testing.T) {
	c := Default()
	tests := []struct {
		name string
		want bool
	}{
		{LangPython, true},
		{LangJavaScript, true},
		{LangJava, true},
		{LangCPP, true},
		{LangOther, true},
		{Unknown, false},
		{"Rust", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := c.IsDeclared(tt.name); got != tt.want {
			t.Errorf("IsDeclared(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
