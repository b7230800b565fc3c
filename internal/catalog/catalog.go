// Package catalog holds the read-only language signal tables consumed by
// the classifier. Profiles are built once at startup and never mutated;
// their declaration order is the documented classification tie-break.
package catalog

import "regexp"

// Supported language names. LangOther opts out of per-language rule
// engines; Unknown is the classifier's no-signal result, never a valid
// declared language.
const (
	LangPython     = "Python"
	LangJavaScript = "JavaScript"
	LangJava       = "Java"
	LangCPP        = "C++"
	LangOther      = "Other"
	Unknown        = "unknown"
)

// SignalKind distinguishes word-boundary keyword signals from free-form
// regex signals.
type SignalKind int

const (
	KindKeyword SignalKind = iota
	KindRegex
)

// Signal weights. A keyword occurrence is worth 2, a regex occurrence 3.
const (
	KeywordWeight = 2
	RegexWeight   = 3
)

// Signal is one weighted classification pattern belonging to exactly one
// profile. The compiled form is built at catalog construction; keyword
// signals compile to word-boundary matches so "if" never hits "elif".
type Signal struct {
	Pattern string
	Kind    SignalKind
	Weight  int

	re *regexp.Regexp
}

// Count returns the number of occurrences of the signal in text.
func (s Signal) Count(text string) int {
	if s.re == nil {
		return 0
	}
	return len(s.re.FindAllStringIndex(text, -1))
}

// LanguageProfile groups the signals for one supported language.
// IndentationSensitive marks profiles that earn the indentation bonus
// during classification.
type LanguageProfile struct {
	Name                 string
	Signals              []Signal
	IndentationSensitive bool
}

// Catalog is the ordered, immutable set of language profiles. Iteration
// order over Profiles() is the tie-break order: the first profile to
// reach the maximum score wins.
type Catalog struct {
	profiles []LanguageProfile
}

// Profiles returns the profiles in declaration order. Callers must treat
// the slice as read-only.
func (c *Catalog) Profiles() []LanguageProfile {
	return c.profiles
}

// DeclaredLanguages returns the valid declared-language values, which
// include LangOther but not Unknown.
func (c *Catalog) DeclaredLanguages() []string {
	names := make([]string, 0, len(c.profiles)+1)
	for _, p := range c.profiles {
		names = append(names, p.Name)
	}
	return append(names, LangOther)
}

// IsDeclared reports whether name is a valid declared language.
func (c *Catalog) IsDeclared(name string) bool {
	if name == LangOther {
		return true
	}
	for _, p := range c.profiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Default builds the standard catalog: Python, JavaScript, Java, C++ in
// tie-break order.
func Default() *Catalog {
	return &Catalog{profiles: []LanguageProfile{
		buildProfile(LangPython, true,
			[]string{"def", "import", "elif", "self", "lambda", "None", "True", "False", "pass", "yield"},
			[]string{
				`(?m)^\s*def\s+\w+\s*\(`,
				`(?m)^\s*class\s+\w+(\([\w,\s]*\))?\s*:`,
				`(?m)^\s*(from\s+[\w.]+\s+)?import\s+[\w.*,\s]+$`,
				`print\s*\(`,
				`(?m):\s*$`,
				`\bself\s*\.`,
			}),
		buildProfile(LangJavaScript, false,
			[]string{"function", "const", "let", "var", "console", "undefined", "typeof", "require", "document", "null"},
			[]string{
				`console\.(log|error|warn|info|debug)\s*\(`,
				`(?m)^\s*(const|let|var)\s+\w+\s*=`,
				`function\s*\w*\s*\([^)]*\)\s*\{`,
				`=>`,
				`===|!==`,
				`document\.(getElementById|querySelector|createElement|write)`,
			}),
		buildProfile(LangJava, false,
			[]string{"public", "private", "protected", "static", "void", "class", "extends", "implements", "final", "String"},
			[]string{
				`public\s+(static\s+)?(final\s+)?\w+(\[\])?\s+\w+\s*\(`,
				`System\.(out|err)\.print(ln)?\s*\(`,
				`(?m)^\s*import\s+[\w.]+\s*;`,
				`(?m)^\s*package\s+[\w.]+\s*;`,
				`public\s+class\s+\w+`,
				`new\s+[A-Z]\w*\s*(<[\w,\s<>]*>)?\s*\(`,
			}),
		buildProfile(LangCPP, false,
			[]string{"include", "std", "cout", "cin", "endl", "namespace", "nullptr", "template", "printf", "struct"},
			[]string{
				`#include\s*[<"][^>"]+[>"]`,
				`std::\w+`,
				`cout\s*<<`,
				`cin\s*>>`,
				`(?m)^\s*(int|void)\s+main\s*\(`,
				`using\s+namespace\s+\w+`,
			}),
	}}
}

func buildProfile(name string, indentSensitive bool, keywords, patterns []string) LanguageProfile {
	signals := make([]Signal, 0, len(keywords)+len(patterns))
	for _, kw := range keywords {
		signals = append(signals, Signal{
			Pattern: kw,
			Kind:    KindKeyword,
			Weight:  KeywordWeight,
			re:      mustCompileRegex(`\b` + regexp.QuoteMeta(kw) + `\b`),
		})
	}
	for _, p := range patterns {
		signals = append(signals, Signal{
			Pattern: p,
			Kind:    KindRegex,
			Weight:  RegexWeight,
			re:      mustCompileRegex(p),
		})
	}
	return LanguageProfile{Name: name, Signals: signals, IndentationSensitive: indentSensitive}
}

func mustCompileRegex(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}
