package scans

import (
	"regexp"
	"strings"

	"github.com/snaplint/snaplint/internal/catalog"
	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

// securityRule is one dangerous-construct pattern. Langs narrows the
// rule; empty means every language.
type securityRule struct {
	re      *regexp.Regexp
	langs   []string
	message string
}

// SecurityScanner flags credential literals, dynamic code execution,
// unsafe DOM insertion, SQL string concatenation, and a handful of
// language-specific dangerous calls.
type SecurityScanner struct {
	cfg          config.Analysis
	credentialRe *regexp.Regexp
	sqlConcatRe  *regexp.Regexp
	rules        []securityRule
}

// NewSecurityScanner builds the security pass.
func NewSecurityScanner(cfg config.Analysis) *SecurityScanner {
	s := &SecurityScanner{cfg: cfg}
	s.credentialRe = regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|api_?key|access_?key|token)\b\s*[:=]\s*["'][^"']+["']`)
	s.sqlConcatRe = regexp.MustCompile(`(?i)["'][^"']*\b(select|insert into|update|delete from)\b[^"']*["']\s*\+`)
	s.initializeRules()
	return s
}

func (s *SecurityScanner) initializeRules() {
	s.rules = []securityRule{
		{
			re:      regexp.MustCompile(`\beval\s*\(`),
			message: "call to eval(); executing dynamic code is unsafe",
		},
		{
			// Bare exec( only; method calls like Runtime.exec have
			// their own language-specific rule.
			re:      regexp.MustCompile(`(^|[^.\w])exec\s*\(`),
			message: "call to exec(); executing dynamic code is unsafe",
		},
		{
			re:      regexp.MustCompile(`\bnew\s+Function\s*\(`),
			message: "Function constructor executes dynamic code",
		},
		{
			re:      regexp.MustCompile(`setTimeout\s*\(\s*["']`),
			message: "setTimeout with a string argument executes dynamic code",
		},
		{
			re:      regexp.MustCompile(`\.innerHTML\s*=`),
			message: "assignment to innerHTML; unsanitized markup risks XSS",
		},
		{
			re:      regexp.MustCompile(`document\.write\s*\(`),
			message: "document.write with dynamic content risks XSS",
		},
		{
			re:      regexp.MustCompile(`pickle\.loads?\s*\(`),
			langs:   []string{catalog.LangPython},
			message: "pickle deserialization of untrusted data executes code",
		},
		{
			re:      regexp.MustCompile(`os\.system\s*\(`),
			langs:   []string{catalog.LangPython},
			message: "os.system invokes a shell; prefer subprocess with a list argument",
		},
		{
			re:      regexp.MustCompile(`shell\s*=\s*True`),
			langs:   []string{catalog.LangPython},
			message: "subprocess with shell=True invokes a shell",
		},
		{
			re:      regexp.MustCompile(`Runtime\.getRuntime\s*\(\s*\)\s*\.exec|Runtime\.exec`),
			langs:   []string{catalog.LangJava},
			message: "Runtime.exec runs external commands; validate the input",
		},
		{
			re:      regexp.MustCompile(`\bstrcpy\s*\(`),
			langs:   []string{catalog.LangCPP},
			message: "strcpy does not bound-check; use strncpy or std::string",
		},
		{
			re:      regexp.MustCompile(`\bgets\s*\(`),
			langs:   []string{catalog.LangCPP},
			message: "gets cannot limit input length; use fgets",
		},
		{
			re:      regexp.MustCompile(`\bsystem\s*\(`),
			langs:   []string{catalog.LangCPP},
			message: "system invokes a shell; validate the input",
		},
	}
}

// Scan reports one diagnostic per line per matching rule. Credential
// messages use the same wording as the text-shape pass, so when both
// fire on a line the aggregator keeps a single copy.
func (s *SecurityScanner) Scan(text string, lines []string, language string) []diag.Diagnostic {
	var out []diag.Diagnostic
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isBlank(line) || isCommentLine(trimmed) {
			continue
		}
		n := i + 1

		if m := s.credentialRe.FindStringSubmatch(line); m != nil {
			out = append(out, diag.AtLinef(diag.CategorySecurity, n,
				"hardcoded credential detected (%s)", strings.ToLower(m[1])))
		}
		if s.sqlConcatRe.MatchString(line) {
			out = append(out, diag.AtLine(diag.CategorySecurity, n,
				"SQL built by string concatenation; use parameterized queries"))
		}
		for _, rule := range s.rules {
			if !appliesTo(rule.langs, language) {
				continue
			}
			if rule.re.MatchString(line) {
				out = append(out, diag.AtLine(diag.CategorySecurity, n, rule.message))
			}
		}
	}
	return out
}
