// Package advisor presents analysis results in the voice of a code
// reviewer. It wraps the analyzer, renders the diagnostic set as a short
// markdown review, and waits a randomized interval before returning so
// interactive callers see a believable thinking pause. The engine itself
// stays synchronous and pure; all latency lives here.
package advisor

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/snaplint/snaplint/internal/analyzer"
	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

// sectionTitles maps diagnostic categories to review section headers.
var sectionTitles = map[diag.Category]string{
	diag.CategorySyntax:      "Syntax",
	diag.CategorySecurity:    "Security",
	diag.CategoryPerformance: "Performance",
	diag.CategoryQuality:     "Code quality",
	diag.CategoryLogic:       "Logic",
	diag.CategoryGeneric:     "General",
}

// Advisor wraps an analyzer with reviewer framing and simulated latency.
type Advisor struct {
	engine *analyzer.Analyzer
	cfg    config.Advisor
}

// New creates an advisor around the given engine.
func New(engine *analyzer.Analyzer, cfg config.Advisor) *Advisor {
	return &Advisor{engine: engine, cfg: cfg}
}

// Review analyzes text and returns the findings as a markdown review.
// The review is composed before the simulated delay starts, so when ctx
// is cancelled the finished review comes back immediately with the rest
// of the delay skipped.
func (a *Advisor) Review(ctx context.Context, text, declaredLanguage string) string {
	set := a.engine.Analyze(text, declaredLanguage)
	review := Compose(declaredLanguage, set)
	a.wait(ctx)
	return review
}

// wait sleeps for a random interval inside the configured window,
// returning early if ctx is done.
func (a *Advisor) wait(ctx context.Context) {
	if !a.cfg.Enabled || a.cfg.DelayMaxMs <= 0 {
		return
	}
	delayMs := a.cfg.DelayMinMs
	if spread := a.cfg.DelayMaxMs - a.cfg.DelayMinMs; spread > 0 {
		delayMs += rand.Intn(spread + 1)
	}
	if delayMs <= 0 {
		return
	}

	timer := time.NewTimer(time.Duration(delayMs) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// Compose renders a diagnostic set as a markdown review. The language is
// only used for framing and may be empty.
func Compose(language string, set *diag.Set) string {
	var sb strings.Builder
	sb.WriteString("## Code Review\n\n")
	sb.WriteString(intro(language, set))
	sb.WriteString("\n\n")

	if set.IsClean() {
		return sb.String()
	}

	for _, cat := range diag.Categories {
		ds := set.ByCategory(cat)
		if len(ds) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("### %s\n\n", sectionTitles[cat]))
		for _, d := range ds {
			sb.WriteString(fmt.Sprintf("- %s\n", d.Message))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(closing(set))
	sb.WriteString("\n")
	return sb.String()
}

// intro builds the opening line, keyed to the mix of findings.
func intro(language string, set *diag.Set) string {
	subject := "code"
	if language != "" {
		subject = language + " code"
	}

	if set.IsClean() {
		return fmt.Sprintf("I looked over your %s and found nothing worth flagging. It reads clean under every check I ran.", subject)
	}

	n := set.Len()
	finding := "findings"
	if n == 1 {
		finding = "finding"
	}
	opening := fmt.Sprintf("I reviewed your %s and have %d %s.", subject, n, finding)

	switch {
	case len(set.ByCategory(diag.CategorySecurity)) > 0:
		return opening + " The security items below should be addressed before anything else."
	case len(set.ByCategory(diag.CategorySyntax)) > 0:
		return opening + " Start with the syntax problems; the rest can wait until the code runs."
	default:
		return opening + " They are mostly about keeping the code maintainable."
	}
}

// closing builds the sign-off line.
func closing(set *diag.Set) string {
	switch {
	case len(set.ByCategory(diag.CategorySecurity)) > 0:
		return "Please resolve the security items before this ships."
	case len(set.ByCategory(diag.CategorySyntax)) > 0:
		return "Once it parses cleanly, it is worth a second pass for the remaining notes."
	default:
		return "None of these block anything, but they will save the next reader some time."
	}
}
