package advisor

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/snaplint/snaplint/internal/analyzer"
	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

func quietAdvisor() *Advisor {
	return New(analyzer.NewDefault(), config.Advisor{Enabled: false})
}

// TestReviewCleanInput tests the review of code with no findings.
func TestReviewCleanInput(t *testing.T) {
	adv := quietAdvisor()

	out := adv.Review(context.Background(), "import os\n\n# entry point\nprint(os.getcwd())\n", "Python")

	assert.Contains(t, out, "## Code Review")
	assert.Contains(t, out, "your Python code")
	assert.Contains(t, out, "nothing worth flagging")
	assert.NotContains(t, out, "###")
}

// TestReviewSecurityFirst tests that security findings lead the review.
func TestReviewSecurityFirst(t *testing.T) {
	adv := quietAdvisor()

	out := adv.Review(context.Background(), "result = eval(payload)\n", "")

	assert.Contains(t, out, "### Security")
	assert.Contains(t, out, "call to eval()")
	assert.Contains(t, out, "should be addressed before anything else")
	assert.Contains(t, out, "before this ships")
}

// TestReviewSyntaxIntro tests the syntax-led framing.
func TestReviewSyntaxIntro(t *testing.T) {
	adv := quietAdvisor()

	out := adv.Review(context.Background(), "if x > 1\n    print(x)\n", "Python")

	assert.Contains(t, out, "1 finding")
	assert.Contains(t, out, "Start with the syntax problems")
	assert.Contains(t, out, "### Syntax")
	assert.NotContains(t, out, "### Security")
}

// TestReviewQualityClosing tests the maintainability sign-off.
func TestReviewQualityClosing(t *testing.T) {
	adv := quietAdvisor()

	out := adv.Review(context.Background(), "# TODO: tidy this up\nvalue = compute()\n", "")

	assert.Contains(t, out, "### Code quality")
	assert.Contains(t, out, "keeping the code maintainable")
	assert.Contains(t, out, "None of these block anything")
}

// TestComposeSectionOrder tests that sections follow pass order.
func TestComposeSectionOrder(t *testing.T) {
	set := diag.NewSet()
	set.Append(
		diag.New(diag.CategoryLogic, "condition is always true"),
		diag.New(diag.CategorySyntax, "Missing 1 closing brace(s)"),
	)
	set.Finalize()

	out := Compose("JavaScript", set)

	syntaxAt := strings.Index(out, "### Syntax")
	logicAt := strings.Index(out, "### Logic")
	assert.Greater(t, syntaxAt, -1)
	assert.Greater(t, logicAt, -1)
	assert.Less(t, syntaxAt, logicAt)
}

// TestComposeWithoutLanguage tests framing when no language is known.
func TestComposeWithoutLanguage(t *testing.T) {
	out := Compose("", diag.NewSet().Finalize())
	assert.Contains(t, out, "your code")
	assert.NotContains(t, out, "your  code")
}

// TestReviewCancelledContextSkipsDelay tests that cancellation returns
// the finished review without waiting out the delay window.
func TestReviewCancelledContextSkipsDelay(t *testing.T) {
	adv := New(analyzer.NewDefault(), config.Advisor{
		Enabled:    true,
		DelayMinMs: 5000,
		DelayMaxMs: 5000,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	out := adv.Review(ctx, "result = eval(payload)\n", "")
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 2*time.Second)
	assert.Contains(t, out, "## Code Review")
	assert.Contains(t, out, "### Security")
}

// TestWaitDisabled tests that a disabled advisor adds no latency.
func TestWaitDisabled(t *testing.T) {
	adv := New(analyzer.NewDefault(), config.Advisor{
		Enabled:    false,
		DelayMinMs: 5000,
		DelayMaxMs: 5000,
	})

	start := time.Now()
	adv.wait(context.Background())
	assert.Less(t, time.Since(start), time.Second)
}
