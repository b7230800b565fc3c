package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/snaplint/snaplint/internal/advisor"
	"github.com/snaplint/snaplint/internal/analyzer"
	snaperrors "github.com/snaplint/snaplint/internal/errors"
)

// runReview implements the review command: the analysis findings
// presented as a reviewer's prose, with the simulated thinking pause
// unless --no-delay is set.
func runReview(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if c.Bool("no-delay") {
		cfg.Advisor.Enabled = false
	}

	targets, err := collectTargets(c.Args().Slice(), cfg)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no inputs to review")
	}

	// Ctrl-C during the thinking pause should still print the review.
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine := analyzer.New(cfg.Analysis)
	reviewer := advisor.New(engine, cfg.Advisor)
	flagLang := c.String("lang")

	var failures []error
	for i, t := range targets {
		content, err := readTarget(t, cfg)
		if err != nil {
			failures = append(failures, err)
			fmt.Fprintf(c.App.ErrWriter, "Warning: %v\n", err)
			continue
		}

		lang := resolveLanguage(engine, cfg, t, flagLang, content)
		if i > 0 {
			fmt.Fprintln(c.App.Writer)
		}
		if len(targets) > 1 {
			fmt.Fprintf(c.App.Writer, "# %s\n\n", t.path)
		}
		fmt.Fprint(c.App.Writer, reviewer.Review(ctx, content, lang))
	}

	if len(failures) == len(targets) {
		return snaperrors.NewMultiError(failures)
	}
	return nil
}
