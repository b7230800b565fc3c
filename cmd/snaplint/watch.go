package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/snaplint/snaplint/internal/analyzer"
	"github.com/snaplint/snaplint/internal/report"
	"github.com/snaplint/snaplint/internal/watch"
)

// runWatch implements the watch command: re-analyze files as they
// change and print a fresh report per file.
func runWatch(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	format := c.String("format")
	if !report.ValidFormat(format) {
		return fmt.Errorf("unknown format %q (expected text, markdown, or json)", format)
	}

	root := c.Args().First()
	if root == "" {
		root = cfg.Project.Root
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch target must be a directory, got %s", root)
	}

	engine := analyzer.New(cfg.Analysis)
	formatter := report.NewFormatter(report.FormatterOptions{
		Format:    format,
		ShowClean: true,
		RootDir:   root,
	})

	watcher, err := watch.New(cfg, root)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	watcher.SetCallbacks(
		func(path string) {
			content, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(c.App.ErrWriter, "Warning: cannot read %s: %v\n", path, err)
				return
			}

			lang := languageForExtension(path)
			if lang == "" {
				lang = engine.ClassifyLanguage(string(content))
			}

			rep := report.New()
			rep.AddFile(path, lang, engine.Analyze(string(content), lang))
			rep.Finish()

			fmt.Fprintf(c.App.Writer, "--- %s\n", time.Now().Format("15:04:05"))
			fmt.Fprint(c.App.Writer, formatter.Format(rep))
		},
		func(path string) {
			fmt.Fprintf(c.App.Writer, "--- removed %s\n", path)
		},
	)

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Watching %s (Ctrl-C to stop)\n", root)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	return watcher.Stop()
}
