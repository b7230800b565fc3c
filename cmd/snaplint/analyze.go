package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/snaplint/snaplint/internal/analyzer"
	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/debug"
	"github.com/snaplint/snaplint/internal/diag"
	snaperrors "github.com/snaplint/snaplint/internal/errors"
	"github.com/snaplint/snaplint/internal/report"
)

// stdinPath is the pseudo-path meaning "read the snippet from stdin".
const stdinPath = "-"

// target is one input to analyze: a file path, or stdin content read up
// front so parallel workers never contend for the stream.
type target struct {
	path    string
	content string // populated only for stdin
	isStdin bool
}

// collectTargets expands the positional arguments into the concrete
// inputs to analyze. Directories are walked recursively with the
// configured include/exclude globs; "-" means stdin. No arguments means
// the project root.
func collectTargets(args []string, cfg *config.Config) ([]target, error) {
	if len(args) == 0 {
		args = []string{cfg.Project.Root}
	}

	var targets []target
	for _, arg := range args {
		if arg == stdinPath {
			content, err := io.ReadAll(os.Stdin)
			if err != nil {
				return nil, snaperrors.NewFileError("read", "stdin", err)
			}
			targets = append(targets, target{path: "<stdin>", content: string(content), isStdin: true})
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, snaperrors.NewFileError("stat", arg, err)
		}
		if !info.IsDir() {
			targets = append(targets, target{path: arg})
			continue
		}

		files, err := walkDirectory(arg, cfg)
		if err != nil {
			return nil, err
		}
		targets = append(targets, files...)
	}
	return targets, nil
}

// walkDirectory gathers analyzable files under root. With no include
// globs configured, any file whose extension maps to a supported
// language qualifies; exclude globs always apply.
func walkDirectory(root string, cfg *config.Config) ([]target, error) {
	var targets []target

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			debug.LogAnalysis("skipping unreadable entry %s: %v\n", path, err)
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			for _, pattern := range cfg.Exclude {
				if matched, _ := doublestar.Match(pattern, rel+"/"); matched {
					return filepath.SkipDir
				}
			}
			return nil
		}

		for _, pattern := range cfg.Exclude {
			if matched, _ := doublestar.Match(pattern, rel); matched {
				return nil
			}
		}

		if len(cfg.Include) > 0 {
			included := false
			for _, pattern := range cfg.Include {
				if matched, _ := doublestar.Match(pattern, rel); matched {
					included = true
					break
				}
			}
			if !included {
				return nil
			}
		} else if languageForExtension(path) == "" {
			return nil
		}

		targets = append(targets, target{path: path})
		return nil
	})
	if err != nil {
		return nil, snaperrors.NewFileError("walk", root, err)
	}
	return targets, nil
}

// resolveLanguage picks the declared language for a target: explicit
// flag first, then file extension, then the configured default, then
// content classification.
func resolveLanguage(engine *analyzer.Analyzer, cfg *config.Config, t target, flagLang, content string) string {
	if flagLang != "" {
		return normalizeLanguage(flagLang)
	}
	if !t.isStdin {
		if lang := languageForExtension(t.path); lang != "" {
			return lang
		}
	}
	if cfg.Analysis.DefaultLanguage != "" {
		return normalizeLanguage(cfg.Analysis.DefaultLanguage)
	}
	return engine.ClassifyLanguage(content)
}

// readTarget loads a target's content, enforcing the input ceiling.
func readTarget(t target, cfg *config.Config) (string, error) {
	if t.isStdin {
		if len(t.content) > cfg.Analysis.MaxInputChars {
			return "", snaperrors.NewFileTooLargeError(t.path, len(t.content), cfg.Analysis.MaxInputChars)
		}
		return t.content, nil
	}

	info, err := os.Stat(t.path)
	if err != nil {
		return "", snaperrors.NewFileError("stat", t.path, err)
	}
	if info.Size() > int64(cfg.Analysis.MaxInputChars) {
		return "", snaperrors.NewFileTooLargeError(t.path, int(info.Size()), cfg.Analysis.MaxInputChars)
	}

	content, err := os.ReadFile(t.path)
	if err != nil {
		return "", snaperrors.NewFileError("read", t.path, err)
	}
	return string(content), nil
}

// runAnalyze implements the analyze command.
func runAnalyze(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	format := c.String("format")
	if !report.ValidFormat(format) {
		return fmt.Errorf("unknown format %q (expected text, markdown, or json)", format)
	}

	targets, err := collectTargets(c.Args().Slice(), cfg)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no analyzable files found (supported: .py .js .jsx .mjs .java .c .cc .cpp .cxx .h .hpp, or configure include globs)")
	}

	engine := analyzer.New(cfg.Analysis)
	flagLang := c.String("lang")

	type outcome struct {
		path     string
		language string
		set      *diag.Set
		err      error
	}

	jobs := c.Int("jobs")
	if jobs < 1 {
		jobs = 1
	}

	results := make([]outcome, len(targets))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			content, err := readTarget(t, cfg)
			if err != nil {
				results[i] = outcome{path: t.path, err: err}
				return nil
			}
			lang := resolveLanguage(engine, cfg, t, flagLang, content)
			results[i] = outcome{path: t.path, language: lang, set: engine.Analyze(content, lang)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rep := report.New()
	var failures []error
	for _, res := range results {
		if res.err != nil {
			failures = append(failures, res.err)
			continue
		}
		rep.AddFile(res.path, res.language, res.set)
	}
	rep.Finish()

	formatter := report.NewFormatter(report.FormatterOptions{
		Format:    format,
		ShowClean: c.Bool("show-clean"),
		RootDir:   cfg.Project.Root,
	})
	fmt.Fprint(c.App.Writer, formatter.Format(rep))

	for _, ferr := range failures {
		fmt.Fprintf(c.App.ErrWriter, "Warning: %v\n", ferr)
	}

	if c.Bool("strict") && rep.HasIssues() {
		return cli.Exit("", 1)
	}
	if len(failures) == len(targets) {
		return snaperrors.NewMultiError(failures)
	}
	return nil
}

// runClassify implements the classify command.
func runClassify(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	targets, err := collectTargets(c.Args().Slice(), cfg)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no inputs to classify")
	}

	engine := analyzer.New(cfg.Analysis)
	showScores := c.Bool("scores")

	var failures []error
	for _, t := range targets {
		content, err := readTarget(t, cfg)
		if err != nil {
			failures = append(failures, err)
			fmt.Fprintf(c.App.ErrWriter, "Warning: %v\n", err)
			continue
		}

		language := engine.ClassifyLanguage(content)
		fmt.Fprintf(c.App.Writer, "%s: %s\n", t.path, language)

		if showScores {
			scores := engine.Scores(content)
			for _, name := range []string{"Python", "JavaScript", "Java", "C++"} {
				fmt.Fprintf(c.App.Writer, "  %-12s %d\n", name, scores[name])
			}
		}
	}

	if len(failures) == len(targets) {
		return snaperrors.NewMultiError(failures)
	}
	return nil
}
