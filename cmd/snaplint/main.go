package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/snaplint/snaplint/internal/catalog"
	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/debug"
	"github.com/snaplint/snaplint/internal/version"
)

// extensionLanguages maps file extensions to declared language names.
// Files with other extensions fall back to content classification.
var extensionLanguages = map[string]string{
	".py":   catalog.LangPython,
	".pyw":  catalog.LangPython,
	".js":   catalog.LangJavaScript,
	".jsx":  catalog.LangJavaScript,
	".mjs":  catalog.LangJavaScript,
	".cjs":  catalog.LangJavaScript,
	".java": catalog.LangJava,
	".c":    catalog.LangCPP,
	".cc":   catalog.LangCPP,
	".cpp":  catalog.LangCPP,
	".cxx":  catalog.LangCPP,
	".h":    catalog.LangCPP,
	".hpp":  catalog.LangCPP,
}

// languageForExtension returns the declared language for a path, or ""
// when the extension says nothing.
func languageForExtension(path string) string {
	return extensionLanguages[strings.ToLower(filepath.Ext(path))]
}

// normalizeLanguage maps user-supplied language names (any casing, plus
// common aliases) onto the canonical declared names. Unrecognized names
// pass through untouched; the engine degrades them to generic analysis.
func normalizeLanguage(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return ""
	case "python", "py":
		return catalog.LangPython
	case "javascript", "js":
		return catalog.LangJavaScript
	case "java":
		return catalog.LangJava
	case "c++", "cpp", "cxx", "c":
		return catalog.LangCPP
	case "other", "text", "plain":
		return catalog.LangOther
	}
	return name
}

// loadConfigWithOverrides loads project configuration and applies CLI
// flag overrides on top of it.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	root := c.String("root")
	if root == "" {
		root = "."
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", root, err)
	}

	if includeFlags := c.StringSlice("include"); len(includeFlags) > 0 {
		cfg.Include = includeFlags
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludeFlags...)
	}
	if cfg.Project.Root == "" {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path %q: %w", root, err)
		}
		cfg.Project.Root = absRoot
	}
	return cfg, nil
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			if msg := exitErr.Error(); msg != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
			}
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "snaplint",
		Usage:                  "Heuristic code analysis without parsing or executing anything",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory (config lookup and display paths)",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Analyze only files matching glob patterns (e.g. --include 'src/**/*.py')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Skip files matching glob patterns (e.g. --exclude '**/generated/**')",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging to stderr",
			},
			&cli.BoolFlag{
				Name:  "debug-log",
				Usage: "Enable debug logging to a timestamped file under the system temp directory",
			},
		},
		Before: func(c *cli.Context) error {
			switch {
			case c.Bool("debug-log"):
				debug.EnableDebug = "true"
				path, err := debug.InitDebugLogFile()
				if err != nil {
					return fmt.Errorf("failed to open debug log: %w", err)
				}
				fmt.Fprintf(c.App.ErrWriter, "Debug log: %s\n", path)
			case c.Bool("debug"):
				debug.EnableDebug = "true"
				debug.SetDebugOutput(os.Stderr)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			return debug.CloseDebugLog()
		},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Analyze files, directories, or stdin (-) for heuristic findings",
				ArgsUsage: "[paths...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "lang",
						Aliases: []string{"l"},
						Usage:   "Declared language: Python, JavaScript, Java, C++, Other (default: by extension, then content)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, markdown, or json",
						Value:   "text",
					},
					&cli.IntFlag{
						Name:    "jobs",
						Aliases: []string{"j"},
						Usage:   "Number of files analyzed in parallel",
						Value:   runtime.NumCPU(),
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Exit non-zero when any finding beyond the clean sentinel is reported",
					},
					&cli.BoolFlag{
						Name:  "show-clean",
						Usage: "List clean files individually instead of only counting them",
					},
				},
				Action: runAnalyze,
			},
			{
				Name:      "classify",
				Usage:     "Print the classified language for each input",
				ArgsUsage: "[paths...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "scores",
						Usage: "Show per-language signal scores",
					},
				},
				Action: runClassify,
			},
			{
				Name:      "review",
				Usage:     "Produce a prose code review of each input",
				ArgsUsage: "[paths...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "lang",
						Aliases: []string{"l"},
						Usage:   "Declared language (default: by extension, then content)",
					},
					&cli.BoolFlag{
						Name:  "no-delay",
						Usage: "Skip the simulated reviewer thinking pause",
					},
				},
				Action: runReview,
			},
			{
				Name:      "watch",
				Usage:     "Re-analyze files as they change",
				ArgsUsage: "[directory]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, markdown, or json",
						Value:   "text",
					},
				},
				Action: runWatch,
			},
			{
				Name:   "serve",
				Usage:  "Run the MCP stdio server exposing analyze_code and classify_language tools",
				Action: runServe,
			},
			{
				Name:  "config",
				Usage: "Manage project configuration",
				Subcommands: []*cli.Command{
					{
						Name:   "init",
						Usage:  "Write a starter .snaplint.kdl",
						Action: runConfigInit,
					},
					{
						Name:   "show",
						Usage:  "Print the effective configuration",
						Action: runConfigShow,
					},
					{
						Name:   "validate",
						Usage:  "Check the project configuration for invalid values",
						Action: runConfigValidate,
					},
				},
			},
			{
				Name:  "version",
				Usage: "Print detailed version information",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, version.FullInfo())
					return nil
				},
			},
		},
	}
}
