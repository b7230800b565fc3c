// Package config loads and validates snaplint configuration. Project
// configuration lives in .snaplint.kdl (preferred) or snaplint.toml;
// command-line flags override file values at the CLI layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the full tool configuration.
type Config struct {
	Version  int      `toml:"version"`
	Project  Project  `toml:"project"`
	Analysis Analysis `toml:"analysis"`
	Advisor  Advisor  `toml:"advisor"`
	Watch    Watch    `toml:"watch"`
	Include  []string `toml:"include"`
	Exclude  []string `toml:"exclude"`
}

// Project identifies the analyzed project.
type Project struct {
	Root string `toml:"root"`
	Name string `toml:"name"`
}

// Analysis carries the numeric knobs of the analysis engine. These exist
// as configuration so projects can tune the heuristics, not because the
// defaults are derived from anything.
type Analysis struct {
	// MaxInputChars is the input ceiling enforced by the outer layers
	// before text reaches the engine.
	MaxInputChars int `toml:"max_input_chars"`

	// Plain-text gate: input shorter than PlainTextMaxChars matching
	// fewer than PlainTextMinIndicators code indicators is prose.
	PlainTextMaxChars      int `toml:"plain_text_max_chars"`
	PlainTextMinIndicators int `toml:"plain_text_min_indicators"`

	MaxLineLength     int `toml:"max_line_length"`
	LongFunctionLines int `toml:"long_function_lines"`

	// CommentFloorLines is the body size above which a total absence of
	// comment lines is flagged.
	CommentFloorLines int `toml:"comment_floor_lines"`

	// Duplicate-line detection: trimmed lines longer than
	// DuplicateMinLength occurring more than DuplicateMaxRepeats times.
	DuplicateMinLength  int `toml:"duplicate_min_length"`
	DuplicateMaxRepeats int `toml:"duplicate_max_repeats"`

	// Java structural presence thresholds, in characters of input.
	JavaClassMinChars int `toml:"java_class_min_chars"`
	JavaMainMinChars  int `toml:"java_main_min_chars"`

	// DefaultLanguage is used by the CLI when a file's language cannot
	// be inferred from its extension. Empty means classify the content.
	DefaultLanguage string `toml:"default_language"`
}

// Advisor configures the simulated-reviewer layer.
type Advisor struct {
	Enabled    bool `toml:"enabled"`
	DelayMinMs int  `toml:"delay_min_ms"`
	DelayMaxMs int  `toml:"delay_max_ms"`
}

// Watch configures watch mode.
type Watch struct {
	DebounceMs int `toml:"debounce_ms"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		Version: 1,
		Analysis: Analysis{
			MaxInputChars:          100000,
			PlainTextMaxChars:      100,
			PlainTextMinIndicators: 2,
			MaxLineLength:          120,
			LongFunctionLines:      50,
			CommentFloorLines:      20,
			DuplicateMinLength:     10,
			DuplicateMaxRepeats:    2,
			JavaClassMinChars:      100,
			JavaMainMinChars:       200,
		},
		Advisor: Advisor{
			Enabled:    true,
			DelayMinMs: 400,
			DelayMaxMs: 1200,
		},
		Watch: Watch{
			DebounceMs: 200,
		},
		Include: []string{},
		Exclude: []string{
			"**/node_modules/**",
			"**/vendor/**",
			"**/dist/**",
			"**/build/**",
			"**/__pycache__/**",
			"**/*.min.js",
		},
	}
}

// Validate checks the configuration for values the engine cannot work with.
func (c *Config) Validate() error {
	a := c.Analysis
	if a.MaxInputChars <= 0 {
		return fmt.Errorf("analysis.max_input_chars must be positive, got %d", a.MaxInputChars)
	}
	if a.PlainTextMinIndicators < 1 {
		return fmt.Errorf("analysis.plain_text_min_indicators must be at least 1, got %d", a.PlainTextMinIndicators)
	}
	if a.MaxLineLength <= 0 {
		return fmt.Errorf("analysis.max_line_length must be positive, got %d", a.MaxLineLength)
	}
	if a.LongFunctionLines <= 0 {
		return fmt.Errorf("analysis.long_function_lines must be positive, got %d", a.LongFunctionLines)
	}
	if a.JavaMainMinChars < a.JavaClassMinChars {
		return fmt.Errorf("analysis.java_main_min_chars (%d) must not be below java_class_min_chars (%d)",
			a.JavaMainMinChars, a.JavaClassMinChars)
	}
	if c.Advisor.DelayMaxMs < c.Advisor.DelayMinMs {
		return fmt.Errorf("advisor.delay_max_ms (%d) must not be below delay_min_ms (%d)",
			c.Advisor.DelayMaxMs, c.Advisor.DelayMinMs)
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMs)
	}
	return nil
}

// Load resolves configuration for projectRoot: .snaplint.kdl first,
// snaplint.toml second, built-in defaults when neither exists.
func Load(projectRoot string) (*Config, error) {
	cfg, err := LoadKDL(projectRoot)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		return cfg, cfg.Validate()
	}

	cfg, err = LoadTOML(projectRoot)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		return cfg, cfg.Validate()
	}

	cfg = Default()
	root, err := filepath.Abs(projectRoot)
	if err == nil {
		cfg.Project.Root = root
	} else {
		cfg.Project.Root = projectRoot
	}
	return cfg, nil
}

// SampleKDL is the annotated starter config written by "snaplint config init".
const SampleKDL = `// snaplint project configuration
project {
    name "my-project"
    root "."
}

analysis {
    max_input_chars 100000
    plain_text_max_chars 100
    plain_text_min_indicators 2
    max_line_length 120
    long_function_lines 50
    comment_floor_lines 20
    duplicate_min_length 10
    duplicate_max_repeats 2
    java_class_min_chars 100
    java_main_min_chars 200
}

advisor {
    enabled true
    delay_min_ms 400
    delay_max_ms 1200
}

watch {
    debounce_ms 200
}

exclude "**/node_modules/**" "**/vendor/**" "**/dist/**" "**/build/**"
`

// WriteSample writes the starter configuration file, refusing to
// overwrite an existing one.
func WriteSample(projectRoot string) (string, error) {
	path := filepath.Join(projectRoot, ".snaplint.kdl")
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.WriteFile(path, []byte(SampleKDL), 0644); err != nil {
		return path, fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}
