package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL attempts to load configuration from a .snaplint.kdl file.
// A nil, nil return means no KDL config exists and the caller should
// fall through to the next source.
func LoadKDL(projectRoot string) (*Config, error) {
	kdlPath := filepath.Join(projectRoot, ".snaplint.kdl")

	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .snaplint.kdl: %v", err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, err
	}

	// Resolve the project root relative to the config file's directory.
	if cfg.Project.Root != "" && !filepath.IsAbs(cfg.Project.Root) {
		cfg.Project.Root = filepath.Clean(filepath.Join(projectRoot, cfg.Project.Root))
	}
	if cfg.Project.Root == "" {
		if abs, err := filepath.Abs(projectRoot); err == nil {
			cfg.Project.Root = abs
		} else {
			cfg.Project.Root = projectRoot
		}
	}

	return cfg, nil
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children {
				assignSimpleString(cn, "root", func(v string) { cfg.Project.Root = v })
				assignSimpleString(cn, "name", func(v string) { cfg.Project.Name = v })
			}
		case "analysis":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_input_chars":
					if v, ok := firstIntArg(cn); ok {
						cfg.Analysis.MaxInputChars = v
					}
				case "plain_text_max_chars":
					if v, ok := firstIntArg(cn); ok {
						cfg.Analysis.PlainTextMaxChars = v
					}
				case "plain_text_min_indicators":
					if v, ok := firstIntArg(cn); ok {
						cfg.Analysis.PlainTextMinIndicators = v
					}
				case "max_line_length":
					if v, ok := firstIntArg(cn); ok {
						cfg.Analysis.MaxLineLength = v
					}
				case "long_function_lines":
					if v, ok := firstIntArg(cn); ok {
						cfg.Analysis.LongFunctionLines = v
					}
				case "comment_floor_lines":
					if v, ok := firstIntArg(cn); ok {
						cfg.Analysis.CommentFloorLines = v
					}
				case "duplicate_min_length":
					if v, ok := firstIntArg(cn); ok {
						cfg.Analysis.DuplicateMinLength = v
					}
				case "duplicate_max_repeats":
					if v, ok := firstIntArg(cn); ok {
						cfg.Analysis.DuplicateMaxRepeats = v
					}
				case "java_class_min_chars":
					if v, ok := firstIntArg(cn); ok {
						cfg.Analysis.JavaClassMinChars = v
					}
				case "java_main_min_chars":
					if v, ok := firstIntArg(cn); ok {
						cfg.Analysis.JavaMainMinChars = v
					}
				case "default_language":
					if s, ok := firstStringArg(cn); ok {
						cfg.Analysis.DefaultLanguage = s
					}
				}
			}
		case "advisor":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Advisor.Enabled = b
					}
				case "delay_min_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Advisor.DelayMinMs = v
					}
				case "delay_max_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Advisor.DelayMaxMs = v
					}
				}
			}
		case "watch":
			for _, cn := range n.Children {
				if nodeName(cn) == "debounce_ms" {
					if v, ok := firstIntArg(cn); ok {
						cfg.Watch.DebounceMs = v
					}
				}
			}
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			// An explicit exclude block replaces the default exclusions.
			cfg.Exclude = collectStringArgs(n)
		}
	}

	return cfg, nil
}

// Helpers over the kdl-go document model.

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// Block format: exclude { "pattern" } puts strings in child nodes.
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
