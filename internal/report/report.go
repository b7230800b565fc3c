// Package report renders analysis results for terminals, markdown
// consumers, and tooling that wants structured JSON.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/snaplint/snaplint/internal/diag"
	"github.com/snaplint/snaplint/pkg/pathutil"
)

// Output format names accepted by FormatterOptions.Format.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ValidFormat reports whether name is a supported output format.
func ValidFormat(name string) bool {
	switch name {
	case FormatText, FormatMarkdown, FormatJSON:
		return true
	}
	return false
}

// FileResult is one analyzed input with its findings.
type FileResult struct {
	Path        string            `json:"path"`
	Language    string            `json:"language"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
	Clean       bool              `json:"clean"`
}

// Summary aggregates counts across all results in a report. Clean files
// carry the sentinel entry, which never counts as an issue.
type Summary struct {
	Files      int            `json:"files"`
	CleanFiles int            `json:"clean_files"`
	Issues     int            `json:"issues"`
	ByCategory map[string]int `json:"by_category,omitempty"`
}

// Report collects per-file results plus roll-up counts.
type Report struct {
	Results []FileResult `json:"results"`
	Summary Summary      `json:"summary"`
}

// New returns an empty report ready for AddFile calls.
func New() *Report {
	return &Report{}
}

// AddFile records one analyzed input under the given display path.
func (r *Report) AddFile(path, language string, set *diag.Set) {
	result := FileResult{
		Path:     path,
		Language: language,
		Clean:    set.IsClean(),
	}
	result.Diagnostics = append(result.Diagnostics, set.Items()...)
	r.Results = append(r.Results, result)
}

// Finish computes the summary from the recorded results. Call it after
// the last AddFile and before formatting.
func (r *Report) Finish() {
	s := Summary{Files: len(r.Results), ByCategory: make(map[string]int)}
	for _, res := range r.Results {
		if res.Clean {
			s.CleanFiles++
			continue
		}
		for _, d := range res.Diagnostics {
			s.Issues++
			s.ByCategory[string(d.Category)]++
		}
	}
	if len(s.ByCategory) == 0 {
		s.ByCategory = nil
	}
	r.Summary = s
}

// HasIssues reports whether any result carries findings beyond the
// clean sentinel. CLI strict mode keys its exit code off this.
func (r *Report) HasIssues() bool {
	for _, res := range r.Results {
		if !res.Clean && len(res.Diagnostics) > 0 {
			return true
		}
	}
	return false
}

// FormatterOptions controls how a report is rendered.
type FormatterOptions struct {
	Format    string // "text", "markdown", or "json"
	ShowClean bool   // list clean files individually instead of only counting them
	RootDir   string // when set, paths are displayed relative to this directory
}

// Formatter renders reports in the configured format.
type Formatter struct {
	options FormatterOptions
}

// NewFormatter creates a formatter with the given options.
func NewFormatter(options FormatterOptions) *Formatter {
	if options.Format == "" {
		options.Format = FormatText
	}
	return &Formatter{options: options}
}

// Format renders the report as a string in the configured format.
func (f *Formatter) Format(r *Report) string {
	switch f.options.Format {
	case FormatJSON:
		return f.formatJSON(r)
	case FormatMarkdown:
		return f.formatMarkdown(r)
	default:
		return f.formatText(r)
	}
}

// formatText renders a terminal-friendly report grouped by category.
func (f *Formatter) formatText(r *Report) string {
	var sb strings.Builder

	for _, res := range r.Results {
		if res.Clean && !f.options.ShowClean {
			continue
		}

		sb.WriteString(f.displayPath(res.Path))
		if res.Language != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", res.Language))
		}
		sb.WriteString("\n")

		if res.Clean {
			sb.WriteString("  clean\n\n")
			continue
		}

		groups := groupByCategory(res.Diagnostics)
		for _, cat := range diag.Categories {
			ds := groups[cat]
			if len(ds) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("  %s:\n", cat))
			for _, d := range ds {
				sb.WriteString(fmt.Sprintf("    - %s\n", d.Message))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(f.summaryLine(r.Summary))
	sb.WriteString("\n")
	return sb.String()
}

// formatMarkdown renders the report with one section per file, matching
// the presentation the review output uses.
func (f *Formatter) formatMarkdown(r *Report) string {
	var sb strings.Builder
	sb.WriteString("# Analysis Report\n\n")

	for _, res := range r.Results {
		if res.Clean && !f.options.ShowClean {
			continue
		}

		sb.WriteString(fmt.Sprintf("## %s", f.displayPath(res.Path)))
		if res.Language != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", res.Language))
		}
		sb.WriteString("\n\n")

		if res.Clean {
			sb.WriteString("_No issues detected._\n\n")
			continue
		}

		groups := groupByCategory(res.Diagnostics)
		for _, cat := range diag.Categories {
			ds := groups[cat]
			if len(ds) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("**%s**\n\n", cat))
			for _, d := range ds {
				sb.WriteString(fmt.Sprintf("- %s\n", d.Message))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- Files: %d\n", r.Summary.Files))
	sb.WriteString(fmt.Sprintf("- Clean: %d\n", r.Summary.CleanFiles))
	sb.WriteString(fmt.Sprintf("- Issues: %d\n", r.Summary.Issues))
	for _, cat := range sortedCategories(r.Summary.ByCategory) {
		sb.WriteString(fmt.Sprintf("  - %s: %d\n", cat, r.Summary.ByCategory[cat]))
	}
	return sb.String()
}

// formatJSON renders the full report structure for tooling.
func (f *Formatter) formatJSON(r *Report) string {
	out := *r
	if f.options.RootDir != "" {
		out.Results = make([]FileResult, len(r.Results))
		copy(out.Results, r.Results)
		for i := range out.Results {
			out.Results[i].Path = f.displayPath(out.Results[i].Path)
		}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

// summaryLine builds the single-line roll-up used by the text format.
func (f *Formatter) summaryLine(s Summary) string {
	word := "files"
	if s.Files == 1 {
		word = "file"
	}
	return fmt.Sprintf("%d %s checked, %d clean, %d issues", s.Files, word, s.CleanFiles, s.Issues)
}

// displayPath converts an absolute path for display when a root is set.
func (f *Formatter) displayPath(path string) string {
	if f.options.RootDir == "" {
		return path
	}
	return pathutil.ToRelative(path, f.options.RootDir)
}

// groupByCategory buckets diagnostics without disturbing their order
// inside each bucket.
func groupByCategory(ds []diag.Diagnostic) map[diag.Category][]diag.Diagnostic {
	groups := make(map[diag.Category][]diag.Diagnostic)
	for _, d := range ds {
		groups[d.Category] = append(groups[d.Category], d)
	}
	return groups
}

// sortedCategories returns map keys in stable alphabetical order.
func sortedCategories(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
