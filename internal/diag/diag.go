// Package diag defines the diagnostic model shared by every analysis pass:
// categorized findings, ordered de-duplicating sets, and the sentinel that
// stands in for an empty result.
package diag

import "fmt"

// Category tags a diagnostic with the pass family that produced it.
type Category string

const (
	CategorySyntax      Category = "syntax"
	CategorySecurity    Category = "security"
	CategoryPerformance Category = "performance"
	CategoryQuality     Category = "quality"
	CategoryLogic       Category = "logic"
	CategoryGeneric     Category = "generic"
)

// Categories lists every category in analysis pass order. Renderers that
// group findings iterate this so their sections match the order the
// passes ran in.
var Categories = []Category{
	CategorySyntax,
	CategorySecurity,
	CategoryPerformance,
	CategoryQuality,
	CategoryLogic,
	CategoryGeneric,
}

// NoIssuesMessage is the canonical clean signal. Consumers must check for
// this sentinel rather than for an empty set, since an empty set is
// indistinguishable from "analysis did not run".
const NoIssuesMessage = "No issues detected. The code looks clean under heuristic analysis."

// Diagnostic is one reported finding. Line is 0 when the finding has no
// line anchor; when it does, the same number is embedded in Message as a
// "Line N:" prefix, and the message text is the compatibility contract.
type Diagnostic struct {
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"`
	Category Category `json:"category"`
}

// New creates a diagnostic without a line anchor.
func New(category Category, message string) Diagnostic {
	return Diagnostic{Message: message, Category: category}
}

// Newf creates a diagnostic without a line anchor from a format string.
func Newf(category Category, format string, args ...any) Diagnostic {
	return Diagnostic{Message: fmt.Sprintf(format, args...), Category: category}
}

// AtLine creates a diagnostic anchored to a 1-based line number. The line
// is embedded in the message text so downstream consumers that only see
// messages still get the location.
func AtLine(category Category, line int, message string) Diagnostic {
	return Diagnostic{
		Message:  fmt.Sprintf("Line %d: %s", line, message),
		Line:     line,
		Category: category,
	}
}

// AtLinef is AtLine with a format string.
func AtLinef(category Category, line int, format string, args ...any) Diagnostic {
	return AtLine(category, line, fmt.Sprintf(format, args...))
}

// NoIssues returns the sentinel diagnostic.
func NoIssues() Diagnostic {
	return Diagnostic{Message: NoIssuesMessage, Category: CategoryGeneric}
}

// IsSentinel reports whether d is the clean-result sentinel.
func (d Diagnostic) IsSentinel() bool {
	return d.Message == NoIssuesMessage
}
