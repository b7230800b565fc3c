package diag

import "strings"

// Set accumulates diagnostics in detection order. Duplicate messages are
// dropped keeping the first occurrence, and blank messages are never
// stored. A finalized set is never empty: Finalize substitutes the
// sentinel when no pass contributed anything.
type Set struct {
	items []Diagnostic
	seen  map[string]bool
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{seen: make(map[string]bool)}
}

// Add appends d unless its message is blank or already present.
// It reports whether the diagnostic was stored.
func (s *Set) Add(d Diagnostic) bool {
	msg := strings.TrimSpace(d.Message)
	if msg == "" {
		return false
	}
	if s.seen[d.Message] {
		return false
	}
	s.seen[d.Message] = true
	s.items = append(s.items, d)
	return true
}

// Append adds each diagnostic in order through Add.
func (s *Set) Append(ds ...Diagnostic) {
	for _, d := range ds {
		s.Add(d)
	}
}

// Len returns the number of stored diagnostics.
func (s *Set) Len() int {
	return len(s.items)
}

// Empty reports whether no diagnostics have been stored.
func (s *Set) Empty() bool {
	return len(s.items) == 0
}

// Items returns the stored diagnostics in insertion order. The returned
// slice is the set's backing storage; callers must not mutate it.
func (s *Set) Items() []Diagnostic {
	return s.items
}

// Messages returns just the message strings, in order.
func (s *Set) Messages() []string {
	out := make([]string, len(s.items))
	for i, d := range s.items {
		out[i] = d.Message
	}
	return out
}

// ByCategory returns the stored diagnostics with the given category,
// preserving insertion order.
func (s *Set) ByCategory(c Category) []Diagnostic {
	var out []Diagnostic
	for _, d := range s.items {
		if d.Category == c {
			out = append(out, d)
		}
	}
	return out
}

// Finalize applies the sentinel contract: an empty set becomes the
// one-element "no issues" set. Returns the receiver for chaining.
func (s *Set) Finalize() *Set {
	if len(s.items) == 0 {
		s.Add(NoIssues())
	}
	return s
}

// IsClean reports whether the set holds exactly the sentinel, meaning
// analysis ran and found nothing.
func (s *Set) IsClean() bool {
	return len(s.items) == 1 && s.items[0].IsSentinel()
}
