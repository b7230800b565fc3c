// Package classify scores raw text against the language signal catalog
// and gates prose input away from the diagnostic pipeline.
package classify

import (
	"strings"

	"github.com/snaplint/snaplint/internal/catalog"
)

// Indentation bonus for indentation-sensitive profiles, applied when the
// fraction of non-empty lines starting with a tab or at least four
// spaces exceeds the threshold.
const (
	indentBonusThreshold = 0.2
	indentBonusScore     = 5
)

// Classifier scores text against every profile in the catalog.
type Classifier struct {
	catalog *catalog.Catalog
}

// NewClassifier creates a classifier over the given catalog.
func NewClassifier(cat *catalog.Catalog) *Classifier {
	return &Classifier{catalog: cat}
}

// Classify returns the best-matching language name, or catalog.Unknown
// when the maximum score is zero. Ties resolve to the earliest profile
// in catalog order; only a strictly higher score displaces the leader.
func (c *Classifier) Classify(text string) string {
	best := catalog.Unknown
	bestScore := 0
	for _, p := range c.catalog.Profiles() {
		if score := c.score(p, text); score > bestScore {
			bestScore = score
			best = p.Name
		}
	}
	if bestScore == 0 {
		return catalog.Unknown
	}
	return best
}

// Scores returns the per-language score map, for tooling and debug output.
func (c *Classifier) Scores(text string) map[string]int {
	scores := make(map[string]int, len(c.catalog.Profiles()))
	for _, p := range c.catalog.Profiles() {
		scores[p.Name] = c.score(p, text)
	}
	return scores
}

func (c *Classifier) score(p catalog.LanguageProfile, text string) int {
	score := 0
	for _, s := range p.Signals {
		score += s.Count(text) * s.Weight
	}
	if p.IndentationSensitive && indentedLineFraction(text) > indentBonusThreshold {
		score += indentBonusScore
	}
	return score
}

// indentedLineFraction computes the share of non-empty lines that start
// with a tab or at least four spaces.
func indentedLineFraction(text string) float64 {
	nonEmpty, indented := 0, 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "    ") {
			indented++
		}
	}
	if nonEmpty == 0 {
		return 0
	}
	return float64(indented) / float64(nonEmpty)
}

// Validate reports whether declared is consistent with the classified
// language. An unknown classification cannot contradict any declaration,
// so it validates. The result is advisory; callers turn a false into a
// warning, never a failure.
func (c *Classifier) Validate(text, declared string) bool {
	detected := c.Classify(text)
	if detected == catalog.Unknown {
		return true
	}
	return detected == declared
}
