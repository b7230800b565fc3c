package scans

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/hbollon/go-edlib"
	"github.com/surgebase/porter2"

	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

// similarIdentThreshold is the JaroWinkler floor for calling two
// identifiers accidental variants of each other.
const similarIdentThreshold = 0.84

// maxTrackedIdents bounds the pairwise identifier comparison.
const maxTrackedIdents = 64

// lowInfoName couples a flagged identifier with its detection pattern.
type lowInfoName struct {
	name string
	re   *regexp.Regexp
}

// QualityScanner flags unresolved markers, duplicated lines, missing
// comments, and weak identifier naming.
type QualityScanner struct {
	cfg        config.Analysis
	markerRe   *regexp.Regexp
	assignRe   *regexp.Regexp
	declRe     *regexp.Regexp
	lowInfo    []lowInfoName
	commentSet []string
}

// NewQualityScanner builds the quality pass.
func NewQualityScanner(cfg config.Analysis) *QualityScanner {
	s := &QualityScanner{
		cfg:        cfg,
		markerRe:   regexp.MustCompile(`(?i)\b(TODO|FIXME|HACK)\b`),
		assignRe:   regexp.MustCompile(`^([A-Za-z_]\w{3,})\s*=[^=]`),
		declRe:     regexp.MustCompile(`\b(?:var|let|const|int|long|double|float|bool|boolean|char|String|auto)\s+([A-Za-z_]\w{3,})\b`),
		commentSet: []string{"//", "#", "/*"},
	}
	s.initializeLowInfoNames()
	return s
}

func (s *QualityScanner) initializeLowInfoNames() {
	names := []string{"temp", "tmp", "data", "foo", "bar", "obj", "thing", "stuff", "x", "val"}
	for _, name := range names {
		re := regexp.MustCompile(
			`\b(?:var|let|const|int|long|double|float|bool|boolean|char|String|auto)\s+` +
				name + `\b|\b` + name + `\s*=[^=]`)
		s.lowInfo = append(s.lowInfo, lowInfoName{name: name, re: re})
	}
}

// Scan runs the quality sub-passes in a fixed order: markers,
// duplicated lines, comment density, weak names, similar names.
func (s *QualityScanner) Scan(text string, lines []string, language string) []diag.Diagnostic {
	var out []diag.Diagnostic
	out = append(out, s.checkMarkers(lines)...)
	out = append(out, s.checkDuplicateLines(lines)...)
	out = append(out, s.checkCommentDensity(lines)...)
	out = append(out, s.checkLowInfoNames(lines)...)
	out = append(out, s.checkSimilarIdentifiers(lines)...)
	return out
}

func (s *QualityScanner) checkMarkers(lines []string) []diag.Diagnostic {
	var out []diag.Diagnostic
	for i, line := range lines {
		if m := s.markerRe.FindStringSubmatch(line); m != nil {
			out = append(out, diag.AtLinef(diag.CategoryQuality, i+1,
				"unresolved %s marker", strings.ToUpper(m[1])))
		}
	}
	return out
}

// checkDuplicateLines hashes trimmed line content and reports lines
// that recur past the configured repeat cap. The diagnostic is anchored
// at the first occurrence.
func (s *QualityScanner) checkDuplicateLines(lines []string) []diag.Diagnostic {
	type dupInfo struct {
		count     int
		firstLine int
		sample    string
	}
	seen := make(map[uint64]*dupInfo)
	var order []uint64

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= s.cfg.DuplicateMinLength {
			continue
		}
		key := xxhash.Sum64String(trimmed)
		info, ok := seen[key]
		if !ok {
			info = &dupInfo{firstLine: i + 1, sample: trimmed}
			seen[key] = info
			order = append(order, key)
		}
		info.count++
	}

	var out []diag.Diagnostic
	sort.Slice(order, func(a, b int) bool {
		return seen[order[a]].firstLine < seen[order[b]].firstLine
	})
	for _, key := range order {
		info := seen[key]
		if info.count > s.cfg.DuplicateMaxRepeats {
			out = append(out, diag.AtLinef(diag.CategoryQuality, info.firstLine,
				"line repeated %d times: %q", info.count, snippet(info.sample, 32)))
		}
	}
	return out
}

func (s *QualityScanner) checkCommentDensity(lines []string) []diag.Diagnostic {
	nonBlank := 0
	comments := 0
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		nonBlank++
		for _, marker := range s.commentSet {
			if strings.Contains(line, marker) {
				comments++
				break
			}
		}
	}
	if nonBlank > s.cfg.CommentFloorLines && comments == 0 {
		return []diag.Diagnostic{diag.Newf(diag.CategoryQuality,
			"no comments in %d lines of code", nonBlank)}
	}
	return nil
}

// checkLowInfoNames reports each weak identifier once, at its first
// declaration or assignment.
func (s *QualityScanner) checkLowInfoNames(lines []string) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, entry := range s.lowInfo {
		for i, line := range lines {
			if !entry.re.MatchString(line) {
				continue
			}
			out = append(out, diag.AtLinef(diag.CategoryQuality, i+1,
				"low-information identifier %q", entry.name))
			break
		}
	}
	return out
}

// checkSimilarIdentifiers stems assigned and declared names and flags
// pairs that reduce to the same stem while spelled differently, with a
// string-distance confirmation to keep unrelated stem collisions out.
func (s *QualityScanner) checkSimilarIdentifiers(lines []string) []diag.Diagnostic {
	var idents []string
	present := make(map[string]bool)

	collect := func(name string) {
		if name == "" || present[name] || len(idents) >= maxTrackedIdents {
			return
		}
		present[name] = true
		idents = append(idents, name)
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isCommentLine(trimmed) {
			continue
		}
		if m := s.assignRe.FindStringSubmatch(trimmed); m != nil {
			collect(m[1])
		}
		if m := s.declRe.FindStringSubmatch(trimmed); m != nil {
			collect(m[1])
		}
	}

	var out []diag.Diagnostic
	for i := 0; i < len(idents); i++ {
		for j := i + 1; j < len(idents); j++ {
			a, b := idents[i], idents[j]
			if porter2.Stem(strings.ToLower(a)) != porter2.Stem(strings.ToLower(b)) {
				continue
			}
			sim, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
			if err != nil || sim < similarIdentThreshold {
				continue
			}
			out = append(out, diag.Newf(diag.CategoryQuality,
				"identifiers %q and %q differ only slightly; possible accidental variants", a, b))
		}
	}
	return out
}

// snippet truncates s for embedding in a message.
func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
