package diff

import (
	"fmt"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/nicolagi/orgdiff/internal/outline"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Metric selects how similar two titles are.
type Metric int

const (
	// MatchingRatio is twice the number of characters in common (in an
	// optimal character diff) divided by the total number of characters.
	MatchingRatio Metric = iota

	// LevenshteinRatio is one minus the edit distance divided by the
	// length of the longer title.
	LevenshteinRatio
)

func (m Metric) String() string {
	switch m {
	case MatchingRatio:
		return "matching"
	case LevenshteinRatio:
		return "levenshtein"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// ParseMetric is the inverse of Metric.String.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "matching":
		return MatchingRatio, nil
	case "levenshtein":
		return LevenshteinRatio, nil
	default:
		return 0, fmt.Errorf("github.com/nicolagi/orgdiff/internal/diff.ParseMetric: unknown metric %q", s)
	}
}

// Similarity decides whether two sibling headings from the old and new
// document are the same section, possibly edited, or unrelated sections.
type Similarity struct {
	// Titles whose ratio exceeds the threshold are similar.
	Threshold float64
	Metric    Metric
}

// DefaultSimilarity pairs up "Item3" and "Item", or "testtitle" and
// "test title", but not "Item2" and "New name".
var DefaultSimilarity = Similarity{Threshold: 0.7, Metric: MatchingRatio}

// Ratio returns a number between 0 (nothing in common) and 1 (equal).
func (s Similarity) Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	switch s.Metric {
	case LevenshteinRatio:
		return levenshteinRatio(a, b)
	default:
		return matchingRatio(a, b)
	}
}

// Headings reports whether the two headings belong to the same section.
// Only titles are considered.
func (s Similarity) Headings(a, b *outline.Heading) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Title == b.Title {
		return true
	}
	return s.Ratio(a.Title, b.Title) > s.Threshold
}

// Nodes applies Headings to the headings of two nodes.
func (s Similarity) Nodes(a, b *outline.Node) bool {
	return s.Headings(a.Heading, b.Heading)
}

func matchingRatio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}
	dmp := diffmatchpatch.New()
	// Without a deadline the diff is minimal, which is what the ratio is
	// defined on.
	dmp.DiffTimeout = 0
	matching := 0
	for _, d := range dmp.DiffMain(a, b, false) {
		if d.Type == diffmatchpatch.DiffEqual {
			matching += utf8.RuneCountInString(d.Text)
		}
	}
	return 2 * float64(matching) / float64(total)
}

func levenshteinRatio(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(longest)
}
