package diff

import (
	"testing"

	"github.com/nicolagi/orgdiff/internal/outline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	matching := Similarity{Metric: MatchingRatio}
	levenshtein := Similarity{Metric: LevenshteinRatio}
	for _, c := range []struct {
		a, b        string
		matching    float64
		levenshtein float64
	}{
		{"", "", 1, 1},
		{"same", "same", 1, 1},
		{"abc", "", 0, 0},
		{"Item3", "Item", 8.0 / 9, 0.8},
		{"testtitle", "test title", 18.0 / 19, 0.9},
		{"abcd", "wxyz", 0, 0},
	} {
		assert.InDelta(t, c.matching, matching.Ratio(c.a, c.b), 1e-9, "%q %q", c.a, c.b)
		assert.InDelta(t, c.matching, matching.Ratio(c.b, c.a), 1e-9, "%q %q", c.b, c.a)
		assert.InDelta(t, c.levenshtein, levenshtein.Ratio(c.a, c.b), 1e-9, "%q %q", c.a, c.b)
	}
}

func TestHeadings(t *testing.T) {
	heading := func(line string) *outline.Heading {
		h, ok := outline.ParseHeading(line)
		require.True(t, ok)
		return &h
	}
	s := DefaultSimilarity
	assert.True(t, s.Headings(heading("* Item3"), heading("* Item")))
	assert.True(t, s.Headings(heading("* testtitle"), heading("** test title")))
	assert.False(t, s.Headings(heading("* testtitle"), heading("* totally different title")))
	assert.False(t, s.Headings(heading("** Item2"), heading("** New name")))
	// Only titles count.
	assert.True(t, s.Headings(heading("* TODO [#A] x :a:"), heading("** DONE x")))
	// The root has no heading and is only similar to itself.
	assert.True(t, s.Headings(nil, nil))
	assert.False(t, s.Headings(nil, heading("* x")))
	// Equal titles are similar however strict the threshold.
	assert.True(t, Similarity{Threshold: 1}.Headings(heading("* x"), heading("* x")))
}

func TestParseMetric(t *testing.T) {
	for _, m := range []Metric{MatchingRatio, LevenshteinRatio} {
		got, err := ParseMetric(m.String())
		assert.Nil(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMetric("jaccard")
	assert.NotNil(t, err)
}
