package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nicolagi/orgdiff/internal/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := load(strings.NewReader(`
# My vocabulary.
status-keywords TODO NEXT WAITING DONE
similarity-threshold 0.85
similarity-metric levenshtein
context-lines 1
headers-only true
color never
s3-region eu-west-1
s3-profile work
`))
	require.Nil(t, err)
	assert.Equal(t, &C{
		StatusKeywords:      []string{"TODO", "NEXT", "WAITING", "DONE"},
		SimilarityThreshold: 0.85,
		SimilarityMetric:    diff.LevenshteinRatio,
		ContextLines:        1,
		HeadersOnly:         true,
		Color:               ColorNever,
		S3Region:            "eu-west-1",
		S3Profile:           "work",
	}, c)
	assert.True(t, c.Grammar().IsStatus("WAITING"))
	assert.False(t, c.Grammar().IsStatus("CANCELED"))
	assert.Len(t, c.DiffOptions(), 3)
}

func TestLoadEmptyIsDefault(t *testing.T) {
	c, err := load(strings.NewReader(""))
	require.Nil(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, diff.DefaultSimilarity, c.Similarity())
}

func TestLoadErrors(t *testing.T) {
	for _, text := range []string{
		"color",
		"unknown-key value",
		"similarity-threshold high",
		"similarity-threshold 1.5",
		"similarity-metric jaccard",
		"context-lines -1",
		"context-lines three",
		"headers-only maybe",
		"color sometimes",
	} {
		_, err := load(strings.NewReader(text + "\n"))
		assert.NotNil(t, err, text)
	}
}

func TestLoadMissingFile(t *testing.T) {
	base, err := ioutil.TempDir("", "orgdiff-config-")
	require.Nil(t, err)
	defer func() { _ = os.RemoveAll(base) }()

	c, err := Load(base)
	require.Nil(t, err)
	assert.Equal(t, base, c.Base())
	assert.Equal(t, Default().StatusKeywords, c.StatusKeywords)
}

func TestInitialize(t *testing.T) {
	dir, err := ioutil.TempDir("", "orgdiff-config-")
	require.Nil(t, err)
	defer func() { _ = os.RemoveAll(dir) }()
	base := filepath.Join(dir, "nested", "base")

	require.Nil(t, Initialize(base))
	c, err := Load(base)
	require.Nil(t, err)
	want := Default()
	want.base = base
	assert.Equal(t, want, c)

	// Refuses to overwrite.
	assert.NotNil(t, Initialize(base))
}
