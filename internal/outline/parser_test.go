package outline

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heading(depth int, title string) *Heading {
	return &Heading{Depth: depth, Title: title}
}

func TestParseLines(t *testing.T) {
	t.Run("top-level comments only", func(t *testing.T) {
		got, err := ParseLines(nil, []string{"Top-level comments"})
		require.Nil(t, err)
		want := &Node{Body: "Top-level comments"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})
	t.Run("nested headers", func(t *testing.T) {
		got, err := ParseLines(nil, []string{
			"Top-level comments",
			"* Item1",
			"** Item2",
		})
		require.Nil(t, err)
		want := &Node{
			Body: "Top-level comments",
			Children: []*Node{
				{
					Heading: heading(1, "Item1"),
					Children: []*Node{
						{Heading: heading(2, "Item2")},
					},
				},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})
	t.Run("exit nested headers", func(t *testing.T) {
		got, err := ParseLines(nil, []string{
			"Top-level comments",
			"* Item1",
			"** Item2",
			"* Item3",
		})
		require.Nil(t, err)
		want := &Node{
			Body: "Top-level comments",
			Children: []*Node{
				{
					Heading: heading(1, "Item1"),
					Children: []*Node{
						{Heading: heading(2, "Item2")},
					},
				},
				{Heading: heading(1, "Item3")},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})
	t.Run("skipped levels attach to the nearest shallower heading", func(t *testing.T) {
		got, err := ParseLines(nil, []string{
			"* A",
			"*** C",
			"** B",
			"* D",
		})
		require.Nil(t, err)
		want := &Node{
			Children: []*Node{
				{
					Heading: heading(1, "A"),
					Children: []*Node{
						{Heading: heading(3, "C")},
						{Heading: heading(2, "B")},
					},
				},
				{Heading: heading(1, "D")},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})
}

func TestParseProperties(t *testing.T) {
	t.Run("last write wins, first position kept", func(t *testing.T) {
		got, err := ParseLines(nil, []string{
			"* Item",
			"  :PROPERTIES:",
			"  :ID:       123",
			"  :CATEGORY: work",
			"  :ID:       456",
			"  :EMPTY:",
			"  :END:",
			"Body after the drawer",
		})
		require.Nil(t, err)
		require.Len(t, got.Children, 1)
		item := got.Children[0]
		assert.Equal(t, []Property{
			{Key: "ID", Value: "456"},
			{Key: "CATEGORY", Value: "work"},
			{Key: "EMPTY", Value: ""},
		}, item.Properties)
		assert.Equal(t, "Body after the drawer", item.Body)
		value, ok := item.Property("CATEGORY")
		assert.True(t, ok)
		assert.Equal(t, "work", value)
		_, ok = item.Property("MISSING")
		assert.False(t, ok)
	})
	t.Run("malformed property line", func(t *testing.T) {
		_, err := ParseLines(nil, []string{
			"* Item",
			":PROPERTIES:",
			"this is not a property",
			":END:",
		})
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, 3, perr.Line)
		assert.Equal(t, "this is not a property", perr.Content)
	})
	t.Run("drawer not closed at end of input", func(t *testing.T) {
		_, err := ParseLines(nil, []string{
			"* Item",
			"** Nested",
			"  :PROPERTIES:",
			"  :ID: 1",
		})
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, 3, perr.Line)
		assert.Equal(t, "  :PROPERTIES:", perr.Content)
		assert.Equal(t, `github.com/nicolagi/orgdiff/internal/outline: line 3: properties block missing :END:: "  :PROPERTIES:"`, err.Error())
	})
	t.Run("drawer in the preamble not closed at end of input", func(t *testing.T) {
		_, err := Parse(nil, strings.NewReader("Preamble\n:PROPERTIES:\n:ID: 1\n"))
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, 2, perr.Line)
		assert.Equal(t, ":PROPERTIES:\n", perr.Content)
	})
	t.Run("drawer not closed before next heading", func(t *testing.T) {
		_, err := ParseLines(nil, []string{
			"* Item",
			":PROPERTIES:",
			":ID: 1",
			"* Next",
		})
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, 4, perr.Line)
		assert.Equal(t, "* Next", perr.Content)
	})
	t.Run("marker lines outside a drawer are plain text", func(t *testing.T) {
		got, err := ParseLines(nil, []string{
			"* Item",
			":END:",
			":KEY: value",
		})
		require.Nil(t, err)
		assert.Nil(t, got.Children[0].Properties)
		assert.Equal(t, ":END::KEY: value", got.Children[0].Body)
	})
}

func TestParseSchedule(t *testing.T) {
	got, err := ParseLines(nil, []string{
		"* TODO Item",
		"SCHEDULED: <2020-01-01 Wed> DEADLINE: <2020-01-05 Sun>",
		"* TODO Other",
		"  DEADLINE: <2020-02-01 Sat>",
		"  DEADLINE: <2020-02-02 Sun>",
		"  SCHEDULED: [2020-01-20 Mon]",
		"* Marker without timestamp",
		"DEADLINE: soon",
	})
	require.Nil(t, err)
	require.Len(t, got.Children, 3)
	assert.Equal(t, "<2020-01-01 Wed>", got.Children[0].Scheduled)
	assert.Equal(t, "<2020-01-05 Sun>", got.Children[0].Deadline)
	assert.Equal(t, "[2020-01-20 Mon]", got.Children[1].Scheduled)
	assert.Equal(t, "<2020-02-02 Sun>", got.Children[1].Deadline)
	assert.Equal(t, "", got.Children[2].Deadline)
	assert.Equal(t, "", got.Children[2].Body)
}

func TestParseKeepsLineTerminators(t *testing.T) {
	input := "Intro\n* TODO A :x:\nbody line\n\n** B\n* C\nlast line without newline"
	got, err := Parse(nil, strings.NewReader(input))
	require.Nil(t, err)
	assert.Equal(t, "Intro\n", got.Body)
	require.Len(t, got.Children, 2)
	a := got.Children[0]
	assert.Equal(t, &Heading{Depth: 1, Title: "A", Status: "TODO", Tags: []string{"x"}}, a.Heading)
	assert.Equal(t, "body line\n\n", a.Body)
	require.Len(t, a.Children, 1)
	assert.Equal(t, "B", a.Children[0].Title())
	assert.Equal(t, "last line without newline", got.Children[1].Body)
	assert.Equal(t, 3, got.Count())
}

func TestNodeEqual(t *testing.T) {
	parse := func(lines ...string) *Node {
		t.Helper()
		node, err := ParseLines(nil, lines)
		require.Nil(t, err)
		return node
	}
	a := parse("text", "* A", ":PROPERTIES:", ":K: v", ":END:", "** B", "body")
	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(parse("text", "* A", ":PROPERTIES:", ":K: v", ":END:", "** B", "body")))
	assert.False(t, a.Equal(parse("text", "* A", ":PROPERTIES:", ":K: w", ":END:", "** B", "body")))
	assert.False(t, a.Equal(parse("text", "* A", "** B", "body")))
	assert.False(t, a.Equal(parse("text", "* A", ":PROPERTIES:", ":K: v", ":END:", "** B", "other body")))
	assert.False(t, a.Equal(parse("text", "* A", ":PROPERTIES:", ":K: v", ":END:", "** C", "body")))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Node)(nil).Equal(nil))
}
