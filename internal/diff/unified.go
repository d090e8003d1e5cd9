package diff

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andreyvit/diff"
)

// DefaultContextLines is the number of unchanged lines shown around each
// change in a unified diff, as in diff -u.
const DefaultContextLines = 3

// Unified wraps UnifiedTo to return a string instead of writing it to a
// writer. The trailing newline is dropped. The result is empty if a and b
// are equal.
func Unified(a, b string, fromLabel, toLabel string, contextLines int) string {
	var buf bytes.Buffer
	// Writing to a bytes.Buffer does not fail.
	_ = UnifiedTo(&buf, a, b, fromLabel, toLabel, contextLines)
	return strings.TrimSuffix(buf.String(), "\n")
}

// UnifiedTo writes a unified diff of the lines of a and b to the passed
// writer, with a "--- fromLabel" and "+++ toLabel" header. Nothing is
// written if a and b are equal.
func UnifiedTo(w io.Writer, a, b string, fromLabel, toLabel string, contextLines int) error {
	if a == b {
		return nil
	}
	if contextLines < 0 {
		contextLines = 0
	}
	lines := diff.LineDiffAsLines(a, b)
	if !hasChanges(lines) {
		return nil
	}
	if _, err := fmt.Fprintf(w, "--- %s\n+++ %s\n", fromLabel, toLabel); err != nil {
		return err
	}
	return unified(w, lines, contextLines)
}

func hasChanges(lines []string) bool {
	for _, line := range lines {
		if line[0] != opCommon {
			return true
		}
	}
	return false
}

func unified(w io.Writer, lines []string, context int) error {
	var (
		at      cursor
		current *hunk
		leading = &window{size: context}
	)
	for _, line := range lines {
		op := line[0]
		switch {
		case current != nil:
			current.add(op, line)
			if current.full() {
				for _, common := range current.trim() {
					leading.push(common)
				}
				if err := current.writeTo(w); err != nil {
					return err
				}
				current = nil
			}
		case op == opCommon:
			leading.push(line)
		default:
			current = newHunk(at, leading.drain(), context)
			current.add(op, line)
		}
		at.advance(op)
	}
	if current == nil {
		return nil
	}
	current.trim()
	return current.writeTo(w)
}
