package diff

import (
	"fmt"
	"io"
)

// Line operations, the first byte of each line of a line diff.
const (
	opCommon = ' '
	opDelete = '-'
	opInsert = '+'
)

// cursor is a pair of line offsets, or line counts, in the old and new text.
type cursor struct {
	old int
	new int
}

func (c *cursor) advance(op byte) {
	switch op {
	case opCommon:
		c.old++
		c.new++
	case opDelete:
		c.old++
	case opInsert:
		c.new++
	}
}

// hunk is a run of changes with the common lines around them.
// See https://www.gnu.org/software/diffutils/manual/html_node/Hunks.html.
type hunk struct {
	start cursor
	size  cursor
	lines []string

	// Common lines added since the last change.
	trailing int

	context int
}

// newHunk starts a hunk at the given offsets, preceded by the leading
// context lines.
func newHunk(at cursor, leading []string, context int) *hunk {
	n := len(leading)
	return &hunk{
		start:   cursor{old: at.old - n, new: at.new - n},
		size:    cursor{old: n, new: n},
		lines:   leading,
		context: context,
	}
}

func (h *hunk) add(op byte, line string) {
	h.lines = append(h.lines, line)
	h.size.advance(op)
	if op == opCommon {
		h.trailing++
	} else {
		h.trailing = 0
	}
}

// full reports whether the next change, if any, can no longer share
// context lines with this hunk.
func (h *hunk) full() bool {
	return h.trailing > 2*h.context
}

// trim removes the common lines past the trailing context and returns them.
func (h *hunk) trim() []string {
	extra := h.trailing - h.context
	if extra <= 0 {
		return nil
	}
	cut := len(h.lines) - extra
	dropped := h.lines[cut:]
	h.lines = h.lines[:cut]
	h.size.old -= extra
	h.size.new -= extra
	h.trailing = h.context
	return dropped
}

// An empty range is located by the line before it, hence "-0,0" for
// insertions at the start of a file.
func formatRange(offset, count int) string {
	switch count {
	case 0:
		return fmt.Sprintf("%d,0", offset)
	case 1:
		return fmt.Sprintf("%d", offset+1)
	default:
		return fmt.Sprintf("%d,%d", offset+1, count)
	}
}

func (h *hunk) writeTo(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "@@ -%s +%s @@\n", formatRange(h.start.old, h.size.old), formatRange(h.start.new, h.size.new)); err != nil {
		return err
	}
	for _, line := range h.lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// window keeps the most recent common lines seen outside of a hunk, which
// become the leading context of the next one.
type window struct {
	lines []string
	size  int
}

func (w *window) push(line string) {
	if w.size == 0 {
		return
	}
	if len(w.lines) == w.size {
		w.lines = append(w.lines[:0], w.lines[1:]...)
	}
	w.lines = append(w.lines, line)
}

func (w *window) drain() []string {
	lines := w.lines
	w.lines = nil
	return lines
}
