package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Printer writes edit scripts, one record per line, optionally colored
// for a terminal.
type Printer struct {
	w io.Writer

	insert  *color.Color
	delete  *color.Color
	updated *color.Color
	comment *color.Color
	hunk    *color.Color
	header  *color.Color
}

func NewPrinter(w io.Writer, colored bool) *Printer {
	p := &Printer{
		w:       w,
		insert:  color.New(color.FgGreen),
		delete:  color.New(color.FgRed),
		updated: color.New(color.FgYellow, color.Bold),
		comment: color.New(color.FgBlue),
		hunk:    color.New(color.FgCyan),
		header:  color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.insert, p.delete, p.updated, p.comment, p.hunk, p.header} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) Print(records []Record) error {
	for _, r := range records {
		if err := p.PrintRecord(r); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) PrintRecord(r Record) error {
	if r.Marker == MarkerNone {
		return p.printUnified(r.Text)
	}
	_, err := p.colorFor(r).Fprintln(p.w, r.String())
	return err
}

func (p *Printer) colorFor(r Record) *color.Color {
	switch r.Marker {
	case MarkerInsert:
		return p.insert
	case MarkerDelete:
		return p.delete
	case MarkerUpdated:
		return p.updated
	default:
		return p.comment
	}
}

func (p *Printer) printUnified(text string) error {
	for _, line := range strings.Split(text, "\n") {
		var c *color.Color
		switch {
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			c = p.header
		case strings.HasPrefix(line, "@@"):
			c = p.hunk
		case strings.HasPrefix(line, "+"):
			c = p.insert
		case strings.HasPrefix(line, "-"):
			c = p.delete
		}
		var err error
		if c == nil {
			_, err = fmt.Fprintln(p.w, line)
		} else {
			_, err = c.Fprintln(p.w, line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
