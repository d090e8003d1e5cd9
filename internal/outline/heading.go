package outline

import (
	"regexp"
	"strings"
)

var (
	// Group 1: stars. Group 2: status, priority and title. Group 3
	// (optional): the tag cluster, e.g., ":work:urgent:".
	headingRE = regexp.MustCompile(`^(\*+)\s+(.*?)(?:\s+(:(?:[^:\s]+:)+))?\s*$`)

	priorityRE = regexp.MustCompile(`^\[#[^\]\s]\](?:\s+|$)`)
)

// Heading is the title line of an outline node.
type Heading struct {
	Depth int
	Title string

	// Priority is the cookie including brackets, e.g., "[#A]". Empty if absent.
	Priority string

	// Status is a keyword from the grammar's vocabulary, e.g., "TODO". Empty if absent.
	Status string

	Tags []string
}

// String renders the heading the way it would appear in a document.
func (h Heading) String() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("*", h.Depth))
	if h.Status != "" {
		b.WriteString(" ")
		b.WriteString(h.Status)
	}
	if h.Priority != "" {
		b.WriteString(" ")
		b.WriteString(h.Priority)
	}
	b.WriteString(" ")
	b.WriteString(h.Title)
	if len(h.Tags) > 0 {
		b.WriteString("\t:")
		b.WriteString(strings.Join(h.Tags, ":"))
		b.WriteString(":")
	}
	return b.String()
}

// Equal reports whether the two headings have the same components.
func (h Heading) Equal(other Heading) bool {
	if h.Depth != other.Depth || h.Title != other.Title || h.Priority != other.Priority || h.Status != other.Status {
		return false
	}
	if len(h.Tags) != len(other.Tags) {
		return false
	}
	for i := range h.Tags {
		if h.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return true
}

// Grammar recognizes heading lines. The only knob is the set of status
// keywords, which differs between users.
type Grammar struct {
	statuses map[string]struct{}
}

// DefaultGrammar knows about the two status keywords every outline has.
var DefaultGrammar = NewGrammar("TODO", "DONE")

func NewGrammar(statusKeywords ...string) *Grammar {
	g := &Grammar{statuses: make(map[string]struct{}, len(statusKeywords))}
	for _, k := range statusKeywords {
		g.statuses[k] = struct{}{}
	}
	return g
}

// IsStatus reports whether word is in the status vocabulary.
func (g *Grammar) IsStatus(word string) bool {
	_, ok := g.statuses[word]
	return ok
}

// ParseHeading parses line as a heading. The second return value is false
// if the line is not a heading.
func (g *Grammar) ParseHeading(line string) (Heading, bool) {
	line = strings.TrimRight(line, "\r\n")
	m := headingRE.FindStringSubmatch(line)
	if m == nil {
		return Heading{}, false
	}
	h := Heading{Depth: len(m[1])}
	text := m[2]
	if fields := strings.Fields(text); len(fields) > 0 && g.IsStatus(fields[0]) {
		h.Status = fields[0]
		text = strings.TrimSpace(text)[len(fields[0]):]
		text = strings.TrimLeft(text, " \t")
	}
	if loc := priorityRE.FindStringIndex(text); loc != nil {
		h.Priority = strings.TrimSpace(text[:loc[1]])
		text = text[loc[1]:]
	}
	h.Title = strings.TrimSpace(text)
	if m[3] != "" {
		h.Tags = strings.Split(m[3][1:len(m[3])-1], ":")
	}
	return h, true
}

// ParseHeading parses line using DefaultGrammar.
func ParseHeading(line string) (Heading, bool) {
	return DefaultGrammar.ParseHeading(line)
}
