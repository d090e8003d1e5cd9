package outline

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	deadlineMarker   = "DEADLINE:"
	scheduledMarker  = "SCHEDULED:"
	propertiesOpen   = ":PROPERTIES:"
	propertiesClose  = ":END:"
	unclosedProperty = "properties block missing " + propertiesClose
)

var (
	deadlineRE  = regexp.MustCompile(`DEADLINE:\s*(<[^>]*>|\[[^\]]*\])`)
	scheduledRE = regexp.MustCompile(`SCHEDULED:\s*(<[^>]*>|\[[^\]]*\])`)
	propertyRE  = regexp.MustCompile(`^\s*:([^:\s]+):(?:\s+(.*?))?\s*$`)
)

// frame is the in-progress state of one open heading.
type frame struct {
	heading      *Heading
	depth        int
	body         strings.Builder
	properties   []Property
	index        map[string]int
	inProperties bool
	children     []*Node

	// Where the open properties block started.
	propertiesLine   int
	propertiesOpener string
	scheduled    string
	deadline     string
}

func newFrame(h *Heading) *frame {
	f := &frame{heading: h, index: make(map[string]int)}
	if h != nil {
		f.depth = h.Depth
	}
	return f
}

func (f *frame) setProperty(key, value string) {
	if i, ok := f.index[key]; ok {
		f.properties[i].Value = value
		return
	}
	f.index[key] = len(f.properties)
	f.properties = append(f.properties, Property{Key: key, Value: value})
}

func (f *frame) node() *Node {
	return &Node{
		Heading:    f.heading,
		Properties: f.properties,
		Body:       f.body.String(),
		Children:   f.children,
		Scheduled:  f.scheduled,
		Deadline:   f.deadline,
	}
}

// Parser turns a stream of lines into a tree of nodes. Lines must be fed
// in document order; a Parser is good for one document only.
type Parser struct {
	grammar *Grammar

	// Frame 0 is the document root; the last frame is the deepest open
	// heading.
	frames []*frame

	lineno int
}

func NewParser(g *Grammar) *Parser {
	if g == nil {
		g = DefaultGrammar
	}
	return &Parser{
		grammar: g,
		frames:  []*frame{newFrame(nil)},
	}
}

func (p *Parser) top() *frame {
	return p.frames[len(p.frames)-1]
}

// pop closes the deepest frame and attaches it to its parent. An open
// properties block is reported at the given line.
func (p *Parser) pop(lineno int, line string) error {
	f := p.top()
	if f.inProperties {
		return &ParseError{Line: lineno, Content: line, Reason: unclosedProperty}
	}
	p.frames = p.frames[:len(p.frames)-1]
	parent := p.top()
	parent.children = append(parent.children, f.node())
	return nil
}

// Consume feeds the next line, including its terminator if it has one.
func (p *Parser) Consume(line string) error {
	p.lineno++
	if h, ok := p.grammar.ParseHeading(line); ok {
		for h.Depth <= p.top().depth {
			if err := p.pop(p.lineno, line); err != nil {
				return err
			}
		}
		p.frames = append(p.frames, newFrame(&h))
		return nil
	}
	f := p.top()
	hasDeadline := strings.Contains(line, deadlineMarker)
	hasScheduled := strings.Contains(line, scheduledMarker)
	switch {
	case hasDeadline || hasScheduled:
		if m := deadlineRE.FindStringSubmatch(line); hasDeadline && m != nil {
			f.deadline = m[1]
		}
		if m := scheduledRE.FindStringSubmatch(line); hasScheduled && m != nil {
			f.scheduled = m[1]
		}
	case strings.TrimSpace(line) == propertiesOpen:
		f.inProperties = true
		f.propertiesLine = p.lineno
		f.propertiesOpener = line
	case f.inProperties:
		if strings.Contains(line, propertiesClose) {
			f.inProperties = false
			break
		}
		m := propertyRE.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
		if m == nil {
			return &ParseError{Line: p.lineno, Content: line, Reason: "malformed property"}
		}
		f.setProperty(m[1], m[2])
	default:
		f.body.WriteString(line)
	}
	return nil
}

// Flush closes all open headings and returns the document root. The
// parser must not be used afterwards.
func (p *Parser) Flush() (*Node, error) {
	// At end of input, an unclosed block is reported where it was opened.
	for len(p.frames) > 1 {
		f := p.top()
		if err := p.pop(f.propertiesLine, f.propertiesOpener); err != nil {
			return nil, err
		}
	}
	if f := p.top(); f.inProperties {
		return nil, &ParseError{Line: f.propertiesLine, Content: f.propertiesOpener, Reason: unclosedProperty}
	}
	root := p.top().node()
	log.WithFields(log.Fields{
		"lines":    p.lineno,
		"headings": root.Count(),
	}).Debug("Parsed outline")
	return root, nil
}

// ParseLines parses a whole document given as a sequence of lines.
func ParseLines(g *Grammar, lines []string) (*Node, error) {
	p := NewParser(g)
	for _, line := range lines {
		if err := p.Consume(line); err != nil {
			return nil, err
		}
	}
	return p.Flush()
}

// Parse reads and parses a whole document. Line terminators are kept in
// node bodies.
func Parse(g *Grammar, r io.Reader) (*Node, error) {
	p := NewParser(g)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if cerr := p.Consume(line); cerr != nil {
				return nil, cerr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "github.com/nicolagi/orgdiff/internal/outline.Parse: line %d", p.lineno+1)
		}
	}
	return p.Flush()
}
