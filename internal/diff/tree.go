package diff

import (
	"strings"

	"github.com/nicolagi/orgdiff/internal/align"
	"github.com/nicolagi/orgdiff/internal/outline"
	log "github.com/sirupsen/logrus"
)

type diffDocumentsOptions struct {
	headersOnly  bool
	similarity   Similarity
	contextLines int
	fromLabel    string
	toLabel      string
}

// DiffDocumentsOption follows the functional options pattern to pass options to DiffDocuments.
type DiffDocumentsOption func(*diffDocumentsOptions)

// HeadersOnly leaves body text out of the comparison.
func HeadersOnly(value bool) DiffDocumentsOption {
	return func(opts *diffDocumentsOptions) {
		opts.headersOnly = value
	}
}

func WithSimilarity(s Similarity) DiffDocumentsOption {
	return func(opts *diffDocumentsOptions) {
		opts.similarity = s
	}
}

// ContextLines sets the number of context lines in unified body diffs.
func ContextLines(n int) DiffDocumentsOption {
	return func(opts *diffDocumentsOptions) {
		opts.contextLines = n
	}
}

// Labels sets the file names in the header of unified body diffs.
func Labels(from, to string) DiffDocumentsOption {
	return func(opts *diffDocumentsOptions) {
		opts.fromLabel = from
		opts.toLabel = to
	}
}

type differ struct {
	opts    diffDocumentsOptions
	records []Record
}

// DiffDocuments produces the edit script turning the old document into
// the new one. Records come in document order: for each section, first
// its summary, then heading fields, properties, body, schedule and
// deadline, then its subsections.
func DiffDocuments(old, new *outline.Node, options ...DiffDocumentsOption) []Record {
	opts := diffDocumentsOptions{
		similarity:   DefaultSimilarity,
		contextLines: DefaultContextLines,
		fromLabel:    "old",
		toLabel:      "new",
	}
	for _, opt := range options {
		opt(&opts)
	}
	d := &differ{opts: opts}
	if !opts.headersOnly {
		d.body(old.Body, new.Body)
	}
	d.children(old.Children, new.Children)
	log.WithFields(log.Fields{
		"records":     len(d.records),
		"headersOnly": opts.headersOnly,
	}).Debug("Diffed documents")
	return d.records
}

func (d *differ) emit(records ...Record) {
	d.records = append(d.records, records...)
}

func (d *differ) body(old, new string) {
	if old == new {
		return
	}
	text := Unified(old, new, d.opts.fromLabel, d.opts.toLabel, d.opts.contextLines)
	if text != "" {
		d.emit(unifiedBlock(text))
	}
}

func (d *differ) children(old, new []*outline.Node) {
	for _, p := range align.Align(old, new, d.opts.similarity.Nodes) {
		d.node(p)
	}
}

func (d *differ) node(p align.Pairing[*outline.Node]) {
	switch {
	case !p.HasOld:
		// The whole subtree is new; its descendants are not listed.
		d.emit(inserted(headingText(p.New)))
	case !p.HasNew:
		d.emit(deleted(headingText(p.Old)))
	case p.Old.Equal(p.New):
		d.emit(comment(MarkerComment, headingText(p.New)))
	default:
		d.updated(p.Old, p.New)
	}
}

func (d *differ) updated(old, new *outline.Node) {
	d.emit(comment(MarkerUpdated, headingText(new)))
	d.heading(old.Heading, new.Heading)
	d.properties(old.Properties, new.Properties)
	if !d.opts.headersOnly {
		d.body(old.Body, new.Body)
	}
	d.labeled("scheduled", Optional(old.Scheduled), Optional(new.Scheduled))
	d.labeled("deadline", Optional(old.Deadline), Optional(new.Deadline))
	d.children(old.Children, new.Children)
}

func (d *differ) heading(old, new *outline.Heading) {
	if old == nil || new == nil {
		return
	}
	d.emit(diffValues(Scalar(stars(old.Depth)), Scalar(stars(new.Depth)))...)
	d.emit(diffValues(Optional(old.Status), Optional(new.Status))...)
	d.emit(diffValues(Optional(old.Priority), Optional(new.Priority))...)
	d.emit(diffValues(Scalar(old.Title), Scalar(new.Title))...)
	d.emit(diffValues(Strings(old.Tags), Strings(new.Tags))...)
}

func stars(depth int) string {
	return strings.Repeat("*", depth)
}

func sameKey(a, b outline.Property) bool {
	return a.Key == b.Key
}

func (d *differ) properties(old, new []outline.Property) {
	for _, p := range align.Align(old, new, sameKey) {
		a, b := Absent(), Absent()
		if p.HasOld {
			a = Scalar(propertyText(p.Old))
		}
		if p.HasNew {
			b = Scalar(propertyText(p.New))
		}
		d.emit(diffValues(a, b)...)
	}
}

// labeled emits the diff of a single field preceded by a comment naming
// it, if the field changed.
func (d *differ) labeled(label string, old, new Value) {
	records := diffValues(old, new)
	if len(records) == 0 {
		return
	}
	d.emit(comment(MarkerComment, label))
	d.emit(records...)
}

func headingText(node *outline.Node) string {
	if node.Heading == nil {
		return ""
	}
	return node.Heading.String()
}

func propertyText(p outline.Property) string {
	if p.Value == "" {
		return ":" + p.Key + ":"
	}
	return ":" + p.Key + ": " + p.Value
}
