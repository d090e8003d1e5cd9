package diff

// Kind tells apart records that describe a change from those that only
// give context.
type Kind int

const (
	KindDiff Kind = iota
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindDiff:
		return "diff"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Markers used in records.
const (
	MarkerInsert  = "+"
	MarkerDelete  = "-"
	MarkerComment = "#"
	MarkerUpdated = "[updated]"

	// MarkerNone is used for unified diff blocks, which carry their own
	// per-line markers.
	MarkerNone = ""
)

// Record is one entry of an edit script.
type Record struct {
	Kind   Kind
	Marker string
	Text   string
}

func (r Record) String() string {
	if r.Marker == MarkerNone {
		return r.Text
	}
	return r.Marker + " " + r.Text
}

// IsChange reports whether the record describes a difference, as opposed
// to an unchanged section or a label.
func (r Record) IsChange() bool {
	return r.Kind == KindDiff || r.Marker == MarkerUpdated
}

func inserted(text string) Record {
	return Record{Kind: KindDiff, Marker: MarkerInsert, Text: text}
}

func deleted(text string) Record {
	return Record{Kind: KindDiff, Marker: MarkerDelete, Text: text}
}

func comment(marker, text string) Record {
	return Record{Kind: KindComment, Marker: marker, Text: text}
}

func unifiedBlock(text string) Record {
	return Record{Kind: KindDiff, Marker: MarkerNone, Text: text}
}

// HasChanges reports whether any of the records describes a difference.
func HasChanges(records []Record) bool {
	for _, r := range records {
		if r.IsChange() {
			return true
		}
	}
	return false
}
