package outline

import "fmt"

// ParseError reports a malformed line inside a properties block, or a
// properties block left open. It is fatal to parsing the document it
// occurs in.
type ParseError struct {
	// Line is the 1-based number of the offending line. A block left open
	// until end of input is reported at its opening line.
	Line    int
	Content string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("github.com/nicolagi/orgdiff/internal/outline: line %d: %s: %q", e.Line, e.Reason, e.Content)
}
