package outline

// Property is one entry of a node's properties block.
type Property struct {
	Key   string
	Value string
}

// Node is a section of an outline document: a heading, the properties
// drawer, the text up to the next heading, and the nested sections. The
// document root has a nil Heading. Nodes are not modified after parsing.
type Node struct {
	Heading *Heading

	// Properties keep the order in which keys first appeared.
	Properties []Property

	// Body is the verbatim text content, line terminators included.
	Body string

	Children []*Node

	// Scheduled and Deadline hold the timestamp tokens, brackets included,
	// or the empty string if absent.
	Scheduled string
	Deadline  string
}

// Property returns the value for key and whether the key is present.
func (node *Node) Property(key string) (string, bool) {
	for _, p := range node.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Title is a shortcut for the heading title, or the empty string for
// the document root.
func (node *Node) Title() string {
	if node.Heading == nil {
		return ""
	}
	return node.Heading.Title
}

// Equal reports whether the two subtrees are structurally identical.
func (node *Node) Equal(other *Node) bool {
	if node == nil || other == nil {
		return node == other
	}
	if node == other {
		return true
	}
	if (node.Heading == nil) != (other.Heading == nil) {
		return false
	}
	if node.Heading != nil && !node.Heading.Equal(*other.Heading) {
		return false
	}
	if node.Body != other.Body || node.Scheduled != other.Scheduled || node.Deadline != other.Deadline {
		return false
	}
	if len(node.Properties) != len(other.Properties) || len(node.Children) != len(other.Children) {
		return false
	}
	for i, p := range node.Properties {
		if p != other.Properties[i] {
			return false
		}
	}
	for i, c := range node.Children {
		if !c.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of headings in the subtree, node included
// unless it is the document root.
func (node *Node) Count() int {
	n := 0
	if node.Heading != nil {
		n = 1
	}
	for _, c := range node.Children {
		n += c.Count()
	}
	return n
}
