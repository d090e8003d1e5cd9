// Package align pairs up the elements of two ordered sequences, keeping
// the relative order of both. It is how sibling sections and property
// entries of two versions of a document are matched with each other.
package align

import "fmt"

// Pairing is one element of an alignment. At least one of the two sides
// is present.
type Pairing[T any] struct {
	Old    T
	New    T
	HasOld bool
	HasNew bool
}

func (p Pairing[T]) String() string {
	switch {
	case p.HasOld && p.HasNew:
		return fmt.Sprintf("(%v, %v)", p.Old, p.New)
	case p.HasOld:
		return fmt.Sprintf("(%v, -)", p.Old)
	default:
		return fmt.Sprintf("(-, %v)", p.New)
	}
}

// Both returns a pairing with both sides present.
func Both[T any](old, new T) Pairing[T] {
	return Pairing[T]{Old: old, New: new, HasOld: true, HasNew: true}
}

// OldOnly returns a pairing for an element that is only in the old sequence.
func OldOnly[T any](old T) Pairing[T] {
	return Pairing[T]{Old: old, HasOld: true}
}

// NewOnly returns a pairing for an element that is only in the new sequence.
func NewOnly[T any](new T) Pairing[T] {
	return Pairing[T]{New: new, HasNew: true}
}

// Equal is the default similarity predicate.
func Equal[T comparable](a, b T) bool {
	return a == b
}

type step uint8

const (
	match step = iota
	dropOld
	dropNew
)

// Align returns the pairings of old and new that match the most elements
// under the similar predicate. Every element of both sequences appears in
// exactly one pairing, in order.
//
// The alignment of two suffixes old[i:] and new[j:] pairs the two heads if
// they are similar. Otherwise it either leaves old[i] unpaired or leaves
// new[j] unpaired, whichever results in fewer pairings overall; on a tie,
// old[i] is left unpaired, i.e., reported as removed before new[j] is
// reported as inserted.
//
// The table of suffix alignments is private to one call and similar is
// called at most once per (i, j) position.
func Align[T any](old, new []T, similar func(a, b T) bool) []Pairing[T] {
	n, m := len(old), len(new)

	// count[i][j] is the number of pairings in the alignment of old[i:]
	// and new[j:].
	count := make([][]int, n+1)
	steps := make([][]step, n+1)
	for i := range count {
		count[i] = make([]int, m+1)
		steps[i] = make([]step, m+1)
	}
	for j := 0; j <= m; j++ {
		count[n][j] = m - j
	}
	for i := 0; i <= n; i++ {
		count[i][m] = n - i
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if similar(old[i], new[j]) {
				count[i][j] = 1 + count[i+1][j+1]
				steps[i][j] = match
			} else if count[i][j+1] < count[i+1][j] {
				count[i][j] = 1 + count[i][j+1]
				steps[i][j] = dropNew
			} else {
				count[i][j] = 1 + count[i+1][j]
				steps[i][j] = dropOld
			}
		}
	}

	pairings := make([]Pairing[T], 0, count[0][0])
	i, j := 0, 0
	for i < n && j < m {
		switch steps[i][j] {
		case match:
			pairings = append(pairings, Both(old[i], new[j]))
			i++
			j++
		case dropOld:
			pairings = append(pairings, OldOnly(old[i]))
			i++
		case dropNew:
			pairings = append(pairings, NewOnly(new[j]))
			j++
		}
	}
	for ; i < n; i++ {
		pairings = append(pairings, OldOnly(old[i]))
	}
	for ; j < m; j++ {
		pairings = append(pairings, NewOnly(new[j]))
	}
	return pairings
}
