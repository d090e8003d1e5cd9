package diff

import "strings"

type valueKind int

const (
	absent valueKind = iota
	scalar
	sequence
)

// Value is one side of a field comparison: absent, a scalar, or a
// sequence of values compared position by position.
type Value struct {
	kind  valueKind
	text  string
	items []Value
}

func Absent() Value {
	return Value{}
}

func Scalar(s string) Value {
	return Value{kind: scalar, text: s}
}

// Optional is a scalar for non-empty strings and absent otherwise.
func Optional(s string) Value {
	if s == "" {
		return Absent()
	}
	return Scalar(s)
}

func Sequence(items ...Value) Value {
	return Value{kind: sequence, items: items}
}

// Strings is a sequence of scalars.
func Strings(ss []string) Value {
	items := make([]Value, len(ss))
	for i, s := range ss {
		items[i] = Scalar(s)
	}
	return Sequence(items...)
}

func (v Value) IsAbsent() bool {
	return v.kind == absent
}

// Len is the number of items of a sequence, or zero.
func (v Value) Len() int {
	return len(v.items)
}

// at returns the i-th item of a sequence, or absent past its end.
func (v Value) at(i int) Value {
	if i < len(v.items) {
		return v.items[i]
	}
	return Absent()
}

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case scalar:
		return v.text == other.text
	case sequence:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
	}
	return true
}

func (v Value) String() string {
	switch v.kind {
	case scalar:
		return v.text
	case sequence:
		var parts []string
		for _, item := range v.items {
			parts = append(parts, item.String())
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return ""
	}
}

// diffValues compares two versions of a field. Sequences are compared
// position by position, without realigning them; the shorter one is
// padded with absent values.
func diffValues(old, new Value) []Record {
	switch {
	case old.Equal(new):
		return nil
	case old.IsAbsent():
		return []Record{inserted(new.String())}
	case new.IsAbsent():
		return []Record{deleted(old.String())}
	case old.kind == sequence && new.kind == sequence:
		n := old.Len()
		if new.Len() > n {
			n = new.Len()
		}
		var records []Record
		for i := 0; i < n; i++ {
			records = append(records, diffValues(old.at(i), new.at(i))...)
		}
		return records
	default:
		return []Record{deleted(old.String()), inserted(new.String())}
	}
}
