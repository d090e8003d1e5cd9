// Package diff computes structural diffs between two outline documents.
//
// The result is an edit script: an ordered list of records saying which
// sections were inserted, deleted, left alone or updated, and for updated
// sections which heading fields, properties, body lines and timestamps
// changed. Sibling sections are matched with the align package, using a
// title similarity heuristic so that a renamed section shows up as an
// update rather than as a deletion followed by an insertion.
//
// Body text is compared as a unified line diff. That code builds on top of
// https://github.com/andreyvit/diff, which generates line diffs (with
// unlimited context lines) on top of the character diffs produced by the
// diffmatchpatch package (https://github.com/sergi/go-diff). A limitation
// of that line diff is that it's not smart about reordered lines.
package diff
