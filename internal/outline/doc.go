// Package outline parses documents in the org-mode outline format into a
// tree of nodes.
//
// Only the parts of the format that matter for structural diffing are
// understood: headings (stars, status keyword, priority cookie, title,
// tags), properties blocks, and SCHEDULED/DEADLINE timestamps. Anything
// else, logbooks and clock lines included, is kept verbatim as body text.
package outline
