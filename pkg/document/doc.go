// Package document reads layout trees from TOML or JSON documents.
//
// # Overview
//
// A document describes one tree of [flow] nodes. Each table is a node with an
// optional name, a kind, two sizing policies and, for containers, padding and
// children:
//
//	name = "app"
//	kind = "row"
//	width = "flex"
//	height = 400
//	padding = [10, 10, 5, 5]
//	spacing = 4
//
//	[[children]]
//	name = "sidebar"
//	width = 200
//
//	[[children]]
//	name = "content"
//	width = "flex(2)"
//
// The same structure is accepted as JSON with identical field names.
//
// # Fields
//
//   - name: unique node name; defaults to the parent's name plus the child index
//     ("root", "root.0", "root.0.1")
//   - kind: "empty", "block" or "row"; inferred from the number of children
//     when omitted (none: empty, one: block, more: row)
//   - width, height: sizing text ("fit", "flex", "flex(N)", "fixed(V)") or a
//     number for a fixed size; default "fit"
//   - padding: [all], [x, y] or [left, right, top, bottom]
//   - spacing: gap between row children
//   - children: child nodes; a block has exactly one, an empty has none
//
// # Validation
//
// [Document.Build] rejects unknown kinds, wrong child counts, duplicate or
// malformed names, negative padding and invalid sizing. Errors carry the
// [errors.ErrCodeInvalidDocument] or [errors.ErrCodeInvalidSizing] code and
// name the offending node by its path, for example "$.children[1]".
package document
