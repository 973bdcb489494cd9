package flow

// Solve runs one complete layout pass over the tree rooted at root.
//
// The root's max constraints are seeded from viewport (or from its own Fixed
// values), then the min, max and update passes run in that order. After Solve
// returns, every node's Size is final. Positions are left untouched; see
// [Place].
//
// Solve is deterministic and may be called again with a new viewport, for
// example once per frame.
func Solve(root Node, viewport Size) {
	root.SetMaxWidth(childMax(root.IntrinsicWidth(), viewport.Width))
	root.SetMaxHeight(childMax(root.IntrinsicHeight(), viewport.Height))

	root.SolveMinConstraints()
	root.SolveMaxConstraints()
	root.UpdateSize()
}
