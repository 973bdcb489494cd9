package flow

// placer is implemented by containers that know how to position their
// children.
type placer interface {
	place()
}

// Place sets the position of root to origin and positions its descendants
// from their solved sizes. Row children are placed one after another,
// separated by the row's spacing. A Block's child sits inside its padding.
// Children of node types that do not implement placement share their
// parent's position.
//
// Place must run after [Solve].
func Place(root Node, origin Position) {
	root.SetPosition(origin)
	if p, ok := root.(placer); ok {
		p.place()
		return
	}
	for _, child := range root.Children() {
		Place(child, origin)
	}
}
