package flow

// Empty is a childless node. It terminates the recursion of every pass.
type Empty struct {
	box
}

// SolveMaxConstraints normalizes the node's constraints. There are no
// children to constrain.
func (e *Empty) SolveMaxConstraints() {
	e.normalize()
}

// SolveMinConstraints records a minimum of the fixed value on Fixed axes and
// 0 otherwise.
func (e *Empty) SolveMinConstraints() (float64, float64) {
	e.SetMinWidth(ownMin(e.width, 0))
	e.SetMinHeight(ownMin(e.height, 0))
	return e.constraints.MinWidth, e.constraints.MinHeight
}

// UpdateSize resolves the node's size.
func (e *Empty) UpdateSize() {
	e.resolve()
}

// Children returns nil.
func (e *Empty) Children() []Node { return nil }

var _ Node = (*Empty)(nil)
