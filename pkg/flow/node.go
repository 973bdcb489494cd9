package flow

// Node is the capability set every layout node implements.
//
// The three algorithm hooks are called by [Solve] in the order
// SolveMinConstraints, SolveMaxConstraints, UpdateSize. Each is a full
// recursion into the node's children.
type Node interface {
	// ID returns the node's identity.
	ID() ID

	Size() Size
	SetSize(Size)
	Position() Position
	SetPosition(Position)

	// IntrinsicWidth returns the declared width policy.
	IntrinsicWidth() Sizing
	// IntrinsicHeight returns the declared height policy.
	IntrinsicHeight() Sizing

	// Constraints returns the node's current constraints.
	Constraints() Constraints
	// SetMaxWidth, SetMaxHeight, SetMinWidth and SetMinHeight mutate the
	// node's constraints. Only the node's parent (or the node itself while
	// aggregating its children) calls them.
	SetMaxWidth(float64)
	SetMaxHeight(float64)
	SetMinWidth(float64)
	SetMinHeight(float64)

	// SolveMaxConstraints sets the max constraints of every child from this
	// node's own max constraints, then recurses.
	SolveMaxConstraints()
	// SolveMinConstraints recurses into every child, aggregates their
	// minimums into this node's min constraints and returns them.
	SolveMinConstraints() (width, height float64)
	// UpdateSize resolves this node's size from its policy and constraints,
	// then recurses.
	UpdateSize()

	// Children returns the node's children in order. Leaves return nil.
	Children() []Node
}

// box holds the state shared by all node variants.
type box struct {
	id          ID
	size        Size
	position    Position
	width       Sizing
	height      Sizing
	constraints Constraints
}

func (b *box) ID() ID { return b.id }
func (b *box) Size() Size { return b.size }
func (b *box) SetSize(s Size) { b.size = s }
func (b *box) Position() Position { return b.position }
func (b *box) SetPosition(p Position) { b.position = p }
func (b *box) IntrinsicWidth() Sizing { return b.width }
func (b *box) IntrinsicHeight() Sizing { return b.height }
func (b *box) Constraints() Constraints { return b.constraints }
func (b *box) SetMaxWidth(v float64) { b.constraints.MaxWidth = v }
func (b *box) SetMaxHeight(v float64) { b.constraints.MaxHeight = v }
func (b *box) SetMinWidth(v float64) { b.constraints.MinWidth = v }
func (b *box) SetMinHeight(v float64) { b.constraints.MinHeight = v }
func (b *box) SetIntrinsicWidth(s Sizing) { b.width = s }
func (b *box) SetIntrinsicHeight(s Sizing) { b.height = s }
func (b *box) normalize() { b.constraints = b.constraints.Normalize() }

// resolve sets the final size from the policies and the solved constraints.
func (b *box) resolve() {
	b.size = Size{
		Width:  resolveAxis(b.width, b.constraints.MinWidth, b.constraints.MaxWidth),
		Height: resolveAxis(b.height, b.constraints.MinHeight, b.constraints.MaxHeight),
	}
}

func resolveAxis(s Sizing, lo, hi float64) float64 {
	switch s.kind {
	case KindFixed:
		return s.value
	case KindFlex:
		return hi
	}
	return lo
}

// ownMin resolves a node's minimum on one axis from its own policy.
// content is the aggregated minimum of the node's children.
func ownMin(s Sizing, content float64) float64 {
	if v, ok := s.Fixed(); ok {
		return v
	}
	return content
}

// childMax returns the max constraint a container with the given available
// space hands a child with policy s on an axis where children do not share
// space.
func childMax(s Sizing, available float64) float64 {
	if v, ok := s.Fixed(); ok {
		return v
	}
	return nonNegative(available)
}
