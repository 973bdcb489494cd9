package flow

// Block wraps exactly one child and insets it by its padding.
type Block struct {
	box
	child   Node
	padding Padding
}

// Child returns the wrapped node.
func (b *Block) Child() Node { return b.child }

// Padding returns the block's padding.
func (b *Block) Padding() Padding { return b.padding }

// SetPadding replaces the block's padding.
func (b *Block) SetPadding(p Padding) { b.padding = p }

// SolveMaxConstraints offers the child the block's maximum minus padding,
// or the child's own value on a Fixed axis.
func (b *Block) SolveMaxConstraints() {
	b.normalize()
	c := b.constraints
	b.child.SetMaxWidth(childMax(b.child.IntrinsicWidth(), c.MaxWidth-b.padding.Horizontal()))
	b.child.SetMaxHeight(childMax(b.child.IntrinsicHeight(), c.MaxHeight-b.padding.Vertical()))
	b.child.SolveMaxConstraints()
}

// SolveMinConstraints takes the child's minimum plus padding when the block
// fits its content, the child's minimum when it is flexible and the fixed
// value when it is fixed.
func (b *Block) SolveMinConstraints() (float64, float64) {
	w, h := b.child.SolveMinConstraints()
	b.SetMinWidth(blockMin(b.width, w, b.padding.Horizontal()))
	b.SetMinHeight(blockMin(b.height, h, b.padding.Vertical()))
	return b.constraints.MinWidth, b.constraints.MinHeight
}

func blockMin(s Sizing, content, padding float64) float64 {
	if s.IsFit() {
		return content + padding
	}
	return ownMin(s, content)
}

// UpdateSize resolves the block's size, then the child's.
func (b *Block) UpdateSize() {
	b.resolve()
	b.child.UpdateSize()
}

// Children returns the single child.
func (b *Block) Children() []Node { return []Node{b.child} }

func (b *Block) place() {
	p := b.position.Add(float64(b.padding.Left), float64(b.padding.Top))
	Place(b.child, p)
}

var _ Node = (*Block)(nil)
