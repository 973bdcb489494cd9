package flow

// Row lays out an ordered list of children from left to right.
//
// Width is shared: Fixed children keep their value and Flex children split
// what is left by weight. Height is not shared: each flexible child may use
// the row's full height.
type Row struct {
	box
	children []Node
	padding  Padding
	spacing  float64
}

// Append adds children to the end of the row.
func (r *Row) Append(children ...Node) {
	r.children = append(r.children, children...)
}

// Children returns the row's children in order.
func (r *Row) Children() []Node { return r.children }

// Padding returns the row's padding.
func (r *Row) Padding() Padding { return r.padding }

// SetPadding replaces the row's padding.
func (r *Row) SetPadding(p Padding) { r.padding = p }

// Spacing returns the gap between adjacent children.
func (r *Row) Spacing() float64 { return r.spacing }

// SetSpacing replaces the gap between adjacent children.
func (r *Row) SetSpacing(v float64) { r.spacing = nonNegative(v) }

// sumFixedWidth returns the total width of the children with a Fixed width.
func (r *Row) sumFixedWidth() float64 {
	var sum float64
	for _, child := range r.children {
		if w, ok := child.IntrinsicWidth().Fixed(); ok {
			sum += w
		}
	}
	return sum
}

// flexTotal returns the sum of the flex weights of the children.
func (r *Row) flexTotal() int {
	total := 0
	for _, child := range r.children {
		if w, ok := child.IntrinsicWidth().Flex(); ok {
			total += int(w)
		}
	}
	return total
}

// gaps returns the total spacing between children.
func (r *Row) gaps() float64 {
	if len(r.children) < 2 {
		return 0
	}
	return r.spacing * float64(len(r.children)-1)
}

// SolveMaxConstraints distributes the row's width among its children and
// hands each child its height, then recurses.
func (r *Row) SolveMaxConstraints() {
	r.normalize()
	c := r.constraints
	flexTotal := r.flexTotal()
	distributable := nonNegative(c.MaxWidth - r.sumFixedWidth() - r.padding.Horizontal() - r.gaps())
	height := nonNegative(c.MaxHeight - r.padding.Vertical())

	for _, child := range r.children {
		cc := child.Constraints()

		switch s := child.IntrinsicWidth(); s.Kind() {
		case KindFixed:
			v, _ := s.Fixed()
			child.SetMaxWidth(v)
		case KindFlex:
			child.SetMaxWidth(flexShare(distributable, s.weight, flexTotal))
		default:
			child.SetMaxWidth(cc.MinWidth)
		}

		switch s := child.IntrinsicHeight(); s.Kind() {
		case KindFixed:
			v, _ := s.Fixed()
			child.SetMaxHeight(v)
		case KindFlex:
			child.SetMaxHeight(height)
		default:
			child.SetMaxHeight(cc.MinHeight)
		}

		child.SolveMaxConstraints()
	}
}

// flexShare returns weight/total of the distributable width. A zero total or
// zero weight gets nothing.
func flexShare(distributable float64, weight uint8, total int) float64 {
	if total == 0 || weight == 0 {
		return 0
	}
	return distributable * float64(weight) / float64(total)
}

// SolveMinConstraints sums the children's minimums on both axes.
func (r *Row) SolveMinConstraints() (float64, float64) {
	var width, height float64
	for _, child := range r.children {
		w, h := child.SolveMinConstraints()
		width += w
		height += h
	}

	r.SetMinWidth(blockMin(r.width, width, r.padding.Horizontal()+r.gaps()))
	r.SetMinHeight(blockMin(r.height, height, r.padding.Vertical()))
	return r.constraints.MinWidth, r.constraints.MinHeight
}

// UpdateSize resolves the row's size, then every child's.
func (r *Row) UpdateSize() {
	r.resolve()
	for _, child := range r.children {
		child.UpdateSize()
	}
}

func (r *Row) place() {
	p := r.position.Add(float64(r.padding.Left), float64(r.padding.Top))
	for _, child := range r.children {
		Place(child, p)
		p.X += child.Size().Width + r.spacing
	}
}

var _ Node = (*Row)(nil)
