package flow

import "testing"

func TestPlaceRowSpacing(t *testing.T) {
	b := NewBuilder(nil)
	kids := []*Empty{b.Empty(), b.Empty(), b.Empty()}
	row := b.Row(Spacing(20))
	for _, k := range kids {
		row.Append(k)
	}

	Solve(row, Square(100))
	Place(row, Position{})

	for i, want := range []float64{0, 20, 40} {
		if got := kids[i].Position().X; got != want {
			t.Errorf("child %d x = %v, want %v", i, got, want)
		}
	}
}

func TestPlaceRowSequential(t *testing.T) {
	b := NewBuilder(nil)
	c1 := b.Empty(FixedSize(200, 10))
	c2 := b.Empty(FillWidth())
	c3 := b.Empty(FixedSize(300, 10))
	row := b.Row(Fill(), Pad(NewPadding(5, 5, 7, 0)))
	row.Append(c1, c2, c3)

	Solve(row, Size{Width: 710, Height: 100})
	Place(row, Position{X: 100, Y: 50})

	tests := []struct {
		node Node
		want Position
	}{
		{row, Position{X: 100, Y: 50}},
		{c1, Position{X: 105, Y: 57}},
		{c2, Position{X: 305, Y: 57}},
		{c3, Position{X: 505, Y: 57}},
	}
	for i, tt := range tests {
		if got := tt.node.Position(); got != tt.want {
			t.Errorf("node %d Position() = %+v, want %+v", i, got, tt.want)
		}
	}
}

func TestPlaceBlockPadding(t *testing.T) {
	b := NewBuilder(nil)
	child := b.Empty(Fill())
	root := b.Block(child, Fill(), Pad(NewPadding(30, 50, 20, 10)))

	Solve(root, Square(1000))
	Place(root, Position{X: 1, Y: 2})

	if got, want := child.Position(), (Position{X: 31, Y: 22}); got != want {
		t.Errorf("child Position() = %+v, want %+v", got, want)
	}
}

// stack is a container that does not implement placement.
type stack struct {
	Empty
	kids []Node
}

func (s *stack) Children() []Node { return s.kids }

func TestPlaceUnknownContainer(t *testing.T) {
	b := NewBuilder(nil)
	leaf := b.Empty()
	s := &stack{Empty: *b.Empty(), kids: []Node{leaf}}

	Place(s, Position{X: 3, Y: 4})
	if got := leaf.Position(); got != (Position{X: 3, Y: 4}) {
		t.Errorf("leaf Position() = %+v, want {3 4}", got)
	}
}
