package flow

import "testing"

func TestBlockFillWindow(t *testing.T) {
	b := NewBuilder(nil)
	root := b.Block(b.Empty(), Fill())

	Solve(root, Square(500))
	if got := root.Size(); got != Square(500) {
		t.Errorf("Size() = %v, want %v", got, Square(500))
	}
}

func TestBlockFitChild(t *testing.T) {
	b := NewBuilder(nil)
	root := b.Block(b.Empty(FixedSize(24, 230)))

	Solve(root, Square(500))
	if got, want := root.Size(), (Size{Width: 24, Height: 230}); got != want {
		t.Errorf("Size() = %v, want %v", got, want)
	}
}

func TestBlockFillChild(t *testing.T) {
	b := NewBuilder(nil)
	child := b.Empty(Fill())
	root := b.Block(child, Fill())

	Solve(root, Square(1000))
	if got := child.Size(); got != Square(1000) {
		t.Errorf("child Size() = %v, want %v", got, Square(1000))
	}
}

func TestBlockPaddingInMaxConstraints(t *testing.T) {
	b := NewBuilder(nil)
	child := b.Empty(Fill())
	root := b.Block(child, Fill(), Pad(NewPadding(30, 50, 20, 10)))

	Solve(root, Square(1000))
	want := Size{Width: 1000 - 30 - 50, Height: 1000 - 20 - 10}
	if got := child.Size(); got != want {
		t.Errorf("child Size() = %v, want %v", got, want)
	}
}

func TestBlockPaddingInMinConstraints(t *testing.T) {
	b := NewBuilder(nil)
	root := b.Block(b.Empty(), Pad(NewPadding(10, 24, 13, 10)))

	w, h := root.SolveMinConstraints()
	if w != 34 || h != 23 {
		t.Errorf("SolveMinConstraints() = (%v, %v), want (34, 23)", w, h)
	}
	if c := root.Constraints(); c.MinWidth != 34 || c.MinHeight != 23 {
		t.Errorf("Constraints() = %+v, want min 34x23", c)
	}
}

func TestBlockMinConstraintsByPolicy(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		wantW float64
		wantH float64
	}{
		{name: "fit adds padding", opts: nil, wantW: 40 + 6, wantH: 10 + 4},
		{name: "flex ignores padding", opts: []Option{Fill()}, wantW: 40, wantH: 10},
		{name: "fixed overrides", opts: []Option{FixedSize(99, 77)}, wantW: 99, wantH: 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(nil)
			opts := append([]Option{Pad(Sides(3, 2))}, tt.opts...)
			root := b.Block(b.Empty(FixedSize(40, 10)), opts...)

			w, h := root.SolveMinConstraints()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("SolveMinConstraints() = (%v, %v), want (%v, %v)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestBlockOverConstrainedPadding(t *testing.T) {
	b := NewBuilder(nil)
	child := b.Empty(Fill())
	root := b.Block(child, Fill(), Pad(Sides(60, 60)))

	Solve(root, Size{Width: 100, Height: 50})

	c := child.Constraints()
	if c.MaxWidth != 0 || c.MaxHeight != 0 {
		t.Errorf("child max = %vx%v, want 0x0", c.MaxWidth, c.MaxHeight)
	}
	if got := child.Size(); got != (Size{}) {
		t.Errorf("child Size() = %v, want 0x0", got)
	}
}

func TestBlockFixedChildKeepsValue(t *testing.T) {
	b := NewBuilder(nil)
	child := b.Empty(FixedSize(300, 300))
	root := b.Block(child, FixedSize(100, 100), Pad(Uniform(10)))

	Solve(root, Square(1000))
	if got := child.Size(); got != Square(300) {
		t.Errorf("child Size() = %v, want %v", got, Square(300))
	}
	if c := child.Constraints(); c.MaxWidth != 300 {
		t.Errorf("child MaxWidth = %v, want 300", c.MaxWidth)
	}
}

func TestBlockSetPadding(t *testing.T) {
	b := NewBuilder(nil)
	child := b.Empty(Fill())
	root := b.Block(child, Fill())
	root.SetPadding(Uniform(5))

	Solve(root, Square(100))
	if got := child.Size(); got != Square(90) {
		t.Errorf("child Size() = %v, want %v", got, Square(90))
	}
	if root.Child() != child {
		t.Error("Child() should return the wrapped node")
	}
}
