package flow

import (
	"fmt"
	"math"
)

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Square returns a Size with equal width and height.
func Square(v float64) Size { return Size{Width: v, Height: v} }

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.Width, s.Height) }

// Position is an x/y pair.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Add returns p offset by dx and dy.
func (p Position) Add(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Padding is the inset a container applies between its own constraints and
// the space it offers its children.
type Padding struct {
	Left   uint32 `json:"left" bson:"left"`
	Right  uint32 `json:"right" bson:"right"`
	Top    uint32 `json:"top" bson:"top"`
	Bottom uint32 `json:"bottom" bson:"bottom"`
}

// NewPadding returns a Padding with the four sides in left, right, top,
// bottom order.
func NewPadding(left, right, top, bottom uint32) Padding {
	return Padding{Left: left, Right: right, Top: top, Bottom: bottom}
}

// Sides returns a Padding with x on the left and right and y on the top and
// bottom.
func Sides(x, y uint32) Padding {
	return Padding{Left: x, Right: x, Top: y, Bottom: y}
}

// Uniform returns a Padding with v on every side.
func Uniform(v uint32) Padding { return Sides(v, v) }

// Horizontal returns the sum of the left and right padding.
func (p Padding) Horizontal() float64 { return float64(p.Left) + float64(p.Right) }

// Vertical returns the sum of the top and bottom padding.
func (p Padding) Vertical() float64 { return float64(p.Top) + float64(p.Bottom) }

// Constraints is the min/max bounding box a parent imposes on a node for one
// layout pass.
type Constraints struct {
	MinWidth  float64 `json:"min_width" bson:"min_width"`
	MaxWidth  float64 `json:"max_width" bson:"max_width"`
	MinHeight float64 `json:"min_height" bson:"min_height"`
	MaxHeight float64 `json:"max_height" bson:"max_height"`
}

// Normalize clamps c so that 0 <= min <= max holds on both axes.
// The maximum wins when the two disagree.
func (c Constraints) Normalize() Constraints {
	c.MaxWidth = nonNegative(c.MaxWidth)
	c.MaxHeight = nonNegative(c.MaxHeight)
	c.MinWidth = clamp(c.MinWidth, 0, c.MaxWidth)
	c.MinHeight = clamp(c.MinHeight, 0, c.MaxHeight)
	return c
}

// nonNegative maps negative and non-finite values to 0.
func nonNegative(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 1) {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case !(v > lo):
		return lo
	case v > hi:
		return hi
	}
	return v
}
