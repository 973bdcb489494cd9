package flow

// Option configures a node at construction time.
type Option func(*config)

type config struct {
	width   Sizing
	height  Sizing
	padding Padding
	spacing float64
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Width sets the width policy.
func Width(s Sizing) Option {
	return func(c *config) { c.width = s }
}

// Height sets the height policy.
func Height(s Sizing) Option {
	return func(c *config) { c.height = s }
}

// Fill makes the node flexible on both axes with weight 1.
func Fill() Option {
	return func(c *config) {
		c.width = Flex(1)
		c.height = Flex(1)
	}
}

// FillWidth makes the node's width flexible with weight 1.
func FillWidth() Option { return Width(Flex(1)) }

// FillHeight makes the node's height flexible with weight 1.
func FillHeight() Option { return Height(Flex(1)) }

// FixedSize fixes both axes.
func FixedSize(width, height float64) Option {
	return func(c *config) {
		c.width = Fixed(width)
		c.height = Fixed(height)
	}
}

// FixedWidth fixes the width.
func FixedWidth(v float64) Option { return Width(Fixed(v)) }

// FixedHeight fixes the height.
func FixedHeight(v float64) Option { return Height(Fixed(v)) }

// Pad sets the padding of a [Block] or [Row]. Leaves ignore it.
func Pad(p Padding) Option {
	return func(c *config) { c.padding = p }
}

// Spacing sets the gap between adjacent children of a [Row]. Other nodes
// ignore it. Negative and non-finite values are treated as 0.
func Spacing(v float64) Option {
	return func(c *config) { c.spacing = nonNegative(v) }
}
