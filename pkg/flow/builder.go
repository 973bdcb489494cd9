package flow

// Builder constructs nodes, drawing their ids from an [IDSource].
type Builder struct {
	ids IDSource
}

// NewBuilder returns a Builder using ids. A nil source falls back to a
// fresh [Sequence] with prefix "n".
func NewBuilder(ids IDSource) *Builder {
	if ids == nil {
		ids = NewSequence("n")
	}
	return &Builder{ids: ids}
}

// Empty returns a new leaf node.
func (b *Builder) Empty(opts ...Option) *Empty {
	c := newConfig(opts)
	return &Empty{box: b.box(c)}
}

// Block returns a new single-child container wrapping child.
// It panics if child is nil.
func (b *Builder) Block(child Node, opts ...Option) *Block {
	if child == nil {
		panic("flow: Block requires a child")
	}
	c := newConfig(opts)
	return &Block{box: b.box(c), child: child, padding: c.padding}
}

// Row returns a new horizontal container. Children are added with
// [Row.Append].
func (b *Builder) Row(opts ...Option) *Row {
	c := newConfig(opts)
	return &Row{box: b.box(c), padding: c.padding, spacing: c.spacing}
}

func (b *Builder) box(c config) box {
	return box{id: b.ids.Next(), width: c.width, height: c.height}
}
