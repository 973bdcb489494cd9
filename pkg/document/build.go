package document

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/flow/pkg/errors"
	"github.com/matzehuels/flow/pkg/flow"
)

// Tree is a built node tree together with its name index.
type Tree struct {
	Root flow.Node

	byName map[string]flow.Node
	names  map[flow.ID]string
	order  []string
}

// Lookup returns the node with the given document name.
func (t *Tree) Lookup(name string) (flow.Node, bool) {
	n, ok := t.byName[name]
	return n, ok
}

// Name returns the document name of the node with the given id.
func (t *Tree) Name(id flow.ID) string { return t.names[id] }

// Names returns all node names in pre-order.
func (t *Tree) Names() []string { return t.order }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.order) }

// Build validates the document and constructs its node tree with b.
func (d *Document) Build(b *flow.Builder) (*Tree, error) {
	if b == nil {
		b = flow.NewBuilder(nil)
	}
	t := &Tree{
		byName: make(map[string]flow.Node),
		names:  make(map[flow.ID]string),
	}
	root, err := t.build(b, &d.Root, "$", "root", 0)
	if err != nil {
		return nil, err
	}
	t.Root = root
	return t, nil
}

// Validate reports the first problem Build would find.
func (d *Document) Validate() error {
	_, err := d.Build(flow.NewBuilder(nil))
	return err
}

func (t *Tree) build(b *flow.Builder, n *Node, path, fallback string, depth int) (flow.Node, error) {
	if depth >= MaxDepth {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: tree deeper than %d levels", path, MaxDepth)
	}
	if len(t.order) >= MaxNodes {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: more than %d nodes", path, MaxNodes)
	}

	name := n.Name
	if name == "" {
		name = fallback
	}
	if err := errors.ValidateNodeName(name); err != nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: %s", path, errors.UserMessage(err))
	}
	if _, dup := t.byName[name]; dup {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: duplicate node name %q", path, name)
	}

	width, err := parseSizing(n.Width)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidSizing, "%s: width: %v", path, err)
	}
	height, err := parseSizing(n.Height)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidSizing, "%s: height: %v", path, err)
	}
	padding, err := parsePadding(n.Padding)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: padding %v", path, err)
	}
	if n.Spacing < 0 || math.IsNaN(n.Spacing) || math.IsInf(n.Spacing, 0) {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: spacing must be a non-negative number", path)
	}

	kind := n.Kind
	if kind == "" {
		kind = inferKind(len(n.Children))
	}
	opts := []flow.Option{flow.Width(width), flow.Height(height)}

	// Reserve the name before descending so children cannot reuse it.
	t.byName[name] = nil
	t.order = append(t.order, name)

	var node flow.Node
	switch kind {
	case KindEmpty:
		if len(n.Children) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: empty node cannot have children", path)
		}
		if len(n.Padding) > 0 || n.Spacing != 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: empty node takes no padding or spacing", path)
		}
		node = b.Empty(opts...)

	case KindBlock:
		if len(n.Children) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: block needs exactly one child, got %d", path, len(n.Children))
		}
		if n.Spacing != 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: block takes no spacing", path)
		}
		child, err := t.build(b, &n.Children[0], path+".children[0]", name+".0", depth+1)
		if err != nil {
			return nil, err
		}
		node = b.Block(child, append(opts, flow.Pad(padding))...)

	case KindRow:
		row := b.Row(append(opts, flow.Pad(padding), flow.Spacing(n.Spacing))...)
		for i := range n.Children {
			child, err := t.build(b, &n.Children[i], fmt.Sprintf("%s.children[%d]", path, i), name+"."+strconv.Itoa(i), depth+1)
			if err != nil {
				return nil, err
			}
			row.Append(child)
		}
		node = row

	default:
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: unknown kind %q", path, kind)
	}

	t.byName[name] = node
	t.names[node.ID()] = name
	return node, nil
}

func inferKind(children int) string {
	switch children {
	case 0:
		return KindEmpty
	case 1:
		return KindBlock
	}
	return KindRow
}

// parseSizing converts a raw sizing value. TOML yields int64 or float64 for
// numbers, JSON yields float64.
func parseSizing(v any) (flow.Sizing, error) {
	switch x := v.(type) {
	case nil:
		return flow.Fit(), nil
	case string:
		return flow.ParseSizing(x)
	case int64:
		return fixed(float64(x))
	case int:
		return fixed(float64(x))
	case float64:
		return fixed(x)
	}
	return flow.Sizing{}, fmt.Errorf("unsupported sizing value %v (%T)", v, v)
}

func fixed(v float64) (flow.Sizing, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return flow.Sizing{}, fmt.Errorf("fixed size must be finite")
	}
	if v < 0 {
		return flow.Sizing{}, fmt.Errorf("fixed size must not be negative: %g", v)
	}
	return flow.Fixed(v), nil
}

func parsePadding(p []int64) (flow.Padding, error) {
	for _, v := range p {
		if v < 0 {
			return flow.Padding{}, fmt.Errorf("must not be negative: %d", v)
		}
		if v > math.MaxUint32 {
			return flow.Padding{}, fmt.Errorf("too large: %d", v)
		}
	}
	switch len(p) {
	case 0:
		return flow.Padding{}, nil
	case 1:
		return flow.Uniform(uint32(p[0])), nil
	case 2:
		return flow.Sides(uint32(p[0]), uint32(p[1])), nil
	case 4:
		return flow.NewPadding(uint32(p[0]), uint32(p[1]), uint32(p[2]), uint32(p[3])), nil
	}
	return flow.Padding{}, fmt.Errorf("want 1, 2 or 4 values, got %d", len(p))
}
