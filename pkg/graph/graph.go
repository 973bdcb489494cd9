package graph

import "github.com/matzehuels/flow/pkg/flow"

// NameFunc maps a node id to its display name. It may return "".
type NameFunc func(flow.ID) string

// Export captures the current state of the tree rooted at root. Call it after
// flow.Solve (and flow.Place, if positions are wanted). names may be nil.
func Export(root flow.Node, viewport flow.Size, names NameFunc) Snapshot {
	s := Snapshot{
		Viewport: Size{Width: viewport.Width, Height: viewport.Height},
		Size:     Size{Width: root.Size().Width, Height: root.Size().Height},
		Nodes:    make([]Node, 0, flow.Count(root)),
	}

	parents := map[flow.ID]string{}
	flow.Walk(root, func(n flow.Node, depth int) bool {
		node := exportNode(n, depth)
		node.Parent = parents[n.ID()]
		if names != nil {
			node.Name = names(n.ID())
		}
		s.Nodes = append(s.Nodes, node)

		for _, child := range n.Children() {
			parents[child.ID()] = node.ID
			s.Edges = append(s.Edges, Edge{From: node.ID, To: string(child.ID())})
		}
		return true
	})
	return s
}

func exportNode(n flow.Node, depth int) Node {
	size, pos, c := n.Size(), n.Position(), n.Constraints()
	node := Node{
		ID:           string(n.ID()),
		Kind:         kindOf(n),
		Depth:        depth,
		Width:        size.Width,
		Height:       size.Height,
		X:            pos.X,
		Y:            pos.Y,
		WidthPolicy:  n.IntrinsicWidth().String(),
		HeightPolicy: n.IntrinsicHeight().String(),
		Constraints: Constraints{
			MinWidth:  c.MinWidth,
			MaxWidth:  c.MaxWidth,
			MinHeight: c.MinHeight,
			MaxHeight: c.MaxHeight,
		},
	}
	if p, ok := n.(interface{ Padding() flow.Padding }); ok {
		pad := p.Padding()
		node.Padding = &Padding{Left: pad.Left, Right: pad.Right, Top: pad.Top, Bottom: pad.Bottom}
	}
	if r, ok := n.(*flow.Row); ok {
		node.Spacing = r.Spacing()
	}
	return node
}

func kindOf(n flow.Node) string {
	switch n.(type) {
	case *flow.Empty:
		return KindEmpty
	case *flow.Block:
		return KindBlock
	case *flow.Row:
		return KindRow
	}
	return KindUnknown
}
