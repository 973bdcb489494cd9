package graph

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node kinds.
const (
	KindEmpty   = "empty"
	KindBlock   = "block"
	KindRow     = "row"
	KindUnknown = "node"
)

// =============================================================================
// Snapshot - Solved Tree Serialization
// =============================================================================

// Snapshot is the canonical serialization of a solved layout tree.
// Used for API responses, storage, caching, and rendering.
type Snapshot struct {
	Viewport Size   `json:"viewport" bson:"viewport"`
	Size     Size   `json:"size" bson:"size"`                         // Root size
	Placed   bool   `json:"placed,omitempty" bson:"placed,omitempty"` // Positions were assigned
	Nodes    []Node `json:"nodes" bson:"nodes"`                       // Pre-order
	Edges    []Edge `json:"edges,omitempty" bson:"edges,omitempty"`
}

// Root returns the first node, or nil for an empty snapshot.
func (s *Snapshot) Root() *Node {
	if len(s.Nodes) == 0 {
		return nil
	}
	return &s.Nodes[0]
}

// Lookup returns the node with the given id.
func (s *Snapshot) Lookup(id string) (*Node, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}

// ByName returns the node with the given document name.
func (s *Snapshot) ByName(name string) (*Node, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].Name == name {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}

// Children returns the ids of the direct children of id, in order.
func (s *Snapshot) Children(id string) []string {
	var out []string
	for _, e := range s.Edges {
		if e.From == id {
			out = append(out, e.To)
		}
	}
	return out
}

// =============================================================================
// Node - Solved Node
// =============================================================================

// Node is one solved node.
type Node struct {
	ID     string `json:"id" bson:"id"`
	Name   string `json:"name,omitempty" bson:"name,omitempty"`
	Kind   string `json:"kind" bson:"kind"`
	Parent string `json:"parent,omitempty" bson:"parent,omitempty"`
	Depth  int    `json:"depth" bson:"depth"`

	// Resolved geometry
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`

	// Inputs, in sizing text form
	WidthPolicy  string `json:"width_policy" bson:"width_policy"`
	HeightPolicy string `json:"height_policy" bson:"height_policy"`

	Constraints Constraints `json:"constraints" bson:"constraints"`
	Padding     *Padding    `json:"padding,omitempty" bson:"padding,omitempty"`
	Spacing     float64     `json:"spacing,omitempty" bson:"spacing,omitempty"`
}

// DisplayLabel returns the name if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// IsContainer reports whether the node kind can hold children.
func (n *Node) IsContainer() bool { return n.Kind == KindBlock || n.Kind == KindRow }

// Size is a width and height pair.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Constraints are the bounds a node was resolved against.
type Constraints struct {
	MinWidth  float64 `json:"min_width" bson:"min_width"`
	MaxWidth  float64 `json:"max_width" bson:"max_width"`
	MinHeight float64 `json:"min_height" bson:"min_height"`
	MaxHeight float64 `json:"max_height" bson:"max_height"`
}

// Padding is the inner spacing of a container.
type Padding struct {
	Left   uint32 `json:"left" bson:"left"`
	Right  uint32 `json:"right" bson:"right"`
	Top    uint32 `json:"top" bson:"top"`
	Bottom uint32 `json:"bottom" bson:"bottom"`
}

// =============================================================================
// Edge - Containment
// =============================================================================

// Edge links a container to one of its children.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}
