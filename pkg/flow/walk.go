package flow

// WalkFunc is called for every node visited by [Walk]. Returning false skips
// the node's children.
type WalkFunc func(n Node, depth int) bool

// Walk visits root and its descendants depth-first in pre-order.
func Walk(root Node, fn WalkFunc) {
	walk(root, 0, fn)
}

func walk(n Node, depth int, fn WalkFunc) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children() {
		walk(child, depth+1, fn)
	}
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root Node) int {
	n := 0
	Walk(root, func(Node, int) bool {
		n++
		return true
	})
	return n
}
