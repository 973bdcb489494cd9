package pipeline

import (
	"github.com/matzehuels/flow/pkg/document"
	"github.com/matzehuels/flow/pkg/flow"
	"github.com/matzehuels/flow/pkg/graph"
)

// Solve builds the document's tree, solves it against the options' viewport,
// optionally places it and returns the tree with its snapshot.
func Solve(doc *document.Document, opts Options) (*document.Tree, graph.Snapshot, error) {
	opts.SetSolveDefaults()

	tree, err := doc.Build(flow.NewBuilder(opts.IDSource()))
	if err != nil {
		return nil, graph.Snapshot{}, err
	}

	viewport := opts.Viewport()
	flow.Solve(tree.Root, viewport)
	if opts.Place {
		flow.Place(tree.Root, flow.Position{})
	}

	snap := graph.Export(tree.Root, viewport, tree.Name)
	snap.Placed = opts.Place
	return tree, snap, nil
}
