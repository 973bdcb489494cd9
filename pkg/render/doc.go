// Package render provides debug renderers for solved layout trees.
//
// # Overview
//
// Renderers consume a [graph.Snapshot] rather than the live node tree, so
// the same code serves the CLI, the HTTP API and cached results.
//
// # Structural Diagrams
//
// The [dot] subpackage draws the containment tree as a Graphviz diagram:
// one box per node, labelled with its name and resolved size, and one arrow
// from each container to each child.
//
//	src := dot.ToDOT(snap, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//
// The diagram shows structure and resolved sizes. It does not paint node
// geometry.
//
// [graph.Snapshot]: github.com/matzehuels/flow/pkg/graph.Snapshot
package render
