// Package dot renders solved layout trees as Graphviz diagrams.
//
// # Overview
//
// This package turns a [graph.Snapshot] into DOT source where every node is
// a box and every container points at its children. Children of a row share
// a rank and keep their order, so the diagram reads left to right the way
// the row lays them out.
//
// # Usage
//
//	src := dot.ToDOT(snap, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// # Options
//
//   - Detailed: include sizing policies, constraints and positions in labels
//
// # Styling
//
// Rows are filled light grey, blocks have dashed outlines and leaves are
// plain boxes.
//
// [graph.Snapshot]: github.com/matzehuels/flow/pkg/graph.Snapshot
package dot
