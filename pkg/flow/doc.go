// Package flow implements a constraint-based layout engine for trees of
// layout nodes.
//
// # Overview
//
// Every [Node] declares a [Sizing] per axis:
//
//   - [Fixed]: an exact size
//   - [Fit]: shrink to the minimum size of its content
//   - [Flex]: grow to a weighted share of the space offered by the parent
//
// [Solve] takes a root node and a viewport and resolves a concrete [Size] for
// every node in the tree. Three node variants are provided:
//
//   - [Empty]: a childless leaf
//   - [Block]: wraps exactly one child and applies [Padding]
//   - [Row]: lays out an ordered list of children left to right
//
// # Algorithm
//
// A solve is three full traversals of the tree:
//
//  1. Min pass (bottom-up): each node aggregates the minimums reported by its
//     children and records its own minimum width and height.
//  2. Max pass (top-down): each container hands its children maximum
//     constraints derived from its own maximum and the children's policies.
//  3. Update pass (top-down): each node resolves its size from its policy.
//     Fit resolves to the minimum, Fixed to the declared value and Flex to the
//     maximum.
//
// The min pass runs first so that a Fit child inside a [Row] has a known
// minimum when the row distributes width in the max pass. Constraints are
// normalized at the start of each node's max pass: maxima never go below
// zero and minima are clamped into [0, max].
//
// # Identity
//
// Node ids come from an [IDSource] owned by a [Builder]. Use [NewSequence]
// for deterministic ids in tests and [NewUUIDSource] for random ids:
//
//	b := flow.NewBuilder(flow.NewSequence("n"))
//	root := b.Row(flow.Fill())
//	root.Append(
//	    b.Empty(flow.FixedWidth(200)),
//	    b.Empty(flow.FillWidth()),
//	)
//	flow.Solve(root, flow.Size{Width: 800, Height: 600})
//
// # Positions
//
// [Solve] only resolves sizes. [Place] is a separate, optional pass that
// assigns positions by placing row children one after the other.
package flow
