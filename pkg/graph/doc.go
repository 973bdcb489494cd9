// Package graph provides the serialization format for solved layout trees.
//
// This package defines the canonical wire format for flow's results, used for
// JSON files, API responses, caching, and the debug renderers.
//
// # Architecture
//
// The package sits at the serialization boundary between the live node tree
// and external formats:
//
//   - [Snapshot]: Serialization type (this package)
//   - pkg/flow.Node: Live tree, mutated by flow.Solve and flow.Place
//
// Use [Export] to capture a solved tree. A Snapshot is a flat list of nodes in
// pre-order plus parent-child edges, so it can be stored or rendered without
// access to the original tree.
//
// # Constants
//
// This package is the single source of truth for node kind names:
//
//	graph.KindEmpty  // "empty"
//	graph.KindBlock  // "block"
//	graph.KindRow    // "row"
//
// # Snapshot Serialization
//
//	{
//	  "viewport": {"width": 800, "height": 600},
//	  "size": {"width": 800, "height": 400},
//	  "nodes": [
//	    {"id": "n1", "name": "app", "kind": "row", "width": 800, "height": 400, ...},
//	    {"id": "n2", "name": "sidebar", "kind": "empty", "parent": "n1", ...}
//	  ],
//	  "edges": [{"from": "n1", "to": "n2"}]
//	}
//
// All types carry both json and bson tags.
package graph
