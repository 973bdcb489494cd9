// Package pkg provides the libraries behind the flow layout tool.
//
// # Overview
//
// flow sizes trees of rectangular nodes from declarative sizing policies
// (fit, fixed, flex) and a viewport. The pkg directory is organized into:
//
//  1. [flow] - The layout engine: nodes, sizing policies, Solve, Place
//  2. [document] - TOML/JSON tree documents
//  3. [graph] - Serialization of solved trees
//  4. [render] - Debug diagrams (DOT, SVG)
//  5. [pipeline] - Orchestration (decode → solve → render) with caching
//  6. [cache], [observability], [errors], [buildinfo] - Infrastructure
//  7. [server] - HTTP API
//
// # Architecture
//
// The typical data flow:
//
//	TOML/JSON document
//	         ↓
//	    [document] package (decode, validate, build nodes)
//	         ↓
//	    [flow] package (Solve, optional Place)
//	         ↓
//	    [graph] package (Snapshot)
//	         ↓
//	    [render] package / JSON output
//
// # Quick Start
//
// Build and solve a tree directly:
//
//	b := flow.NewBuilder(nil)
//	row := b.Row(flow.Fill())
//	row.Append(
//	    b.Empty(flow.FixedWidth(200), flow.FillHeight()),
//	    b.Empty(flow.Fill()),
//	)
//	flow.Solve(row, flow.Size{Width: 800, Height: 600})
//
// Or run the full pipeline on a document:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Document: data})
package pkg
