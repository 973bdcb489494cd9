package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/flow/pkg/graph"
	"github.com/matzehuels/flow/pkg/render/dot"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, snap graph.Snapshot, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var src string
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = graph.Marshal(snap)
		case FormatDOT:
			if src == "" {
				src = dot.ToDOT(snap, dot.Options{Detailed: opts.Detailed})
			}
			data = []byte(src)
		case FormatSVG:
			if src == "" {
				src = dot.ToDOT(snap, dot.Options{Detailed: opts.Detailed})
			}
			data, err = dot.RenderSVG(ctx, src)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
