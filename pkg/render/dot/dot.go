package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flow/pkg/graph"
)

// Options configures diagram generation.
type Options struct {
	// Detailed includes sizing policies, constraints and positions in node
	// labels. When false, only the name and size are shown.
	Detailed bool
}

// ToDOT converts a snapshot to Graphviz DOT source.
// The result can be rendered with [RenderSVG].
func ToDOT(s graph.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	for _, n := range s.Nodes {
		if n.Kind != graph.KindRow {
			continue
		}
		children := s.Children(n.ID)
		if len(children) < 2 {
			continue
		}
		quoted := make([]string, len(children))
		for i, c := range children {
			quoted[i] = strconv.Quote(c)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	head := fmt.Sprintf("%s\n%gx%g", n.DisplayLabel(), n.Width, n.Height)
	if !detailed {
		return head
	}

	c := n.Constraints
	parts := []string{
		fmt.Sprintf("kind: %s", n.Kind),
		fmt.Sprintf("width: %s", n.WidthPolicy),
		fmt.Sprintf("height: %s", n.HeightPolicy),
		fmt.Sprintf("w: [%g, %g]", c.MinWidth, c.MaxWidth),
		fmt.Sprintf("h: [%g, %g]", c.MinHeight, c.MaxHeight),
		fmt.Sprintf("at: (%g, %g)", n.X, n.Y),
	}
	if p := n.Padding; p != nil && (p.Left|p.Right|p.Top|p.Bottom) != 0 {
		parts = append(parts, fmt.Sprintf("padding: %d %d %d %d", p.Left, p.Right, p.Top, p.Bottom))
	}
	if n.Spacing != 0 {
		parts = append(parts, fmt.Sprintf("spacing: %g", n.Spacing))
	}
	return head + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n graph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Kind {
	case graph.KindRow:
		attrs = append(attrs, "fillcolor=lightgrey")
	case graph.KindBlock:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// sized from its viewBox, so the diagram scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(header))
}
