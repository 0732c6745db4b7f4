package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/mbertsch/critpath/pkg/cpm"
	"github.com/mbertsch/critpath/pkg/graph"
)

// DOTOptions configures DOT export.
type DOTOptions struct {
	// Annotate includes earliest/latest event times in node labels.
	// Requires a non-nil schedule.
	Annotate bool
}

// ToDOT converts a graph snapshot to Graphviz DOT format, letting Graphviz
// compute its own layout. The resulting DOT string can be rendered with
// [GraphvizSVG] or [GraphvizPNG].
//
// When sched is non-nil, activity weights become edge labels and zero-slack
// activities are drawn bold and red.
func ToDOT(snap graph.Snapshot, sched *cpm.Result, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, fixedsize=true, width=0.7];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, id := range snap.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, nodeLabel(id, sched, opts.Annotate))
	}

	buf.WriteString("\n")
	for i, e := range snap.Edges {
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.From, e.To, edgeAttrs(sched, i, e))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(id string, sched *cpm.Result, annotate bool) string {
	if !annotate || sched == nil {
		return id
	}
	return fmt.Sprintf("%s\n%s | %s", id, trimFloat(sched.EarliestOf(id)), trimFloat(sched.LatestOf(id)))
}

// edgeAttrs returns the attribute list for edge i. Activities are matched by
// position; both slices preserve edge insertion order from the snapshot.
func edgeAttrs(sched *cpm.Result, i int, e graph.Edge) string {
	if sched == nil || i >= len(sched.Activities) {
		return ""
	}
	a := sched.Activities[i]
	if a.From != e.From || a.To != e.To {
		return ""
	}
	if a.Critical {
		return fmt.Sprintf(" [label=%q, color=\"#d64545\", fontcolor=\"#d64545\", penwidth=2]", trimFloat(a.Weight))
	}
	return fmt.Sprintf(" [label=%q]", trimFloat(a.Weight))
}

// GraphvizSVG renders a DOT graph to SVG using Graphviz.
// Returns SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
func GraphvizSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

// GraphvizPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [GraphvizSVG] and [ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func GraphvizPNG(dot string, scale float64) ([]byte, error) {
	svg, err := GraphvizSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz <svg> tag to a zero-origin viewBox
// with explicit pixel dimensions, which keeps downstream converters and
// browsers consistent about the frame size.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
