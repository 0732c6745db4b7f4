package render

import (
	"bytes"
	"fmt"

	"github.com/mbertsch/critpath/pkg/cpm"
	"github.com/mbertsch/critpath/pkg/layout"
)

// SVG color palette. Critical activities and the nodes they touch are drawn
// in the accent color so the critical path stands out at a glance.
const (
	colorNodeFill   = "#ffffff"
	colorNodeStroke = "#3b4252"
	colorEdge       = "#8a8f98"
	colorCritical   = "#d64545"
	colorLabel      = "#1f2430"
	colorAnnotation = "#5b6472"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	sched      *cpm.Result
	showSlack  bool
	background string
}

// WithSchedule attaches a schedule computed from the same snapshot as the
// layout. Critical activities are highlighted, weights are labeled, and the
// earliest/latest event times appear next to each node.
func WithSchedule(sched *cpm.Result) SVGOption {
	return func(r *svgRenderer) { r.sched = sched }
}

// WithSlackLabels adds the slack value to each non-critical activity label.
// Requires [WithSchedule].
func WithSlackLabels() SVGOption {
	return func(r *svgRenderer) { r.showSlack = true }
}

// WithBackground fills the frame with the given color instead of leaving it
// transparent.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// RenderSVG draws a layout as a standalone SVG document. The drawing is
// deterministic: same layout and options, byte-identical output.
//
// The optional schedule must come from the same snapshot as the layout;
// activities are matched to edge geometry by position, so a mismatched pair
// silently mislabels edges.
func RenderSVG(l *layout.Result, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill=%q/>`+"\n", r.background)
	}

	renderEdges(&buf, l, &r)
	renderNodes(&buf, l, &r)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// activityAt pairs edge geometry with its schedule metrics. Both slices
// preserve edge insertion order, so index i of one matches index i of the
// other whenever schedule and layout come from the same snapshot.
func (r *svgRenderer) activityAt(l *layout.Result, i int) *cpm.Activity {
	if r.sched == nil || len(r.sched.Activities) != len(l.Edges) {
		return nil
	}
	a := &r.sched.Activities[i]
	if a.From != l.Edges[i].From || a.To != l.Edges[i].To {
		return nil
	}
	return a
}

func renderEdges(buf *bytes.Buffer, l *layout.Result, r *svgRenderer) {
	for i, e := range l.Edges {
		stroke, width := colorEdge, 1.5
		act := r.activityAt(l, i)
		if act != nil && act.Critical {
			stroke, width = colorCritical, 2.5
		}
		fmt.Fprintf(buf, `  <path class="activity" d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke=%q stroke-width="%.1f"/>`+"\n",
			e.Start.X, e.Start.Y, e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.End.X, e.End.Y,
			stroke, width)

		if act != nil {
			renderEdgeLabel(buf, e, act, r.showSlack)
		}
	}
}

func renderEdgeLabel(buf *bytes.Buffer, e layout.EdgeGeometry, act *cpm.Activity, showSlack bool) {
	label := trimFloat(act.Weight)
	fill := colorAnnotation
	if act.Critical {
		fill = colorCritical
	} else if showSlack {
		label = fmt.Sprintf("%s (+%s)", label, trimFloat(act.Slack))
	}

	mx := (e.Start.X + e.End.X) / 2
	my := (e.Start.Y+e.End.Y)/2 + e.Offset/2
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="11" text-anchor="middle" fill=%q>%s</text>`+"\n",
		mx, my-4, fill, escapeText(label))
}

func renderNodes(buf *bytes.Buffer, l *layout.Result, r *svgRenderer) {
	critical := criticalNodes(r.sched)

	for _, row := range l.Rows {
		for _, id := range row {
			p := l.Positions[id]
			stroke := colorNodeStroke
			if critical[id] {
				stroke = colorCritical
			}
			fmt.Fprintf(buf, `  <circle id="node-%s" cx="%.1f" cy="%.1f" r="%.1f" fill=%q stroke=%q stroke-width="2"/>`+"\n",
				escapeText(id), p.X, p.Y, l.Radius, colorNodeFill, stroke)
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="13" text-anchor="middle" dominant-baseline="central" fill=%q>%s</text>`+"\n",
				p.X, p.Y, colorLabel, escapeText(id))

			if ann, ok := l.Annotations[id]; ok {
				fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="10" text-anchor="middle" fill=%q>%s | %s</text>`+"\n",
					p.X, p.Y-l.Radius-6, colorAnnotation, trimFloat(ann.Earliest), trimFloat(ann.Latest))
			}
		}
	}
}

// criticalNodes collects every node touched by a zero-slack activity, plus
// the members of trivial single-node critical paths.
func criticalNodes(sched *cpm.Result) map[string]bool {
	if sched == nil {
		return nil
	}
	crit := make(map[string]bool)
	for _, a := range sched.Activities {
		if a.Critical {
			crit[a.From] = true
			crit[a.To] = true
		}
	}
	for _, path := range sched.CriticalPaths {
		for _, id := range path {
			crit[id] = true
		}
	}
	return crit
}

// trimFloat formats a weight without trailing zeros: 3 not 3.000, 2.5 not 2.500.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
