package layout

import (
	"math"

	"github.com/mbertsch/critpath/pkg/cpm"
	"github.com/mbertsch/critpath/pkg/graph"
)

// Build computes the drawing geometry for a graph snapshot: longest-path
// layering, barycenter crossing reduction, left-to-right coordinates, and
// per-activity curve geometry with parallel-edge separation. It never
// fails; disconnected and edgeless graphs simply produce a single layer of
// isolated nodes.
//
// sched is optional. When non-nil its per-node event times are attached as
// label annotations; geometry depends only on topology.
func Build(snap graph.Snapshot, sched *cpm.Result, opts Options) *Result {
	o := opts.withDefaults()

	idx := snap.Index()
	out := snap.Outgoing(idx)

	layers := assignLayers(snap, idx, out)
	rows := orderRows(snap, idx, layers)

	res := &Result{
		Layers:    make(map[string]int, len(snap.Nodes)),
		Rows:      make([][]string, len(rows)),
		Positions: make(map[string]Point, len(snap.Nodes)),
		Radius:    o.Radius,
	}
	for i, id := range snap.Nodes {
		res.Layers[id] = layers[i]
	}

	tallest := 0
	for _, row := range rows {
		if len(row) > tallest {
			tallest = len(row)
		}
	}

	// Layers run left to right; each layer's node block is centered against
	// the tallest layer so the drawing balances vertically.
	for r, row := range rows {
		ids := make([]string, len(row))
		x := o.MarginX + float64(r)*o.LayerGap
		top := o.MarginY + float64(tallest-len(row))*o.NodeGap/2
		for i, v := range row {
			ids[i] = snap.Nodes[v]
			res.Positions[ids[i]] = Point{X: x, Y: top + float64(i)*o.NodeGap}
		}
		res.Rows[r] = ids
	}

	res.Width = 2*o.MarginX + float64(len(rows)-1)*o.LayerGap
	res.Height = 2 * o.MarginY
	if tallest > 0 {
		res.Height += float64(tallest-1) * o.NodeGap
	}

	res.Edges = edgeGeometry(snap, res.Positions, o)

	if sched != nil {
		res.Annotations = make(map[string]Annotation, len(sched.Nodes))
		for i, id := range sched.Nodes {
			res.Annotations[id] = Annotation{Earliest: sched.Earliest[i], Latest: sched.Latest[i]}
		}
	}

	return res
}

// edgeGeometry fans out same-source edges across the configured spread and
// derives cubic control points for each activity.
func edgeGeometry(snap graph.Snapshot, positions map[string]Point, o Options) []EdgeGeometry {
	fanOut := make(map[string]int, len(snap.Nodes))
	for _, e := range snap.Edges {
		fanOut[e.From]++
	}

	rank := make(map[string]int, len(fanOut))
	geom := make([]EdgeGeometry, len(snap.Edges))
	for i, e := range snap.Edges {
		k := fanOut[e.From]
		r := rank[e.From]
		rank[e.From]++

		// Offsets are symmetric around zero and monotone in edge rank.
		offset := 0.0
		if k > 1 {
			offset = -o.EdgeSpread/2 + float64(r)*o.EdgeSpread/float64(k-1)
		}

		src := positions[e.From]
		dst := positions[e.To]
		start := Point{X: src.X + o.Radius, Y: src.Y + offset}
		end := Point{X: dst.X - o.Radius, Y: dst.Y + offset}
		ext := math.Max((end.X-start.X)/3, minControl)

		geom[i] = EdgeGeometry{
			From:     e.From,
			To:       e.To,
			Offset:   offset,
			Start:    start,
			Control1: Point{X: start.X + ext, Y: start.Y},
			Control2: Point{X: end.X - ext, Y: end.Y},
			End:      end,
		}
	}
	return geom
}
