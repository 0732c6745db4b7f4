package layout

// Default geometry constants, in user units (pixels in the SVG sink).
const (
	// DefaultLayerGap is the horizontal distance between adjacent layers.
	DefaultLayerGap = 160.0
	// DefaultNodeGap is the vertical distance between nodes within a layer.
	DefaultNodeGap = 70.0
	// DefaultRadius is the node draw radius.
	DefaultRadius = 26.0
	// DefaultEdgeSpread is the total vertical spread across which edges
	// leaving the same node are fanned out.
	DefaultEdgeSpread = 36.0
	// DefaultMarginX and DefaultMarginY pad the drawing frame.
	DefaultMarginX = 60.0
	DefaultMarginY = 40.0

	// sweeps is the fixed barycenter budget: no convergence check, no
	// improvement measurement, just four alternating passes.
	sweeps = 4

	// minControl is the floor on the horizontal control point extension so
	// short edges still leave the node circle smoothly.
	minControl = 30.0
)

// Point is a 2-D coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// EdgeGeometry carries the cubic curve for one activity. Start and End sit
// on the node circle boundaries, already displaced by Offset; Control1 and
// Control2 extend horizontally to keep the curve smooth.
type EdgeGeometry struct {
	From   string  `json:"from" bson:"from"`
	To     string  `json:"to" bson:"to"`
	Offset float64 `json:"offset" bson:"offset"`

	Start    Point `json:"start" bson:"start"`
	Control1 Point `json:"c1" bson:"c1"`
	Control2 Point `json:"c2" bson:"c2"`
	End      Point `json:"end" bson:"end"`
}

// Annotation attaches the scheduled event times to a node label. Present
// only when a schedule was supplied to [Build].
type Annotation struct {
	Earliest float64 `json:"earliest" bson:"earliest"`
	Latest   float64 `json:"latest" bson:"latest"`
}

// Result is the computed drawing geometry for one graph snapshot. Like the
// schedule, it is a disposable artifact, recomputed on any graph change.
type Result struct {
	// Layers maps each node to its layer index (longest incoming path).
	Layers map[string]int `json:"layers" bson:"layers"`
	// Rows lists each layer's nodes in final left-to-right (drawn
	// top-to-bottom) order after crossing reduction.
	Rows [][]string `json:"rows" bson:"rows"`
	// Positions maps each node to its center coordinate.
	Positions map[string]Point `json:"positions" bson:"positions"`
	// Edges carries per-activity curve geometry in edge insertion order.
	Edges []EdgeGeometry `json:"edges" bson:"edges"`
	// Annotations carries per-node event times when a schedule was supplied.
	Annotations map[string]Annotation `json:"annotations,omitempty" bson:"annotations,omitempty"`

	Radius float64 `json:"radius" bson:"radius"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Options bundles the spacing knobs for [Build]. The zero value of each
// field falls back to the package default.
type Options struct {
	LayerGap   float64
	NodeGap    float64
	Radius     float64
	EdgeSpread float64
	MarginX    float64
	MarginY    float64
}

func (o Options) withDefaults() Options {
	if o.LayerGap <= 0 {
		o.LayerGap = DefaultLayerGap
	}
	if o.NodeGap <= 0 {
		o.NodeGap = DefaultNodeGap
	}
	if o.Radius <= 0 {
		o.Radius = DefaultRadius
	}
	if o.EdgeSpread <= 0 {
		o.EdgeSpread = DefaultEdgeSpread
	}
	if o.MarginX <= 0 {
		o.MarginX = DefaultMarginX
	}
	if o.MarginY <= 0 {
		o.MarginY = DefaultMarginY
	}
	return o
}
