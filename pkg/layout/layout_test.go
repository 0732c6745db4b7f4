package layout

import (
	"reflect"
	"sort"
	"testing"

	"github.com/mbertsch/critpath/pkg/cpm"
	"github.com/mbertsch/critpath/pkg/graph"
)

func snapOf(t *testing.T, edges [][2]string, weights []float64) graph.Snapshot {
	t.Helper()
	g := graph.New()
	for i, e := range edges {
		if err := g.AddEdge(e[0], e[1], weights[i]); err != nil {
			t.Fatalf("AddEdge(%v) error = %v", e, err)
		}
	}
	return g.Snapshot()
}

func TestBuild_LayerMonotonicity(t *testing.T) {
	snap := snapOf(t,
		[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}, {"a", "d"}},
		[]float64{1, 1, 1, 1, 1},
	)

	res := Build(snap, nil, Options{})

	for _, e := range snap.Edges {
		if res.Layers[e.To] <= res.Layers[e.From] {
			t.Errorf("layer[%s]=%d not greater than layer[%s]=%d",
				e.To, res.Layers[e.To], e.From, res.Layers[e.From])
		}
	}
	if res.Layers["a"] != 0 {
		t.Errorf("source layer = %d, want 0", res.Layers["a"])
	}
	// d hangs below the longest incoming path a→b→d / a→c→d.
	if res.Layers["d"] != 2 {
		t.Errorf("layer[d] = %d, want 2", res.Layers["d"])
	}
}

func TestBuild_Determinism(t *testing.T) {
	edges := [][2]string{{"a", "c"}, {"b", "c"}, {"b", "d"}, {"a", "d"}, {"c", "e"}, {"d", "e"}}
	weights := []float64{1, 2, 3, 4, 5, 6}

	first := Build(snapOf(t, edges, weights), nil, Options{})
	second := Build(snapOf(t, edges, weights), nil, Options{})

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over identical snapshots differ")
	}
}

func TestBuild_EdgelessGraph(t *testing.T) {
	g := graph.New()
	g.AddNode("a")
	g.AddNode("b")
	g.AddNode("c")

	res := Build(g.Snapshot(), nil, Options{})

	if len(res.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(res.Rows))
	}
	if got := res.Rows[0]; !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("row 0 = %v, want [a b c]", got)
	}
	for id := range res.Layers {
		if res.Layers[id] != 0 {
			t.Errorf("layer[%s] = %d, want 0", id, res.Layers[id])
		}
	}
}

func TestBuild_BarycenterUncrossesLayers(t *testing.T) {
	// Edge insertion seeds layer 1 as [z y x] while layer 0 reads [a b c]
	// with a→x, b→y, c→z: every edge crosses until the first top-down
	// sweep reorders layer 1 by mean predecessor index.
	g := graph.New()
	g.AddNode("a")
	g.AddNode("b")
	g.AddNode("c")
	g.AddEdge("c", "z", 1)
	g.AddEdge("b", "y", 1)
	g.AddEdge("a", "x", 1)

	res := Build(g.Snapshot(), nil, Options{})

	row := res.Rows[1]
	if !reflect.DeepEqual(row, []string{"x", "y", "z"}) {
		t.Errorf("layer 1 order = %v, want [x y z]", row)
	}
}

func TestBuild_VerticalCentering(t *testing.T) {
	// Layer 0 has one node, layer 1 has three: the single node must sit at
	// the vertical center of the taller layer's block.
	snap := snapOf(t,
		[][2]string{{"hub", "a"}, {"hub", "b"}, {"hub", "c"}},
		[]float64{1, 1, 1},
	)

	res := Build(snap, nil, Options{})

	mid := (res.Positions["a"].Y + res.Positions["c"].Y) / 2
	if res.Positions["hub"].Y != mid {
		t.Errorf("hub Y = %g, want centered at %g", res.Positions["hub"].Y, mid)
	}
}

func TestBuild_ParallelEdgeOffsets(t *testing.T) {
	snap := snapOf(t,
		[][2]string{{"s", "a"}, {"s", "b"}, {"s", "c"}},
		[]float64{1, 1, 1},
	)

	res := Build(snap, nil, Options{})

	offsets := make([]float64, len(res.Edges))
	sum := 0.0
	for i, e := range res.Edges {
		offsets[i] = e.Offset
		sum += e.Offset
	}

	if sum != 0 {
		t.Errorf("offsets %v not symmetric around 0 (sum=%g)", offsets, sum)
	}
	if !sort.Float64sAreSorted(offsets) {
		t.Errorf("offsets %v not monotone in edge rank", offsets)
	}
	if offsets[0] != -offsets[len(offsets)-1] {
		t.Errorf("extreme offsets %g and %g not mirrored", offsets[0], offsets[len(offsets)-1])
	}
}

func TestBuild_SingleEdgeNoOffset(t *testing.T) {
	snap := snapOf(t, [][2]string{{"a", "b"}}, []float64{1})

	res := Build(snap, nil, Options{})

	if res.Edges[0].Offset != 0 {
		t.Errorf("sole edge offset = %g, want 0", res.Edges[0].Offset)
	}
}

func TestBuild_ControlPointFloor(t *testing.T) {
	snap := snapOf(t, [][2]string{{"a", "b"}}, []float64{1})

	res := Build(snap, nil, Options{})

	e := res.Edges[0]
	ext := e.Control1.X - e.Start.X
	if ext < minControl {
		t.Errorf("control extension = %g, below floor %g", ext, minControl)
	}
	if e.Control1.Y != e.Start.Y || e.Control2.Y != e.End.Y {
		t.Error("control points must extend horizontally")
	}
	if e.Start.X != res.Positions["a"].X+res.Radius {
		t.Errorf("start X = %g, want source + radius", e.Start.X)
	}
	if e.End.X != res.Positions["b"].X-res.Radius {
		t.Errorf("end X = %g, want target - radius", e.End.X)
	}
}

func TestBuild_ScheduleAnnotations(t *testing.T) {
	snap := snapOf(t, [][2]string{{"a", "b"}}, []float64{4})
	sched, err := cpm.Compute(snap)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	res := Build(snap, sched, Options{})

	ann, ok := res.Annotations["b"]
	if !ok {
		t.Fatal("missing annotation for b")
	}
	if ann.Earliest != 4 || ann.Latest != 4 {
		t.Errorf("annotation b = %+v, want E=4 L=4", ann)
	}
	if Build(snap, nil, Options{}).Annotations != nil {
		t.Error("annotations present without a schedule")
	}
}

func TestBuild_SpacingOptions(t *testing.T) {
	snap := snapOf(t, [][2]string{{"a", "b"}}, []float64{1})

	res := Build(snap, nil, Options{LayerGap: 100, MarginX: 10})

	dx := res.Positions["b"].X - res.Positions["a"].X
	if dx != 100 {
		t.Errorf("layer gap = %g, want 100", dx)
	}
	if res.Positions["a"].X != 10 {
		t.Errorf("margin X = %g, want 10", res.Positions["a"].X)
	}
}
