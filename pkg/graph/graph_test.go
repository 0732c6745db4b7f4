package graph

import (
	"errors"
	"math"
	"testing"
)

func TestAddNode_TrimsAndDeduplicates(t *testing.T) {
	g := New()
	if err := g.AddNode("  demo  "); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if err := g.AddNode("demo"); err != nil {
		t.Fatalf("AddNode() duplicate error = %v", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
	if !g.Has("demo") {
		t.Error("Has(demo) = false, want true")
	}
}

func TestAddNode_Empty(t *testing.T) {
	g := New()
	if err := g.AddNode("   "); !errors.Is(err, ErrEmptyNodeID) {
		t.Errorf("AddNode() error = %v, want ErrEmptyNodeID", err)
	}
	if g.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", g.NodeCount())
	}
}

func TestAddEdge_ImplicitEndpoints(t *testing.T) {
	g := New()
	if err := g.AddEdge("a", "b", 3); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", g.NodeCount(), g.EdgeCount())
	}
}

func TestAddEdge_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		weight   float64
		want     error
	}{
		{"self loop", "a", "a", 1, ErrSelfLoop},
		{"blank from", "", "b", 1, ErrEmptyNodeID},
		{"blank to", "a", "  ", 1, ErrEmptyNodeID},
		{"negative weight", "a", "b", -1, ErrInvalidWeight},
		{"nan weight", "a", "b", math.NaN(), ErrInvalidWeight},
		{"inf weight", "a", "b", math.Inf(1), ErrInvalidWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			if err := g.AddEdge(tt.from, tt.to, tt.weight); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge() error = %v, want %v", err, tt.want)
			}
			if g.NodeCount() != 0 || g.EdgeCount() != 0 {
				t.Errorf("rejected edge mutated graph: (%d nodes, %d edges)", g.NodeCount(), g.EdgeCount())
			}
		})
	}
}

func TestAddEdge_ParallelEdgesKept(t *testing.T) {
	g := New()
	g.AddEdge("a", "b", 1)
	g.AddEdge("a", "b", 2)
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestSnapshot_Isolation(t *testing.T) {
	g := New()
	g.AddEdge("a", "b", 3)
	snap := g.Snapshot()

	g.AddEdge("b", "c", 2)
	g.Clear()

	if len(snap.Nodes) != 2 || len(snap.Edges) != 1 {
		t.Errorf("snapshot changed after mutation: %d nodes, %d edges", len(snap.Nodes), len(snap.Edges))
	}
	if snap.Nodes[0] != "a" || snap.Nodes[1] != "b" {
		t.Errorf("snapshot nodes = %v, want [a b]", snap.Nodes)
	}
}

func TestVersion_AdvancesOnMutation(t *testing.T) {
	g := New()
	v0 := g.Version()
	g.AddNode("a")
	v1 := g.Version()
	g.AddNode("a") // no-op duplicate
	v2 := g.Version()
	g.Clear()
	v3 := g.Version()

	if v1 <= v0 {
		t.Error("AddNode did not advance version")
	}
	if v2 != v1 {
		t.Error("duplicate AddNode advanced version")
	}
	if v3 <= v2 {
		t.Error("Clear did not advance version")
	}
}

func TestSnapshot_Adjacency(t *testing.T) {
	g := New()
	g.AddEdge("a", "b", 1)
	g.AddEdge("a", "c", 2)
	g.AddEdge("b", "c", 3)
	snap := g.Snapshot()

	idx := snap.Index()
	out := snap.Outgoing(idx)
	deg := snap.InDegrees(idx)

	if len(out[idx["a"]]) != 2 {
		t.Errorf("outgoing(a) = %d edges, want 2", len(out[idx["a"]]))
	}
	if deg[idx["c"]] != 2 {
		t.Errorf("indegree(c) = %d, want 2", deg[idx["c"]])
	}
	if deg[idx["a"]] != 0 {
		t.Errorf("indegree(a) = %d, want 0", deg[idx["a"]])
	}
}
