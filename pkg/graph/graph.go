package graph

import (
	"errors"
	"math"
	"slices"
	"strings"
)

var (
	// ErrEmptyNodeID is returned by [Graph.AddNode] and [Graph.AddEdge] when
	// a node identifier is empty after trimming surrounding whitespace.
	ErrEmptyNodeID = errors.New("node ID must not be empty")

	// ErrSelfLoop is returned by [Graph.AddEdge] when the source and target
	// identifiers are equal. Activities cannot depend on themselves.
	ErrSelfLoop = errors.New("edge endpoints must differ")

	// ErrInvalidWeight is returned by [Graph.AddEdge] when the weight is
	// negative, NaN, or infinite. Durations must be finite and non-negative.
	ErrInvalidWeight = errors.New("edge weight must be a finite non-negative number")
)

// Edge is a directed activity between two nodes with a non-negative duration.
// Edges between the same ordered pair may repeat; each is a distinct activity.
type Edge struct {
	From   string  `json:"from" bson:"from"`
	To     string  `json:"to" bson:"to"`
	Weight float64 `json:"weight" bson:"weight"`
}

// Graph holds the evolving node set and edge sequence of a project plan.
// Node identifiers are unique and kept in insertion order so that derived
// computations iterate deterministically. Edge insertion order is preserved;
// it matters for rendering (parallel-edge offsets) but not for scheduling.
//
// Graph is mutated only through AddNode, AddEdge, and Clear. The scheduling
// and layout engines never touch a Graph directly - they consume the
// value-copy returned by [Graph.Snapshot].
//
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	order   []string
	index   map[string]struct{}
	edges   []Edge
	version uint64
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{index: make(map[string]struct{})}
}

// AddNode adds a node identifier to the graph. The identifier is trimmed of
// surrounding whitespace; adding an identifier that already exists is a no-op.
// Returns ErrEmptyNodeID if the trimmed identifier is empty.
func (g *Graph) AddNode(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyNodeID
	}
	if _, ok := g.index[id]; ok {
		return nil
	}
	g.index[id] = struct{}{}
	g.order = append(g.order, id)
	g.version++
	return nil
}

// AddEdge appends a directed activity from one node to another. Endpoints
// are trimmed and implicitly added to the node set if unseen. Returns
// ErrEmptyNodeID for a blank endpoint, ErrSelfLoop when both endpoints are
// the same node, and ErrInvalidWeight for a negative, NaN, or infinite
// weight. On error the graph is left unchanged.
func (g *Graph) AddEdge(from, to string, weight float64) error {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return ErrEmptyNodeID
	}
	if from == to {
		return ErrSelfLoop
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return ErrInvalidWeight
	}
	if err := g.AddNode(from); err != nil {
		return err
	}
	if err := g.AddNode(to); err != nil {
		return err
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: weight})
	g.version++
	return nil
}

// Clear removes all nodes and edges. The version counter keeps advancing so
// stale snapshots remain distinguishable from the cleared state.
func (g *Graph) Clear() {
	g.order = nil
	g.edges = nil
	g.index = make(map[string]struct{})
	g.version++
}

// Has reports whether the identifier exists in the node set.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns a copy of the node identifiers in insertion order.
func (g *Graph) Nodes() []string { return slices.Clone(g.order) }

// Edges returns a copy of the edge sequence in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Version returns the mutation counter. It increments on every successful
// AddNode, AddEdge, and Clear, so derived results can be invalidated by
// comparing versions.
func (g *Graph) Version() uint64 { return g.version }

// Snapshot returns an immutable value-copy of the graph for the scheduling
// and layout engines. Later mutations of the graph do not affect it.
func (g *Graph) Snapshot() Snapshot {
	return Snapshot{
		Version: g.version,
		Nodes:   slices.Clone(g.order),
		Edges:   slices.Clone(g.edges),
	}
}
