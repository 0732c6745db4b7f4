package graph

// Snapshot is an immutable value-copy of a graph at a particular version.
// Both engines take a Snapshot by value, so a session can keep mutating its
// Graph while earlier computations proceed on consistent inputs.
type Snapshot struct {
	Version uint64   `json:"version"`
	Nodes   []string `json:"nodes"`
	Edges   []Edge   `json:"edges"`
}

// Index returns a map from node identifier to its position in Nodes.
// Positions index the parallel arrays produced by the scheduling engine.
func (s Snapshot) Index() map[string]int {
	m := make(map[string]int, len(s.Nodes))
	for i, id := range s.Nodes {
		m[id] = i
	}
	return m
}

// Outgoing builds the forward adjacency as edge indices per node position.
// The slice is indexed by node position (see [Snapshot.Index]); each entry
// lists indices into Edges in insertion order.
func (s Snapshot) Outgoing(idx map[string]int) [][]int {
	out := make([][]int, len(s.Nodes))
	for ei, e := range s.Edges {
		u := idx[e.From]
		out[u] = append(out[u], ei)
	}
	return out
}

// InDegrees counts incoming edges per node position.
func (s Snapshot) InDegrees(idx map[string]int) []int {
	deg := make([]int, len(s.Nodes))
	for _, e := range s.Edges {
		deg[idx[e.To]]++
	}
	return deg
}
