package layout

import "github.com/mbertsch/critpath/pkg/graph"

// assignLayers computes the longest-path layering via Kahn's algorithm:
// each node lands one past the deepest of its predecessors, sources land on
// layer 0. The pass is independent of the scheduling engine, so a cyclic
// snapshot degrades gracefully - nodes trapped on a cycle never reach zero
// in-degree and stay at their default layer 0 instead of failing.
func assignLayers(snap graph.Snapshot, idx map[string]int, out [][]int) []int {
	degree := snap.InDegrees(idx)
	layers := make([]int, len(snap.Nodes))

	queue := make([]int, 0, len(snap.Nodes))
	for i, d := range degree {
		if d == 0 {
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		for _, ei := range out[u] {
			v := idx[snap.Edges[ei].To]
			if l := layers[u] + 1; l > layers[v] {
				layers[v] = l
			}
			degree[v]--
			if degree[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	return layers
}
