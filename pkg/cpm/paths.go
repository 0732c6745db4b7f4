package cpm

import "github.com/mbertsch/critpath/pkg/graph"

// criticalPaths enumerates every start-to-end node sequence through the
// critical-only adjacency. Starts are the zero-in-degree nodes over all
// edges; a path is emitted when the walk reaches a node whose earliest time
// equals the project duration and no critical activity continues past it.
// The critical subgraph is a subgraph of the input DAG, so the depth-first
// walk needs no cycle guard.
func criticalPaths(snap graph.Snapshot, idx map[string]int, earliest []float64, duration float64, activities []Activity) [][]string {
	n := len(snap.Nodes)

	critOut := make([][]int, n)
	for _, a := range activities {
		if !a.Critical {
			continue
		}
		u, v := idx[a.From], idx[a.To]
		// Parallel critical activities between the same pair add nothing to
		// the node sequence; keep one.
		if !containsInt(critOut[u], v) {
			critOut[u] = append(critOut[u], v)
		}
	}

	degree := snap.InDegrees(idx)

	var paths [][]string
	var walk func(v int, trail []int)
	walk = func(v int, trail []int) {
		trail = append(trail, v)
		if len(critOut[v]) == 0 {
			if earliest[v] >= duration-Epsilon {
				path := make([]string, len(trail))
				for i, p := range trail {
					path[i] = snap.Nodes[p]
				}
				paths = append(paths, path)
			}
			return
		}
		for _, w := range critOut[v] {
			walk(w, trail)
		}
	}

	for i := range snap.Nodes {
		if degree[i] == 0 {
			walk(i, nil)
		}
	}
	return paths
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
