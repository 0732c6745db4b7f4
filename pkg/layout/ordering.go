package layout

import (
	"math"
	"sort"

	"github.com/mbertsch/critpath/pkg/graph"
)

// orderRows groups node positions by layer (initially in snapshot order)
// and runs the fixed barycenter sweep budget. Top-down sweeps reorder each
// layer by the mean position of predecessors in the layer immediately
// before it; bottom-up sweeps mirror with successors in the layer after.
// Nodes without neighbors in the reference layer keep a +Inf key and sort
// last. Sorting is stable, so ties and neighbor-less nodes retain their
// previous relative order - the whole procedure is deterministic for a
// fixed snapshot.
func orderRows(snap graph.Snapshot, idx map[string]int, layers []int) [][]int {
	maxLayer := 0
	for _, l := range layers {
		if l > maxLayer {
			maxLayer = l
		}
	}

	rows := make([][]int, maxLayer+1)
	for i := range snap.Nodes {
		l := layers[i]
		rows[l] = append(rows[l], i)
	}

	// Neighbor lists per node position, restricted at sweep time to the
	// adjacent layer.
	preds := make([][]int, len(snap.Nodes))
	succs := make([][]int, len(snap.Nodes))
	for _, e := range snap.Edges {
		u, v := idx[e.From], idx[e.To]
		succs[u] = append(succs[u], v)
		preds[v] = append(preds[v], u)
	}

	for s := 0; s < sweeps; s++ {
		if s%2 == 0 {
			for r := 1; r <= maxLayer; r++ {
				sortByBarycenter(rows[r], rows[r-1], preds, layers, r-1)
			}
		} else {
			for r := maxLayer - 1; r >= 0; r-- {
				sortByBarycenter(rows[r], rows[r+1], succs, layers, r+1)
			}
		}
	}

	return rows
}

// sortByBarycenter stably reorders row by each node's mean neighbor index
// within refRow. refLayer filters neighbors to the adjacent layer only.
func sortByBarycenter(row, refRow []int, neighbors [][]int, layers []int, refLayer int) {
	pos := make(map[int]int, len(refRow))
	for i, v := range refRow {
		pos[v] = i
	}

	keys := make(map[int]float64, len(row))
	for _, v := range row {
		sum, count := 0.0, 0
		for _, nb := range neighbors[v] {
			if layers[nb] == refLayer {
				sum += float64(pos[nb])
				count++
			}
		}
		if count == 0 {
			keys[v] = math.Inf(1)
		} else {
			keys[v] = sum / float64(count)
		}
	}

	sort.SliceStable(row, func(i, j int) bool { return keys[row[i]] < keys[row[j]] })
}
