package cpm

import (
	"math"

	"github.com/mbertsch/critpath/pkg/graph"
)

// Compute runs the critical path method over a graph snapshot and returns
// the full schedule: per-node earliest/latest event times, per-activity
// ES/EF/LS/LF/slack metrics, total project duration, and every critical
// path. The snapshot is read-only input; Compute never mutates it.
//
// The only failure mode is a *CycleError when the snapshot is not acyclic,
// in which case no partial result is returned. An empty edge sequence is
// legitimate: every event time is zero and each node forms its own trivial
// critical path.
func Compute(snap graph.Snapshot) (*Result, error) {
	idx := snap.Index()
	out := snap.Outgoing(idx)

	order, err := topoOrder(snap, idx, out)
	if err != nil {
		return nil, err
	}

	n := len(snap.Nodes)
	earliest := make([]float64, n)
	for _, u := range order {
		for _, ei := range out[u] {
			e := snap.Edges[ei]
			if t := earliest[u] + e.Weight; t > earliest[idx[e.To]] {
				earliest[idx[e.To]] = t
			}
		}
	}

	// Multiple sink-like nodes are possible; the project ends at the latest one.
	duration := 0.0
	for _, t := range earliest {
		duration = math.Max(duration, t)
	}

	latest := make([]float64, n)
	for i := range latest {
		latest[i] = duration
	}
	for i := len(order) - 1; i >= 0; i-- {
		u := order[i]
		for _, ei := range out[u] {
			e := snap.Edges[ei]
			if t := latest[idx[e.To]] - e.Weight; t < latest[u] {
				latest[u] = t
			}
		}
	}

	activities := make([]Activity, len(snap.Edges))
	for ei, e := range snap.Edges {
		es := earliest[idx[e.From]]
		lf := latest[idx[e.To]]
		a := Activity{
			From:        e.From,
			To:          e.To,
			Weight:      e.Weight,
			EarlyStart:  es,
			EarlyFinish: es + e.Weight,
			LateStart:   lf - e.Weight,
			LateFinish:  lf,
		}
		a.Slack = a.LateStart - a.EarlyStart
		a.Critical = math.Abs(a.Slack) < Epsilon
		activities[ei] = a
	}

	return &Result{
		Nodes:         snap.Nodes,
		Earliest:      earliest,
		Latest:        latest,
		Activities:    activities,
		Duration:      duration,
		CriticalPaths: criticalPaths(snap, idx, earliest, duration, activities),
	}, nil
}

// topoOrder orders node positions with Kahn's algorithm. When the order
// comes up short of the node count, the leftover nodes sit on a cycle and
// a *CycleError is returned.
func topoOrder(snap graph.Snapshot, idx map[string]int, out [][]int) ([]int, error) {
	degree := snap.InDegrees(idx)

	queue := make([]int, 0, len(snap.Nodes))
	for i, d := range degree {
		if d == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, 0, len(snap.Nodes))
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)

		for _, ei := range out[u] {
			v := idx[snap.Edges[ei].To]
			degree[v]--
			if degree[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	if len(order) != len(snap.Nodes) {
		return nil, &CycleError{Sorted: len(order), Total: len(snap.Nodes)}
	}
	return order, nil
}
