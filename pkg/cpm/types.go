package cpm

import "fmt"

// Epsilon is the slack tolerance below which an activity counts as critical.
// Weights are floats, so forward and backward passes accumulate rounding
// noise; comparing slack against an exact zero would misclassify activities.
const Epsilon = 1e-9

// CycleError reports that the input graph is not acyclic. It is the only
// failure mode of [Compute]; no partial result accompanies it.
type CycleError struct {
	// Sorted is how many nodes the topological sort managed to order.
	Sorted int
	// Total is the node count of the input graph.
	Total int
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("graph contains a cycle (%d of %d nodes sorted); critical path analysis requires an acyclic graph", e.Sorted, e.Total)
}

// Activity is one scheduled edge with its critical path metrics.
type Activity struct {
	From   string  `json:"from" bson:"from"`
	To     string  `json:"to" bson:"to"`
	Weight float64 `json:"weight" bson:"weight"`

	EarlyStart  float64 `json:"es" bson:"es"`
	EarlyFinish float64 `json:"ef" bson:"ef"`
	LateStart   float64 `json:"ls" bson:"ls"`
	LateFinish  float64 `json:"lf" bson:"lf"`
	Slack       float64 `json:"slack" bson:"slack"`
	Critical    bool    `json:"critical" bson:"critical"`
}

// Result is the complete schedule computed for one graph snapshot. It is a
// disposable artifact: discard and recompute whenever the graph changes.
//
// Earliest and Latest are parallel to Nodes, which preserves the node
// iteration order of the input snapshot. Activities preserves edge insertion
// order.
type Result struct {
	Nodes    []string  `json:"nodes" bson:"nodes"`
	Earliest []float64 `json:"earliest" bson:"earliest"`
	Latest   []float64 `json:"latest" bson:"latest"`

	Activities []Activity `json:"activities" bson:"activities"`
	Duration   float64    `json:"duration" bson:"duration"`

	// CriticalPaths lists every start-to-end node sequence along zero-slack
	// activities. A start node that is itself an end node (the isolated-node
	// case) is reported as a length-1 path.
	CriticalPaths [][]string `json:"critical_paths" bson:"critical_paths"`
}

// EarliestOf returns the earliest event time for a node identifier, or 0 if
// the identifier is not part of the result.
func (r *Result) EarliestOf(id string) float64 { return r.timeOf(id, r.Earliest) }

// LatestOf returns the latest event time for a node identifier, or 0 if the
// identifier is not part of the result.
func (r *Result) LatestOf(id string) float64 { return r.timeOf(id, r.Latest) }

func (r *Result) timeOf(id string, times []float64) float64 {
	for i, n := range r.Nodes {
		if n == id {
			return times[i]
		}
	}
	return 0
}
