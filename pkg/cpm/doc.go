// Package cpm implements the critical path method over a weighted DAG of
// activities.
//
// [Compute] topologically orders the snapshot's nodes (Kahn's algorithm),
// propagates earliest event times forward and latest event times backward,
// derives per-activity ES/EF/LS/LF and slack, and enumerates all critical
// paths. An activity is critical when the magnitude of its slack is below
// [Epsilon]; weights are floats, so the comparison is never an exact zero.
//
// The engine is a pure function over an immutable [graph.Snapshot]: no
// shared state, no I/O, bounded O(V+E) time. Its single failure mode is
// [*CycleError], returned with no partial result when the snapshot is not
// acyclic.
package cpm
