// Package graph holds the mutable project graph and the immutable snapshots
// consumed by the scheduling and layout engines.
//
// A [Graph] is a set of unique node identifiers plus an ordered sequence of
// weighted directed edges (activities). Input validation happens here, at
// the mutation boundary: blank identifiers, self-loops, and negative or
// non-finite weights are rejected so the algorithms downstream never see
// them. Cycle detection is deliberately not done here - it is the scheduling
// engine's failure mode, reported once per computation.
//
// Engines never receive a live *Graph. They take a [Snapshot], a versioned
// value-copy, which makes recomputation idempotent and makes concurrent
// reads safe as long as each computation gets its own snapshot.
package graph
