// Package layout computes a readable 2-D drawing of an activity graph.
//
// The procedure is the classic layered (Sugiyama-style) approach, cut down
// to a fixed heuristic budget:
//
//  1. Longest-path layering via Kahn's algorithm - each node's layer is the
//     length of its longest incoming path, sources sit on layer 0.
//  2. Four alternating barycenter sweeps reorder nodes within each layer by
//     the mean index of their neighbors in the adjacent layer, reducing
//     edge crossings. The budget is fixed: no convergence check.
//  3. Coordinate assignment lays layers out left to right with fixed
//     spacing, vertically centering each layer against the tallest one.
//  4. Edges leaving the same node are fanned across a fixed spread so
//     parallel activities stay visually distinct, and every edge gets cubic
//     control points extended horizontally by a third of its span.
//
// Everything is deterministic for a fixed snapshot, and the engine never
// fails: it is only invoked after the scheduling engine has accepted the
// graph, and it tolerates even cyclic input by leaving unreachable nodes on
// layer 0.
package layout
