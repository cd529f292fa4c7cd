// Package walker implements a greedy, backtracking grid walk.
//
// From the current cell the walker moves to the 8-connected neighbour that is
// closest to the end cell (Chebyshev distance, first of the fixed neighbour
// order wins a tie), skipping cells that are blocked or that touch any earlier
// cell of its own path. A cell without such a neighbour is a dead end: it is
// blocked in the grid for good and the walker steps back to its predecessor.
//
// It exposes two entry points:
//
//   - Run / FindPath: walk to completion and get a Result.
//   - Step: advance one emitted visit/unvisit event at a time to drive UIs.
//
// The walk is not optimal and may report ErrNoPath even when a route exists.
package walker
