// Package search runs shortest-path searches over a grid.Grid and exposes
// them as a synchronous stream of step events.
//
// What:
//
//   - NewStepper validates the endpoints, resets the grid's run state and
//     returns a Stepper. Each call to Next performs at most one frontier
//     pop (plus its neighbour relaxations) and hands back one Event.
//   - All adapts a Stepper to iter.Seq[Event] for range-over-func loops.
//   - Run drives a Stepper to completion and feeds every event to the
//     observer registered with WithObserver.
//
// Algorithms:
//
//   - Dijkstra seeds the frontier with every open cell (start at 0, the rest
//     at +Inf). It stops with "not found" as soon as the cheapest frontier
//     cell is unreachable.
//   - AStar seeds the frontier with the start only and grows it as
//     neighbours are discovered; f = g + Manhattan(cell, goal).
//
// Both use an indexed binary heap. Ties are broken by row-major cell index
// for Dijkstra and by insertion order into the open set for AStar, so a
// fixed grid always yields the same path.
//
// Events:
//
//	Explored  a cell was popped and finalised (one per Next that advances).
//	Frontier  a neighbour's distance/score improved.
//	Path      one cell of the final start→goal path, emitted in order.
//
// Cancellation:
//
//	WithContext and WithContinue are consulted before every event. Once
//	either reports "stop", the Stepper moves to Cancelled, emits nothing
//	further and never touches the grid again. Cancellation and "no path"
//	are results, not errors.
//
// Complexity:
//
//   - Dijkstra: O(N log N) time, O(N) memory, N = rows×cols.
//   - AStar: O(E log E) time over the cells actually discovered.
//
// Errors:
//
//   - ErrNilGrid: g is nil.
//   - ErrOutOfBounds: start or goal outside the grid.
//   - ErrSameStartGoal: start equals goal.
//   - ErrWallEndpoint: start or goal is a wall.
//   - ErrUnknownAlgorithm: unrecognised Algorithm value or name.
package search
