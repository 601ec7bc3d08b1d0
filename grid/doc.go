// Package grid models the 2-D lattice that the search engine walks: a
// rectangular, fixed-size set of cells carrying wall/start/goal flags and the
// per-run scratch fields (distance, gScore, fScore, visited, previous).
//
// What:
//
//   - New builds a rows×cols grid from a Pattern (empty, random, maze,
//     vertical, horizontal, diagonal, border, filled).
//   - SetWall / ToggleWall / MoveGoal / ClearWalls / FillWalls edit the layout.
//     Out-of-bounds coordinates and edits that touch start or goal are no-ops.
//   - ResetRunState restores every scratch field before a new search.
//   - Neighbors and Manhattan are the shared adjacency and heuristic helpers.
//   - Layout, Parse and String convert a grid to and from portable forms.
//
// Storage:
//
//	Cells live in one row-major slice; index(x,y) = y*cols + x. The
//	"previous" link of a cell is stored as a flat index (-1 for none), so
//	path reconstruction never holds references between cells.
//
// Determinism:
//
//	Stochastic patterns draw from the *rand.Rand supplied via WithSeed or
//	WithRand. Without either, a time-seeded source is used.
//
// Complexity:
//
//   - New, ResetRunState, ClearWalls, FillWalls, Stats: O(rows×cols).
//   - SetWall, ToggleWall, MoveGoal, Neighbors: O(1).
//   - PathTo(start, target): O(path length).
//
// Errors:
//
//   - ErrEmptyGrid: rows or cols < 1.
//   - ErrOutOfBounds: start or goal outside the lattice.
//   - ErrSameStartGoal: start and goal coincide.
//   - ErrOptionViolation: an invalid Option (e.g. density outside [0, 0.6]).
//   - ErrUnknownPattern: ParsePattern got an unrecognised name.
//   - ErrBadLayout: Parse/FromLayout got malformed input.
package grid
