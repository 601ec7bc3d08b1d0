// Package service hosts grid sessions: it creates grids, applies edits,
// persists layouts through a store.Store and runs searches under an
// animate.Guard so that each grid has at most one search in flight.
//
// Every operation loads the layout, works on a private grid.Grid and saves
// it back, so concurrent requests never share a Grid value.
//
// Errors:
//
//   - store.ErrNotFound: unknown or expired grid ID.
//   - ErrInvalidRequest: malformed input (wrapping the grid/search cause).
//   - animate.ErrSearchInProgress: a search already runs on the grid.
package service
