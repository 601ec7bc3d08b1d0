package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/beepath/grid"
)

// Sentinel errors for stepper construction.
var (
	// ErrNilGrid is returned if a nil grid pointer is passed.
	ErrNilGrid = errors.New("search: grid is nil")
	// ErrOutOfBounds is returned when start or goal lies outside the grid.
	ErrOutOfBounds = errors.New("search: endpoint out of bounds")
	// ErrSameStartGoal is returned when start and goal coincide.
	ErrSameStartGoal = errors.New("search: start and goal must differ")
	// ErrWallEndpoint is returned when start or goal is a wall.
	ErrWallEndpoint = errors.New("search: endpoint is a wall")
	// ErrUnknownAlgorithm is returned for an unrecognised algorithm.
	ErrUnknownAlgorithm = errors.New("search: unknown algorithm")
)

// Algorithm selects the search strategy.
type Algorithm int

const (
	// Dijkstra explores by distance from the start over a full frontier.
	Dijkstra Algorithm = iota
	// AStar explores by distance plus Manhattan estimate over a growing frontier.
	AStar
)

var algorithmNames = [...]string{
	Dijkstra: "dijkstra",
	AStar:    "astar",
}

// String returns the lower-case algorithm name.
func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// ParseAlgorithm maps "dijkstra", "astar" (or "a*") onto an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dijkstra":
		return Dijkstra, nil
	case "astar", "a*", "a-star":
		return AStar, nil
	}
	return Dijkstra, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Role tells the renderer how to paint the cell carried by an Event.
type Role int

const (
	// Explored marks a cell popped from the frontier and finalised.
	Explored Role = iota
	// Frontier marks a neighbour whose distance or score just improved.
	Frontier
	// Path marks one cell of the reconstructed start→goal path.
	Path
)

var roleNames = [...]string{
	Explored: "explored",
	Frontier: "frontier",
	Path:     "path",
}

// String returns the lower-case role name.
func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a role name produced by MarshalText.
func (r *Role) UnmarshalText(text []byte) error {
	for i, n := range roleNames {
		if n == string(text) {
			*r = Role(i)
			return nil
		}
	}
	return fmt.Errorf("search: unknown role %q", text)
}

// Event is one redraw instruction. Step is the 1-based count of frontier
// pops so far; Path events carry the step that reached the goal.
type Event struct {
	Step int       `json:"step"`
	Role Role      `json:"role"`
	Cell grid.Cell `json:"cell"`
}

// State is the lifecycle of a Stepper.
type State int

const (
	// Running means Next may still yield events.
	Running State = iota
	// Cancelled means a cancellation check stopped the search early.
	Cancelled
	// Terminated means the search reached the goal or exhausted the frontier.
	Terminated
)

var stateNames = [...]string{
	Running:    "running",
	Cancelled:  "cancelled",
	Terminated: "terminated",
}

// String returns the lower-case state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Result is the outcome of a search. Path is nil unless Found.
type Result struct {
	Found    bool         `json:"found"`
	Path     []grid.Coord `json:"path"`
	Explored int          `json:"explored"`
}

// Option configures a Stepper via functional arguments.
type Option func(*Options)

// Options holds the cancellation checks and the observer used by Run.
type Options struct {
	// Ctx cancels the search when done.
	Ctx context.Context
	// Continue is polled before every event; false stops the search.
	Continue func() bool
	// Observer receives every event emitted by Run.
	Observer func(Event)
}

// DefaultOptions returns Options with a background context, an
// always-true Continue and a no-op Observer.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		Continue: func() bool { return true },
		Observer: func(Event) {},
	}
}

// WithContext sets a context whose cancellation stops the search.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithContinue registers a "still running" predicate.
func WithContinue(fn func() bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.Continue = fn
		}
	}
}

// WithObserver registers the redraw callback invoked by Run.
func WithObserver(fn func(Event)) Option {
	return func(o *Options) {
		if fn != nil {
			o.Observer = fn
		}
	}
}
