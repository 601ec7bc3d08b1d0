package search

import (
	"container/heap"
	"fmt"
	"iter"
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/katalvlaran/beepath/grid"
)

// Stepper is a paused search. Each Next performs at most one frontier pop
// and returns the next pending Event.
//
// The Stepper borrows its grid while Running and drops the reference as
// soon as it reaches Cancelled or Terminated. The grid must not be edited
// while a Stepper is Running.
type Stepper struct {
	g           *grid.Grid
	algo        Algorithm
	start, goal grid.Coord
	opts        Options

	open    frontier
	entries []*entry              // by cell index; nil when never queued
	inOpen  mapset.Set[grid.Coord] // AStar open-set membership
	seq     int

	pending []Event
	reached bool
	path    []grid.Coord
	step    int

	state  State
	result Result
}

// NewStepper validates the endpoints, resets g's run state and seeds the
// frontier for algo.
//
// Steps:
//  1. Resolve options.
//  2. Reject nil grid, unknown algorithm, out-of-bounds, equal or walled
//     endpoints.
//  3. ResetRunState.
//  4. Dijkstra: queue every open cell, start at 0 and the rest at +Inf.
//     AStar: queue the start with f = Manhattan(start, goal).
func NewStepper(g *grid.Grid, start, goal grid.Coord, algo Algorithm, opts ...Option) (*Stepper, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if g == nil {
		return nil, ErrNilGrid
	}
	if algo != Dijkstra && algo != AStar {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algo)
	}
	if !g.InBounds(start) || !g.InBounds(goal) {
		return nil, fmt.Errorf("%w: start %s goal %s in %dx%d", ErrOutOfBounds, start, goal, g.Rows(), g.Cols())
	}
	if start == goal {
		return nil, fmt.Errorf("%w: %s", ErrSameStartGoal, start)
	}
	if g.IsWall(start) || g.IsWall(goal) {
		return nil, fmt.Errorf("%w: start %s goal %s", ErrWallEndpoint, start, goal)
	}

	g.ResetRunState()
	s := &Stepper{
		g:       g,
		algo:    algo,
		start:   start,
		goal:    goal,
		opts:    o,
		entries: make([]*entry, g.Len()),
		state:   Running,
	}
	switch algo {
	case Dijkstra:
		s.seedDijkstra()
	case AStar:
		s.seedAStar()
	}
	return s, nil
}

func (s *Stepper) seedDijkstra() {
	s.g.SetDistance(s.start, 0)
	s.open = make(frontier, 0, s.g.Len())
	for i := 0; i < s.g.Len(); i++ {
		c := s.g.CoordOf(i)
		if s.g.IsWall(c) {
			continue
		}
		e := &entry{cell: i, key: s.g.Distance(c), tie: i, pos: len(s.open)}
		s.open = append(s.open, e)
		s.entries[i] = e
	}
	heap.Init(&s.open)
}

func (s *Stepper) seedAStar() {
	s.inOpen = mapset.New[grid.Coord]()
	h := float64(grid.Manhattan(s.start, s.goal))
	s.g.SetScores(s.start, 0, h)
	s.push(s.start, h)
}

// push queues c with the next insertion sequence number.
func (s *Stepper) push(c grid.Coord, key float64) {
	i := s.g.Index(c)
	e := &entry{cell: i, key: key, tie: s.seq}
	s.seq++
	heap.Push(&s.open, e)
	s.entries[i] = e
	s.inOpen.Put(c)
}

// Next returns the next event, or false once the Stepper has left Running.
// Cancellation is checked before anything else, so a stop request is
// honoured before any further grid write or event.
func (s *Stepper) Next() (Event, bool) {
	if s.state != Running {
		return Event{}, false
	}
	if s.cancelled() {
		s.finish(Cancelled, Result{Explored: s.step})
		return Event{}, false
	}
	for len(s.pending) == 0 {
		if s.reached {
			s.finish(Terminated, Result{Found: s.path != nil, Path: s.path, Explored: s.step})
			return Event{}, false
		}
		if !s.advance() {
			return Event{}, false
		}
	}
	ev := s.pending[0]
	s.pending = s.pending[1:]
	return ev, true
}

// All yields events until the Stepper stops or the consumer breaks.
func (s *Stepper) All() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for {
			ev, ok := s.Next()
			if !ok || !yield(ev) {
				return
			}
		}
	}
}

// State reports the lifecycle state.
func (s *Stepper) State() State { return s.state }

// Algorithm reports the strategy this Stepper runs.
func (s *Stepper) Algorithm() Algorithm { return s.algo }

// Result returns the final outcome. While Running only Explored is set.
func (s *Stepper) Result() Result {
	if s.state == Running {
		return Result{Explored: s.step}
	}
	return s.result
}

// Cancel stops a Running stepper as if a cancellation check had fired.
// It is a no-op once the stepper has finished.
func (s *Stepper) Cancel() {
	if s.state == Running {
		s.finish(Cancelled, Result{Explored: s.step})
	}
}

func (s *Stepper) cancelled() bool {
	return s.opts.Ctx.Err() != nil || !s.opts.Continue()
}

// advance pops one frontier cell, finalises it and relaxes its neighbours.
// Returns false when the search ended without producing events.
func (s *Stepper) advance() bool {
	if s.open.Len() == 0 {
		s.finish(Terminated, Result{Explored: s.step})
		return false
	}
	e := heap.Pop(&s.open).(*entry)
	c := s.g.CoordOf(e.cell)
	if s.algo == AStar {
		s.inOpen.Remove(c)
	}
	// Cheapest remaining cell unreachable: nothing else is either.
	if math.IsInf(e.key, 1) {
		s.finish(Terminated, Result{Explored: s.step})
		return false
	}

	s.step++
	s.g.MarkVisited(c)
	s.emit(Explored, c)

	if c == s.goal {
		s.path = s.g.PathTo(s.start, s.goal)
		for _, p := range s.path {
			s.emit(Path, p)
		}
		s.reached = true
		return true
	}

	switch s.algo {
	case Dijkstra:
		s.relaxDijkstra(c)
	case AStar:
		s.relaxAStar(c)
	}
	return true
}

func (s *Stepper) relaxDijkstra(c grid.Coord) {
	d := s.g.Distance(c) + 1
	for _, n := range s.g.Neighbors(c) {
		if s.g.Visited(n) {
			continue
		}
		e := s.entries[s.g.Index(n)]
		if e == nil || d >= s.g.Distance(n) {
			continue
		}
		s.g.SetDistance(n, d)
		s.g.SetPrevious(n, c)
		s.open.update(e, d)
		s.emit(Frontier, n)
	}
}

func (s *Stepper) relaxAStar(c grid.Coord) {
	gs := s.g.GScore(c) + 1
	for _, n := range s.g.Neighbors(c) {
		if s.g.Visited(n) || gs >= s.g.GScore(n) {
			continue
		}
		f := gs + float64(grid.Manhattan(n, s.goal))
		s.g.SetScores(n, gs, f)
		s.g.SetPrevious(n, c)
		if s.inOpen.Has(n) {
			s.open.update(s.entries[s.g.Index(n)], f)
		} else {
			s.push(n, f)
		}
		s.emit(Frontier, n)
	}
}

// emit queues an event for c. Start and Goal mark this search's endpoints,
// which may differ from the grid's own.
func (s *Stepper) emit(role Role, c grid.Coord) {
	cell, _ := s.g.At(c)
	cell.Start = c == s.start
	cell.Goal = c == s.goal
	s.pending = append(s.pending, Event{Step: s.step, Role: role, Cell: cell})
}

// finish records the outcome and releases everything tied to the grid.
func (s *Stepper) finish(state State, res Result) {
	s.state = state
	s.result = res
	s.g = nil
	s.open = nil
	s.entries = nil
	s.inOpen = mapset.Set[grid.Coord]{}
	s.pending = nil
}
