package grid

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Grid is a rows×cols lattice. Each cell field lives in its own row-major
// slice; Grid owns them exclusively and hands out copies.
//
// A Grid is not safe for concurrent use. Only one search may run against a
// Grid at a time; hosts enforce that with animate.Guard.
type Grid struct {
	rows, cols int
	walls      []bool
	start      Coord
	goal       Coord

	// per-run scratch
	dist    []float64
	gScore  []float64
	fScore  []float64
	visited []bool
	prev    []int
}

// New builds a rows×cols grid arranged by pattern.
//
// Steps:
//  1. Resolve options; surface ErrOptionViolation.
//  2. Validate dimensions, start and default/explicit goal.
//  3. Apply the wall pattern.
//  4. For Random, relocate the goal to a random open non-start cell, falling
//     back to bottom-right after GoalAttempts tries.
//  5. Force start and goal open; reset run state.
//
// Complexity: O(rows×cols) time and memory.
func New(rows, cols int, pattern Pattern, opts ...Option) (*Grid, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: rows=%d cols=%d", ErrEmptyGrid, rows, cols)
	}
	if pattern < 0 || int(pattern) >= len(patternNames) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPattern, pattern)
	}

	g := alloc(rows, cols)
	defaultGoal := Coord{X: cols - 1, Y: rows - 1}
	goal := defaultGoal
	if o.Goal != nil {
		goal = *o.Goal
	}
	if !g.InBounds(o.Start) {
		return nil, fmt.Errorf("%w: start %s in %dx%d", ErrOutOfBounds, o.Start, rows, cols)
	}
	if !g.InBounds(goal) {
		return nil, fmt.Errorf("%w: goal %s in %dx%d", ErrOutOfBounds, goal, rows, cols)
	}
	if goal == o.Start {
		return nil, fmt.Errorf("%w: %s", ErrSameStartGoal, goal)
	}
	g.start, g.goal = o.Start, goal

	rng := o.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	applyPattern(g, pattern, o.Density, rng)

	if pattern == Random {
		g.goal = g.placeGoal(rng, o.GoalAttempts, defaultGoal)
	}

	g.walls[g.index(g.start)] = false
	g.walls[g.index(g.goal)] = false
	g.ResetRunState()

	return g, nil
}

// alloc returns an all-open grid with start (0,0) and bottom-right goal.
func alloc(rows, cols int) *Grid {
	n := rows * cols
	g := &Grid{
		rows:    rows,
		cols:    cols,
		walls:   make([]bool, n),
		goal:    Coord{X: cols - 1, Y: rows - 1},
		dist:    make([]float64, n),
		gScore:  make([]float64, n),
		fScore:  make([]float64, n),
		visited: make([]bool, n),
		prev:    make([]int, n),
	}
	g.ResetRunState()
	return g
}

// placeGoal picks a random open cell that is not the start. If the budget
// runs out it returns fallback, which the caller then forces open.
func (g *Grid) placeGoal(rng *rand.Rand, attempts int, fallback Coord) Coord {
	for i := 0; i < attempts; i++ {
		c := Coord{X: rng.Intn(g.cols), Y: rng.Intn(g.rows)}
		if c != g.start && !g.walls[g.index(c)] {
			return c
		}
	}
	if fallback == g.start {
		return g.goal
	}
	return fallback
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns rows×cols.
func (g *Grid) Len() int { return len(g.walls) }

// Start returns the start coordinate.
func (g *Grid) Start() Coord { return g.start }

// Goal returns the goal coordinate.
func (g *Grid) Goal() Coord { return g.goal }

// InBounds reports whether c lies within the lattice.
// Complexity: O(1).
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.cols && c.Y >= 0 && c.Y < g.rows
}

// Index maps c to its row-major index: y*cols + x.
// Returns -1 when c is out of bounds.
func (g *Grid) Index(c Coord) int {
	if !g.InBounds(c) {
		return -1
	}
	return g.index(c)
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.cols + c.X
}

// CoordOf converts a row-major index back to a coordinate.
func (g *Grid) CoordOf(i int) Coord {
	return Coord{X: i % g.cols, Y: i / g.cols}
}

// IsWall reports whether c is a wall. Out-of-bounds coordinates count as walls.
func (g *Grid) IsWall(c Coord) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.walls[g.index(c)]
}

// At returns a copy of the cell at c.
func (g *Grid) At(c Coord) (Cell, bool) {
	if !g.InBounds(c) {
		return Cell{}, false
	}
	i := g.index(c)
	cell := Cell{
		Coord:    c,
		Wall:     g.walls[i],
		Start:    c == g.start,
		Goal:     c == g.goal,
		Distance: g.dist[i],
		GScore:   g.gScore[i],
		FScore:   g.fScore[i],
		Visited:  g.visited[i],
	}
	if p := g.prev[i]; p >= 0 {
		cell.Prev = g.CoordOf(p)
		cell.HasPrev = true
	}
	return cell, true
}

//----------------------------------------------------------------------------//
// Run state
//----------------------------------------------------------------------------//

// ResetRunState sets every distance/gScore/fScore to +Inf, clears visited
// flags and drops all previous links. Call before each search.
func (g *Grid) ResetRunState() {
	inf := math.Inf(1)
	for i := range g.walls {
		g.dist[i] = inf
		g.gScore[i] = inf
		g.fScore[i] = inf
		g.visited[i] = false
		g.prev[i] = -1
	}
}

// Distance returns the Dijkstra distance of c (+Inf when unset or out of bounds).
func (g *Grid) Distance(c Coord) float64 {
	if !g.InBounds(c) {
		return math.Inf(1)
	}
	return g.dist[g.index(c)]
}

// SetDistance records the Dijkstra distance of c.
func (g *Grid) SetDistance(c Coord, d float64) {
	if g.InBounds(c) {
		g.dist[g.index(c)] = d
	}
}

// GScore returns the A* cost-from-start of c.
func (g *Grid) GScore(c Coord) float64 {
	if !g.InBounds(c) {
		return math.Inf(1)
	}
	return g.gScore[g.index(c)]
}

// FScore returns the A* gScore+heuristic of c.
func (g *Grid) FScore(c Coord) float64 {
	if !g.InBounds(c) {
		return math.Inf(1)
	}
	return g.fScore[g.index(c)]
}

// SetScores records the A* scores of c.
func (g *Grid) SetScores(c Coord, gs, fs float64) {
	if g.InBounds(c) {
		i := g.index(c)
		g.gScore[i] = gs
		g.fScore[i] = fs
	}
}

// Visited reports whether c was finalised by the current search.
func (g *Grid) Visited(c Coord) bool {
	return g.InBounds(c) && g.visited[g.index(c)]
}

// MarkVisited flags c as finalised.
func (g *Grid) MarkVisited(c Coord) {
	if g.InBounds(c) {
		g.visited[g.index(c)] = true
	}
}

// Previous returns the predecessor link of c.
func (g *Grid) Previous(c Coord) (Coord, bool) {
	if !g.InBounds(c) {
		return Coord{}, false
	}
	p := g.prev[g.index(c)]
	if p < 0 {
		return Coord{}, false
	}
	return g.CoordOf(p), true
}

// SetPrevious links c back to p. Both must be in bounds.
func (g *Grid) SetPrevious(c, p Coord) {
	if g.InBounds(c) && g.InBounds(p) {
		g.prev[g.index(c)] = g.index(p)
	}
}

// PathTo reconstructs the start→target path by walking previous links back
// from target and reversing. Returns nil when the chain does not end at
// start.
// Complexity: O(path length).
func (g *Grid) PathTo(start, target Coord) []Coord {
	if !g.InBounds(start) || !g.InBounds(target) {
		return nil
	}
	path := []Coord{target}
	at := g.index(target)
	startIdx := g.index(start)
	for at != startIdx {
		at = g.prev[at]
		if at < 0 || len(path) > len(g.walls) {
			return nil
		}
		path = append(path, g.CoordOf(at))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
