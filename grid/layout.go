package grid

import (
	"fmt"
	"strings"
)

// ASCII runes used by Parse and String.
const (
	runeOpen  = '.'
	runeWall  = '#'
	runeStart = 'S'
	runeGoal  = 'G'
	runePath  = '*'
)

// Layout is the portable wall/start/goal snapshot of a grid. Run state is
// not part of it.
type Layout struct {
	Rows  int     `json:"rows"`
	Cols  int     `json:"cols"`
	Start Coord   `json:"start"`
	Goal  Coord   `json:"goal"`
	Walls []Coord `json:"walls"`
}

// Layout captures the current walls, start and goal. Walls are listed in
// row-major order.
func (g *Grid) Layout() Layout {
	l := Layout{
		Rows:  g.rows,
		Cols:  g.cols,
		Start: g.start,
		Goal:  g.goal,
		Walls: make([]Coord, 0),
	}
	for i, w := range g.walls {
		if w {
			l.Walls = append(l.Walls, g.CoordOf(i))
		}
	}
	return l
}

// FromLayout rebuilds a grid from a snapshot. Walls listed on the start or
// goal are ignored; out-of-bounds walls yield ErrBadLayout.
func FromLayout(l Layout) (*Grid, error) {
	if l.Rows < 1 || l.Cols < 1 {
		return nil, fmt.Errorf("%w: rows=%d cols=%d", ErrEmptyGrid, l.Rows, l.Cols)
	}
	g := alloc(l.Rows, l.Cols)
	if !g.InBounds(l.Start) || !g.InBounds(l.Goal) {
		return nil, fmt.Errorf("%w: start %s goal %s", ErrOutOfBounds, l.Start, l.Goal)
	}
	if l.Start == l.Goal {
		return nil, fmt.Errorf("%w: %s", ErrSameStartGoal, l.Start)
	}
	g.start, g.goal = l.Start, l.Goal
	for _, w := range l.Walls {
		if !g.InBounds(w) {
			return nil, fmt.Errorf("%w: wall %s outside %dx%d", ErrBadLayout, w, l.Rows, l.Cols)
		}
		g.SetWall(w, true)
	}
	return g, nil
}

// Parse builds a grid from ASCII rows: '.' open, '#' wall, 'S' start,
// 'G' goal. Exactly one 'S' and one 'G' are required and all rows must
// have equal length.
//
//	S.#
//	..#
//	#.G
func Parse(lines []string) (*Grid, error) {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(lines), len(lines[0])
	g := alloc(rows, cols)
	var starts, goals int
	for y, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadLayout, y, len(line), cols)
		}
		for x, r := range line {
			c := Coord{X: x, Y: y}
			switch r {
			case runeOpen:
			case runeWall:
				g.walls[g.index(c)] = true
			case runeStart:
				g.start = c
				starts++
			case runeGoal:
				g.goal = c
				goals++
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %s", ErrBadLayout, r, c)
			}
		}
	}
	if starts != 1 || goals != 1 {
		return nil, fmt.Errorf("%w: need exactly one S and one G (got %d, %d)", ErrBadLayout, starts, goals)
	}
	return g, nil
}

// String renders the grid in the Parse alphabet, one row per line.
func (g *Grid) String() string {
	return g.Render(nil)
}

// Render is String with path cells (other than start and goal) drawn as '*'.
func (g *Grid) Render(path []Coord) string {
	onPath := make(map[int]bool, len(path))
	for _, c := range path {
		if g.InBounds(c) {
			onPath[g.index(c)] = true
		}
	}
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			c := Coord{X: x, Y: y}
			i := g.index(c)
			switch {
			case c == g.start:
				b.WriteByte(runeStart)
			case c == g.goal:
				b.WriteByte(runeGoal)
			case g.walls[i]:
				b.WriteByte(runeWall)
			case onPath[i]:
				b.WriteByte(runePath)
			default:
				b.WriteByte(runeOpen)
			}
		}
		if y < g.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
