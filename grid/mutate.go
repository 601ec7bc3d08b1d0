package grid

import "math"

// SetWall sets the wall state of c. It is a no-op when c is out of bounds
// or coincides with the start or goal.
// Complexity: O(1).
func (g *Grid) SetWall(c Coord, wall bool) {
	if !g.editable(c) {
		return
	}
	g.walls[g.index(c)] = wall
}

// ToggleWall flips the wall state of c under the same guard as SetWall.
// Complexity: O(1).
func (g *Grid) ToggleWall(c Coord) {
	if !g.editable(c) {
		return
	}
	i := g.index(c)
	g.walls[i] = !g.walls[i]
}

// editable reports whether wall edits may touch c.
func (g *Grid) editable(c Coord) bool {
	return g.InBounds(c) && c != g.start && c != g.goal
}

// MoveGoal relocates the goal to c when c is in bounds, open, and not the
// start. Otherwise the grid is left unchanged. Reports whether it moved.
func (g *Grid) MoveGoal(c Coord) bool {
	if !g.InBounds(c) || g.walls[g.index(c)] || c == g.start {
		return false
	}
	g.goal = c
	return true
}

// ClearWalls removes every wall and resets run state.
func (g *Grid) ClearWalls() {
	for i := range g.walls {
		g.walls[i] = false
	}
	g.ResetRunState()
}

// FillWalls walls every cell except start and goal and resets run state.
func (g *Grid) FillWalls() {
	for i := range g.walls {
		g.walls[i] = true
	}
	g.walls[g.index(g.start)] = false
	g.walls[g.index(g.goal)] = false
	g.ResetRunState()
}

// Stats counts walls and open cells; percentages are rounded to the
// nearest integer.
func (g *Grid) Stats() Stats {
	walls := 0
	for _, w := range g.walls {
		if w {
			walls++
		}
	}
	total := len(g.walls)
	empty := total - walls
	return Stats{
		WallCount:       walls,
		EmptyCount:      empty,
		TotalCells:      total,
		WallPercentage:  percent(walls, total),
		EmptyPercentage: percent(empty, total),
	}
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(total)))
}
