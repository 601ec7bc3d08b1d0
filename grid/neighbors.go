package grid

// neighborOffsets is the fixed 4-connected scan order: left, right, up, down.
// The order feeds tie-breaking in the search engine, so it must not change.
var neighborOffsets = [4]Coord{
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: 0, Y: 1},
}

// Neighbors returns the in-bounds, non-wall cardinal neighbours of c in
// left, right, up, down order.
// Complexity: O(1).
func (g *Grid) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := Coord{X: c.X + d.X, Y: c.Y + d.Y}
		if g.InBounds(n) && !g.walls[g.index(n)] {
			out = append(out, n)
		}
	}
	return out
}

// Manhattan returns |dx| + |dy|, the admissible and consistent heuristic
// for a 4-connected unit-cost grid.
func Manhattan(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
