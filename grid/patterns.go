package grid

import "math/rand"

// Pattern parameters, matching the hand-tuned values of the visualizer.
const (
	corridorStride   = 3   // every third row/column is a corridor wall
	corridorOffset   = 2   // first corridor wall row/column
	corridorOpenProb = 0.3 // chance a corridor cell stays open
	diagonalStride   = 3   // (x+y) % 3 == 0 marks a diagonal wall lane
	diagonalWallProb = 0.7
	borderOpenProb   = 0.2 // chance a border cell stays open
	mazeRightProb    = 0.5 // chance a chamber links right rather than down
)

// applyPattern writes the walls of pattern into g. g must be all-open.
// Deterministic for a fixed rng state.
func applyPattern(g *Grid, p Pattern, density float64, rng *rand.Rand) {
	switch p {
	case Random:
		for i := range g.walls {
			g.walls[i] = rng.Float64() < density
		}

	case Maze:
		carveMaze(g, rng)

	case Vertical:
		for x := corridorOffset; x < g.cols; x += corridorStride {
			for y := 0; y < g.rows; y++ {
				if rng.Float64() > corridorOpenProb {
					g.walls[g.index(Coord{X: x, Y: y})] = true
				}
			}
		}

	case Horizontal:
		for y := corridorOffset; y < g.rows; y += corridorStride {
			for x := 0; x < g.cols; x++ {
				if rng.Float64() > corridorOpenProb {
					g.walls[g.index(Coord{X: x, Y: y})] = true
				}
			}
		}

	case Diagonal:
		for y := 0; y < g.rows; y++ {
			for x := 0; x < g.cols; x++ {
				if (x+y)%diagonalStride == 0 && rng.Float64() < diagonalWallProb {
					g.walls[g.index(Coord{X: x, Y: y})] = true
				}
			}
		}

	case Border:
		for y := 0; y < g.rows; y++ {
			for x := 0; x < g.cols; x++ {
				onEdge := x == 0 || x == g.cols-1 || y == 0 || y == g.rows-1
				if onEdge && rng.Float64() > borderOpenProb {
					g.walls[g.index(Coord{X: x, Y: y})] = true
				}
			}
		}

	case Filled:
		for i := range g.walls {
			g.walls[i] = true
		}

	case Empty:
	}
}

// carveMaze walls the whole lattice, opens a chamber at every odd (x,y)
// inside the border and links the chambers into a binary-tree maze: each
// chamber knocks through either right or down, the last chamber column
// always down and the last chamber row always right. Every chamber
// therefore reaches the bottom-right one. Start and goal are then joined
// to their nearest chamber by an L-shaped corridor.
func carveMaze(g *Grid, rng *rand.Rand) {
	for i := range g.walls {
		g.walls[i] = true
	}
	lastX, lastY := lastChamber(g.cols), lastChamber(g.rows)
	if lastX < 1 || lastY < 1 {
		// Too thin for chambers.
		g.carveLine(g.start, g.goal)
		return
	}
	for y := 1; y <= lastY; y += 2 {
		for x := 1; x <= lastX; x += 2 {
			g.walls[g.index(Coord{X: x, Y: y})] = false
			right, down := x < lastX, y < lastY
			if right && down {
				right = rng.Float64() < mazeRightProb
				down = !right
			}
			switch {
			case right:
				g.walls[g.index(Coord{X: x + 1, Y: y})] = false
			case down:
				g.walls[g.index(Coord{X: x, Y: y + 1})] = false
			}
		}
	}
	for _, c := range []Coord{g.start, g.goal} {
		g.carveLine(c, Coord{X: nearestChamber(c.X, lastX), Y: nearestChamber(c.Y, lastY)})
	}
}

// lastChamber returns the largest odd coordinate strictly inside a side of
// length n, or -1 when there is none.
func lastChamber(n int) int {
	last := n - 2
	if last%2 == 0 {
		last--
	}
	if last < 1 {
		return -1
	}
	return last
}

// nearestChamber clamps v onto the odd chamber coordinates 1..last.
func nearestChamber(v, last int) int {
	switch {
	case v < 1:
		return 1
	case v > last:
		return last
	case v%2 == 0:
		return v - 1
	}
	return v
}

// carveLine opens the cells from a to b, first along a's row, then along
// b's column.
func (g *Grid) carveLine(a, b Coord) {
	step := func(from, to int) int {
		if from < to {
			return 1
		}
		return -1
	}
	x := a.X
	for ; x != b.X; x += step(x, b.X) {
		g.walls[g.index(Coord{X: x, Y: a.Y})] = false
	}
	for y := a.Y; y != b.Y; y += step(y, b.Y) {
		g.walls[g.index(Coord{X: x, Y: y})] = false
	}
	g.walls[g.index(b)] = false
}
