package search_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/beepath/grid"
	"github.com/katalvlaran/beepath/search"
)

var algorithms = []search.Algorithm{search.Dijkstra, search.AStar}

// mustGrid parses an ASCII layout or fails the test.
func mustGrid(t *testing.T, lines ...string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(lines)
	require.NoError(t, err)
	return g
}

// cells copies every cell of g, run state included.
func cells(g *grid.Grid) []grid.Cell {
	out := make([]grid.Cell, g.Len())
	for i := range out {
		out[i], _ = g.At(g.CoordOf(i))
	}
	return out
}

// TestNewStepper_Errors covers every rejected precondition.
func TestNewStepper_Errors(t *testing.T) {
	g := mustGrid(t,
		"S.#",
		"...",
		"..G",
	)
	wall := grid.Coord{X: 2, Y: 0}
	cases := []struct {
		name        string
		g           *grid.Grid
		start, goal grid.Coord
		algo        search.Algorithm
		err         error
	}{
		{"NilGrid", nil, grid.Coord{}, grid.Coord{X: 1}, search.Dijkstra, search.ErrNilGrid},
		{"UnknownAlgorithm", g, g.Start(), g.Goal(), search.Algorithm(7), search.ErrUnknownAlgorithm},
		{"StartOutside", g, grid.Coord{X: -1}, g.Goal(), search.Dijkstra, search.ErrOutOfBounds},
		{"GoalOutside", g, g.Start(), grid.Coord{X: 3, Y: 3}, search.AStar, search.ErrOutOfBounds},
		{"SameStartGoal", g, g.Start(), g.Start(), search.Dijkstra, search.ErrSameStartGoal},
		{"WallStart", g, wall, g.Goal(), search.AStar, search.ErrWallEndpoint},
		{"WallGoal", g, g.Start(), wall, search.Dijkstra, search.ErrWallEndpoint},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := search.NewStepper(tc.g, tc.start, tc.goal, tc.algo)
			if !errors.Is(err, tc.err) {
				t.Errorf("NewStepper error = %v; want %v", err, tc.err)
			}
			_, err = search.Run(tc.g, tc.start, tc.goal, tc.algo)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

// TestRun_EmptyGrid5x5: 9-cell path with non-decreasing cost along it.
func TestRun_EmptyGrid5x5(t *testing.T) {
	for _, algo := range algorithms {
		t.Run(algo.String(), func(t *testing.T) {
			g, err := grid.New(5, 5, grid.Empty)
			require.NoError(t, err)

			res, err := search.Run(g, g.Start(), g.Goal(), algo)
			require.NoError(t, err)
			require.True(t, res.Found)
			require.Len(t, res.Path, 9)
			assert.Equal(t, grid.Coord{X: 0, Y: 0}, res.Path[0])
			assert.Equal(t, grid.Coord{X: 4, Y: 4}, res.Path[8])

			prev := -1.0
			for i, c := range res.Path {
				cost := g.Distance(c)
				if algo == search.AStar {
					cost = g.GScore(c)
				}
				assert.Equal(t, float64(i), cost, "cost at %s", c)
				assert.GreaterOrEqual(t, cost, prev)
				prev = cost
				if i > 0 {
					assert.Equal(t, 1, grid.Manhattan(res.Path[i-1], c), "path must be 4-connected")
				}
			}
		})
	}
}

// TestRun_SingleOpening routes through the only gap in the middle row.
func TestRun_SingleOpening(t *testing.T) {
	for _, algo := range algorithms {
		t.Run(algo.String(), func(t *testing.T) {
			g := mustGrid(t,
				"S..",
				"#.#",
				"..G",
			)
			res, err := search.Run(g, g.Start(), g.Goal(), algo)
			require.NoError(t, err)
			require.True(t, res.Found)
			assert.Len(t, res.Path, 5)
			assert.Contains(t, res.Path, grid.Coord{X: 1, Y: 1})
		})
	}
}

// TestRun_EnclosedGoal exhausts the reachable region and reports no path.
func TestRun_EnclosedGoal(t *testing.T) {
	for _, algo := range algorithms {
		t.Run(algo.String(), func(t *testing.T) {
			g := mustGrid(t,
				"S....",
				".....",
				"..###",
				"..#G#",
				"..###",
			)
			s, err := search.NewStepper(g, g.Start(), g.Goal(), algo)
			require.NoError(t, err)
			var explored int
			for ev := range s.All() {
				assert.NotEqual(t, search.Path, ev.Role)
				if ev.Role == search.Explored {
					explored++
				}
			}
			res := s.Result()
			assert.Equal(t, search.Terminated, s.State())
			assert.False(t, res.Found)
			assert.Nil(t, res.Path)
			// 25 cells - 8 walls - goal = 16 reachable.
			assert.Equal(t, 16, explored)
			assert.Equal(t, 16, res.Explored)
		})
	}
}

// TestRun_OptimalityEquivalence compares both algorithms on seeded layouts.
func TestRun_OptimalityEquivalence(t *testing.T) {
	for _, p := range grid.Patterns() {
		for seed := int64(1); seed <= 8; seed++ {
			g, err := grid.New(12, 15, p, grid.WithSeed(seed), grid.WithDensity(0.35))
			require.NoError(t, err)

			d, err := search.Run(g, g.Start(), g.Goal(), search.Dijkstra)
			require.NoError(t, err)
			a, err := search.Run(g, g.Start(), g.Goal(), search.AStar)
			require.NoError(t, err)

			require.Equal(t, d.Found, a.Found, "pattern %s seed %d", p, seed)
			assert.Equal(t, len(d.Path), len(a.Path), "pattern %s seed %d", p, seed)
			if d.Found {
				assert.GreaterOrEqual(t, len(d.Path)-1, grid.Manhattan(g.Start(), g.Goal()))
				assert.LessOrEqual(t, a.Explored, d.Explored, "A* should not explore more")
			}
		}
	}
}

// TestRun_MazeIsSolvable runs both algorithms on seeded mazes with the
// default endpoints.
func TestRun_MazeIsSolvable(t *testing.T) {
	dims := []struct{ rows, cols int }{{9, 9}, {15, 30}, {20, 40}, {11, 21}, {15, 31}}
	for _, d := range dims {
		for seed := int64(1); seed <= 10; seed++ {
			g, err := grid.New(d.rows, d.cols, grid.Maze, grid.WithSeed(seed))
			require.NoError(t, err)

			dj, err := search.Run(g, g.Start(), g.Goal(), search.Dijkstra)
			require.NoError(t, err)
			as, err := search.Run(g, g.Start(), g.Goal(), search.AStar)
			require.NoError(t, err)

			require.True(t, dj.Found, "%dx%d seed %d\n%s", d.rows, d.cols, seed, g)
			require.True(t, as.Found, "%dx%d seed %d", d.rows, d.cols, seed)
			assert.Equal(t, len(dj.Path), len(as.Path), "%dx%d seed %d", d.rows, d.cols, seed)
			assert.Equal(t, g.Start(), as.Path[0])
			assert.Equal(t, g.Goal(), as.Path[len(as.Path)-1])
		}
	}
}

// TestRun_EventsFlagSearchEndpoints: with endpoints other than the grid's
// own, events mark the searched start and goal.
func TestRun_EventsFlagSearchEndpoints(t *testing.T) {
	g, err := grid.New(5, 5, grid.Empty)
	require.NoError(t, err)
	from, to := grid.Coord{X: 1, Y: 1}, grid.Coord{X: 3, Y: 2}
	for _, algo := range algorithms {
		var evs []search.Event
		res, err := search.Run(g, from, to, algo,
			search.WithObserver(func(ev search.Event) { evs = append(evs, ev) }))
		require.NoError(t, err)
		require.True(t, res.Found)
		for _, ev := range evs {
			assert.Equal(t, ev.Cell.Coord == from, ev.Cell.Start, "%s %s %s", algo, ev.Role, ev.Cell.Coord)
			assert.Equal(t, ev.Cell.Coord == to, ev.Cell.Goal, "%s %s %s", algo, ev.Role, ev.Cell.Coord)
		}
	}
}

// TestRun_WallFreePathIsManhattan holds for arbitrary endpoints.
func TestRun_WallFreePathIsManhattan(t *testing.T) {
	g, err := grid.New(7, 9, grid.Empty)
	require.NoError(t, err)
	pairs := [][2]grid.Coord{
		{{X: 0, Y: 0}, {X: 8, Y: 6}},
		{{X: 8, Y: 0}, {X: 0, Y: 6}},
		{{X: 4, Y: 3}, {X: 4, Y: 4}},
		{{X: 2, Y: 5}, {X: 7, Y: 1}},
	}
	for _, algo := range algorithms {
		for _, p := range pairs {
			res, err := search.Run(g, p[0], p[1], algo)
			require.NoError(t, err)
			require.True(t, res.Found)
			assert.Equal(t, grid.Manhattan(p[0], p[1])+1, len(res.Path), "%s %s→%s", algo, p[0], p[1])
			assert.Equal(t, p[0], res.Path[0])
			assert.Equal(t, p[1], res.Path[len(res.Path)-1])
		}
	}
}

// TestRun_Deterministic repeats a search on an unmodified grid.
func TestRun_Deterministic(t *testing.T) {
	for _, algo := range algorithms {
		t.Run(algo.String(), func(t *testing.T) {
			g, err := grid.New(10, 10, grid.Random, grid.WithSeed(5), grid.WithDensity(0.25))
			require.NoError(t, err)

			collect := func() ([]search.Event, search.Result) {
				var evs []search.Event
				res, err := search.Run(g, g.Start(), g.Goal(), algo,
					search.WithObserver(func(ev search.Event) { evs = append(evs, ev) }))
				require.NoError(t, err)
				return evs, res
			}
			e1, r1 := collect()
			g.ResetRunState()
			e2, r2 := collect()
			assert.Equal(t, r1, r2)
			assert.Equal(t, e1, e2)
		})
	}
}

// TestRun_TieBreak pins the documented tie-break on a 2×2 grid.
func TestRun_TieBreak(t *testing.T) {
	for _, algo := range algorithms {
		t.Run(algo.String(), func(t *testing.T) {
			g, err := grid.New(2, 2, grid.Empty)
			require.NoError(t, err)
			var order []grid.Coord
			res, err := search.Run(g, g.Start(), g.Goal(), algo,
				search.WithObserver(func(ev search.Event) {
					if ev.Role == search.Explored {
						order = append(order, ev.Cell.Coord)
					}
				}))
			require.NoError(t, err)
			assert.Equal(t, []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, res.Path)
			assert.Equal(t, []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, order)
		})
	}
}

// TestStepper_EventStream checks the shape of the event sequence.
func TestStepper_EventStream(t *testing.T) {
	for _, algo := range algorithms {
		t.Run(algo.String(), func(t *testing.T) {
			g, err := grid.New(3, 4, grid.Empty)
			require.NoError(t, err)
			s, err := search.NewStepper(g, g.Start(), g.Goal(), algo)
			require.NoError(t, err)
			assert.Equal(t, search.Running, s.State())
			assert.Equal(t, algo, s.Algorithm())

			first, ok := s.Next()
			require.True(t, ok)
			assert.Equal(t, search.Explored, first.Role)
			assert.Equal(t, 1, first.Step)
			assert.Equal(t, g.Start(), first.Cell.Coord)
			assert.True(t, first.Cell.Start)
			assert.True(t, first.Cell.Visited)

			var path []grid.Coord
			lastStep := first.Step
			for ev := range s.All() {
				assert.GreaterOrEqual(t, ev.Step, lastStep)
				lastStep = ev.Step
				switch ev.Role {
				case search.Path:
					path = append(path, ev.Cell.Coord)
				default:
					assert.Empty(t, path, "no search events after the path starts")
				}
			}
			res := s.Result()
			assert.Equal(t, search.Terminated, s.State())
			require.True(t, res.Found)
			assert.Equal(t, res.Path, path)
			assert.Equal(t, lastStep, res.Explored)

			_, ok = s.Next()
			assert.False(t, ok, "a finished stepper stays finished")
		})
	}
}

// TestStepper_CancelWithinOneStep flips the predicate mid-run and checks
// that no event or grid write follows.
func TestStepper_CancelWithinOneStep(t *testing.T) {
	for _, algo := range algorithms {
		t.Run(algo.String(), func(t *testing.T) {
			g, err := grid.New(10, 10, grid.Empty)
			require.NoError(t, err)
			running := true
			s, err := search.NewStepper(g, g.Start(), g.Goal(), algo,
				search.WithContinue(func() bool { return running }))
			require.NoError(t, err)

			for i := 0; i < 7; i++ {
				_, ok := s.Next()
				require.True(t, ok)
			}
			running = false
			snap := cells(g)

			_, ok := s.Next()
			assert.False(t, ok)
			assert.Equal(t, search.Cancelled, s.State())
			res := s.Result()
			assert.False(t, res.Found)
			assert.Nil(t, res.Path)

			running = true
			_, ok = s.Next()
			assert.False(t, ok, "cancelled is terminal")

			assert.Equal(t, snap, cells(g), "run state changed after cancel")
		})
	}
}

// TestRun_CancelDuringPath stops after the first path event.
func TestRun_CancelDuringPath(t *testing.T) {
	g, err := grid.New(4, 4, grid.Empty)
	require.NoError(t, err)
	running := true
	var pathEvents int
	res, err := search.Run(g, g.Start(), g.Goal(), search.AStar,
		search.WithContinue(func() bool { return running }),
		search.WithObserver(func(ev search.Event) {
			if ev.Role == search.Path {
				pathEvents++
				running = false
			}
		}))
	require.NoError(t, err)
	assert.Equal(t, 1, pathEvents)
	assert.False(t, res.Found)
	assert.Nil(t, res.Path)
}

// TestRun_ContextCancel treats a cancelled context like a false predicate.
func TestRun_ContextCancel(t *testing.T) {
	g, err := grid.New(20, 20, grid.Empty)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	var events int
	res, err := search.Run(g, g.Start(), g.Goal(), search.Dijkstra,
		search.WithContext(ctx),
		search.WithObserver(func(search.Event) {
			events++
			if events == 10 {
				cancel()
			}
		}))
	require.NoError(t, err)
	assert.Equal(t, 10, events)
	assert.False(t, res.Found)

	_, err = search.Run(g, g.Start(), g.Goal(), search.Dijkstra, search.WithContext(ctx))
	require.NoError(t, err, "an already-cancelled context is not an error")
}

// TestStepper_AllStopsOnBreak leaves the stepper resumable.
func TestStepper_AllStopsOnBreak(t *testing.T) {
	g, err := grid.New(3, 3, grid.Empty)
	require.NoError(t, err)
	s, err := search.NewStepper(g, g.Start(), g.Goal(), search.Dijkstra)
	require.NoError(t, err)
	n := 0
	for range s.All() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, search.Running, s.State())
	for range s.All() {
	}
	assert.True(t, s.Result().Found)
}

// TestNewStepper_ResetsRunState clears scratch left by an earlier run.
func TestNewStepper_ResetsRunState(t *testing.T) {
	g, err := grid.New(3, 3, grid.Empty)
	require.NoError(t, err)
	far := grid.Coord{X: 2, Y: 0}
	g.SetDistance(far, 0.5)
	g.MarkVisited(far)

	_, err = search.NewStepper(g, g.Start(), g.Goal(), search.AStar)
	require.NoError(t, err)
	assert.False(t, g.Visited(far))
	assert.Equal(t, float64(0), g.GScore(g.Start()))
	assert.Equal(t, float64(4), g.FScore(g.Start()))
}

func TestParseAlgorithm(t *testing.T) {
	for in, want := range map[string]search.Algorithm{
		"dijkstra": search.Dijkstra,
		"AStar":    search.AStar,
		" a* ":     search.AStar,
	} {
		got, err := search.ParseAlgorithm(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := search.ParseAlgorithm("bfs")
	assert.ErrorIs(t, err, search.ErrUnknownAlgorithm)
}

func TestEvent_JSON(t *testing.T) {
	raw, err := json.Marshal(search.Event{Step: 3, Role: search.Frontier, Cell: grid.Cell{Coord: grid.Coord{X: 1, Y: 2}}})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"role":"frontier"`)
	assert.Contains(t, string(raw), `"x":1`)
	assert.Contains(t, string(raw), `"step":3`)
}
