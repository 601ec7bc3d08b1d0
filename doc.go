// Package beepath is a grid pathfinding engine with step-by-step
// visualisation: a fixed-size 2-D lattice of cells, Dijkstra and A*
// searches that emit one event per step, and the plumbing to pace, stop,
// persist and serve them.
//
// Layout:
//
//	grid/         lattice, wall patterns, edits, ASCII/JSON layouts
//	search/       Stepper (Dijkstra, A*), events, cooperative cancellation
//	animate/      per-role pacing and the "search in progress" Guard
//	store/        Memory/Redis layout stores, redsync-backed Guard
//	service/      grid sessions tying store, guard and animator together
//	api/          gin routes under <base>/v1 and the websocket stream
//	config/       environment/.env settings and logger construction
//	cmd/beepath   terminal runner
//	cmd/beepathd  HTTP/websocket server
//
// Quick start:
//
//	g, _ := grid.New(15, 30, grid.Maze, grid.WithSeed(7))
//	res, _ := search.Run(g, g.Start(), g.Goal(), search.AStar)
//	fmt.Println(g.Render(res.Path))
package beepath
