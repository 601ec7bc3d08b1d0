package search

import "github.com/katalvlaran/beepath/grid"

// Run searches g from start to goal with algo and feeds every event to the
// observer set by WithObserver. "No path" and cancellation come back as a
// Result with Found == false; only invalid input yields an error.
//
// Complexity: see the package documentation.
func Run(g *grid.Grid, start, goal grid.Coord, algo Algorithm, opts ...Option) (Result, error) {
	s, err := NewStepper(g, start, goal, algo, opts...)
	if err != nil {
		return Result{}, err
	}
	for ev := range s.All() {
		s.opts.Observer(ev)
	}
	return s.Result(), nil
}
