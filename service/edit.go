package service

import (
	"context"
	"fmt"

	"github.com/katalvlaran/beepath/grid"
)

// WallEdit sets one cell's wall state.
type WallEdit struct {
	grid.Coord
	Wall bool `json:"wall"`
}

// SetWalls applies edits in order. Edits that touch start, goal or fall
// outside the grid are skipped, matching grid.SetWall.
func (svc *Service) SetWalls(ctx context.Context, id string, edits []WallEdit) (View, error) {
	return svc.update(ctx, id, func(g *grid.Grid) error {
		for _, e := range edits {
			g.SetWall(e.Coord, e.Wall)
		}
		return nil
	})
}

// ToggleWall flips one cell.
func (svc *Service) ToggleWall(ctx context.Context, id string, c grid.Coord) (View, error) {
	return svc.update(ctx, id, func(g *grid.Grid) error {
		g.ToggleWall(c)
		return nil
	})
}

// ClearWalls removes every wall.
func (svc *Service) ClearWalls(ctx context.Context, id string) (View, error) {
	return svc.update(ctx, id, func(g *grid.Grid) error {
		g.ClearWalls()
		return nil
	})
}

// FillWalls walls every cell except start and goal.
func (svc *Service) FillWalls(ctx context.Context, id string) (View, error) {
	return svc.update(ctx, id, func(g *grid.Grid) error {
		g.FillWalls()
		return nil
	})
}

// MoveGoal relocates the goal. A rejected move (wall, start, out of
// bounds) is ErrInvalidRequest.
func (svc *Service) MoveGoal(ctx context.Context, id string, c grid.Coord) (View, error) {
	return svc.update(ctx, id, func(g *grid.Grid) error {
		if !g.MoveGoal(c) {
			return fmt.Errorf("%w: cannot move goal to %s", ErrInvalidRequest, c)
		}
		return nil
	})
}

// Reset regenerates id with a new pattern. Zero Rows/Cols keep the
// current dimensions.
func (svc *Service) Reset(ctx context.Context, id string, req CreateRequest) (View, error) {
	defer svc.lockID(id)()

	cur, err := svc.load(ctx, id)
	if err != nil {
		return View{}, err
	}
	if req.Rows == 0 {
		req.Rows = cur.Rows()
	}
	if req.Cols == 0 {
		req.Cols = cur.Cols()
	}
	g, err := svc.build(req)
	if err != nil {
		return View{}, err
	}
	if err := svc.store.Save(ctx, id, g.Layout()); err != nil {
		return View{}, err
	}
	svc.log.WithField("grid", id).WithField("pattern", req.Pattern).Info("grid reset")
	return view(id, g), nil
}
