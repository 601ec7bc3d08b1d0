package api

import (
	"github.com/katalvlaran/beepath/grid"
	"github.com/katalvlaran/beepath/search"
	"github.com/katalvlaran/beepath/service"
)

// WallsRequest sets several walls at once.
type WallsRequest struct {
	Walls []service.WallEdit `json:"walls" binding:"required"`
}

// CoordRequest names one cell.
type CoordRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

func (r CoordRequest) coord() grid.Coord {
	return grid.Coord{X: *r.X, Y: *r.Y}
}

// SearchRequest selects the algorithm; empty means A*.
type SearchRequest struct {
	Algorithm string `json:"algorithm"`
}

// StopResponse reports whether a running search was cancelled.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// Stream message types.
const (
	msgEvent  = "event"
	msgResult = "result"
	msgError  = "error"

	// client command that cancels the stream
	cmdStop = "stop"
)

// StreamMessage is one websocket frame sent by the stream endpoint.
type StreamMessage struct {
	Type    string           `json:"type"`
	Event   *search.Event    `json:"event,omitempty"`
	Outcome *service.Outcome `json:"outcome,omitempty"`
	Error   string           `json:"error,omitempty"`
}
