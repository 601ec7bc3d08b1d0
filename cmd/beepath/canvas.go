package main

import (
	"strings"

	"github.com/katalvlaran/beepath/grid"
	"github.com/katalvlaran/beepath/search"
)

// canvas overlays search events on the static grid picture.
type canvas struct {
	cols  int
	cells []byte
}

func newCanvas(g *grid.Grid) *canvas {
	rows := strings.Split(g.String(), "\n")
	c := &canvas{cols: g.Cols(), cells: make([]byte, 0, g.Len())}
	for _, r := range rows {
		c.cells = append(c.cells, r...)
	}
	return c
}

// paint marks the event cell; start and goal keep their letters.
func (c *canvas) paint(ev search.Event) {
	if ev.Cell.Start || ev.Cell.Goal {
		return
	}
	i := ev.Cell.Y*c.cols + ev.Cell.X
	switch ev.Role {
	case search.Explored:
		c.cells[i] = 'o'
	case search.Frontier:
		if c.cells[i] == '.' {
			c.cells[i] = '+'
		}
	case search.Path:
		c.cells[i] = '*'
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for i := 0; i < len(c.cells); i += c.cols {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.Write(c.cells[i : i+c.cols])
	}
	return b.String()
}
