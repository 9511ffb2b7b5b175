// Package life implements Conway's Game of Life transition on a toroidal grid.
package life

import (
	"conway-ca/internal/core"
)

// CountNeighbors sums the states of the eight cells around (x, y), wrapping
// both axes so edges connect to the opposite edge.
func CountNeighbors(g *core.Grid, x, y int) int {
	w, h := g.W, g.H
	cells := g.Cells()
	neighbors := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := (x + dx + w) % w
			ny := (y + dy + h) % h
			neighbors += int(cells[ny*w+nx])
		}
	}
	return neighbors
}

// Next applies the B3/S23 rule to a single cell.
func Next(state uint8, neighbors int) uint8 {
	switch {
	case state == core.Dead && neighbors == 3:
		return core.Alive
	case state == core.Alive && (neighbors < 2 || neighbors > 3):
		return core.Dead
	default:
		return state
	}
}

// Step returns the next generation of g. g is only read; the result is a
// fresh grid with the same dimensions.
func Step(g *core.Grid) *core.Grid {
	nxt, _ := core.NewGrid(g.W, g.H)
	cur := g.Cells()
	out := nxt.Cells()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			idx := y*g.W + x
			out[idx] = Next(cur[idx], CountNeighbors(g, x, y))
		}
	}
	return nxt
}

// StepN advances g by n generations.
func StepN(g *core.Grid, n int) *core.Grid {
	for i := 0; i < n; i++ {
		g = Step(g)
	}
	return g
}
