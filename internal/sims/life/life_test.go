package life

import (
	"testing"

	"conway-ca/internal/core"
)

func newGrid(t *testing.T, w, h int, alive ...[2]int) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid(%d,%d): %v", w, h, err)
	}
	for _, c := range alive {
		if err := g.Set(c[0], c[1], core.Alive); err != nil {
			t.Fatalf("set %v: %v", c, err)
		}
	}
	return g
}

func expectCells(t *testing.T, g *core.Grid, label string, alive ...[2]int) {
	t.Helper()
	expects := map[[2]int]bool{}
	for _, c := range alive {
		expects[c] = true
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			got := g.At(x, y) == core.Alive
			if got != expects[[2]int{x, y}] {
				t.Fatalf("%s: cell (%d,%d) alive=%v, expected %v", label, x, y, got, expects[[2]int{x, y}])
			}
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	life := newGrid(t, 5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	start := life.Snapshot()

	life = Step(life)
	expectCells(t, life, "after first step", [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})

	life = Step(life)
	expectCells(t, life, "after second step", [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	if !life.Equal(start) {
		t.Fatal("blinker did not return to its original state after two steps")
	}
}

func TestBlockIsStillLife(t *testing.T) {
	g := newGrid(t, 10, 10, [2]int{4, 4}, [2]int{5, 4}, [2]int{4, 5}, [2]int{5, 5})
	for _, c := range [][2]int{{4, 4}, {5, 4}, {4, 5}, {5, 5}} {
		if n := CountNeighbors(g, c[0], c[1]); n != 3 {
			t.Fatalf("block cell %v has %d neighbors, want 3", c, n)
		}
	}
	for y := 3; y <= 6; y++ {
		for x := 3; x <= 6; x++ {
			if g.At(x, y) == core.Alive {
				continue
			}
			if n := CountNeighbors(g, x, y); n > 2 {
				t.Fatalf("dead cell (%d,%d) next to block has %d neighbors", x, y, n)
			}
		}
	}
	if next := Step(g); !next.Equal(g) {
		t.Fatal("block changed under Step")
	}
}

func TestDeadGridStaysDead(t *testing.T) {
	g := newGrid(t, 7, 4)
	next := Step(g)
	if next.Population() != 0 {
		t.Fatalf("dead grid produced %d live cells", next.Population())
	}
}

func TestStepPreservesDimensions(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {3, 3}, {7, 4}, {4, 9}, {50, 50}} {
		g := newGrid(t, dims[0], dims[1], [2]int{0, 0})
		next := Step(g)
		if next.W != dims[0] || next.H != dims[1] {
			t.Fatalf("Step on %dx%d produced %dx%d", dims[0], dims[1], next.W, next.H)
		}
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	g := newGrid(t, 6, 6, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
	before := g.Snapshot()
	_ = Step(g)
	if !g.Equal(before) {
		t.Fatal("Step mutated its input grid")
	}
}

func TestWrapAtMinimumTorus(t *testing.T) {
	g := newGrid(t, 3, 3, [2]int{0, 0})
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 0 && y == 0 {
				if n := CountNeighbors(g, x, y); n != 0 {
					t.Fatalf("lone cell counts itself: %d", n)
				}
				continue
			}
			if n := CountNeighbors(g, x, y); n != 1 {
				t.Fatalf("cell (%d,%d) has %d neighbors, want 1", x, y, n)
			}
		}
	}
}

func TestFullThreeByThreeTorusCounts(t *testing.T) {
	var all [][2]int
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			all = append(all, [2]int{x, y})
		}
	}
	g := newGrid(t, 3, 3, all...)
	// Every offset lands on a distinct cell, so each cell sees the other eight.
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if n := CountNeighbors(g, x, y); n != 8 {
				t.Fatalf("cell (%d,%d) has %d neighbors, want 8", x, y, n)
			}
		}
	}
	if next := Step(g); next.Population() != 0 {
		t.Fatalf("overcrowded torus kept %d cells alive", next.Population())
	}
}

func TestWrapAcrossEdges(t *testing.T) {
	// Vertical blinker straddling the top/bottom edge of a 6x6 torus.
	g := newGrid(t, 6, 6, [2]int{0, 5}, [2]int{0, 0}, [2]int{0, 1})
	if n := CountNeighbors(g, 5, 0); n != 3 {
		t.Fatalf("cell (5,0) has %d neighbors, want 3", n)
	}
	next := Step(g)
	expectCells(t, next, "wrapped blinker", [2]int{5, 0}, [2]int{0, 0}, [2]int{1, 0})
}

func TestBirthAndSurvivalBranches(t *testing.T) {
	// Dead cell with exactly three neighbors is born.
	birth := newGrid(t, 6, 6, [2]int{1, 1}, [2]int{2, 1}, [2]int{3, 1})
	if n := CountNeighbors(birth, 2, 2); n != 3 {
		t.Fatalf("birth fixture has %d neighbors, want 3", n)
	}
	if Step(birth).At(2, 2) != core.Alive {
		t.Fatal("dead cell with three neighbors was not born")
	}

	// Live cell with exactly three neighbors survives.
	survive := newGrid(t, 6, 6, [2]int{2, 2}, [2]int{1, 1}, [2]int{2, 1}, [2]int{3, 1})
	if Step(survive).At(2, 2) != core.Alive {
		t.Fatal("live cell with three neighbors died")
	}

	// Live cell with two neighbors survives; dead cell with two stays dead.
	two := newGrid(t, 6, 6, [2]int{2, 2}, [2]int{1, 1}, [2]int{3, 3})
	next := Step(two)
	if next.At(2, 2) != core.Alive {
		t.Fatal("live cell with two neighbors died")
	}
	if next.At(2, 1) != core.Dead {
		t.Fatal("dead cell with two neighbors was born")
	}

	cases := []struct {
		state     uint8
		neighbors int
		want      uint8
	}{
		{core.Alive, 0, core.Dead},
		{core.Alive, 1, core.Dead},
		{core.Alive, 4, core.Dead},
		{core.Alive, 8, core.Dead},
		{core.Dead, 2, core.Dead},
		{core.Dead, 4, core.Dead},
	}
	for _, c := range cases {
		if got := Next(c.state, c.neighbors); got != c.want {
			t.Fatalf("Next(%d,%d) = %d, want %d", c.state, c.neighbors, got, c.want)
		}
	}
}

func TestGliderTranslatesAcrossTorus(t *testing.T) {
	g, _ := core.NewGrid(8, 8)
	if err := core.Seed(g, core.Glider()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	start := g.Snapshot()

	// Period 4, displacement (1,1); eight periods wrap fully around an 8x8 torus.
	moved := StepN(g, 4)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			sx, sy := start.Wrap(x-1, y-1)
			if moved.At(x, y) != start.At(sx, sy) {
				t.Fatalf("after 4 steps cell (%d,%d) does not match shifted glider", x, y)
			}
		}
	}
	if !StepN(g, 32).Equal(start) {
		t.Fatal("glider did not return home after 32 steps on an 8x8 torus")
	}
	if moved.Population() != 5 {
		t.Fatalf("glider population = %d, want 5", moved.Population())
	}
}
