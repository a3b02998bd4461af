package t2048

import (
	"math/rand"
	"testing"
)

// placed is a tile value at a board position, used to build fixtures.
type placed struct {
	pos   Coord
	value int
}

// buildBoard places tiles on a fresh grid in the given order.
func buildBoard(t *testing.T, w, h int, layout []placed) (*Grid, []*Tile) {
	t.Helper()
	g := NewGrid(w, h)
	tiles := make([]*Tile, 0, len(layout))
	for i, p := range layout {
		c := g.CellAt(p.pos)
		if c == nil {
			t.Fatalf("fixture tile %v outside %dx%d grid", p.pos, w, h)
		}
		if c.Occupant() != nil {
			t.Fatalf("fixture places two tiles on %v", p.pos)
		}
		tile := &Tile{ID: TileID(i + 1), Value: p.value}
		g.place(tile, c)
		tiles = append(tiles, tile)
	}
	return g, tiles
}

// row builds a layout for row y from left to right; zeros are empty cells.
func row(y int, values ...int) []placed {
	var out []placed
	for x, v := range values {
		if v != 0 {
			out = append(out, placed{pos: Coord{X: x, Y: y}, value: v})
		}
	}
	return out
}

// sessionWithBoard returns a session awaiting input on the given layout.
func sessionWithBoard(t *testing.T, cfg Config, rng Source, layout []placed) *Session {
	t.Helper()
	s, err := NewSession(cfg, rng)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.grid = NewGrid(cfg.Width, cfg.Height)
	for _, p := range layout {
		s.tiles = append(s.tiles, s.newTile(p.value, s.grid.CellAt(p.pos)))
	}
	s.round = 1
	s.phase = PhaseAwaitingInput
	return s
}

// checkerboard fills a w x h board with alternating 2 and 4, leaving out skip.
func checkerboard(w, h int, skip Coord) []placed {
	var out []placed
	for x := range w {
		for y := range h {
			c := Coord{X: x, Y: y}
			if c == skip {
				continue
			}
			v := 2
			if (x+y)%2 == 1 {
				v = 4
			}
			out = append(out, placed{pos: c, value: v})
		}
	}
	return out
}

// scriptedSource replays fixed draws, then falls back to zero.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// boardValues returns the board as [y][x] values.
func boardValues(g *Grid) [][]int {
	out := make([][]int, g.Height())
	for y := range out {
		out[y] = make([]int, g.Width())
	}
	for _, c := range g.Cells() {
		if t := c.Occupant(); t != nil {
			out[c.Pos.Y][c.Pos.X] = t.Value
		}
	}
	return out
}
