package t2048

// Coord is an integer lattice position. X grows to the right, Y grows upward.
type Coord struct {
	X, Y int
}

// Add returns the coordinate offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every move direction in a fixed order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// Vector returns the unit step for the direction.
func (d Direction) Vector() Coord {
	switch d {
	case DirUp:
		return Coord{X: 0, Y: 1}
	case DirDown:
		return Coord{X: 0, Y: -1}
	case DirLeft:
		return Coord{X: -1, Y: 0}
	case DirRight:
		return Coord{X: 1, Y: 0}
	default:
		return Coord{}
	}
}

// positive reports whether the direction points along a positive axis.
func (d Direction) positive() bool {
	return d == DirUp || d == DirRight
}

// Valid reports whether d is one of the four move directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Cell is one addressable position on the grid.
// The occupant is a lookup-only back reference; the Session owns tiles.
type Cell struct {
	Pos      Coord
	occupant *Tile
}

// Occupant returns the tile on this cell, or nil.
func (c *Cell) Occupant() *Tile {
	return c.occupant
}

// Grid is a fixed width x height set of cells built once per level.
type Grid struct {
	width  int
	height int
	cells  []*Cell // x-major: index = x*height + y
}

// NewGrid creates a grid with all cells empty.
// Callers validate dimensions; see Config.Validate.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]*Cell, 0, width*height),
	}
	for x := range width {
		for y := range height {
			g.cells = append(g.cells, &Cell{Pos: Coord{X: x, Y: y}})
		}
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Size returns the total number of cells.
func (g *Grid) Size() int {
	return len(g.cells)
}

// CellAt returns the cell at c, or nil when c lies outside the grid.
func (g *Grid) CellAt(c Coord) *Cell {
	if c.X < 0 || c.X >= g.width || c.Y < 0 || c.Y >= g.height {
		return nil
	}
	return g.cells[c.X*g.height+c.Y]
}

// IsOccupied reports whether a tile sits on the cell.
func (g *Grid) IsOccupied(c *Cell) bool {
	return c != nil && c.occupant != nil
}

// Cells returns every cell in x-major order.
func (g *Grid) Cells() []*Cell {
	out := make([]*Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// FreeCells returns the unoccupied cells in x-major order.
func (g *Grid) FreeCells() []*Cell {
	var free []*Cell
	for _, c := range g.cells {
		if c.occupant == nil {
			free = append(free, c)
		}
	}
	return free
}

// place binds t to c, releasing the tile's previous cell.
func (g *Grid) place(t *Tile, c *Cell) {
	if t.cell != nil && t.cell.occupant == t {
		t.cell.occupant = nil
	}
	t.cell = c
	c.occupant = t
}

// release unbinds t from its cell.
func (g *Grid) release(t *Tile) {
	if t.cell != nil && t.cell.occupant == t {
		t.cell.occupant = nil
	}
	t.cell = nil
}
