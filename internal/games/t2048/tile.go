package t2048

// TileID identifies a tile for the lifetime of a session. IDs are never reused.
type TileID uint64

// Tile is a single mergeable value on the grid.
type Tile struct {
	ID    TileID
	Value int
	cell  *Cell
}

// Cell returns the cell the tile occupies.
func (t *Tile) Cell() *Cell {
	return t.cell
}

// Pos returns the tile's coordinate.
func (t *Tile) Pos() Coord {
	return t.cell.Pos
}

// TileMove records one tile's slide for the presentation layer.
// For a merging tile To is the cell of the tile it merges into.
type TileMove struct {
	TileID TileID
	Value  int // Value before the merge
	From   Coord
	To     Coord
	Merged bool // Tile took part in a merge, as mover or target
}

// MergedTile is a tile created by combining two equal tiles.
type MergedTile struct {
	TileID  TileID
	Cell    Coord
	Value   int
	Sources [2]TileID // Target first, then the tile that moved into it
}

// SpawnedTile is a tile placed by the spawner.
type SpawnedTile struct {
	TileID TileID
	Cell   Coord
	Value  int
}
