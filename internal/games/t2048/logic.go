package t2048

import "sort"

// Step is one tile's resolved outcome for a turn.
type Step struct {
	Tile      *Tile
	From      *Cell
	Final     *Cell // Last empty cell reached, or From when the tile never moved
	MergeInto *Tile // Tile this one combines with, nil if none
}

// Moved reports whether the tile changes cell or merges.
func (s Step) Moved() bool {
	return s.Final != s.From || s.MergeInto != nil
}

// TurnPlan is the computed, not yet applied outcome of one direction input.
type TurnPlan struct {
	Direction Direction
	Steps     []Step // In resolution order
}

// Moved reports whether any tile moves or merges.
func (p TurnPlan) Moved() bool {
	for _, s := range p.Steps {
		if s.Moved() {
			return true
		}
	}
	return false
}

// Merges returns the number of merging pairs.
func (p TurnPlan) Merges() int {
	n := 0
	for _, s := range p.Steps {
		if s.MergeInto != nil {
			n++
		}
	}
	return n
}

// Moves converts the plan into animation records.
func (p TurnPlan) Moves() []TileMove {
	targets := make(map[*Tile]*Cell, len(p.Steps))
	merged := make(map[*Tile]bool)
	for _, s := range p.Steps {
		targets[s.Tile] = s.Final
		if s.MergeInto != nil {
			merged[s.Tile] = true
			merged[s.MergeInto] = true
		}
	}

	moves := make([]TileMove, 0, len(p.Steps))
	for _, s := range p.Steps {
		to := s.Final
		if s.MergeInto != nil {
			to = targets[s.MergeInto]
		}
		moves = append(moves, TileMove{
			TileID: s.Tile.ID,
			Value:  s.Tile.Value,
			From:   s.From.Pos,
			To:     to.Pos,
			Merged: merged[s.Tile],
		})
	}
	return moves
}

// Resolve computes where every tile ends up when the board is shifted in dir.
//
// Tiles closest to the edge being moved toward are resolved first, so they
// lock in their destination before the tiles behind them. Each tile slides
// one cell at a time until it hits the boundary or another tile. It merges
// into an equal-valued neighbour only if that neighbour is neither merging
// itself nor already the target of a merge this turn.
//
// Resolve works on a private occupancy overlay and never mutates the grid
// or the tiles.
func Resolve(g *Grid, tiles []*Tile, dir Direction) TurnPlan {
	plan := TurnPlan{Direction: dir}
	if !dir.Valid() {
		return plan
	}

	ordered := make([]*Tile, len(tiles))
	copy(ordered, tiles)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Pos(), ordered[j].Pos()
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	if dir.positive() {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}

	occupied := make(map[Coord]*Tile, len(tiles))
	for _, t := range tiles {
		occupied[t.Pos()] = t
	}
	mergeInto := make(map[*Tile]*Tile)
	targeted := make(map[*Tile]bool)
	vec := dir.Vector()

	for _, t := range ordered {
		cur := t.cell
		for {
			next := g.CellAt(cur.Pos.Add(vec))
			if next == nil {
				break
			}

			other, occ := occupied[next.Pos]
			if !occ {
				delete(occupied, cur.Pos)
				occupied[next.Pos] = t
				cur = next
				continue
			}

			if other.Value == t.Value && mergeInto[other] == nil && !targeted[other] {
				mergeInto[t] = other
				targeted[other] = true
				// The merging tile leaves its cell; tiles behind may slide in.
				delete(occupied, cur.Pos)
			}
			break
		}

		plan.Steps = append(plan.Steps, Step{
			Tile:      t,
			From:      t.cell,
			Final:     cur,
			MergeInto: mergeInto[t],
		})
	}

	return plan
}

// HasPossibleMerge returns true if any two adjacent tiles hold equal values.
func HasPossibleMerge(g *Grid) bool {
	for _, c := range g.cells {
		if c.occupant == nil {
			continue
		}
		for _, d := range []Direction{DirRight, DirUp} {
			n := g.CellAt(c.Pos.Add(d.Vector()))
			if n != nil && n.occupant != nil && n.occupant.Value == c.occupant.Value {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any direction would move or merge a tile.
func CanMove(g *Grid) bool {
	return len(g.FreeCells()) > 0 || HasPossibleMerge(g)
}

// MaxTile returns the maximum tile value in tiles.
func MaxTile(tiles []*Tile) int {
	maxVal := 0
	for _, t := range tiles {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// SumValues returns the sum of all tile values.
func SumValues(tiles []*Tile) int {
	sum := 0
	for _, t := range tiles {
		sum += t.Value
	}
	return sum
}
