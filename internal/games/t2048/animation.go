package t2048

import "math"

// Animation lengths in ticks.
const (
	slideAnimationDuration = 8 // ~133ms at 60fps
	popAnimationDuration   = 6 // ~100ms at 60fps
)

// TileAnimation is one tile drawn between cells.
type TileAnimation struct {
	TileID   TileID
	Value    int
	From     Coord
	To       Coord
	Progress float64 // 0.0 → 1.0
	Merged   bool    // Created by a merge
	IsNew    bool    // Placed by the spawner
}

// AnimationPhase is the stage of the turn presentation.
type AnimationPhase int

const (
	AnimNone AnimationPhase = iota
	AnimSlide
	AnimPop
)

// startSlideAnimation animates every tile of a resolved plan from its
// current cell to its destination.
func (g *Game) startSlideAnimation(moves []TileMove) {
	g.animations = g.animations[:0]
	for _, m := range moves {
		g.animations = append(g.animations, TileAnimation{
			TileID: m.TileID,
			Value:  m.Value,
			From:   m.From,
			To:     m.To,
		})
	}
	g.animating = true
	g.animPhase = AnimSlide
	g.animTicks = 0
}

// startPopAnimation highlights tiles created by the turn.
// With nothing to show the presentation goes idle immediately.
func (g *Game) startPopAnimation(merged []MergedTile, spawned []SpawnedTile) {
	g.animations = g.animations[:0]
	for _, m := range merged {
		g.animations = append(g.animations, TileAnimation{
			TileID: m.TileID, Value: m.Value, From: m.Cell, To: m.Cell, Merged: true,
		})
	}
	for _, s := range spawned {
		g.animations = append(g.animations, TileAnimation{
			TileID: s.TileID, Value: s.Value, From: s.Cell, To: s.Cell, IsNew: true,
		})
	}
	if len(g.animations) == 0 {
		g.stopAnimation()
		return
	}
	g.animating = true
	g.animPhase = AnimPop
	g.animTicks = 0
}

// updateAnimation advances the animation by one tick.
// Returns true while the current phase is still running.
func (g *Game) updateAnimation() bool {
	if !g.animating {
		return false
	}

	g.animTicks++

	var duration int
	switch g.animPhase {
	case AnimSlide:
		duration = slideAnimationDuration
	case AnimPop:
		duration = popAnimationDuration
	default:
		g.stopAnimation()
		return false
	}

	progress := math.Min(float64(g.animTicks)/float64(duration), 1.0)
	for i := range g.animations {
		g.animations[i].Progress = progress
	}

	return g.animTicks < duration
}

// finishAnimation ends the current phase. Finishing the slide is the
// presentation acknowledgement that lets the session apply the turn.
func (g *Game) finishAnimation() {
	if g.animPhase != AnimSlide {
		g.stopAnimation()
		return
	}

	result, ok := g.session.Acknowledge()
	if !ok {
		g.stopAnimation()
		return
	}
	g.lastTurn = result
	g.startPopAnimation(result.Merged, result.Spawned)
}

func (g *Game) stopAnimation() {
	g.animating = false
	g.animPhase = AnimNone
	g.animations = g.animations[:0]
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolatePosition returns the tile's board position at its current progress.
func (a *TileAnimation) interpolatePosition() (x, y float64) {
	t := easeOutQuad(a.Progress)
	x = float64(a.From.X) + float64(a.To.X-a.From.X)*t
	y = float64(a.From.Y) + float64(a.To.Y-a.From.Y)*t
	return x, y
}
