package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tile-merge/internal/core"
)

const (
	cellWidth  = 6 // Width of each cell including the left border
	cellHeight = 2 // Height of each cell including the top border
	hudHeight  = 3
)

// boardSize returns the board's size in screen characters.
func (g *Game) boardSize() (w, h int) {
	cfg := g.preset.Apply(CurrentOptions().Rules)
	if g.session != nil {
		cfg = g.session.Config()
	}
	return cfg.Width*cellWidth + 1, cfg.Height*cellHeight + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		g.drawOverlay(dst, g.screenW/2, g.screenH/2, "INVALID RULES", "Check the t2048 config")
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := g.boardSize()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGridLines(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws score, turn and max tile.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawTextCentered(0, g.Title())

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.session.Score()))

	info := fmt.Sprintf("Max: %d", g.session.MaxTile())
	if cfg := g.session.Config(); !cfg.Endless {
		info = fmt.Sprintf("Max: %d/%d", g.session.MaxTile(), cfg.WinValue)
	}
	dst.DrawText(core.Max(boardX, boardX+boardW-len(info)), 1, info)

	dst.DrawTextCentered(2, fmt.Sprintf("Turn %d", g.session.Turns()))
}

// renderGridLines draws the cell borders.
func (g *Game) renderGridLines(dst *core.Screen, boardX, boardY int) {
	w, h := g.session.Grid().Width(), g.session.Grid().Height()
	for row := range h + 1 {
		for col := range w + 1 {
			px := boardX + col*cellWidth
			py := boardY + row*cellHeight
			dst.SetColored(px, py, gridCorner(col, row, w, h), core.ColorGray)

			if col < w {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if row < h {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

func gridCorner(col, row, w, h int) rune {
	switch {
	case row == 0 && col == 0:
		return '┌'
	case row == 0 && col == w:
		return '┐'
	case row == h && col == 0:
		return '└'
	case row == h && col == w:
		return '┘'
	case row == 0:
		return '┬'
	case row == h:
		return '┴'
	case col == 0:
		return '├'
	case col == w:
		return '┤'
	default:
		return '┼'
	}
}

// renderTiles draws settled tiles, or the sliding tiles mid-animation.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	if g.animating && g.animPhase == AnimSlide {
		for i := range g.animations {
			a := &g.animations[i]
			x, y := a.interpolatePosition()
			g.drawTile(dst, boardX, boardY, x, y, a.Value, tileColor(a.Value))
		}
		return
	}

	popping := make(map[TileID]*TileAnimation, len(g.animations))
	if g.animating {
		for i := range g.animations {
			popping[g.animations[i].TileID] = &g.animations[i]
		}
	}

	for _, t := range g.session.Tiles() {
		p := t.Pos()
		color := tileColor(t.Value)
		if a, ok := popping[t.ID]; ok && a.Progress < 1 {
			color = core.ColorBrightWhite
			if a.IsNew && a.Progress < 0.5 {
				g.drawLabel(dst, boardX, boardY, float64(p.X), float64(p.Y), "·", color)
				continue
			}
		}
		g.drawTile(dst, boardX, boardY, float64(p.X), float64(p.Y), t.Value, color)
	}
}

func (g *Game) drawTile(dst *core.Screen, boardX, boardY int, x, y float64, value int, c core.Color) {
	g.drawLabel(dst, boardX, boardY, x, y, strconv.Itoa(value), c)
}

// drawLabel centers text in the cell at board position (x, y).
// Row 0 of the board is drawn at the bottom of the screen.
func (g *Game) drawLabel(dst *core.Screen, boardX, boardY int, x, y float64, text string, c core.Color) {
	h := g.session.Grid().Height()
	cellX := boardX + int(math.Round(x*cellWidth)) + 1
	cellY := boardY + int(math.Round((float64(h-1)-y)*cellHeight)) + 1
	pad := core.Max(0, (cellWidth-1-len([]rune(text)))/2)
	dst.DrawTextColored(cellX+pad, cellY, text, c)
}

// tileColor maps a tile value to its palette color.
func tileColor(value int) core.Color {
	switch {
	case value <= 2:
		return core.ColorWhite
	case value == 4:
		return core.ColorBrightWhite
	case value == 8:
		return core.ColorYellow
	case value == 16:
		return core.ColorOrange
	case value == 32:
		return core.ColorRed
	case value == 64:
		return core.ColorBrightRed
	case value == 128:
		return core.ColorBrightYellow
	case value == 256:
		return core.ColorGreen
	case value == 512:
		return core.ColorBrightGreen
	case value == 1024:
		return core.ColorCyan
	case value == 2048:
		return core.ColorBrightMagenta
	default:
		return core.ColorBrightBlue
	}
}

// renderOverlays draws pause and end-of-game boxes.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}
	if g.animating {
		return
	}

	switch g.session.Phase() {
	case PhaseWon:
		g.drawOverlay(dst, centerX, centerY,
			fmt.Sprintf("%d REACHED!", g.session.Config().WinValue),
			fmt.Sprintf("Score: %d", g.session.Score()),
			"Press R to restart")
	case PhaseLost:
		g.drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			fmt.Sprintf("Max tile: %d", g.session.MaxTile()),
			"Press R to restart")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrow keys/WASD: Slide | P: Pause | R: Restart | Q: Quit"
}
