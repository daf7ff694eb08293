package t2048

import (
	"fmt"
	"math"
	"strconv"

	platformcore "github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// boardDims returns the board size in characters, borders included.
func boardDims(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	size := g.board.Size()
	boardW, boardH := boardDims(size)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY, size)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	msg := "Window too small"
	x := (g.screenW - len(msg)) / 2
	y := g.screenH / 2
	dst.DrawTextColor(x, y, msg, platformcore.ColorWarning)

	hint := "Please resize terminal"
	hintX := (g.screenW - len(hint)) / 2
	dst.DrawText(hintX, y+1, hint)
}

// renderHUD draws the score, the best score and the board info.
func (g *Game) renderHUD(dst *platformcore.Screen, boardX, boardW int) {
	title := g.Title()
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, platformcore.ColorTitle)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.ctrl.Score()))

	bestStr := fmt.Sprintf("Best: %d", g.ctrl.BestScore())
	bestColor := platformcore.ColorDefault
	if g.ctrl.Score() > 0 && g.ctrl.IsNewRecord() {
		bestColor = platformcore.ColorRecord
	}
	bestX := platformcore.Clamp(boardX+boardW-len(bestStr), boardX, boardX+boardW)
	dst.DrawTextColor(bestX, 1, bestStr, bestColor)

	size := g.board.Size()
	info := fmt.Sprintf("%dx%d  Goal: %d", size, size, g.cfg.Rules.WinTile)
	if g.cfg.Rules.WinTile == 0 {
		info = fmt.Sprintf("%dx%d  Max: %d", size, size, g.board.MaxTileNumber())
	}
	if g.bot.Enabled() {
		info += "  [BOT]"
	}
	dst.DrawTextColor(boardX+(boardW-len(info))/2, 2, info, platformcore.ColorGray)
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *platformcore.Screen, boardX, boardY, size int) {
	const c = platformcore.ColorGray
	for y := 0; y < size+1; y++ {
		for x := 0; x < size+1; x++ {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == size:
				corner = '┐'
			case y == size && x == 0:
				corner = '└'
			case y == size && x == size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetWithColor(px, py, corner, c)

			if x < size {
				for i := 1; i < cellWidth; i++ {
					dst.SetWithColor(px+i, py, '─', c)
				}
			}
			if y < size {
				for i := 1; i < cellHeight; i++ {
					dst.SetWithColor(px, py+i, '│', c)
				}
			}
		}
	}
}

// renderTiles draws settled tiles, then the ones in motion on top.
func (g *Game) renderTiles(dst *platformcore.Screen, boardX, boardY int) {
	popping := make(map[core.TileIndex]bool)
	if g.animationPhase == PhasePop {
		for _, a := range g.animations {
			popping[a.To] = true
		}
	}

	for r, row := range g.view {
		for c, exp := range row {
			idx := core.TileIndex{Row: r, Col: c}
			if exp == core.Empty || g.moveTargets[idx] {
				continue
			}
			color := platformcore.TileColor(exp)
			if popping[idx] {
				color = platformcore.ColorPop
			}
			drawTile(dst, boardX, boardY, float64(r), float64(c), core.TileNumber(exp), color)
		}
	}

	if g.animationPhase != PhaseSlide {
		return
	}
	for i := range g.animations {
		a := &g.animations[i]
		row, col := a.interpolatePosition()
		exp := int(math.Log2(float64(a.Value)))
		drawTile(dst, boardX, boardY, row, col, a.Value, platformcore.TileColor(exp))
	}
}

// drawTile centers a tile value inside the cell at (row, col). Fractional
// positions come from animations and are rounded to the nearest character.
func drawTile(dst *platformcore.Screen, boardX, boardY int, row, col float64, value int, color platformcore.Color) {
	valStr := strconv.Itoa(value)
	padLeft := (cellWidth - 1 - len(valStr)) / 2
	if padLeft < 0 {
		padLeft = 0
	}
	x := boardX + int(math.Round(col*cellWidth)) + 1 + padLeft
	y := boardY + int(math.Round(row*cellHeight)) + 1
	dst.DrawTextColor(x, y, valStr, color)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen, boardX, boardY, boardW, boardH int) {
	centerX, centerY := platformcore.NewRect(boardX, boardY, boardW, boardH).Center()

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.ctrl.State() != core.StateEnded {
		return
	}

	switch g.ctrl.Outcome() {
	case core.OutcomeWon:
		reached := fmt.Sprintf("You reached %d!", g.board.MaxTileNumber())
		g.drawOverlay(dst, centerX, centerY, "YOU WIN!", reached, "C: keep going  R: restart")
	case core.OutcomeLost:
		maxStr := fmt.Sprintf("Max tile: %d", g.board.MaxTileNumber())
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", maxStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *platformcore.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	dst.DrawRect(platformcore.Rect{X: boxX, Y: boxY, W: boxW, H: boxH}, ' ')
	dst.DrawBox(platformcore.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})

	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawText(x, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | C: Continue | B: Bot | P: Pause | R: Restart | Q: Quit"
}
