package tui

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/twenty48/internal/core"
	"github.com/vovakirdan/twenty48/internal/engine"
)

const (
	cellHeight = 2 // Height of each cell (including borders)
	hudHeight  = 3 // Rows above the board: title, score, moves
)

// tileCellWidth returns the cell width (including the left border) that
// fits the widest tile on the board. The board grows a column of
// characters when tiles pass four digits.
func tileCellWidth(maxTile int) int {
	w := len(strconv.Itoa(maxTile)) + 1
	if w < 5 {
		w = 5
	}
	return w
}

// tileColor picks a color for a tile value. The progression tops out at
// the classic win tile; anything beyond shares one color.
func tileColor(v int) core.Color {
	switch v {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorBrightWhite
	case 8:
		return core.ColorYellow
	case 16:
		return core.ColorBrightYellow
	case 32:
		return core.ColorOrange
	case 64:
		return core.ColorBrightRed
	case 128:
		return core.ColorCyan
	case 256:
		return core.ColorBrightCyan
	case 512:
		return core.ColorGreen
	case 1024:
		return core.ColorBrightGreen
	case 2048:
		return core.ColorBrightMagenta
	}
	return core.ColorMagenta
}

// renderGame draws the full frame: HUD, grid, status and overlays.
func (m GameModel) renderGame(dst *core.Screen) {
	dst.Clear()

	size := m.eng.Size()
	cellW := tileCellWidth(m.eng.MaxTile())
	boardW := size*cellW + 1      // +1 for right border
	boardH := size*cellHeight + 1 // +1 for bottom border

	if m.width < boardW || m.height < hudHeight+boardH+2 {
		m.renderTooSmall(dst)
		return
	}

	boardX := (m.width - boardW) / 2
	boardY := hudHeight + 1

	m.renderHUD(dst, boardX, boardW)
	m.renderBoard(dst, boardX, boardY, cellW)
	m.renderStatus(dst, boardY+boardH+1)
	if m.showHints {
		m.renderHints(dst)
	}
	m.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (m GameModel) renderTooSmall(dst *core.Screen) {
	y := m.height / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title row plus score and undo info.
func (m GameModel) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawTextCenteredColored(0, m.def.Title, core.ColorBrightWhite)

	scoreStr := fmt.Sprintf("Score: %d", m.eng.Score())
	dst.DrawText(boardX, 1, scoreStr)

	bestStr := fmt.Sprintf("Best: %d", m.highScore)
	bestX := boardX + boardW - len(bestStr)
	if bestX < boardX+len(scoreStr)+2 {
		bestX = boardX + len(scoreStr) + 2
	}
	dst.DrawTextColored(bestX, 1, bestStr, core.ColorGray)

	movesStr := fmt.Sprintf("Moves: %d", m.eng.Moves())
	dst.DrawText(boardX, 2, movesStr)

	undoStr := "Undo: off"
	if m.eng.UndoDepth() > 0 {
		undoStr = fmt.Sprintf("Undo: %d/%d", m.eng.UndoAvailable(), m.eng.UndoDepth())
	}
	undoX := boardX + boardW - len(undoStr)
	if undoX < boardX+len(movesStr)+2 {
		undoX = boardX + len(movesStr) + 2
	}
	dst.DrawTextColored(undoX, 2, undoStr, core.ColorGray)
}

// renderBoard draws the grid with tiles.
func (m GameModel) renderBoard(dst *core.Screen, boardX, boardY, cellW int) {
	size := m.eng.Size()

	// Draw grid borders
	for y := range size + 1 {
		for x := range size + 1 {
			px := boardX + x*cellW
			py := boardY + y*cellHeight

			// Draw corner/intersection
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
			dst.SetColored(px, py, corner, core.ColorGray)

			// Draw horizontal line to the right
			if x < size {
				for i := 1; i < cellW; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}

			// Draw vertical line down
			if y < size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	// Draw tiles
	for row := range size {
		for col := range size {
			val := m.eng.Cell(row, col)
			if val == 0 {
				continue
			}

			cellX := boardX + col*cellW + 1
			cellY := boardY + row*cellHeight + 1

			// Center the value in the cell
			valStr := strconv.Itoa(val)
			padLeft := (cellW - 1 - len(valStr)) / 2
			if padLeft < 0 {
				padLeft = 0
			}

			dst.DrawTextColored(cellX+padLeft, cellY, valStr, tileColor(val))
		}
	}
}

// renderStatus draws the one-line status message under the board.
func (m GameModel) renderStatus(dst *core.Screen, y int) {
	if m.status == "" {
		return
	}
	dst.DrawTextCenteredColored(y, m.status, core.ColorYellow)
}

// renderHints draws the control hints on the bottom row.
func (m GameModel) renderHints(dst *core.Screen) {
	hints := "arrows/wasd: move | u: undo | r: restart | q: quit"
	if m.phase == phaseWinPrompt {
		hints = "c: keep going | s: stop here | u: undo"
	}
	dst.DrawTextCenteredColored(m.height-1, hints, core.ColorGray)
}

// renderOverlays draws the win prompt and game-over boxes.
func (m GameModel) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch m.phase {
	case phaseWinPrompt:
		title := fmt.Sprintf("You made %d!", m.eng.WinTile())
		m.drawOverlay(dst, centerX, centerY, title, "C: keep going   S: stop here")

	case phaseOver:
		switch m.eng.Over() {
		case engine.OverWon:
			scoreStr := fmt.Sprintf("Final score: %d", m.eng.Score())
			m.drawOverlay(dst, centerX, centerY, "YOU WIN", scoreStr, "R: play again   Q: quit")
		case engine.OverStuck:
			maxStr := fmt.Sprintf("Max tile: %d", m.eng.MaxTile())
			actions := "R: play again   Q: quit"
			if m.eng.UndoAvailable() > 0 {
				actions = "U: undo   R: play again   Q: quit"
			}
			m.drawOverlay(dst, centerX, centerY, "GAME OVER", maxStr, actions)
		}
	}
}

// drawOverlay draws a centered text overlay on top of the board.
func (m GameModel) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBoxColored(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH}, core.ColorBrightWhite)

	for i, line := range lines {
		x := centerX - len([]rune(line))/2
		dst.DrawTextColored(x, boxY+1+i, line, core.ColorBrightWhite)
	}
}
