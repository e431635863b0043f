package engine

// Snapshot captures the complete game state for rendering, determinism
// testing and replay. Cells is a fresh copy; mutating it does not affect
// the engine.
type Snapshot struct {
	Size    int
	Cells   [][]int // Cells[row][col], 0 for empty
	Score   int
	Moves   int
	MaxTile int // Highest tile on board
	Won     bool
	Over    OverKind
}

// Snapshot returns a read-only copy of the current game state.
func (e *Engine) Snapshot() Snapshot {
	cells := make([][]int, e.board.size)
	for row := range cells {
		cells[row] = make([]int, e.board.size)
		for col := range cells[row] {
			cells[row][col] = e.board.at(row, col)
		}
	}
	return Snapshot{
		Size:    e.board.size,
		Cells:   cells,
		Score:   e.score,
		Moves:   e.moves,
		MaxTile: e.board.maxTile(),
		Won:     e.won,
		Over:    e.over,
	}
}
