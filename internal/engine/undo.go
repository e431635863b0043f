package engine

// undoState is one entry of the undo history: a plain value copy of
// everything a move can change.
type undoState struct {
	cells []int
	score int
	moves int
	won   bool
	over  OverKind
}

func (e *Engine) captureState() undoState {
	return undoState{
		cells: append([]int(nil), e.board.cells...),
		score: e.score,
		moves: e.moves,
		won:   e.won,
		over:  e.over,
	}
}

func (e *Engine) restoreState(st undoState) {
	copy(e.board.cells, st.cells)
	e.score = st.score
	e.moves = st.moves
	e.won = st.won
	e.over = st.over
}

// pushUndo saves st, evicting the oldest entry once the stack holds
// undoDepth states. Depth zero keeps no history at all.
func (e *Engine) pushUndo(st undoState) {
	if e.undoDepth <= 0 {
		return
	}
	if len(e.undoStack) >= e.undoDepth {
		copy(e.undoStack, e.undoStack[1:])
		e.undoStack = e.undoStack[:e.undoDepth-1]
	}
	e.undoStack = append(e.undoStack, st)
}

func (e *Engine) popUndo() (undoState, bool) {
	if len(e.undoStack) == 0 {
		return undoState{}, false
	}
	st := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	return st, true
}
