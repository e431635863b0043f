package engine

import (
	"reflect"
	"testing"
)

func TestUndoRoundTrip(t *testing.T) {
	e := newTestEngine(t, Options{Size: 4, UndoDepth: 5, WinTile: 2048, FourProb: 0.1, Seed: 21})
	e.board.cells = []int{
		2, 2, 0, 0,
		0, 4, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 2,
	}
	before := e.Snapshot()

	res, err := e.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !res.Changed {
		t.Fatal("move should change the board")
	}

	if !e.Undo() {
		t.Fatal("Undo after a changed move should succeed")
	}
	after := e.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("undo should restore the pre-move state:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestUndoRestoresScoreAndMoves(t *testing.T) {
	e := newTestEngine(t, Options{Size: 4, UndoDepth: 5, WinTile: 2048, Seed: 21})
	e.board.cells = []int{
		2, 2, 4, 4,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}

	if _, err := e.Move(DirLeft); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if e.Score() != 12 || e.Moves() != 1 {
		t.Fatalf("after move: score=%d moves=%d, want 12 and 1", e.Score(), e.Moves())
	}

	if !e.Undo() {
		t.Fatal("Undo should succeed")
	}
	if e.Score() != 0 {
		t.Errorf("Score after undo = %d, want 0", e.Score())
	}
	if e.Moves() != 0 {
		t.Errorf("Moves after undo = %d, want 0", e.Moves())
	}
	want := []int{
		2, 2, 4, 4,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	for i, v := range want {
		if e.board.cells[i] != v {
			t.Fatalf("cell %d = %d, want %d", i, e.board.cells[i], v)
		}
	}
}

func TestUndoDepthZeroDisablesUndo(t *testing.T) {
	e := newTestEngine(t, Options{Size: 4, UndoDepth: 0, WinTile: 2048, Seed: 5})
	e.board.cells = []int{
		2, 2, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}

	if _, err := e.Move(DirLeft); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if e.Undo() {
		t.Error("undo depth 0 should make Undo always return false")
	}
}

func TestUndoEmptyStack(t *testing.T) {
	e := newTestEngine(t, Options{Size: 4, UndoDepth: 5, WinTile: 2048, Seed: 5})
	if e.Undo() {
		t.Error("Undo before any move should return false")
	}
}

func TestUndoDepthEvictsOldest(t *testing.T) {
	e := newTestEngine(t, Options{Size: 4, UndoDepth: 2, WinTile: 2048, Seed: 5})

	// Three changing moves against depth 2. The board is re-staged before
	// each move so every one of them merges regardless of spawn placement.
	for i := range 3 {
		e.board.cells = []int{
			2, 2, 0, 0,
			0, 0, 0, 0,
			0, 0, 0, 0,
			0, 0, 0, 0,
		}
		res, err := e.Move(DirLeft)
		if err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		if !res.Changed {
			t.Fatalf("move %d should change the board", i)
		}
	}

	if e.UndoAvailable() != 2 {
		t.Fatalf("UndoAvailable = %d, want 2", e.UndoAvailable())
	}
	if !e.Undo() {
		t.Fatal("first undo should succeed")
	}
	if !e.Undo() {
		t.Fatal("second undo should succeed")
	}
	if e.Undo() {
		t.Error("third undo should fail: the oldest entry was evicted")
	}
	if e.Moves() != 1 {
		t.Errorf("Moves after two undos = %d, want 1", e.Moves())
	}
}

func TestUndoResurrectsStuckGame(t *testing.T) {
	e := newTestEngine(t, Options{Size: 2, UndoDepth: 5, WinTile: 2048, FourProb: 0, Seed: 1})
	e.board.cells = []int{
		2, 2,
		8, 16,
	}

	res, err := e.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if res.Over != OverStuck {
		t.Fatalf("Over = %v, want OverStuck", res.Over)
	}

	if !e.Undo() {
		t.Fatal("undoing the losing move should succeed")
	}
	if e.Over() != OverNone {
		t.Errorf("Over after undo = %v, want OverNone", e.Over())
	}
	if _, err := e.Move(DirRight); err != nil {
		t.Errorf("the resurrected game should accept moves: %v", err)
	}
}

func TestUndoRestoresWonFlag(t *testing.T) {
	e := newTestEngine(t, Options{Size: 4, UndoDepth: 5, WinTile: 2048, Seed: 9})
	e.board.cells = []int{
		1024, 1024, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}

	res, err := e.Shift(DirLeft)
	if err != nil || !res.WonNow {
		t.Fatalf("expected win transition, res=%+v err=%v", res, err)
	}

	if !e.Undo() {
		t.Fatal("Undo should succeed")
	}
	if e.Won() {
		t.Error("undoing the winning move should clear the won flag")
	}

	// Replaying the merge wins again on the rewound timeline.
	res, err = e.Shift(DirLeft)
	if err != nil {
		t.Fatalf("Shift: %v", err)
	}
	if !res.WonNow {
		t.Error("the win transition should fire again after being undone")
	}
}

func TestUndoAfterStopAfterWin(t *testing.T) {
	e := newTestEngine(t, Options{Size: 4, UndoDepth: 5, WinTile: 2048, Seed: 9})
	e.board.cells = []int{
		1024, 1024, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}

	if _, err := e.Shift(DirLeft); err != nil {
		t.Fatalf("Shift: %v", err)
	}
	e.StopAfterWin()
	if e.Over() != OverWon {
		t.Fatalf("Over = %v, want OverWon", e.Over())
	}

	// Undo steps back past the stop decision and the winning move both.
	if !e.Undo() {
		t.Fatal("Undo should succeed")
	}
	if e.IsOver() || e.Won() {
		t.Errorf("after undo: over=%v won=%v, want a running unwon game", e.Over(), e.Won())
	}
}
