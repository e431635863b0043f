package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New(%+v): %v", opts, err)
	}
	return e
}

func tileSum(e *Engine) int {
	sum := 0
	for _, v := range e.board.cells {
		sum += v
	}
	return sum
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		ok   bool
	}{
		{"classic defaults", DefaultOptions(), true},
		{"minimum board", Options{Size: 2, WinTile: 2048}, true},
		{"zero size", Options{}, false},
		{"one by one board", Options{Size: 1}, false},
		{"negative undo depth", Options{Size: 4, UndoDepth: -1}, false},
		{"negative four probability", Options{Size: 4, FourProb: -0.1}, false},
		{"four probability above one", Options{Size: 4, FourProb: 1.1}, false},
		{"win tile not a power of two", Options{Size: 4, WinTile: 3000}, false},
		{"win tile too small", Options{Size: 4, WinTile: 4}, false},
		{"zero win tile means default", Options{Size: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.opts)
			if tt.ok {
				if err != nil {
					t.Fatalf("New(%+v) failed: %v", tt.opts, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("New(%+v) should fail", tt.opts)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v should wrap ErrInvalidConfig", err)
			}
			if e != nil {
				t.Error("failed New should return a nil engine")
			}
		})
	}
}

func TestNewSpawnsTwoTiles(t *testing.T) {
	e := newTestEngine(t, Options{Size: 4, WinTile: 2048, FourProb: 0.1, Seed: 42})

	if got := e.EmptyCount(); got != 14 {
		t.Errorf("EmptyCount = %d, want 14", got)
	}
	if e.Score() != 0 {
		t.Errorf("Score = %d, want 0", e.Score())
	}
	if e.Moves() != 0 {
		t.Errorf("Moves = %d, want 0", e.Moves())
	}
	for i, v := range e.board.cells {
		if v != 0 && v != 2 && v != 4 {
			t.Errorf("cell %d spawned as %d, want 2 or 4", i, v)
		}
	}
}

func TestMoveMergeScoresAndSpawns(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	e.board.cells = []int{
		2, 2, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}

	res, err := e.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !res.Changed {
		t.Fatal("merging move should report Changed")
	}
	if res.ScoreGained != 4 {
		t.Errorf("ScoreGained = %d, want 4", res.ScoreGained)
	}
	if e.Cell(0, 0) != 4 {
		t.Errorf("cell (0,0) = %d, want 4", e.Cell(0, 0))
	}
	if e.Score() != 4 {
		t.Errorf("Score = %d, want 4", e.Score())
	}
	if e.Moves() != 1 {
		t.Errorf("Moves = %d, want 1", e.Moves())
	}
	// One merged tile plus one spawned tile.
	if got := e.EmptyCount(); got != 14 {
		t.Errorf("EmptyCount = %d, want 14", got)
	}
	if res.Over != OverNone {
		t.Errorf("Over = %v, want OverNone", res.Over)
	}
}

func TestMoveGapMerge(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	e.board.cells = []int{
		2, 0, 2, 2,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}

	res, err := e.Shift(DirLeft)
	if err != nil {
		t.Fatalf("Shift: %v", err)
	}
	if res.ScoreGained != 4 {
		t.Errorf("ScoreGained = %d, want 4", res.ScoreGained)
	}

	want := []int{4, 2, 0, 0}
	for col, v := range want {
		if got := e.Cell(0, col); got != v {
			t.Errorf("cell (0,%d) = %d, want %d", col, got, v)
		}
	}
}

func TestMoveNoChangeNoSideEffects(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	e.board.cells = []int{
		4, 2, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}

	res, err := e.Move(DirLeft)
	if err != nil {
		t.Fatalf("a no-op move is not an error: %v", err)
	}
	if res.Changed {
		t.Error("settled board should report Changed false")
	}
	if res.ScoreGained != 0 || e.Score() != 0 {
		t.Error("no-op move should not score")
	}
	if e.Moves() != 0 {
		t.Errorf("Moves = %d, want 0", e.Moves())
	}
	if got := e.EmptyCount(); got != 14 {
		t.Errorf("no-op move spawned a tile: EmptyCount = %d, want 14", got)
	}
	if e.Undo() {
		t.Error("no-op move should not push an undo entry")
	}

	// The game goes on: a different direction still works.
	res, err = e.Move(DirRight)
	if err != nil {
		t.Fatalf("Move after no-op: %v", err)
	}
	if !res.Changed {
		t.Error("right move should change a left-aligned board")
	}
}

func TestMoveRejectedWhenOver(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	e.Abandon()

	res, err := e.Move(DirLeft)
	if err == nil {
		t.Fatal("move on a finished game should fail")
	}
	if !errors.Is(err, ErrGameOver) {
		t.Errorf("error %v should wrap ErrGameOver", err)
	}
	if res.Over != OverAbandoned {
		t.Errorf("Over = %v, want OverAbandoned", res.Over)
	}
}

func TestWinTransitionFiresOnce(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	e.board.cells = []int{
		1024, 1024, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}

	res, err := e.Shift(DirLeft)
	if err != nil {
		t.Fatalf("Shift: %v", err)
	}
	if !res.WonNow {
		t.Error("first 2048 merge should report WonNow")
	}
	if !e.Won() {
		t.Error("Won should stay true after the transition")
	}
	if res.Over != OverNone {
		t.Errorf("winning does not end the game on its own, Over = %v", res.Over)
	}

	// A second 2048 merge later in the same game is just points.
	e.board.cells = []int{
		2048, 0, 0, 0,
		1024, 1024, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	res, err = e.Shift(DirLeft)
	if err != nil {
		t.Fatalf("Shift: %v", err)
	}
	if res.WonNow {
		t.Error("WonNow should fire only on the first win merge")
	}
	if res.ScoreGained != 2048 {
		t.Errorf("ScoreGained = %d, want 2048", res.ScoreGained)
	}
}

func TestStopAfterWin(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())

	// Before winning it does nothing.
	e.StopAfterWin()
	if e.IsOver() {
		t.Fatal("StopAfterWin on an unwon game should be a no-op")
	}

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
		t.Errorf("Over = %v, want OverWon", e.Over())
	}
	if _, err := e.Move(DirRight); !errors.Is(err, ErrGameOver) {
		t.Errorf("move after stopping should fail with ErrGameOver, got %v", err)
	}
}

func TestContinueAfterWin(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
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

	// Declining to stop keeps the game alive.
	if _, ok := e.SpawnTile(); !ok {
		t.Fatal("spawn after win should place a tile")
	}
	if _, err := e.Move(DirDown); err != nil {
		t.Errorf("moving after a win should stay legal: %v", err)
	}
}

func TestSpawnMarksStuckOnLastCell(t *testing.T) {
	e := newTestEngine(t, Options{Size: 2, WinTile: 2048, FourProb: 0, Seed: 1})
	e.board.cells = []int{
		2, 4,
		8, 0,
	}

	info, ok := e.SpawnTile()
	if !ok {
		t.Fatal("spawn with one empty cell should succeed")
	}
	if info.Row != 1 || info.Col != 1 || info.Value != 2 {
		t.Errorf("spawn landed at (%d,%d)=%d, want (1,1)=2", info.Row, info.Col, info.Value)
	}
	if e.Over() != OverStuck {
		t.Errorf("Over = %v, want OverStuck", e.Over())
	}
}

func TestSpawnFullBoardWithMergeNotStuck(t *testing.T) {
	e := newTestEngine(t, Options{Size: 2, WinTile: 2048, FourProb: 0, Seed: 1})
	e.board.cells = []int{
		2, 2,
		4, 16,
	}

	res, err := e.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	// The spawn fills the board, but the 4-4 column can still merge.
	if e.EmptyCount() != 0 {
		t.Fatalf("EmptyCount = %d, want 0", e.EmptyCount())
	}
	if res.Over != OverNone {
		t.Errorf("Over = %v, want OverNone while a merge remains", res.Over)
	}
}

func TestMoveEndsStuckGame(t *testing.T) {
	e := newTestEngine(t, Options{Size: 2, WinTile: 2048, FourProb: 0, Seed: 1})
	e.board.cells = []int{
		2, 2,
		8, 16,
	}

	res, err := e.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if res.Over != OverStuck {
		t.Errorf("Over = %v, want OverStuck", res.Over)
	}
	if !e.IsOver() {
		t.Error("IsOver should report true")
	}
	if _, err := e.Move(DirRight); !errors.Is(err, ErrGameOver) {
		t.Errorf("move on stuck game should fail with ErrGameOver, got %v", err)
	}
}

func TestSpawnRefusesFinishedGame(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	e.Abandon()

	if _, ok := e.SpawnTile(); ok {
		t.Error("spawn on a finished game should refuse")
	}
}

func TestAbandon(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	e.Abandon()
	if e.Over() != OverAbandoned {
		t.Errorf("Over = %v, want OverAbandoned", e.Over())
	}

	// Abandon never rewrites how a game already ended.
	e2 := newTestEngine(t, Options{Size: 2, WinTile: 2048, FourProb: 0, Seed: 1})
	e2.board.cells = []int{
		2, 4,
		8, 0,
	}
	e2.SpawnTile()
	e2.Abandon()
	if e2.Over() != OverStuck {
		t.Errorf("Over = %v, want OverStuck preserved", e2.Over())
	}
}

func TestShiftThenSpawnSplit(t *testing.T) {
	e := newTestEngine(t, DefaultOptions())
	e.board.cells = []int{
		2, 2, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	sumBefore := tileSum(e)

	res, err := e.Shift(DirLeft)
	if err != nil {
		t.Fatalf("Shift: %v", err)
	}
	if !res.Changed {
		t.Fatal("Shift should report Changed")
	}
	if got := tileSum(e); got != sumBefore {
		t.Errorf("Shift must not spawn: tile sum %d -> %d", sumBefore, got)
	}

	info, ok := e.SpawnTile()
	if !ok {
		t.Fatal("SpawnTile should place a tile")
	}
	if got := tileSum(e); got != sumBefore+info.Value {
		t.Errorf("tile sum = %d, want %d", got, sumBefore+info.Value)
	}
	if e.Cell(info.Row, info.Col) != info.Value {
		t.Errorf("spawned cell (%d,%d) = %d, want %d",
			info.Row, info.Col, e.Cell(info.Row, info.Col), info.Value)
	}
}

func TestTwoByTwoFullMerge(t *testing.T) {
	e := newTestEngine(t, Options{Size: 2, WinTile: 2048, FourProb: 0, Seed: 7})
	e.board.cells = []int{
		2, 2,
		2, 2,
	}

	res, err := e.Move(DirLeft)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if res.ScoreGained != 8 {
		t.Errorf("ScoreGained = %d, want 8", res.ScoreGained)
	}
	if e.Cell(0, 0) != 4 || e.Cell(1, 0) != 4 {
		t.Errorf("left column = %d,%d, want 4,4", e.Cell(0, 0), e.Cell(1, 0))
	}
	// Two cells were freed, one got the spawn.
	if got := e.EmptyCount(); got != 1 {
		t.Errorf("EmptyCount = %d, want 1", got)
	}
	if res.Over != OverNone {
		t.Errorf("Over = %v, want OverNone: the 4-4 column still merges", res.Over)
	}
	if e.Moves() != 1 {
		t.Errorf("Moves = %d, want 1", e.Moves())
	}
}

func TestMoveConservesTileMass(t *testing.T) {
	e := newTestEngine(t, Options{Size: 4, UndoDepth: 5, WinTile: 2048, FourProb: 0.1, Seed: 99})
	dirs := []Direction{DirLeft, DirUp, DirRight, DirDown}

	for i := 0; i < 200 && !e.IsOver(); i++ {
		before := tileSum(e)
		res, err := e.Move(dirs[i%len(dirs)])
		if err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		delta := tileSum(e) - before
		if !res.Changed && delta != 0 {
			t.Fatalf("move %d: no-op move changed tile sum by %d", i, delta)
		}
		if res.Changed && delta != 2 && delta != 4 {
			// Sliding conserves mass; only the spawn adds 2 or 4. A
			// stuck-ending move still spawned before it ended.
			t.Fatalf("move %d: tile sum delta = %d, want 2 or 4", i, delta)
		}
		for j, v := range e.board.cells {
			if v != 0 && (v < 2 || v&(v-1) != 0) {
				t.Fatalf("move %d: cell %d holds %d, not a power of two", i, j, v)
			}
		}
	}
}

func TestDeterministicGames(t *testing.T) {
	opts := Options{Size: 4, UndoDepth: 5, WinTile: 2048, FourProb: 0.1, Seed: 12345}
	e1 := newTestEngine(t, opts)
	e2 := newTestEngine(t, opts)

	if !reflect.DeepEqual(e1.Snapshot(), e2.Snapshot()) {
		t.Fatalf("same seed should spawn the same starting board:\n%v\nvs\n%v",
			e1.Snapshot().Cells, e2.Snapshot().Cells)
	}

	dirs := []Direction{DirLeft, DirDown, DirRight, DirUp, DirLeft, DirDown}
	for _, dir := range dirs {
		r1, err1 := e1.Move(dir)
		r2, err2 := e2.Move(dir)
		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("move %s diverged: %v vs %v", dir, err1, err2)
		}
		if r1 != r2 {
			t.Fatalf("move %s results diverged: %+v vs %+v", dir, r1, r2)
		}
	}

	if !reflect.DeepEqual(e1.Snapshot(), e2.Snapshot()) {
		t.Errorf("same seed and moves should replay the same game:\n%v\nvs\n%v",
			e1.Snapshot().Cells, e2.Snapshot().Cells)
	}
}

func TestSettleHookRunsBetweenSlideAndSpawn(t *testing.T) {
	calls := 0
	var gotDelay time.Duration
	opts := Options{
		Size:        4,
		WinTile:     2048,
		Seed:        3,
		SettleDelay: 50 * time.Millisecond,
		Settle: func(d time.Duration) {
			calls++
			gotDelay = d
		},
	}
	e := newTestEngine(t, opts)
	e.board.cells = []int{
		2, 2, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}

	if _, err := e.Move(DirLeft); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if calls != 1 {
		t.Fatalf("settle hook ran %d times, want 1", calls)
	}
	if gotDelay != 50*time.Millisecond {
		t.Errorf("settle delay = %v, want 50ms", gotDelay)
	}

	// A move that changes nothing never settles.
	e.board.cells = []int{
		4, 2, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	if _, err := e.Move(DirLeft); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if calls != 1 {
		t.Errorf("no-op move ran the settle hook")
	}

	// Shift leaves settling to the caller.
	if _, err := e.Shift(DirRight); err != nil {
		t.Fatalf("Shift: %v", err)
	}
	if calls != 1 {
		t.Errorf("Shift ran the settle hook")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newTestEngine(t, Options{Size: 4, WinTile: 2048, Seed: 8})
	snap := e.Snapshot()
	if snap.Size != 4 || len(snap.Cells) != 4 {
		t.Fatalf("Snapshot size = %d with %d rows, want 4", snap.Size, len(snap.Cells))
	}

	snap.Cells[0][0] = 9999
	if e.Cell(0, 0) == 9999 {
		t.Error("mutating a snapshot must not reach the engine")
	}
}

func TestCellOutOfRange(t *testing.T) {
	e := newTestEngine(t, Options{Size: 4, WinTile: 2048, Seed: 8})
	if got := e.Cell(-1, 0); got != 0 {
		t.Errorf("Cell(-1,0) = %d, want 0", got)
	}
	if got := e.Cell(0, 4); got != 0 {
		t.Errorf("Cell(0,4) = %d, want 0", got)
	}
}

func TestOverKindString(t *testing.T) {
	tests := []struct {
		kind OverKind
		want string
	}{
		{OverNone, "playing"},
		{OverWon, "won"},
		{OverStuck, "stuck"},
		{OverAbandoned, "abandoned"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("OverKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
