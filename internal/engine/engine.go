package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Default rules (classic 2048).
const (
	MinSize          = 2
	DefaultSize      = 4
	DefaultUndoDepth = 5
	DefaultWinTile   = 2048
	DefaultFourProb  = 0.1
)

var (
	// ErrInvalidConfig reports unusable game options.
	ErrInvalidConfig = errors.New("invalid game configuration")
	// ErrGameOver reports a move attempted on a finished game.
	ErrGameOver = errors.New("game is over")
)

// OverKind tells why a game ended.
type OverKind int

const (
	// OverNone means the game is still running.
	OverNone OverKind = iota
	// OverWon means the player reached the win tile and chose to stop.
	OverWon
	// OverStuck means the board is full with no adjacent equal pair.
	OverStuck
	// OverAbandoned means the caller ended the game unconditionally.
	OverAbandoned
)

// String returns the lowercase kind name; OverNone reads "playing".
func (k OverKind) String() string {
	switch k {
	case OverNone:
		return "playing"
	case OverWon:
		return "won"
	case OverStuck:
		return "stuck"
	case OverAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Options configures a new game.
type Options struct {
	// Size is the board side length. The minimum playable board is 2×2.
	Size int
	// UndoDepth bounds the undo history; the oldest entry is evicted
	// past the limit. Zero disables undo.
	UndoDepth int
	// WinTile is the value whose first merge counts as winning the game.
	// Zero means DefaultWinTile.
	WinTile int
	// FourProb is the probability that a spawned tile is a 4 instead of
	// a 2.
	FourProb float64
	// Seed seeds the engine's private random source. Equal options and
	// an equal move sequence replay an identical game.
	Seed int64
	// Settle, when set together with SettleDelay, is called between the
	// slide of a changed move and its spawn so a UI can let the tiles
	// land first. It must not touch the engine.
	Settle func(time.Duration)
	// SettleDelay is the duration handed to Settle. Zero skips the hook.
	SettleDelay time.Duration
}

// DefaultOptions returns the classic rules: 4×4 board, undo depth 5,
// win tile 2048, one spawn in ten is a 4.
func DefaultOptions() Options {
	return Options{
		Size:      DefaultSize,
		UndoDepth: DefaultUndoDepth,
		WinTile:   DefaultWinTile,
		FourProb:  DefaultFourProb,
	}
}

// MoveResult describes what a single move did.
type MoveResult struct {
	// Changed is false when the move slid nothing; such a move has no
	// side effects at all.
	Changed bool
	// ScoreGained is the sum of all tile values created by merges.
	ScoreGained int
	// WonNow is true on the one move whose merge first built the win
	// tile.
	WonNow bool
	// Over is the game state after the move, OverNone while it runs.
	Over OverKind
}

// SpawnInfo locates a tile placed by a spawn.
type SpawnInfo struct {
	Row   int
	Col   int
	Value int
}

// Engine holds one game: the board, score, undo history and the rules it
// was configured with. It performs no I/O and owns its random source;
// callers drive it one move at a time. Not safe for concurrent use.
type Engine struct {
	board board
	rng   *rand.Rand

	score int
	moves int
	won   bool
	over  OverKind

	winTile  int
	fourProb float64

	undoDepth int
	undoStack []undoState

	settle      func(time.Duration)
	settleDelay time.Duration
}

// New validates opts, builds an empty board and spawns the two starting
// tiles. The error wraps ErrInvalidConfig when opts are unusable.
func New(opts Options) (*Engine, error) {
	if opts.Size < MinSize {
		return nil, fmt.Errorf("engine: board size %d, minimum %d: %w", opts.Size, MinSize, ErrInvalidConfig)
	}
	if opts.UndoDepth < 0 {
		return nil, fmt.Errorf("engine: undo depth %d: %w", opts.UndoDepth, ErrInvalidConfig)
	}
	if opts.FourProb < 0 || opts.FourProb > 1 {
		return nil, fmt.Errorf("engine: four-probability %v: %w", opts.FourProb, ErrInvalidConfig)
	}
	winTile := opts.WinTile
	if winTile == 0 {
		winTile = DefaultWinTile
	}
	if winTile < 8 || winTile&(winTile-1) != 0 {
		return nil, fmt.Errorf("engine: win tile %d is not a power of two >= 8: %w", opts.WinTile, ErrInvalidConfig)
	}

	e := &Engine{
		board:       newBoard(opts.Size),
		rng:         rand.New(rand.NewSource(opts.Seed)),
		winTile:     winTile,
		fourProb:    opts.FourProb,
		undoDepth:   opts.UndoDepth,
		settle:      opts.Settle,
		settleDelay: opts.SettleDelay,
	}
	e.SpawnTile()
	e.SpawnTile()
	return e, nil
}

// Move performs a full move: slide and merge toward dir, then spawn one
// tile. A move on a finished game fails with an error wrapping
// ErrGameOver. A move that changes nothing returns Changed false and has
// no side effects: no spawn, no undo entry, no move count. The settle
// hook, when configured, runs between the slide and the spawn.
func (e *Engine) Move(dir Direction) (MoveResult, error) {
	res, err := e.Shift(dir)
	if err != nil || !res.Changed {
		return res, err
	}
	if e.settle != nil && e.settleDelay > 0 {
		e.settle(e.settleDelay)
	}
	e.SpawnTile()
	res.Over = e.over
	return res, nil
}

// Shift is the spawn-free half of Move: it slides and merges, records
// the undo entry, bumps the move counter, adds the merge score and
// reports the win transition, but places no new tile. Callers that
// animate the slide use Shift and later SpawnTile; Move bundles both.
func (e *Engine) Shift(dir Direction) (MoveResult, error) {
	if e.over != OverNone {
		return MoveResult{Over: e.over}, fmt.Errorf("engine: move %s rejected: %w", dir, ErrGameOver)
	}

	var prev undoState
	if e.undoDepth > 0 {
		prev = e.captureState()
	}

	gained, changed, madeWin := e.board.slide(dir, e.winTile)
	if !changed {
		return MoveResult{}, nil
	}

	e.pushUndo(prev)
	e.moves++
	e.score += gained

	res := MoveResult{Changed: true, ScoreGained: gained}
	if madeWin && !e.won {
		e.won = true
		res.WonNow = true
	}
	return res, nil
}

// SpawnTile places a new tile on a uniformly random empty cell: a 2 with
// probability 1−FourProb, otherwise a 4. When the placed tile fills the
// last empty cell and no adjacent equal pair remains, the game ends with
// OverStuck. Returns false without spawning when the game is already
// over or no cell is empty.
func (e *Engine) SpawnTile() (SpawnInfo, bool) {
	if e.over != OverNone {
		return SpawnInfo{}, false
	}
	empty := e.board.emptyCells()
	if len(empty) == 0 {
		return SpawnInfo{}, false
	}

	idx := empty[e.rng.Intn(len(empty))]
	value := 2
	if e.rng.Float64() < e.fourProb {
		value = 4
	}
	e.board.cells[idx] = value

	if len(empty) == 1 && !e.board.canMove() {
		e.over = OverStuck
	}
	return SpawnInfo{Row: idx / e.board.size, Col: idx % e.board.size, Value: value}, true
}

// Undo restores the state saved before the most recent move: board,
// score, move count, won flag and over kind. Undoing a finished game
// brings it back to life. Returns false when no saved state remains.
func (e *Engine) Undo() bool {
	st, ok := e.popUndo()
	if !ok {
		return false
	}
	e.restoreState(st)
	return true
}

// StopAfterWin ends the game once the win tile has been reached and the
// player declines to keep playing. It does nothing while the game is
// unwon or already over.
func (e *Engine) StopAfterWin() {
	if e.won && e.over == OverNone {
		e.over = OverWon
	}
}

// Abandon ends a running game unconditionally.
func (e *Engine) Abandon() {
	if e.over == OverNone {
		e.over = OverAbandoned
	}
}

// Size returns the board side length.
func (e *Engine) Size() int { return e.board.size }

// Cell returns the tile at (row, col), or 0 when empty or out of range.
func (e *Engine) Cell(row, col int) int { return e.board.at(row, col) }

// EmptyCount returns the number of empty cells.
func (e *Engine) EmptyCount() int { return e.board.emptyCount() }

// Score returns the accumulated merge score.
func (e *Engine) Score() int { return e.score }

// Moves returns the number of board-changing moves made so far.
func (e *Engine) Moves() int { return e.moves }

// MaxTile returns the largest tile on the board.
func (e *Engine) MaxTile() int { return e.board.maxTile() }

// Won returns true once a win tile has been built, even if play
// continued afterwards.
func (e *Engine) Won() bool { return e.won }

// Over returns why the game ended, or OverNone while it runs.
func (e *Engine) Over() OverKind { return e.over }

// IsOver returns true once the game has ended for any reason.
func (e *Engine) IsOver() bool { return e.over != OverNone }

// UndoDepth returns the configured undo limit.
func (e *Engine) UndoDepth() int { return e.undoDepth }

// UndoAvailable returns how many saved states can currently be undone.
func (e *Engine) UndoAvailable() int { return len(e.undoStack) }

// WinTile returns the configured winning tile value.
func (e *Engine) WinTile() int { return e.winTile }
