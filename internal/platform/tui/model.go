package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/twenty48/internal/core"
	"github.com/vovakirdan/twenty48/internal/engine"
	"github.com/vovakirdan/twenty48/internal/storage"
	"github.com/vovakirdan/twenty48/internal/variant"
)

// gamePhase tracks which layer of the UI owns the keyboard.
type gamePhase int

const (
	phasePlaying gamePhase = iota
	phaseWinPrompt
	phaseOver
)

// GameOptions carries the UI-level settings for one game session.
type GameOptions struct {
	Width  int
	Height int

	// Seed seeds the engine; zero picks a time-based seed per game.
	Seed int64

	// SettleDelay is the pause between a shift and its spawn. Zero
	// spawns immediately.
	SettleDelay time.Duration

	// ShowHints toggles the control hints on the bottom row.
	ShowHints bool
}

// GameModel is the Bubble Tea model for one running game.
type GameModel struct {
	eng     *engine.Engine
	engOpts engine.Options
	def     variant.Variant
	store   *storage.Store
	screen  *core.Screen

	keyMapper *KeyMapper

	width  int
	height int

	fixedSeed   bool
	settleDelay time.Duration
	showHints   bool

	phase        gamePhase
	pendingSpawn bool // Shift done, spawn waiting for the settle tick
	pendingWin   bool // Win merged this move, prompt after the spawn
	status       string
	highScore    int
	scoreSaved   bool
	standalone   bool // Running as its own program, not inside a session
	quitting     bool
	backToMenu   bool
}

// NewGameModel creates a model with a fresh game for the given variant.
func NewGameModel(def variant.Variant, store *storage.Store, opts GameOptions) (GameModel, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engOpts := def.Options(seed)
	eng, err := engine.New(engOpts)
	if err != nil {
		return GameModel{}, fmt.Errorf("tui: cannot start %s game: %w", def.ID, err)
	}

	highScore := 0
	if store != nil {
		if hs, hsErr := store.HighScore(def.ID); hsErr == nil {
			highScore = hs
		}
	}

	return GameModel{
		eng:         eng,
		engOpts:     engOpts,
		def:         def,
		store:       store,
		screen:      core.NewScreen(opts.Width, opts.Height),
		keyMapper:   NewKeyMapper(),
		width:       opts.Width,
		height:      opts.Height,
		fixedSeed:   opts.Seed != 0,
		settleDelay: opts.SettleDelay,
		showHints:   opts.ShowHints,
		highScore:   highScore,
	}, nil
}

// Init implements tea.Model. The game is turn-based; nothing happens
// until the first key arrives.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case settledMsg:
		return m.finishShift()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.phase == phaseWinPrompt {
		return m.handlePromptKey(msg)
	}

	action := m.keyMapper.MapKeyToGameAction(msg)
	switch action {
	case GameActionQuit:
		return m.finishAndQuit()
	case GameActionBack:
		return m.finishAndGoBack()
	case GameActionScreenshot:
		m.saveScreenshot()
		return m, nil
	}

	if m.pendingSpawn {
		// Board is settling; swallow input until the spawn lands.
		return m, nil
	}

	switch action {
	case GameActionUndo:
		return m.handleUndo()
	case GameActionRestart:
		return m.restart()
	}

	if dir, ok := m.keyMapper.MapKeyToDirection(msg); ok {
		return m.handleShift(dir)
	}

	return m, nil
}

// handlePromptKey processes keys while the win prompt is up.
func (m GameModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToPromptAction(msg) {
	case PromptActionContinue:
		m.phase = phasePlaying
		m.status = "Playing on"

	case PromptActionStop:
		m.eng.StopAfterWin()
		m.phase = phaseOver
		m.saveResult()

	case PromptActionUndo:
		if m.eng.Undo() {
			m.phase = phasePlaying
			m.status = ""
		}

	case PromptActionQuit:
		m.eng.StopAfterWin()
		m.saveResult()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleShift slides the board and schedules the spawn step.
func (m GameModel) handleShift(dir engine.Direction) (tea.Model, tea.Cmd) {
	res, err := m.eng.Shift(dir)
	if err != nil {
		// Finished games reject moves; the overlay already says so.
		return m, nil
	}
	if !res.Changed {
		return m, nil
	}

	m.status = ""
	if res.WonNow {
		m.pendingWin = true
	}

	if m.settleDelay > 0 {
		m.pendingSpawn = true
		return m, settleCmd(m.settleDelay)
	}
	return m.finishShift()
}

// finishShift completes a move after the settle pause: spawn a tile,
// then surface the win prompt or the end of the game.
func (m GameModel) finishShift() (tea.Model, tea.Cmd) {
	m.pendingSpawn = false

	m.eng.SpawnTile()
	if s := m.eng.Score(); s > m.highScore {
		m.highScore = s
	}

	if m.eng.IsOver() {
		m.pendingWin = false
		m.phase = phaseOver
		m.saveResult()
		return m, nil
	}

	if m.pendingWin {
		m.pendingWin = false
		m.phase = phaseWinPrompt
	}

	return m, nil
}

// handleUndo rewinds one move. Undoing out of a finished game revives
// it; the next ending records a fresh result row.
func (m GameModel) handleUndo() (tea.Model, tea.Cmd) {
	if !m.eng.Undo() {
		m.status = "Nothing to undo"
		return m, nil
	}

	if m.phase == phaseOver {
		m.scoreSaved = false
	}
	m.phase = phasePlaying
	m.status = ""
	return m, nil
}

// restart abandons the current game, records it, and starts a new one.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	if !m.eng.IsOver() {
		m.eng.Abandon()
	}
	m.saveResult()

	opts := m.engOpts
	if !m.fixedSeed {
		opts.Seed = time.Now().UnixNano()
	}
	eng, err := engine.New(opts)
	if err != nil {
		m.status = "Restart failed"
		return m, nil
	}

	m.eng = eng
	m.engOpts = opts
	m.phase = phasePlaying
	m.pendingSpawn = false
	m.pendingWin = false
	m.scoreSaved = false
	m.status = ""
	return m, nil
}

// finishAndQuit abandons a running game, records it and quits.
func (m GameModel) finishAndQuit() (tea.Model, tea.Cmd) {
	if !m.eng.IsOver() {
		m.eng.Abandon()
	}
	m.saveResult()
	m.quitting = true
	return m, tea.Quit
}

// finishAndGoBack abandons a running game, records it and returns to
// the picker.
func (m GameModel) finishAndGoBack() (tea.Model, tea.Cmd) {
	if !m.eng.IsOver() {
		m.eng.Abandon()
	}
	m.saveResult()
	m.backToMenu = true
	if m.standalone {
		return m, tea.Quit
	}
	return m, nil
}

// saveResult records the finished game once. Games without a single
// move are not worth a row.
func (m *GameModel) saveResult() {
	if m.scoreSaved || m.store == nil || m.eng.Moves() == 0 {
		return
	}

	//nolint:errcheck // Best-effort save, the UI moves on regardless
	m.store.SaveScore(storage.ScoreEntry{
		VariantID: m.def.ID,
		Score:     m.eng.Score(),
		Moves:     m.eng.Moves(),
		MaxTile:   m.eng.MaxTile(),
		Won:       m.eng.Won(),
	})
	m.scoreSaved = true
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.renderGame(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".twenty48", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.def.ID, timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
	m.status = "Screenshot saved"
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.renderGame(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the picker.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame runs one game as its own Bubble Tea program.
// Returns true when the player backed out to the picker rather than quitting.
func RunGame(def variant.Variant, store *storage.Store, opts GameOptions) (goBack bool, err error) {
	model, err := NewGameModel(def, store, opts)
	if err != nil {
		return false, err
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	if m, ok := finalModel.(GameModel); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
