package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/twenty48/internal/storage"
	"github.com/vovakirdan/twenty48/internal/variant"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.twenty48/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// SettleDelay is the pause between shift and spawn in each session.
	SettleDelay time.Duration

	// ShowHints toggles control hints for remote players.
	ShowHints bool

	// DefaultVariant is preselected in each session's picker.
	DefaultVariant string
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:        ":23234",
		DBPath:         "~/.twenty48/scores.db",
		IdleTimeout:    30 * time.Minute,
		SettleDelay:    120 * time.Millisecond,
		ShowHints:      true,
		DefaultVariant: variant.DefaultID,
	}
}

// SSHServer wraps a Wish SSH server for remote play.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "twenty48-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".twenty48", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Each session gets its own picker and game state
	model := NewSessionModel(s.store, GameOptions{
		Width:       pty.Window.Width,
		Height:      pty.Window.Height,
		SettleDelay: s.config.SettleDelay,
		ShowHints:   s.config.ShowHints,
	}, s.config.DefaultVariant)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionState names the screen a session is currently on.
type sessionState int

const (
	statePicker sessionState = iota
	stateGame
	stateScores
)

// SessionModel manages the full session flow: picker -> game -> picker,
// with the scoreboard reachable from the picker. This is the top-level
// model used for SSH sessions.
type SessionModel struct {
	store          *storage.Store
	width          int
	height         int
	settleDelay    time.Duration
	showHints      bool
	defaultVariant string

	state    sessionState
	picker   PickerModel
	game     *GameModel
	scores   *ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model starting at the picker.
func NewSessionModel(store *storage.Store, opts GameOptions, defaultVariant string) SessionModel {
	return SessionModel{
		store:          store,
		width:          opts.Width,
		height:         opts.Height,
		settleDelay:    opts.SettleDelay,
		showHints:      opts.ShowHints,
		defaultVariant: defaultVariant,
		picker:         NewPickerModel(store, opts.Width, opts.Height, defaultVariant),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Track window size globally for constructing new screens
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.state {
	case stateGame:
		return m.updateGame(msg)
	case stateScores:
		return m.updateScores(msg)
	default:
		return m.updatePicker(msg)
	}
}

// updatePicker handles updates while the picker is showing.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPicker, cmd := m.picker.Update(msg)
	if pickerModel, ok := newPicker.(PickerModel); ok {
		m.picker = pickerModel
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.picker.WantsScoreboard() {
		scores := NewScoreboardModel(m.store, m.width, m.height)
		m.scores = &scores
		m.state = stateScores
		return m, m.scores.Init()
	}

	if selected := m.picker.Selected(); selected != nil {
		game, err := NewGameModel(*selected, m.store, GameOptions{
			Width:       m.width,
			Height:      m.height,
			SettleDelay: m.settleDelay,
			ShowHints:   m.showHints,
		})
		if err != nil {
			// Fall back to a fresh picker
			m.picker = NewPickerModel(m.store, m.width, m.height, m.defaultVariant)
			return m, nil
		}

		m.game = &game
		m.state = stateGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates while a game is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	// Back to the picker; scores may have changed
	if m.game.BackToMenu() {
		m.game = nil
		m.state = statePicker
		m.picker = NewPickerModel(m.store, m.width, m.height, m.defaultVariant)
		return m, m.picker.Init()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateScores handles updates while the scoreboard is showing.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scoresModel, ok := newModel.(ScoreboardModel); ok {
		m.scores = &scoresModel
	}

	if m.scores.IsGoingBack() {
		m.scores = nil
		m.state = statePicker
		m.picker = NewPickerModel(m.store, m.width, m.height, m.defaultVariant)
		return m, m.picker.Init()
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateGame:
		return m.game.View()
	case stateScores:
		return m.scores.View()
	default:
		return m.picker.View()
	}
}
