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
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-stacker/internal/config"
	"github.com/vovakirdan/tui-stacker/internal/core"
	"github.com/vovakirdan/tui-stacker/internal/registry"
	"github.com/vovakirdan/tui-stacker/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.stacker/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int

	// Logger receives server and session events. Defaults to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.stacker/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer serves stacker sessions over SSH with Wish. Every connection
// plays its own games; all of them share one leaderboard.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "stacker-ssh",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".stacker", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
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
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	logger := s.logger.With("user", sess.User())
	model := NewSessionModel(s.store, cfg, bubbletea.MakeRenderer(sess), logger)

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		s.Shutdown() //nolint:errcheck // already failing
		return err
	}
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

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenLevel
	screenScores
	screenGame
)

// SessionModel drives one SSH session:
// menu -> difficulty -> game -> menu, with the leaderboard off the menu.
// Sub-models quit the program when run standalone, so their commands are
// dropped on every screen change.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	renderer *lipgloss.Renderer
	logger   *log.Logger
	screen   sessionScreen
	menu     MenuModel
	level    LevelSelectModel
	scores   ScoreboardModel
	game     GameModel
	gameID   string
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, r *lipgloss.Renderer, logger *log.Logger) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		renderer: r,
		logger:   logger,
		menu:     NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenLevel:
		return m.updateLevel(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		return m.quit()
	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH, m.config.TickRate, m.renderer)
		return m, nil
	case m.menu.Selected() != nil:
		m.gameID = m.menu.Selected().GameID
		m.screen = screenLevel
		m.level = NewLevelSelectModel(m.menu.Selected().Title, m.levelsFor(m.gameID), m.config)
		return m, nil
	}
	return m, cmd
}

// levelsFor returns the level table the game will play with.
func (m SessionModel) levelsFor(gameID string) config.LevelsConfig {
	type configured interface{ Config() config.StackerConfig }
	if game, err := registry.Create(gameID); err == nil {
		if c, ok := game.(configured); ok {
			game.Reset(m.config)
			return c.Config().Levels
		}
	}
	return config.DefaultStackerConfig().Levels
}

func (m SessionModel) updateLevel(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.level.Update(msg)
	m.level = next.(LevelSelectModel)

	switch {
	case m.level.IsQuitting():
		return m.quit()
	case m.level.WantsBack():
		return m.toMenu()
	case m.level.Selected() != nil:
		game, err := registry.Create(m.gameID)
		if err != nil {
			m.logger.Error("cannot create game", "game", m.gameID, "err", err)
			return m.toMenu()
		}
		m.level.Selected().Apply(game)

		m.config.Seed = time.Now().UnixNano()
		m.game = NewGameModel(game, m.store, m.config,
			WithScreenRenderer(NewScreenRenderer(m.renderer)),
			WithLogger(m.logger),
			WithBackToMenu(),
		)
		m.screen = screenGame
		m.logger.Info("game started", "game", m.gameID, "preset", m.level.Selected().Preset, "level", m.level.Selected().Level)
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	switch {
	case m.scores.IsQuitting():
		return m.quit()
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	switch {
	case m.game.IsQuitting():
		return m.quit()
	case m.game.BackToMenu():
		m.logger.Info("game left", "game", m.gameID, "score", m.game.State().Score)
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenLevel:
		return m.level.View()
	case screenScores:
		return m.scores.View()
	case screenGame:
		return m.game.View()
	default:
		return m.menu.View()
	}
}
