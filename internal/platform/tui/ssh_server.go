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

	"github.com/vovakirdan/gunsim/internal/core"
	"github.com/vovakirdan/gunsim/internal/gunsim"
	"github.com/vovakirdan/gunsim/internal/registry"
	"github.com/vovakirdan/gunsim/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.gunsim/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// ConfigPath is an optional config file decoded over the chosen preset.
	// Empty means the usual search locations.
	ConfigPath string

	// FPS overrides the physics tick rate when positive.
	FPS int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.gunsim/runs.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the simulator over SSH. Every session runs its own
// simulation; nothing is shared between sessions except run history.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "gunsim-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run history database", "error", err)
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
		hostKeyPath = filepath.Join(home, ".gunsim", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

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

	model := NewSessionModel(
		sshSession.Context(),
		s.store,
		s.sessionLoop(sshSession.User()),
		pty.Window.Width,
		pty.Window.Height,
	)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// sessionLoop returns the loop factory for one user's session.
func (s *SSHServer) sessionLoop(user string) func(registry.Preset) LoopFunc {
	return func(preset registry.Preset) LoopFunc {
		return func(ctx context.Context, r core.Renderer) error {
			cfg, err := preset.Load(s.config.ConfigPath)
			if err != nil {
				return err
			}
			if s.config.FPS > 0 {
				cfg.Physics.FPS = s.config.FPS
			}
			seed := time.Now().UnixNano()

			res, err := gunsim.Run(ctx, r, gunsim.RunOptions{
				Config: cfg,
				Seed:   seed,
				Logger: s.logger.With("user", user, "preset", preset.ID),
			})

			if s.store != nil {
				meta := storage.RunMeta{
					Preset:   preset.ID,
					Renderer: "ssh",
					FPS:      cfg.Physics.FPS,
					Seed:     seed,
				}
				if _, saveErr := s.store.SaveRun(storage.SummaryOf(meta, res)); saveErr != nil {
					s.logger.Warn("could not save run", "error", saveErr)
				}
			}
			return err
		}
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

	err := s.server.Shutdown(ctx)

	if s.store != nil {
		s.store.Close()
	}

	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages a full session flow: menu -> simulation -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	ctx      context.Context
	store    *storage.Store
	loopFor  func(registry.Preset) LoopFunc
	menu     MenuModel
	sim      *Model
	history  *HistoryModel
	width    int
	height   int
	quitting bool
}

// NewSessionModel creates a new session model. loopFor builds the
// simulation loop for the preset the user picks.
func NewSessionModel(ctx context.Context, store *storage.Store, loopFor func(registry.Preset) LoopFunc, width, height int) SessionModel {
	return SessionModel{
		ctx:     ctx,
		store:   store,
		loopFor: loopFor,
		menu:    NewMenuModel(width, height),
		width:   width,
		height:  height,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch {
	case m.sim != nil:
		return m.updateSim(msg)
	case m.history != nil:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		sim, _ := Start(m.ctx, selected.Title, m.loopFor(*selected), m.width, m.height)
		m.sim = &sim
		return m, m.sim.Init()
	}

	if m.menu.WantsHistory() {
		history := NewHistoryModel(m.store, m.width, m.height)
		m.history = &history
		return m, m.history.Init()
	}

	return m, cmd
}

// updateSim handles updates while a simulation runs.
func (m SessionModel) updateSim(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.sim.Update(msg)
	if simModel, ok := newModel.(Model); ok {
		m.sim = &simModel
	}

	// Quitting the simulation returns to the menu instead of closing the session.
	if m.sim.Done() {
		m.sim = nil
		m.menu = NewMenuModel(m.width, m.height)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateHistory handles updates while the run history is shown.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if historyModel, ok := newModel.(HistoryModel); ok {
		m.history = &historyModel
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.history = nil
		m.menu = NewMenuModel(m.width, m.height)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.sim != nil:
		return m.sim.View()
	case m.history != nil:
		return m.history.View()
	}

	return m.menu.View()
}
