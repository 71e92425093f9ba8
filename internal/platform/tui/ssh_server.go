// Package tui provides the terminal front ends of lys: a Bubble Tea
// simulation picker and an SSH server running one render loop per session.
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

	"github.com/vovakirdan/lys/internal/engine"
	"github.com/vovakirdan/lys/internal/platform/terminal"
	"github.com/vovakirdan/lys/internal/registry"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2222").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.lys/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// DefaultSim preselects the picker entry.
	DefaultSim string

	// MaxFPS caps each session loop.
	MaxFPS int

	// Handler builds the lifecycle handler of one session. Nil uses
	// engine.NopHandler.
	Handler func() engine.Handler

	// Logger defaults to a timestamped stderr logger.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":2222",
		IdleTimeout: 10 * time.Minute,
		MaxFPS:      engine.DefaultMaxFPS,
	}
}

// choiceKey stores the picker model of a session in its context.
type choiceKey struct{}

// SSHServer wraps a Wish SSH server that streams simulations.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "lys-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".lys", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// The first middleware is innermost: logging wraps the picker, which
	// hands over to the render loop once a simulation is chosen.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			srv.simMiddleware,
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler shows the picker to sessions that did not name a simulation.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := sshSession.Pty(); !ok {
		return nil, nil
	}
	if len(sshSession.Command()) > 0 {
		return nil, nil
	}

	theme := DefaultMenuTheme(bubbletea.MakeRenderer(sshSession))
	model := NewMenuModel(theme, s.config.DefaultSim)
	sshSession.Context().SetValue(choiceKey{}, model)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// simMiddleware runs the chosen simulation on the session terminal.
func (s *SSHServer) simMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		if err := s.runSession(sshSession); err != nil {
			s.logger.Error("session failed", "user", sshSession.User(), "error", err)
			wish.Fatalln(sshSession, "Error:", err)
			return
		}
		next(sshSession)
	}
}

// runSession resolves the simulation of a session and drives it until
// the client quits or disconnects.
func (s *SSHServer) runSession(sshSession ssh.Session) error {
	pty, _, ok := sshSession.Pty()
	if !ok {
		return errors.New("a PTY is required; connect with ssh -t")
	}

	id, ok := s.chosen(sshSession)
	if !ok {
		return nil
	}
	rt, err := registry.Create(id)
	if err != nil {
		return err
	}

	var handler engine.Handler = engine.NopHandler{}
	if s.config.Handler != nil {
		handler = s.config.Handler()
	}

	logger := s.logger.With("user", sshSession.User(), "sim", id)
	term := terminal.Terminal{
		Out:  sshSession,
		In:   terminal.NewChanSource(sshSession),
		Cols: pty.Window.Width,
		Rows: pty.Window.Height,
	}
	return terminal.Run(sshSession.Context(), rt, term, handler, engine.Config{
		MaxFPS: s.config.MaxFPS,
		Logger: logger,
	})
}

// chosen returns the simulation named by the session command, or the one
// picked in the menu. ok is false when the picker was quit.
func (s *SSHServer) chosen(sshSession ssh.Session) (string, bool) {
	if cmd := sshSession.Command(); len(cmd) > 0 {
		return cmd[0], true
	}
	model, ok := sshSession.Context().Value(choiceKey{}).(MenuModel)
	if !ok {
		return s.config.DefaultSim, s.config.DefaultSim != ""
	}
	result := model.Result()
	return result.SimID, result.SimID != ""
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

// Shutdown gracefully stops the server. Session contexts are cancelled,
// which ends their loops at the next iteration boundary.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
