package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/spf13/cobra"

	"github.com/tomz197/driftroids/internal/app"
	"github.com/tomz197/driftroids/internal/config"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the game over SSH",
	Long: `Start an SSH server. Every connection plays its own game; all players
share the high-score table.

The address, host key and idle timeout come from the config file and
may be overridden with SSH_HOST, SSH_PORT and SSH_HOST_KEY. A missing
host key is generated on first start.

Players connect with:
  ssh -t localhost -p 2222`,
	RunE: runServe,
}

type sessionKey struct{}

// sshHost serves one game session per SSH connection.
type sshHost struct {
	cfg    config.Config
	store  app.ScoreStore
	logger *log.Logger
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg, "driftroids-ssh")
	if err != nil {
		return err
	}

	h := &sshHost{cfg: cfg, logger: logger}
	if store := openStore(cfg, logger); store != nil {
		defer store.Close()
		h.store = store
	}

	hostKeyPath, err := expandHome(cfg.SSH.HostKeyPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return fmt.Errorf("cannot create host key directory: %w", err)
	}

	addr := net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)
	srv, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.SSH.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(h.teaHandler),
			h.sessionMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for pointer input
		ssh.WrapConn(func(_ ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	)
	if err != nil {
		return fmt.Errorf("cannot create SSH server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	logger.Info("starting SSH server", "address", addr, "hostKey", hostKeyPath)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-done:
	}

	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// sessionMiddleware runs a game session for the lifetime of the connection.
func (h *sshHost) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		sess := app.NewSession(h.cfg, h.store, h.logger.With("user", s.User()), s.User())
		s.Context().SetValue(sessionKey{}, sess)

		sess.Start(s.Context())
		defer sess.Stop()

		next(s)
	}
}

// teaHandler hands the connection's session to the Bubble Tea middleware.
func (h *sshHost) teaHandler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := s.Pty(); !ok {
		h.logger.Warn("no PTY requested", "user", s.User())
		return nil, nil
	}
	sess, ok := s.Context().Value(sessionKey{}).(*app.Session)
	if !ok {
		h.logger.Error("connection has no game session", "user", s.User())
		return nil, nil
	}
	return sess.Model(), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
