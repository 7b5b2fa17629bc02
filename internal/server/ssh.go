package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/sitenotes/sitenotes/internal/domain"
	"github.com/sitenotes/sitenotes/internal/logging"
	"github.com/sitenotes/sitenotes/internal/ports"
	"github.com/sitenotes/sitenotes/internal/ui"
)

// SSHOptions configures the SSH board server
type SSHOptions struct {
	Addr               string
	AuthorizedKeysPath string
	HostKeyPath        string
}

// SSHServer serves the kanban board to SSH clients. The login name selects
// the configured user the board acts as.
type SSHServer struct {
	addr               string
	authorizedKeysPath string
	comments           ui.BoardService
	users              ports.UserDirectory
	wishServer         *ssh.Server
}

// NewSSHServer creates a new SSH server instance
func NewSSHServer(opts SSHOptions, comments ui.BoardService, users ports.UserDirectory) (*SSHServer, error) {
	s := &SSHServer{
		addr:               opts.Addr,
		authorizedKeysPath: opts.AuthorizedKeysPath,
		comments:           comments,
		users:              users,
	}

	if err := os.MkdirAll(filepath.Dir(opts.HostKeyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create SSH directory: %w", err)
	}

	// Middleware executes in reverse order (last to first)
	wishServer, err := wish.NewServer(
		wish.WithAddress(opts.Addr),
		wish.WithHostKeyPath(opts.HostKeyPath),
		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			return s.allowKey(ctx.User(), key)
		}),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(), // Require PTY
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Serve blocks until ctx is done, then shuts down gracefully
func (s *SSHServer) Serve(ctx context.Context) error {
	logging.Logger.Info("Starting SSH server", "address", s.addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.wishServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh server failed: %w", err)
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.wishServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown SSH server: %w", err)
	}
	logging.Logger.Info("SSH server stopped")
	return nil
}

// teaHandler creates a board for each SSH session
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	user, ok := s.users.ByName(sess.User())
	if !ok {
		return errorModel{fmt.Errorf("user %q: %w", sess.User(), domain.ErrNotFound)}, nil
	}

	start := time.Now()
	go func() {
		<-sess.Context().Done()
		logging.Logger.Info("SSH session ended",
			"session_id", sessionID,
			"duration", time.Since(start).String())
	}()

	board := ui.NewBoard(sess.Context(), ui.BoardConfig{
		Service: s.comments,
		User:    user,
	})
	return board, []tea.ProgramOption{tea.WithAltScreen()}
}

// errorModel displays an error and quits
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(tea.Msg) (tea.Model, tea.Cmd) {
	return e, tea.Quit
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n", e.err)
}
