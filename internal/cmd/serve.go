package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/sitenotes/sitenotes/internal/config"
	"github.com/sitenotes/sitenotes/internal/logging"
	"github.com/sitenotes/sitenotes/internal/server"
)

// ServeCmd serves the action endpoint and, with --ssh, the board over SSH
type ServeCmd struct {
	Addr    string `help:"HTTP listen address (overrides listen_addr)"`
	SSH     bool   `help:"Also serve the kanban board over SSH" name:"ssh"`
	SSHAddr string `help:"SSH listen address (overrides ssh_addr)" name:"ssh-addr"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	settings := cli.Container.Settings
	addr := s.Addr
	if addr == "" {
		addr = settings.ResolvedListenAddr()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := server.NewHandler(
		cli.Container.CommentService,
		cli.Container.Users,
		cli.Container.Nonces,
		cli.Container.Screenshots.Dir(),
	)
	httpServer := server.NewHTTPServer(addr, handler, settings.AllowedOrigins)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Serve(ctx)
	})
	fmt.Printf("HTTP server listening on %s\n", addr)

	if s.SSH {
		sshAddr := s.SSHAddr
		if sshAddr == "" {
			sshAddr = settings.ResolvedSSHAddr()
		}
		sshServer, err := server.NewSSHServer(server.SSHOptions{
			Addr:               sshAddr,
			AuthorizedKeysPath: settings.ResolvedAuthorizedKeysPath(),
			HostKeyPath:        config.GetHostKeyPath(),
		}, cli.Container.CommentService, cli.Container.Users)
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}
		g.Go(func() error {
			return sshServer.Serve(ctx)
		})
		fmt.Printf("SSH server listening on %s\n", sshAddr)
	}

	if err := g.Wait(); err != nil {
		logging.Logger.Error("Server stopped with error", "error", err)
		return err
	}
	return nil
}
