package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tokenguard/tokenguard/internal/dependency"
	"github.com/tokenguard/tokenguard/internal/health"
)

var (
	serveTransport string
	servePort      int
	serveWatch     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tokenguard MCP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveTransport, "transport", "t", "", "Transport: stdio or http (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (default from config)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "Re-check the watchlist on the configured schedule")
}

func runServe(_ *cobra.Command, _ []string) error {
	// Graceful shutdown context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := newContainer(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	cfg := c.Config()
	transport := strings.ToLower(cfg.Server.Transport)
	if serveTransport != "" {
		transport = strings.ToLower(serveTransport)
	}
	port := cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}

	g, gctx := errgroup.WithContext(ctx)

	watching := false
	if serveWatch || cfg.Watch.Enabled {
		if w := c.Watcher(); w != nil {
			watching = true
			g.Go(func() error { return w.Start(gctx) })
		} else {
			slog.Warn("serve: watch requested but history is disabled")
		}
	}

	switch transport {
	case "", "stdio":
		slog.Info("serve: MCP stdio server started", "tools", c.Registry().Names(), "watch", watching)
		g.Go(func() error {
			err := c.MCPServer().ServeStdio(gctx, os.Stdin, os.Stdout)
			// stdin closing ends the session; stop the watcher too.
			stop()
			return err
		})
	case "http":
		mux := http.NewServeMux()
		mux.Handle("/mcp", c.MCPServer().HTTPHandler())
		health.NewHandler(health.Info{
			Name:      cfg.Server.Name,
			Version:   dependency.Version,
			Transport: transport,
			Tools:     c.Registry().Names(),
			Notifiers: c.Notifier().Enabled(),
			Watching:  watching,
		}).Register(mux)

		srv := &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(port)),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			slog.Info("serve: MCP HTTP server listening", "addr", srv.Addr, "endpoint", "/mcp")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		fmt.Fprintf(os.Stderr, "%s tokenguard serving on http://%s/mcp. Press Ctrl+C to stop.\n", logo, srv.Addr)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", transport)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("serve: stopped with error", "err", err)
		return err
	}
	slog.Info("serve: shutdown complete")
	return nil
}
