package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/licensebat/internal/server"
	errs "github.com/matzehuels/licensebat/pkg/errors"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command, which exposes the check pipeline
// over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        = ":8080"
		origins     []string
		concurrency = 16
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the license check API over HTTP",
		Long: `Serve starts an HTTP server with the endpoints:

  GET  /healthz         liveness probe
  GET  /v1/collectors   supported lockfiles
  POST /v1/check        check a lockfile sent in the request body`,
		Example: `  licensebat serve --addr :9000 --cors-origin https://example.com`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr = resolveString(cmd, addr, keyAddr, "addr")
			origins = resolveStrings(cmd, origins, keyCORSOrigins, "cors-origin")
			concurrency = resolveInt(cmd, concurrency, keyConcurrency, "concurrency")

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return errs.Wrap(errs.ErrCodeInvalidInput, err, "listen on %s", addr)
			}
			return c.serve(cmd.Context(), ln, concurrency, origins)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origin (repeatable)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", concurrency, "maximum parallel registry lookups per request (0 = unbounded)")

	return cmd
}

// serve runs the API on ln until ctx is cancelled, then drains in-flight
// requests.
func (c *CLI) serve(ctx context.Context, ln net.Listener, concurrency int, origins []string) error {
	logger := loggerFromContext(ctx)

	coord, err := c.newCoordinator(concurrency)
	if err != nil {
		ln.Close()
		return err
	}
	srv := &http.Server{
		Handler: server.New(coord, server.Options{
			AllowedOrigins: origins,
			Logger:         logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return errs.Wrap(errs.ErrCodeInternal, err, "serve")
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "shutdown")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errs.Wrap(errs.ErrCodeInternal, err, "serve")
	}
	return nil
}
