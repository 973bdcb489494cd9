package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flow/pkg/observability"
	"github.com/matzehuels/flow/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		maxBody int64
		noCache bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Routes:
  GET  /healthz      liveness probe
  GET  /v1/formats   supported output formats
  POST /v1/layout    solve the request body (TOML or JSON document)

The listen address defaults to [server] addr from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache, quiet, server.WithTimeout(timeout), server.WithMaxBodySize(maxBody))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodySize, "maximum request body size in bytes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "do not log requests, solves and cache activity")

	return cmd
}

// runServe registers logging hooks and serves until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache, quiet bool, opts ...server.Option) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if !quiet {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetSolveHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
		defer observability.Reset()
	}

	srv := server.New(runner, c.Logger, opts...)
	err = srv.ListenAndServe(ctx, addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
