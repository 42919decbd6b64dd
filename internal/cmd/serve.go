// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/YassinCh/skilltest-buienradar/internal/analysis"
	"github.com/YassinCh/skilltest-buienradar/internal/config"
	"github.com/YassinCh/skilltest-buienradar/internal/logger"
	"github.com/YassinCh/skilltest-buienradar/internal/server"
)

const (
	serveCmdUsage = "serve"
	serveCmdShort = "expose the analysis queries over http"
	serveCmdLong  = `Expose the analysis queries over http.
	The server listens on HTTP_HOST and HTTP_PORT, by default 0.0.0.0:3000,
	and runs until the process receives an interrupt signal.

	The available routes are:
	- GET /api/v1/analysis/max-temperature
	- GET /api/v1/analysis/mean-temperature
	- GET /api/v1/analysis/max-temperature-difference
	- GET /api/v1/regions/{region}/stations
	- GET /-/healthz`

	serveCmdExample = `# Serve the analysis on port 8080
	HTTP_PORT=8080 skilltest serve`

	serveLoggerName = "skilltest:serve"
)

// serverFactory builds the http server answering with analyzer.
type serverFactory func(ctx context.Context, analyzer server.Analyzer) (server.Server, error)

func newFiberServer(ctx context.Context, analyzer server.Analyzer) (server.Server, error) {
	return server.NewServer(ctx, analyzer)
}

// ServeCmd returns the "serve" cli command that starts the http server.
func ServeCmd() *cobra.Command {
	flags := &settingsFlags{}
	cmd := &cobra.Command{
		Use:     serveCmdUsage,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              noArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := flags.settings()
			if err != nil {
				return handleError(cmd, err)
			}

			opts := &serveOptions{settings: settings, newServer: newFiberServer}
			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// serveOptions holds the options set for the server.
type serveOptions struct {
	settings  config.Settings
	newServer serverFactory
}

// execute runs the server until ctx is done or the server fails.
func (o *serveOptions) execute(ctx context.Context) error {
	log := logger.FromContext(ctx).WithName(serveLoggerName)

	store, err := openStore(ctx, o.settings)
	if err != nil {
		return err
	}
	defer store.Close()

	srv, err := o.newServer(ctx, analysis.NewService(store))
	if err != nil {
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	log.Info("server started")
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	log.Info("stopping server")
	if err := srv.Stop(); err != nil {
		return err
	}

	return <-errChan
}
