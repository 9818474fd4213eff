package main

import (
	"fmt"

	"github.com/jonathan/resume-fit/internal/config"
	"github.com/jonathan/resume-fit/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start an HTTP server exposing the analysis endpoints. Set JWT_SECRET to
require bearer tokens on analysis routes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bindings := map[string]string{
				"server.port":       "port",
				"server.rate-limit": "rate-limit",
				"fetch.use-browser": "use-browser",
			}
			for key, name := range analyzerBindings {
				bindings[key] = name
			}

			analyzer, cfg, cleanup, err := a.buildAnalyzer(cmd, bindings)
			defer cleanup()
			if err != nil {
				return err
			}

			jwtCfg, err := config.NewJWTConfig()
			if err != nil {
				return fmt.Errorf("invalid JWT configuration: %w", err)
			}

			srv, err := server.New(server.Options{
				Analyzer: analyzer,
				Server:   cfg.Server,
				Fetch:    cfg.Fetch,
				JWT:      jwtCfg,
				Logger:   a.log,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().Int("port", 8080, "Port to listen on")
	cmd.Flags().Float64("rate-limit", 2, "Default requests per second per client (0 disables limiting)")
	cmd.Flags().Bool("use-browser", false, "Render thin job pages in headless Chrome")
	addAnalyzerFlags(cmd)
	return cmd
}
