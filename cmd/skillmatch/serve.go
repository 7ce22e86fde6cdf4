package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes extraction, matching, recommendation and history endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			var store db.Store
			opened, err := a.openStore(cmd.Context())
			switch {
			case errors.Is(err, errNoDatabase):
				a.logger.Warn("no database configured, history endpoints disabled")
			case err != nil:
				return err
			default:
				store = opened
				defer store.Close()
			}

			srv := server.New(server.Config{
				Port:         a.cfg.Server.Port,
				MaxTextBytes: a.cfg.Server.MaxTextBytes,
			}, a.service(), store, a.logger)
			return srv.Start()
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (overrides config)")
	return cmd
}
