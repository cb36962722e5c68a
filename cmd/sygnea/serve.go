package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-sygnea/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the signature API and preview page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.Config{
				Addr:            a.cfg.HTTPAddr,
				ReadTimeout:     a.cfg.ReadTimeout,
				WriteTimeout:    a.cfg.WriteTimeout,
				ShutdownTimeout: a.cfg.ShutdownTimeout,
				MaxBodyBytes:    a.cfg.MaxBodyBytes,
				APIToken:        a.cfg.APIToken,
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			srv, err := server.New(cmd.Context(), a.gen, cfg, a.logger)
			if err != nil {
				return err
			}
			a.printStep("sygnea %s listening on %s", version, cfg.Addr)
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides SYGNEA_HTTP_ADDR)")
	return cmd
}
