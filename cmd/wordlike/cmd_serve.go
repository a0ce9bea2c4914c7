package main

import (
	"github.com/spf13/cobra"

	"github.com/teatak/wordlike/server"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the score, rank and grams endpoints over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				opts.cfg.Server.Addr = addr
			}
			sc, _, err := opts.loadScorer(cmd.Context())
			if err != nil {
				return err
			}
			srv := server.New(sc, server.Options{
				Logger:       opts.logger,
				MaxWords:     opts.cfg.Server.MaxWords,
				MaxBodyBytes: opts.cfg.Server.MaxBodyBytes,
			})
			return srv.Serve(cmd.Context(), opts.cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
