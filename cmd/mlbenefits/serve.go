package main

import (
	"github.com/moneylife/benefits/internal/api"
	"github.com/moneylife/benefits/internal/logging"
	"github.com/moneylife/benefits/internal/metrics"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.loadLegalBook()
			if err != nil {
				return err
			}
			p, err := a.pricer(cmd)
			if err != nil {
				return err
			}
			srv, err := api.NewServer(book, p, metrics.NewManager(), logging.Logger)
			if err != nil {
				return err
			}
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = a.settings.Addr
			}
			return srv.ListenAndServe(addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from settings)")
	cmd.Flags().String("tariff", "", "tariff yaml (default the built-in tariff)")
	return cmd
}
