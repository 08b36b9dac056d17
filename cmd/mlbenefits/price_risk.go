package main

import (
	"fmt"

	"github.com/moneylife/benefits/internal/logging"
	"github.com/moneylife/benefits/internal/output"
	"github.com/moneylife/benefits/internal/riskpricing"
	"github.com/spf13/cobra"
)

func (a *app) pricer(cmd *cobra.Command) (*riskpricing.Pricer, error) {
	path, _ := cmd.Flags().GetString("tariff")
	if path == "" {
		path = a.settings.TariffFile
	}
	if path == "" {
		return riskpricing.NewPricer(riskpricing.DefaultTariff()), nil
	}
	t, err := a.parser.LoadTariffFromFile(path)
	if err != nil {
		return nil, err
	}
	return riskpricing.NewPricer(*t), nil
}

func (a *app) priceRiskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price-risk [client-file] [riders-file]",
		Short: "Price third-pillar risk riders for a client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.parser.LoadClientFromFile(args[0])
			if err != nil {
				return err
			}
			riders, err := a.parser.LoadRidersFromFile(args[1])
			if err != nil {
				return err
			}
			at, err := a.dateFlag(cmd, "date")
			if err != nil {
				return err
			}
			p, err := a.pricer(cmd)
			if err != nil {
				return err
			}

			name := a.format(cmd)
			f := output.GetPremiumsFormatterByName(name)
			if f == nil {
				return unknownFormat(name)
			}

			ctx := riskpricing.NewContext(client, at)
			if ctx.OccupationClass == nil {
				logging.Sugar.Warnf("client %q has no occupation class; risk riders are not priced", client.ID)
			}
			data, err := f.FormatPremiums(p.ComputeRiskPremiums(*riders, ctx))
			if err != nil {
				return fmt.Errorf("format %s: %w", f.Name(), err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().String("date", "", "pricing date, DD.MM.YYYY or YYYY-MM-DD (default today)")
	cmd.Flags().String("tariff", "", "tariff yaml (default the built-in tariff)")
	cmd.Flags().StringP("format", "f", "", "output format (console, json, yaml, csv)")
	return cmd
}
