package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [client-file...]",
		Short: "Validate the legal tables and client files",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			book, err := a.loadLegalBook()
			if err != nil {
				return err
			}
			for _, y := range book.Years {
				fmt.Fprintf(out, "legal %d: %d scale rows\n", y.Settings.Year, len(y.Echelle44))
			}
			for _, path := range args {
				c, err := a.parser.LoadClientFromFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(out, "client %s: ok (%s)\n", path, c.BirthDate)
			}
			if a.settings.TariffFile != "" {
				t, err := a.parser.LoadTariffFromFile(a.settings.TariffFile)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "tariff %s: ok\n", t.Version)
			}
			return nil
		},
	}
}
