package main

import (
	"fmt"
	"strings"

	"github.com/moneylife/benefits/internal/config"
	"github.com/moneylife/benefits/internal/events"
	"github.com/moneylife/benefits/internal/logging"
	"github.com/moneylife/benefits/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) computeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute [client-file]",
		Short: "Compute the benefits due on each life event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.parser.LoadClientFromFile(args[0])
			if err != nil {
				return err
			}
			book, err := a.loadLegalBook()
			if err != nil {
				return err
			}
			eventDate, err := a.dateFlag(cmd, "event-date")
			if err != nil {
				return err
			}

			degree, err := percentFlag(cmd, "degree")
			if err != nil {
				return err
			}

			kinds, err := parseKinds(cmd)
			if err != nil {
				return err
			}

			year, _ := cmd.Flags().GetInt("legal-year")
			if year == 0 {
				year = eventDate.Year()
			}
			legal, err := config.LegalForYear(book, year)
			if err != nil {
				return err
			}

			name := a.format(cmd)
			f := output.GetFormatterByName(name)
			if f == nil {
				return unknownFormat(name)
			}
			if notes, _ := cmd.Flags().GetBool("notes"); notes {
				if _, ok := f.(output.ConsoleFormatter); ok {
					f = output.ConsoleFormatter{Notes: true}
				}
			}

			engine := events.NewEngine()
			engine.SetLogger(logging.Sugar)
			report, err := engine.Compute(events.Input{
				Client:           client,
				Legal:            legal,
				EventDate:        eventDate,
				DisabilityDegree: degree,
			}, kinds...)
			if err != nil {
				return err
			}

			path, _ := cmd.Flags().GetString("output")
			if err := output.WriteFormatted(f, report, path, cmd.OutOrStdout()); err != nil {
				return err
			}
			if path != "" {
				logging.Sugar.Infof("report %s written to %s", report.ID, path)
			}
			return nil
		},
	}
	cmd.Flags().String("event-date", "", "event date, DD.MM.YYYY or YYYY-MM-DD (default today)")
	cmd.Flags().String("degree", "100", "disability degree in percent")
	cmd.Flags().StringSlice("events", nil, "events to compute (default all): "+kindList())
	cmd.Flags().Int("legal-year", 0, "legal tables year (default the event year)")
	cmd.Flags().StringP("format", "f", "", "output format (console, json, yaml, csv)")
	cmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().Bool("notes", false, "include calculation notes in console output")
	return cmd
}

func kindList() string {
	names := make([]string, len(events.AllKinds))
	for i, k := range events.AllKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func parseKinds(cmd *cobra.Command) ([]events.Kind, error) {
	names, _ := cmd.Flags().GetStringSlice("events")
	kinds := make([]events.Kind, 0, len(names))
	for _, n := range names {
		k, ok := events.ParseKind(strings.TrimSpace(n))
		if !ok {
			return nil, fmt.Errorf("unknown event %q (choose from %s)", n, kindList())
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
