package main

import (
	"fmt"
	"strings"

	"github.com/moneylife/benefits/internal/compare"
	"github.com/moneylife/benefits/internal/config"
	"github.com/moneylife/benefits/internal/events"
	"github.com/moneylife/benefits/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [client-file]",
		Short: "Compare benefits across disability degrees and event dates",
		Long: `compare runs the client through a base scenario and a set of what-if
alternatives, then prints the per-event totals side by side.

Examples:
  mlbenefits compare client.yaml --degrees 40,50,70
  mlbenefits compare client.yaml --scenario later=100@01.01.2030 --format csv`,
		Args: cobra.ExactArgs(1),
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

			degreeList, _ := cmd.Flags().GetStringSlice("degrees")
			var degrees []decimal.Decimal
			for _, s := range degreeList {
				d, err := decimal.NewFromString(strings.TrimSpace(s))
				if err != nil || d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
					return fmt.Errorf("invalid --degrees entry %q: must be a number within [0, 100]", s)
				}
				degrees = append(degrees, d)
			}
			specs, _ := cmd.Flags().GetStringArray("scenario")
			named, err := compare.ParseScenarios(specs, degree)
			if err != nil {
				return err
			}
			scenarios := append(compare.DegreeScenarios(degrees), named...)
			if len(scenarios) == 0 {
				return fmt.Errorf("nothing to compare: pass --degrees or --scenario")
			}

			legal, err := config.LegalForYear(book, eventDate.Year())
			if err != nil {
				return err
			}

			engine := events.NewEngine()
			engine.SetLogger(logging.Sugar)
			cs, err := compare.NewCompareEngine(engine).Compare(events.Input{
				Client:           client,
				Legal:            legal,
				EventDate:        eventDate,
				DisabilityDegree: degree,
			}, scenarios, kinds...)
			if err != nil {
				return err
			}

			var out string
			switch name, _ := cmd.Flags().GetString("format"); strings.ToLower(name) {
			case "", "table":
				out = (&compare.TableFormatter{}).Format(cs)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(cs) + "\n"
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(cs)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(cs)
				out += "\n"
			default:
				return fmt.Errorf("unsupported format %q (choose from table, compact, csv, json)", name)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().String("event-date", "", "base event date, DD.MM.YYYY or YYYY-MM-DD (default today)")
	cmd.Flags().String("degree", "100", "base disability degree in percent")
	cmd.Flags().StringSlice("degrees", nil, "alternative disability degrees, e.g. 40,50,70")
	cmd.Flags().StringArray("scenario", nil, "named alternative name=degree[@date], repeatable")
	cmd.Flags().StringSlice("events", nil, "events to compare (default all): "+kindList())
	cmd.Flags().StringP("format", "f", "table", "output format (table, compact, csv, json)")
	return cmd
}

// percentFlag reads a degree flag within [0, 100].
func percentFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	s, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: must be a number within [0, 100]", name, s)
	}
	return d, nil
}
