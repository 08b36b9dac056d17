package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/moneylife/benefits/internal/config"
	"github.com/moneylife/benefits/internal/domain"
	"github.com/moneylife/benefits/internal/logging"
	"github.com/moneylife/benefits/internal/output"
	"github.com/moneylife/benefits/pkg/dateutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the settings resolved before a subcommand runs.
type app struct {
	settings *config.Settings
	parser   *config.InputParser
	now      func() time.Time
}

func newRootCmd() *cobra.Command {
	a := &app{parser: config.NewInputParser(), now: time.Now}

	root := &cobra.Command{
		Use:   "mlbenefits",
		Short: "Swiss social insurance benefit calculator",
		Long: `mlbenefits projects the AVS/AI, LPP and LAA benefits a client would
receive on disability, death or retirement, and prices third-pillar risk riders.

Examples:
  mlbenefits compute client.yaml --event-date 01.03.2025 --degree 70
  mlbenefits compute client.yaml --events retirement --format json
  mlbenefits compare client.yaml --degrees 40,70
  mlbenefits price-risk client.yaml riders.yaml
  mlbenefits serve --addr :8080`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}

	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "log format (console, json)")
	root.PersistentFlags().String("legal", "", "legal tables yaml (default from settings)")

	root.AddCommand(a.computeCmd())
	root.AddCommand(a.validateCmd())
	root.AddCommand(a.compareCmd())
	root.AddCommand(a.priceRiskCmd())
	root.AddCommand(a.serveCmd())
	root.AddCommand(versionCmd())
	return root
}

// setup layers flags over the koanf settings and starts logging.
func (a *app) setup(cmd *cobra.Command) error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if v, _ := flags.GetString("log-level"); v != "" {
		s.LogLevel = v
	}
	if v, _ := flags.GetString("log-format"); v != "" {
		s.LogFormat = v
	}
	if v, _ := flags.GetString("legal"); v != "" {
		s.LegalFile = v
	}
	if err := s.Validate(); err != nil {
		return err
	}
	a.settings = s

	cfg := logging.DefaultConfig()
	cfg.Level = s.LogLevel
	cfg.Format = s.LogFormat
	if err := logging.Initialize(cfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logging.Logger.Debug("settings loaded",
		zap.String("legal_file", s.LegalFile),
		zap.String("tariff_file", s.TariffFile),
		zap.String("output_format", s.OutputFormat))
	return nil
}

func (a *app) loadLegalBook() (*domain.LegalBook, error) {
	book, err := a.parser.LoadLegalBookFromFile(a.settings.LegalFile)
	if err != nil {
		return nil, fmt.Errorf("legal tables %s: %w", a.settings.LegalFile, err)
	}
	return book, nil
}

// dateFlag reads a DD.MM.YYYY or YYYY-MM-DD flag, defaulting to today.
func (a *app) dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	v, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(v) == "" {
		return dateutil.FromTime(a.now()).Time(), nil
	}
	d, ok := dateutil.Parse(v)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid --%s %q", name, v)
	}
	return d.Time(), nil
}

// format resolves --format against the settings default.
func (a *app) format(cmd *cobra.Command) string {
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		return v
	}
	return a.settings.OutputFormat
}

func unknownFormat(name string) error {
	return fmt.Errorf("unsupported format %q (choose from %s)", name, strings.Join(output.FormatterNames(), ", "))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mlbenefits %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(cmd.OutOrStdout(), bi.Main.Path, bi.GoVersion)
			}
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
