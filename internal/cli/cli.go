package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pfrederiksen/league-results/internal/config"
	"github.com/pfrederiksen/league-results/internal/fetch"
	"github.com/pfrederiksen/league-results/internal/logger"
	"github.com/pfrederiksen/league-results/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "league-results",
		Short: "Summarise club participation in league meeting results",
		Long: `A CLI tool that scans a results portal for a competition series,
reads every linked results page and reports, per meeting, how many events,
participations and athletes each club had on the track and in the field.`,
		RunE:          runReport,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&flagConfig, "config", config.DefaultPath, "Path to the YAML config file")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runReport is the main command logic
func runReport(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := newLogger(cfg, cmd.ErrOrStderr())
	logger.SetDefault(log)

	metrics := fetch.NewMetrics()
	fetcher := fetch.New(cfg.Scraper.Timeout, cfg.Scraper.UserAgent, fetch.WithMetrics(metrics))
	sc := scraper.New(cfg, fetcher, log)

	out := cmd.OutOrStdout()
	widths := Widths{Club: cfg.Output.ClubColumnWidth, Count: cfg.Output.CountColumnWidth}

	var reporter scraper.Reporter = discardReporter{}
	if format == FormatText {
		fmt.Fprintf(out, "Scanning %s for '%s' pages...\n", cfg.Scraper.URL, cfg.Scraper.SearchText)
		reporter = &textReporter{w: out, widths: widths}
	}

	run := sc.Run(cmd.Context(), reporter)

	requests, errorsByType := metrics.Snapshot()
	log.Debug("fetch metrics", logger.Fields{
		"run_id":   run.ID,
		"requests": requests,
		"errors":   errorsByType,
	})

	if format == FormatJSON {
		if err := writeJSON(out, run); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	if len(run.Links) > 0 {
		writeComplete(out, run, widths)
	}
	return nil
}

func newLogger(cfg *config.Config, w io.Writer) *logger.Logger {
	level, ok := logger.ParseLevel(cfg.LogLevel)
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, w)
	if !ok {
		log.Warn("unknown log level, using INFO", logger.Fields{"log_level": cfg.LogLevel}, nil)
	}
	return log
}

// Execute runs the CLI
func Execute() {
	os.Exit(runRoot(NewRootCmd()))
}

// runRoot executes cmd and returns the process exit code. Failures go to the
// default logger, which runReport points at the configured logger once the
// config has loaded.
func runRoot(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		logger.Error("league-results failed", nil, err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
