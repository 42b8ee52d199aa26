// tickersentiment: daily headline sentiment per stock ticker.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seenimoa/tickersentiment/internal/analysis/sentiment"
	"github.com/seenimoa/tickersentiment/internal/config"
	"github.com/seenimoa/tickersentiment/internal/infra"
	"github.com/seenimoa/tickersentiment/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set in PersistentPreRunE.
var (
	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tickersentiment",
	Short: "Daily headline sentiment per stock ticker",
	Long: `tickersentiment scrapes the news table of each ticker's quote page,
scores every headline with a lexicon-based compound sentiment, and reports
the average score per day and ticker as a table and a bar chart.`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		logger, err = infra.NewLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "tickersentiment %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

// --- Score Command ---

var scoreCmd = &cobra.Command{
	Use:   "score <headline...>",
	Short: "Print the compound sentiment of a headline",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scorer := sentiment.NewLexicon().WithTerms(cfg.Analysis.Lexicon)
		text := strings.Join(args, " ")
		c := scorer.Compound(text)
		fmt.Fprintf(cmd.OutOrStdout(), "%.4f\t%s\n", c, sentiment.Label(c))
		return nil
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		loc, err := utils.LoadLocation(cfg.Analysis.Timezone)
		if err != nil {
			loc = utils.Eastern
		}

		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintln(out, "  tickersentiment: Status")
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintf(out, "  Version:       %s (%s)\n", version, commit)
		fmt.Fprintf(out, "  Market time:   %s\n", utils.NowIn(loc).Format("2006-01-02 15:04 MST"))
		fmt.Fprintln(out)

		fmt.Fprintln(out, "  Configuration:")
		fmt.Fprintf(out, "    Tickers:       %s\n", strings.Join(cfg.Tickers, ", "))
		fmt.Fprintf(out, "    Source:        %s<TICKER>\n", cfg.Source.BaseURL)
		fmt.Fprintf(out, "    User agent:    %s\n", cfg.Source.UserAgent)
		fmt.Fprintf(out, "    News table:    #%s\n", cfg.Source.ContainerID)
		fmt.Fprintf(out, "    Timeout:       %s\n", cfg.Source.Timeout)
		fmt.Fprintf(out, "    Concurrency:   %d\n", cfg.Analysis.ConcurrentFetches)
		fmt.Fprintf(out, "    Extra terms:   %d\n", len(cfg.Analysis.Lexicon))
		fmt.Fprintf(out, "    Report:        %s\n", cfg.Report.Format)
		chart := cfg.Report.ChartPath
		if chart == "" {
			chart = "(disabled)"
		}
		fmt.Fprintf(out, "    Chart:         %s\n", chart)

		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(out, "\n  Invalid: %v\n", err)
		}
		fmt.Fprintln(out, "═══════════════════════════════════════")
		return nil
	},
}
