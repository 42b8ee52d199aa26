package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/seenimoa/tickersentiment/internal/analysis/sentiment"
	"github.com/seenimoa/tickersentiment/internal/config"
	"github.com/seenimoa/tickersentiment/internal/datasource"
	"github.com/seenimoa/tickersentiment/internal/pipeline"
	"github.com/seenimoa/tickersentiment/internal/report"
	"github.com/seenimoa/tickersentiment/pkg/models"
	"github.com/seenimoa/tickersentiment/pkg/utils"
)

// --- Run Command ---

var runCmd = &cobra.Command{
	Use:   "run [TICKER...]",
	Short: "Scrape headlines, score them and report daily sentiment",
	Long: `Fetch the quote page of each ticker, score the headlines in its news
table and print the mean compound score per day and ticker. The chart is
written to report.chart_path unless --no-chart is given.

Tickers come from the arguments, or from the config when none are given.`,
	SilenceUsage: true,
	RunE:         runSentiment,
}

func init() {
	runCmd.Flags().String("chart", "", "chart output path (default from config: sentiment.svg)")
	runCmd.Flags().Bool("no-chart", false, "do not write the chart file")
	runCmd.Flags().String("format", "", "table format: text, json or html")
	runCmd.Flags().Int("concurrency", 0, "concurrent page fetches (default from config: 1)")
	runCmd.Flags().Bool("strict", false, "exit non-zero if any ticker fails")
	runCmd.Flags().Bool("headlines", false, "list every scored headline on stderr")
}

func runSentiment(cmd *cobra.Command, args []string) error {
	if err := applyRunFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	tickers := resolveTickers(args, cfg.Tickers)
	if len(tickers) == 0 {
		return errors.New("no tickers: pass them as arguments or set tickers in the config")
	}

	loc, err := utils.LoadLocation(cfg.Analysis.Timezone)
	if err != nil {
		return err
	}
	fetcher, err := datasource.NewFetcher(cfg.Source, nil, logger)
	if err != nil {
		return err
	}
	scorer := sentiment.NewLexicon().WithTerms(cfg.Analysis.Lexicon)

	p := pipeline.New(fetcher, scorer, pipeline.Options{
		ContainerID: cfg.Source.ContainerID,
		Concurrency: cfg.Analysis.ConcurrentFetches,
		Location:    loc,
	}, logger)

	res, err := p.Execute(cmd.Context(), tickers)
	if err != nil {
		return err
	}

	reporter, err := report.NewReporter(cfg.Report, logger)
	if err != nil {
		return err
	}
	reporter.RunID = res.RunID
	if err := reporter.Write(res.Table, cmd.OutOrStdout()); err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	showHeadlines, _ := cmd.Flags().GetBool("headlines")
	writeSummary(errOut, res, loc, showHeadlines)
	if path := reporter.ChartPath(); path != "" {
		fmt.Fprintf(errOut, "chart: %s\n", path)
	}

	strict, _ := cmd.Flags().GetBool("strict")
	return exitStatus(res, strict)
}

// applyRunFlags copies explicitly set run flags over the loaded config.
func applyRunFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("chart") {
		c.Report.ChartPath, _ = flags.GetString("chart")
	}
	if noChart, _ := flags.GetBool("no-chart"); noChart {
		c.Report.ChartPath = ""
	}
	if flags.Changed("format") {
		c.Report.Format, _ = flags.GetString("format")
	}
	if flags.Changed("concurrency") {
		n, _ := flags.GetInt("concurrency")
		if n < 1 {
			return fmt.Errorf("--concurrency must be >= 1, got %d", n)
		}
		c.Analysis.ConcurrentFetches = n
	}
	return nil
}

// resolveTickers prefers command-line tickers over configured ones.
func resolveTickers(args, configured []string) []models.Ticker {
	list := utils.ParseTickers(args...)
	if len(list) == 0 {
		list = utils.ParseTickers(configured...)
	}
	return lo.Map(list, func(s string, _ int) models.Ticker { return models.Ticker(s) })
}

// writeSummary reports failures and run totals, optionally preceded by
// the scored headlines.
func writeSummary(w io.Writer, res *pipeline.Result, loc *time.Location, headlines bool) {
	if headlines && len(res.Scored) > 0 {
		fmt.Fprintln(w, report.RenderHeadlines(res.Scored, loc))
	}
	for _, f := range res.Failures {
		fmt.Fprintf(w, "warning: %v\n", f)
	}
	fmt.Fprintf(w, "%d headlines from %d of %d tickers (%d dropped) in %s\n",
		len(res.Scored), len(res.Outcomes)-len(res.Failures), len(res.Outcomes),
		res.Dropped, report.FormatDuration(res.Elapsed))
}

// exitStatus turns per-ticker failures into the command's error. Partial
// failure is only an error in strict mode.
func exitStatus(res *pipeline.Result, strict bool) error {
	switch {
	case res.AllFailed():
		return fmt.Errorf("all %d tickers failed", len(res.Outcomes))
	case strict && len(res.Failures) > 0:
		return fmt.Errorf("%d of %d tickers failed (--strict)", len(res.Failures), len(res.Outcomes))
	}
	return nil
}
