// Package pipeline runs the fetch, extract, parse, score and aggregate
// stages for a list of tickers.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/tickersentiment/internal/analysis/sentiment"
	"github.com/seenimoa/tickersentiment/internal/datasource"
	"github.com/seenimoa/tickersentiment/pkg/models"
	"github.com/seenimoa/tickersentiment/pkg/utils"
)

// ErrNoTickers is returned when Execute is called with nothing to do.
var ErrNoTickers = errors.New("no tickers given")

// Fetcher retrieves one ticker's quote page.
type Fetcher interface {
	Fetch(ctx context.Context, ticker models.Ticker) (*datasource.Document, error)
}

// Stage names the step a ticker failed at.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageExtract Stage = "extract"
)

// TickerFailure records why a ticker contributed nothing to the table.
type TickerFailure struct {
	Ticker models.Ticker
	Stage  Stage
	Err    error
}

func (f *TickerFailure) Error() string {
	return fmt.Sprintf("%s: %s: %v", f.Ticker, f.Stage, f.Err)
}

func (f *TickerFailure) Unwrap() error { return f.Err }

// TickerOutcome summarizes one ticker's pass through the stages.
type TickerOutcome struct {
	Ticker  models.Ticker
	Rows    int // rows in the news table
	Records int // rows with a resolved date
	Dropped int
	Failure *TickerFailure
}

// Run is the state of one Execute call. Nothing in it is shared between
// runs.
type Run struct {
	ID        string
	StartedAt time.Time
	Tickers   []models.Ticker
	Outcomes  []TickerOutcome // same order as Tickers
}

func newRun(tickers []models.Ticker, now time.Time) *Run {
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: now,
		Tickers:   tickers,
		Outcomes: lo.Map(tickers, func(t models.Ticker, _ int) TickerOutcome {
			return TickerOutcome{Ticker: t}
		}),
	}
}

// Result is what a run produced.
type Result struct {
	RunID    string
	Table    *sentiment.Table
	Scored   []models.ScoredHeadline
	Failures []*TickerFailure
	Outcomes []TickerOutcome
	Dropped  int
	Elapsed  time.Duration
}

// AllFailed reports whether no ticker got past extraction.
func (r *Result) AllFailed() bool {
	return len(r.Outcomes) > 0 && len(r.Failures) == len(r.Outcomes)
}

// Options tune a Pipeline. Zero values select the defaults.
type Options struct {
	ContainerID string           // news table id, default "news-table"
	Concurrency int              // simultaneous fetches, default 1
	Location    *time.Location   // market time zone, default US Eastern
	Now         func() time.Time // clock, default time.Now
}

// Pipeline wires the stages together. It holds no per-run state and may
// be reused.
type Pipeline struct {
	fetcher Fetcher
	scorer  sentiment.Scorer
	opts    Options
	logger  *zap.Logger
}

// New creates a Pipeline.
func New(fetcher Fetcher, scorer sentiment.Scorer, opts Options, logger *zap.Logger) *Pipeline {
	if opts.ContainerID == "" {
		opts.ContainerID = datasource.DefaultContainerID
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Location == nil {
		opts.Location = utils.Eastern
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{fetcher: fetcher, scorer: scorer, opts: opts, logger: logger}
}

// Execute processes tickers and builds the sentiment table. A ticker that
// cannot be fetched or has no news table is recorded in Result.Failures
// and the others carry on. Execute itself fails only for an empty ticker
// list or a cancelled context.
func (p *Pipeline) Execute(ctx context.Context, tickers []models.Ticker) (*Result, error) {
	tickers = lo.Uniq(tickers)
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}

	now := p.opts.Now().In(p.opts.Location)
	run := newRun(tickers, now)
	log := p.logger.With(zap.String("run_id", run.ID))
	log.Info("run started",
		zap.Strings("tickers", lo.Map(tickers, func(t models.Ticker, _ int) string { return t.String() })),
		zap.Int("concurrency", p.opts.Concurrency),
	)

	// Stage 1+2: fetch and extract, bounded fan-out. Rows are stored by
	// index so later stages see tickers in input order.
	rows := make([][]datasource.NewsRow, len(tickers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i, tk := range tickers {
		i, tk := i, tk
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, fail := p.collect(gctx, tk)
			if fail != nil {
				run.Outcomes[i].Failure = fail
				log.Warn("ticker skipped",
					zap.String("ticker", tk.String()),
					zap.String("stage", string(fail.Stage)),
					zap.Error(fail.Err),
				)
				return nil
			}
			rows[i] = r
			run.Outcomes[i].Rows = len(r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: parse per ticker, each with its own carry-forward state.
	res := &Result{RunID: run.ID}
	var records []models.HeadlineRecord
	for i, tk := range tickers {
		out := &run.Outcomes[i]
		if out.Failure != nil {
			res.Failures = append(res.Failures, out.Failure)
			continue
		}
		parsed := datasource.ParseNewsRows(tk, rows[i], now)
		out.Records = len(parsed.Records)
		out.Dropped = parsed.Dropped
		res.Dropped += parsed.Dropped
		records = append(records, parsed.Records...)

		log.Debug("parsed news table",
			zap.String("ticker", tk.String()),
			zap.Int("rows", out.Rows),
			zap.Int("records", out.Records),
			zap.Int("dropped", out.Dropped),
		)
	}

	// Stage 4: score and aggregate.
	res.Scored = sentiment.ScoreRecords(p.scorer, records)
	res.Table = sentiment.Build(res.Scored)
	res.Outcomes = run.Outcomes
	res.Elapsed = p.opts.Now().Sub(run.StartedAt)

	if res.Table.Empty() {
		log.Warn("sentiment table is empty")
	}
	log.Info("run finished",
		zap.Int("headlines", len(res.Scored)),
		zap.Int("dropped", res.Dropped),
		zap.Int("failed_tickers", len(res.Failures)),
		zap.Int("cells", res.Table.Len()),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// collect fetches one page and pulls out its news rows. The document is
// not kept past this call.
func (p *Pipeline) collect(ctx context.Context, tk models.Ticker) ([]datasource.NewsRow, *TickerFailure) {
	doc, err := p.fetcher.Fetch(ctx, tk)
	if err != nil {
		return nil, &TickerFailure{Ticker: tk, Stage: StageFetch, Err: err}
	}
	rows, err := datasource.ExtractNewsRows(doc, p.opts.ContainerID)
	if err != nil {
		return nil, &TickerFailure{Ticker: tk, Stage: StageExtract, Err: err}
	}
	return rows, nil
}
