package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seenimoa/tickersentiment/internal/analysis/sentiment"
	"github.com/seenimoa/tickersentiment/internal/config"
	"github.com/seenimoa/tickersentiment/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Reporter: prints the table and writes the chart file
// ════════════════════════════════════════════════════════════════════

// Format specifies the output format for the table.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, json or html)", s)
	}
}

// Reporter renders a finished sentiment table.
type Reporter struct {
	format    Format
	chartPath string
	chart     ChartConfig
	logger    *zap.Logger

	// RunID is shown in HTML output when set.
	RunID string
}

// NewReporter builds a Reporter from the report settings. An empty
// ChartPath disables the chart file.
func NewReporter(cfg config.ReportConfig, logger *zap.Logger) (*Reporter, error) {
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	chart := DefaultChartConfig()
	if cfg.Width > 0 && cfg.Height > 0 {
		chart.Width, chart.Height = cfg.Width, cfg.Height
	}
	if cfg.Title != "" {
		chart.Title = cfg.Title
	}

	return &Reporter{
		format:    format,
		chartPath: cfg.ChartPath,
		chart:     chart,
		logger:    logger,
	}, nil
}

// ChartPath returns where the chart is written, or "" if disabled.
func (r *Reporter) ChartPath() string { return r.chartPath }

// Write prints the table to out and, if enabled, writes the chart file.
// An empty table is still rendered.
func (r *Reporter) Write(t *sentiment.Table, out io.Writer) error {
	if t == nil {
		t = sentiment.Build(nil)
	}
	if t.Empty() {
		r.logger.Warn("no dated headlines to aggregate; rendering empty report")
	}

	var body []byte
	switch r.format {
	case FormatJSON:
		b, err := RenderJSON(t)
		if err != nil {
			return err
		}
		body = b
	case FormatHTML:
		s, err := RenderHTML(t, r.chart, r.RunID)
		if err != nil {
			return err
		}
		body = []byte(s)
	default:
		body = []byte(RenderText(t) + "\n")
	}
	if _, err := out.Write(body); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return r.WriteChart(t)
}

// WriteChart saves the SVG chart to the configured path.
func (r *Reporter) WriteChart(t *sentiment.Table) error {
	if r.chartPath == "" {
		return nil
	}
	if dir := filepath.Dir(r.chartPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chart dir: %w", err)
		}
	}
	svg := GroupedBarChart(t, r.chart)
	if err := os.WriteFile(r.chartPath, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	r.logger.Info("chart written",
		zap.String("path", r.chartPath),
		zap.Int("dates", len(t.Dates())),
		zap.Int("tickers", len(t.Tickers())),
	)
	return nil
}

// ════════════════════════════════════════════════════════════════════
// HTML
// ════════════════════════════════════════════════════════════════════

type htmlData struct {
	Title       string
	GeneratedAt string
	RunID       string
	Chart       template.HTML
	Headers     []string
	Rows        [][]string
}

var htmlTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"cellClass": func(v string) string {
		switch {
		case v == MissingCell:
			return "nan"
		case strings.HasPrefix(v, "-"):
			return "neg"
		default:
			return "pos"
		}
	},
}).Parse(htmlTemplate))

// RenderHTML produces a standalone page with the chart and table.
func RenderHTML(t *sentiment.Table, cfg ChartConfig, runID string) (string, error) {
	if t == nil {
		t = sentiment.Build(nil)
	}
	cfg = cfg.withDefaults()
	data := htmlData{
		Title:       cfg.Title,
		GeneratedAt: ReportTimestamp(),
		RunID:       runID,
		Chart:       template.HTML(GroupedBarChart(t, cfg)),
		Headers:     tableHeaders(t),
		Rows:        tableRows(t),
	}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// ════════════════════════════════════════════════════════════════════
// Utility: Timestamp
// ════════════════════════════════════════════════════════════════════

// ReportTimestamp returns the current US Eastern time for report headers.
func ReportTimestamp() string {
	return utils.NowIn(utils.Eastern).Format("02 Jan 2006, 03:04 PM MST")
}

// FormatDuration formats a run's wall time for the summary line.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}
