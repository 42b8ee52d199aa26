package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/seenimoa/tickersentiment/internal/analysis/sentiment"
	"github.com/seenimoa/tickersentiment/internal/config"
	"github.com/seenimoa/tickersentiment/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

var (
	jan4 = models.NewDate(2024, time.January, 4)
	jan5 = models.NewDate(2024, time.January, 5)
)

func scored(ticker models.Ticker, d models.Date, c float64) models.ScoredHeadline {
	return models.ScoredHeadline{
		HeadlineRecord: models.HeadlineRecord{Ticker: ticker, Date: d, Title: "headline"},
		Compound:       c,
	}
}

// sampleTable has AMZN on both days and AMD only on Jan 5.
func sampleTable() *sentiment.Table {
	return sentiment.Build([]models.ScoredHeadline{
		scored("AMZN", jan5, 0.5),
		scored("AMD", jan5, -0.2),
		scored("AMZN", jan4, 0.25),
		scored("AMZN", jan4, 0.75),
	})
}

// ════════════════════════════════════════════════════════════════════
// Chart Tests
// ════════════════════════════════════════════════════════════════════

func TestGroupedBarChart_Basic(t *testing.T) {
	svg := GroupedBarChart(sampleTable(), DefaultChartConfig())

	for _, want := range []string{
		"<svg", "</svg>",
		"Daily Average Sentiment per Ticker",
		">Date<", ">Average Compound Sentiment<",
		">AMD<", ">AMZN<",
		"2024-01-04", "2024-01-05",
		"<title>AMZN 2024-01-05: 0.5000</title>",
		"<title>AMD 2024-01-05: -0.2000</title>",
		"<title>AMZN 2024-01-04: 0.5000</title>",
		"stroke-dasharray",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("expected %q in SVG", want)
		}
	}
	if strings.Contains(svg, "<title>AMD 2024-01-04") {
		t.Error("missing cell should not be drawn")
	}
}

func TestGroupedBarChart_Empty(t *testing.T) {
	for name, table := range map[string]*sentiment.Table{
		"empty": sentiment.Build(nil),
		"nil":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			svg := GroupedBarChart(table, ChartConfig{})
			if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
				t.Errorf("expected valid SVG, got %q", svg)
			}
			if !strings.Contains(svg, "No sentiment data") {
				t.Error("expected placeholder message")
			}
		})
	}
}

func TestGroupedBarChart_ZeroConfig(t *testing.T) {
	svg := GroupedBarChart(sampleTable(), ChartConfig{})
	if !strings.Contains(svg, `width="1200"`) {
		t.Error("expected default width")
	}
	if !strings.Contains(svg, DefaultTitle) {
		t.Error("expected default title")
	}
}

func TestGroupedBarChart_CustomTitleEscaped(t *testing.T) {
	cfg := DefaultChartConfig()
	cfg.Title = "AT&T <daily>"
	svg := GroupedBarChart(sampleTable(), cfg)
	if !strings.Contains(svg, "AT&amp;T &lt;daily&gt;") {
		t.Error("expected escaped title")
	}
}

func TestGroupedBarChart_AllZero(t *testing.T) {
	table := sentiment.Build([]models.ScoredHeadline{scored("AMZN", jan5, 0)})
	svg := GroupedBarChart(table, DefaultChartConfig())
	if strings.Contains(svg, "NaN") {
		t.Error("zero range should not produce NaN coordinates")
	}
}

func TestDefaultChartConfig(t *testing.T) {
	cfg := DefaultChartConfig()
	if cfg.Width != 1200 {
		t.Errorf("expected width 1200, got %d", cfg.Width)
	}
	if cfg.Height != 800 {
		t.Errorf("expected height 800, got %d", cfg.Height)
	}
	if cfg.XLabel != "Date" || cfg.YLabel != "Average Compound Sentiment" {
		t.Errorf("unexpected axis labels %q / %q", cfg.XLabel, cfg.YLabel)
	}
}

func TestEmptySVG(t *testing.T) {
	svg := emptySVG(ChartConfig{}, "Test message")
	if !strings.Contains(svg, "Test message") {
		t.Error("expected message in empty SVG")
	}
	if !strings.Contains(svg, "<svg") {
		t.Error("expected valid SVG")
	}
}

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", "hello"},
		{"a & b", "a &amp; b"},
		{"<b>test</b>", "&lt;b&gt;test&lt;/b&gt;"},
		{`say "hi"`, "say &quot;hi&quot;"},
	}

	for _, tt := range tests {
		result := escapeXML(tt.input)
		if result != tt.expected {
			t.Errorf("escapeXML(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

// ════════════════════════════════════════════════════════════════════
// Table Rendering Tests
// ════════════════════════════════════════════════════════════════════

func TestRenderText(t *testing.T) {
	out := RenderText(sampleTable())

	for _, want := range []string{"date", "AMD", "AMZN", "2024-01-04", "2024-01-05", "0.500000", "-0.200000", MissingCell} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in text table:\n%s", want, out)
		}
	}
	if strings.Index(out, "2024-01-04") > strings.Index(out, "2024-01-05") {
		t.Error("dates should be ascending")
	}
	if strings.Index(out, "AMD") > strings.Index(out, "AMZN") {
		t.Error("tickers should be in lexical order")
	}
}

func TestRenderText_Empty(t *testing.T) {
	out := RenderText(sentiment.Build(nil))
	if !strings.Contains(out, "date") {
		t.Errorf("empty table should still print its header, got %q", out)
	}
	if strings.Contains(out, MissingCell) {
		t.Error("empty table should have no cells")
	}
}

func TestRenderJSON(t *testing.T) {
	raw, err := RenderJSON(sampleTable())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var got jsonTable
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, raw)
	}
	if len(got.Tickers) != 2 || got.Tickers[0] != "AMD" {
		t.Errorf("Tickers: got %v", got.Tickers)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("Rows: got %d, want 2", len(got.Rows))
	}
	first := got.Rows[0]
	if first.Date != "2024-01-04" {
		t.Errorf("first date: got %q", first.Date)
	}
	if _, ok := first.Sentiment["AMD"]; ok {
		t.Error("missing cell should be absent from JSON")
	}
	if first.Sentiment["AMZN"] != 0.5 || first.Headlines["AMZN"] != 2 {
		t.Errorf("AMZN jan4: got %v (%d headlines)", first.Sentiment["AMZN"], first.Headlines["AMZN"])
	}
	if !bytes.Contains(raw, []byte("\n")) {
		t.Error("expected indented output")
	}
}

func TestRenderJSON_Empty(t *testing.T) {
	raw, err := RenderJSON(sentiment.Build(nil))
	if err != nil {
		t.Fatal(err)
	}
	var got jsonTable
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Tickers == nil || got.Rows == nil || len(got.Rows) != 0 {
		t.Errorf("expected empty arrays, got %s", raw)
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(sampleTable(), DefaultChartConfig(), "run-123")
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "<svg", "run-123", `class="nan"`, `class="neg"`, "2024-01-05"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in HTML", want)
		}
	}
}

// ════════════════════════════════════════════════════════════════════
// Reporter Tests
// ════════════════════════════════════════════════════════════════════

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" html ", FormatHTML, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestReporterWriteText(t *testing.T) {
	chartPath := filepath.Join(t.TempDir(), "out", "sentiment.svg")
	r, err := NewReporter(config.ReportConfig{Format: "text", ChartPath: chartPath}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewReporter() error: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Write(sampleTable(), &buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !strings.Contains(buf.String(), "AMZN") {
		t.Errorf("expected table on stdout, got %q", buf.String())
	}

	svg, err := os.ReadFile(chartPath)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Error("chart file is not SVG")
	}
}

func TestReporterWriteJSONNoChart(t *testing.T) {
	dir := t.TempDir()
	r, err := NewReporter(config.ReportConfig{Format: "json"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := r.Write(sampleTable(), &buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
	if r.ChartPath() != "" {
		t.Error("chart should be disabled")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Error("no files should be written")
	}
}

func TestReporterWriteEmpty(t *testing.T) {
	chartPath := filepath.Join(t.TempDir(), "empty.svg")
	r, err := NewReporter(config.ReportConfig{Format: "text", ChartPath: chartPath}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := r.Write(sentiment.Build(nil), &buf); err != nil {
		t.Fatalf("empty table should not fail: %v", err)
	}
	svg, err := os.ReadFile(chartPath)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if !strings.Contains(string(svg), "No sentiment data") {
		t.Error("expected placeholder chart")
	}
}

func TestNewReporterOptions(t *testing.T) {
	r, err := NewReporter(config.ReportConfig{Width: 640, Height: 480, Title: "Custom"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.chart.Width != 640 || r.chart.Height != 480 || r.chart.Title != "Custom" {
		t.Errorf("chart config not applied: %+v", r.chart)
	}
	if r.format != FormatText {
		t.Errorf("default format: got %q", r.format)
	}

	if _, err := NewReporter(config.ReportConfig{Format: "xml"}, nil); err == nil {
		t.Error("expected error for unknown format")
	}
}

// ════════════════════════════════════════════════════════════════════
// Utility Tests
// ════════════════════════════════════════════════════════════════════

func TestReportTimestamp(t *testing.T) {
	if ts := ReportTimestamp(); ts == "" {
		t.Error("expected non-empty timestamp")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "0ms"},
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{3*time.Minute + 4400*time.Millisecond, "3m4s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.input); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderHeadlines(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	scored := []models.ScoredHeadline{
		{HeadlineRecord: models.HeadlineRecord{
			Ticker: "AMZN", Date: models.NewDate(2024, time.January, 5), Time: "08:00AM", Title: "Amazon beats estimates",
		}, Compound: 0.5},
		{HeadlineRecord: models.HeadlineRecord{
			Ticker: "AMD", Date: models.NewDate(2024, time.January, 4), Time: "06:30PM", Title: "AMD slides",
		}, Compound: -0.2},
	}

	out := RenderHeadlines(scored, loc)

	for _, want := range []string{
		"2024-01-05 08:00 EST", "+0.5000", "Bullish", "Amazon beats estimates",
		"2024-01-04 18:30 EST", "-0.2000", "AMD slides",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "AMZN") > strings.Index(out, "AMD slides") {
		t.Error("headlines not in input order")
	}
}
