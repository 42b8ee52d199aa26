package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/tidwall/pretty"

	"github.com/seenimoa/tickersentiment/internal/analysis/sentiment"
	"github.com/seenimoa/tickersentiment/pkg/models"
)

// MissingCell is printed for a (date, ticker) pair without headlines.
const MissingCell = "NaN"

var (
	upColor    = lipgloss.Color("#10B981")
	downColor  = lipgloss.Color("#EF4444")
	mutedColor = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	upStyle     = cellStyle.Foreground(upColor)
	downStyle   = cellStyle.Foreground(downColor)
	missStyle   = cellStyle.Foreground(mutedColor)
)

// tableHeaders returns "date" followed by the ticker columns.
func tableHeaders(t *sentiment.Table) []string {
	return append([]string{"date"}, lo.Map(t.Tickers(), func(tk models.Ticker, _ int) string {
		return tk.String()
	})...)
}

// tableRows formats the table as one row per date, oldest first.
func tableRows(t *sentiment.Table) [][]string {
	tickers := t.Tickers()
	return lo.Map(t.Dates(), func(d models.Date, _ int) []string {
		row := []string{d.String()}
		for _, tk := range tickers {
			if v, ok := t.Mean(d, tk); ok {
				row = append(row, fmt.Sprintf("%.6f", v))
			} else {
				row = append(row, MissingCell)
			}
		}
		return row
	})
}

// RenderText draws the table with dates as rows and tickers as columns.
// An empty table still renders its header.
func RenderText(t *sentiment.Table) string {
	if t == nil {
		t = sentiment.Build(nil)
	}
	rows := tableRows(t)

	tb := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(tableHeaders(t)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 || row < 0 || row >= len(rows) {
				return cellStyle
			}
			switch v := rows[row][col]; {
			case v == MissingCell:
				return missStyle
			case strings.HasPrefix(v, "-"):
				return downStyle
			default:
				return upStyle
			}
		})
	return tb.String()
}

type jsonRow struct {
	Date      string             `json:"date"`
	Sentiment map[string]float64 `json:"sentiment"`
	Headlines map[string]int     `json:"headlines"`
}

type jsonTable struct {
	Tickers []string  `json:"tickers"`
	Rows    []jsonRow `json:"rows"`
}

// RenderJSON encodes the table as indented JSON. Only populated cells
// appear; a missing pair is absent from the row's maps.
func RenderJSON(t *sentiment.Table) ([]byte, error) {
	if t == nil {
		t = sentiment.Build(nil)
	}
	tickers := t.Tickers()
	out := jsonTable{
		Tickers: lo.Map(tickers, func(tk models.Ticker, _ int) string { return tk.String() }),
		Rows:    []jsonRow{},
	}
	for _, d := range t.Dates() {
		row := jsonRow{Date: d.String(), Sentiment: map[string]float64{}, Headlines: map[string]int{}}
		for _, tk := range tickers {
			if v, ok := t.Mean(d, tk); ok {
				row.Sentiment[tk.String()] = v
				row.Headlines[tk.String()] = t.Count(d, tk)
			}
		}
		out.Rows = append(out.Rows, row)
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal table: %w", err)
	}
	return pretty.Pretty(raw), nil
}

// RenderHeadlines lists scored headlines with their publication time in
// loc, in the order given.
func RenderHeadlines(scored []models.ScoredHeadline, loc *time.Location) string {
	rows := lo.Map(scored, func(h models.ScoredHeadline, _ int) []string {
		return []string{
			h.Ticker.String(),
			h.PublishedAt(loc).Format("2006-01-02 15:04 MST"),
			fmt.Sprintf("%+.4f", h.Compound),
			sentiment.Label(h.Compound),
			h.Title,
		}
	})

	tb := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ticker", "published", "compound", "label", "title").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col != 2 || row < 0 || row >= len(rows) {
				return cellStyle
			}
			if strings.HasPrefix(rows[row][col], "-") {
				return downStyle
			}
			return upStyle
		})
	return tb.String()
}
