// Package report renders the sentiment table as an SVG bar chart and as
// text, JSON or HTML summaries.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/seenimoa/tickersentiment/internal/analysis/sentiment"
)

// ════════════════════════════════════════════════════════════════════
// SVG Chart Generator
// ════════════════════════════════════════════════════════════════════

// DefaultTitle is the heading used when none is configured.
const DefaultTitle = "Daily Average Sentiment per Ticker"

// ChartConfig holds rendering parameters for SVG charts.
type ChartConfig struct {
	Width        int    // SVG width in pixels (default: 1200)
	Height       int    // SVG height in pixels (default: 800)
	MarginTop    int    // top margin (default: 50)
	MarginRight  int    // right margin (default: 40)
	MarginBottom int    // bottom margin (default: 110)
	MarginLeft   int    // left margin (default: 90)
	BgColor      string // background color (default: "#ffffff")
	GridColor    string // grid line color (default: "#e0e0e0")
	TextColor    string // axis label color (default: "#333333")
	FontSize     int    // axis label font size (default: 12)
	Title        string // chart title
	XLabel       string // x-axis caption
	YLabel       string // y-axis caption
}

// DefaultChartConfig returns the 12x8 inch figure layout at 100 dpi.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:        1200,
		Height:       800,
		MarginTop:    50,
		MarginRight:  40,
		MarginBottom: 110,
		MarginLeft:   90,
		BgColor:      "#ffffff",
		GridColor:    "#e0e0e0",
		TextColor:    "#333333",
		FontSize:     12,
		Title:        DefaultTitle,
		XLabel:       "Date",
		YLabel:       "Average Compound Sentiment",
	}
}

// plotArea returns the usable drawing area dimensions.
func (c ChartConfig) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

// withDefaults fills zero fields from DefaultChartConfig.
func (c ChartConfig) withDefaults() ChartConfig {
	d := DefaultChartConfig()
	if c.Width <= 0 || c.Height <= 0 {
		c.Width, c.Height = d.Width, d.Height
	}
	if c.MarginTop == 0 && c.MarginRight == 0 && c.MarginBottom == 0 && c.MarginLeft == 0 {
		c.MarginTop, c.MarginRight, c.MarginBottom, c.MarginLeft = d.MarginTop, d.MarginRight, d.MarginBottom, d.MarginLeft
	}
	if c.BgColor == "" {
		c.BgColor = d.BgColor
	}
	if c.GridColor == "" {
		c.GridColor = d.GridColor
	}
	if c.TextColor == "" {
		c.TextColor = d.TextColor
	}
	if c.FontSize == 0 {
		c.FontSize = d.FontSize
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.XLabel == "" {
		c.XLabel = d.XLabel
	}
	if c.YLabel == "" {
		c.YLabel = d.YLabel
	}
	return c
}

// seriesColors cycles per ticker column.
var seriesColors = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f"}

// ════════════════════════════════════════════════════════════════════
// Grouped Bar Chart
// ════════════════════════════════════════════════════════════════════

// GroupedBarChart draws one group of bars per date with one bar per
// ticker. Missing (date, ticker) cells leave a gap. An empty table gives
// a placeholder image rather than an error.
func GroupedBarChart(table *sentiment.Table, cfg ChartConfig) string {
	cfg = cfg.withDefaults()
	if table == nil || table.Empty() {
		return emptySVG(cfg, "No sentiment data")
	}

	dates := table.Dates()
	tickers := table.Tickers()
	px, py, pw, ph := cfg.plotArea()

	// Value range always includes zero so bars grow from the baseline.
	minVal, maxVal := 0.0, 0.0
	for _, d := range dates {
		for _, tk := range tickers {
			if v, ok := table.Mean(d, tk); ok {
				minVal = math.Min(minVal, v)
				maxVal = math.Max(maxVal, v)
			}
		}
	}
	vRange := maxVal - minVal
	if vRange < 0.001 {
		minVal, maxVal = -1, 1
	} else {
		if maxVal > 0 {
			maxVal += vRange * 0.05
		}
		if minVal < 0 {
			minVal -= vRange * 0.05
		}
	}
	vRange = maxVal - minVal

	valueToY := func(v float64) float64 {
		return float64(py+ph) - (v-minVal)/vRange*float64(ph)
	}
	zeroY := valueToY(0)

	groupW := float64(pw) / float64(len(dates))
	barW := groupW * 0.8 / float64(len(tickers))

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		cfg.Width, cfg.Height, cfg.BgColor))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="28" font-size="16" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
		cfg.Width/2, cfg.TextColor, escapeXML(cfg.Title)))

	// Horizontal grid and y ticks
	gridLines := 8
	for i := 0; i <= gridLines; i++ {
		val := minVal + vRange*float64(i)/float64(gridLines)
		y := valueToY(val)
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-dasharray="3,3"/>`,
			px, y, px+pw, y, cfg.GridColor))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" font-size="%d" fill="%s" text-anchor="end">%.2f</text>`,
			px-6, y+4, cfg.FontSize, cfg.TextColor, val))
	}

	// Vertical grid at group centres
	for i := range dates {
		cx := float64(px) + groupW*(float64(i)+0.5)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-dasharray="3,3"/>`,
			cx, py, cx, py+ph, cfg.GridColor))
	}

	// Bars
	for i, d := range dates {
		left := float64(px) + groupW*float64(i) + groupW*0.1
		for j, tk := range tickers {
			v, ok := table.Mean(d, tk)
			if !ok {
				continue
			}
			y := valueToY(v)
			top, h := y, zeroY-y
			if h < 0 {
				top, h = zeroY, -h
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%s %s: %.4f</title></rect>`,
				left+barW*float64(j), top, barW, h, seriesColors[j%len(seriesColors)],
				escapeXML(tk.String()), d.String(), v))
		}
	}

	// Zero baseline and plot frame
	sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#555555" stroke-width="1"/>`,
		px, zeroY, px+pw, zeroY))
	sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#999999"/>`,
		px, py, pw, ph))

	// X-axis date labels
	for i, d := range dates {
		cx := float64(px) + groupW*(float64(i)+0.5)
		ly := py + ph + 14
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="end" transform="rotate(-45,%.1f,%d)">%s</text>`,
			cx, ly, cfg.FontSize-1, cfg.TextColor, cx, ly, d.String()))
	}

	// Axis captions
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
		px+pw/2, cfg.Height-12, cfg.FontSize+1, cfg.TextColor, escapeXML(cfg.XLabel)))
	yx, yy := 22, py+ph/2
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle" transform="rotate(-90,%d,%d)">%s</text>`,
		yx, yy, cfg.FontSize+1, cfg.TextColor, yx, yy, escapeXML(cfg.YLabel)))

	// Legend
	lx := px + pw - 110
	for j, tk := range tickers {
		ly := py + 12 + j*18
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="14" height="10" fill="%s"/>`,
			lx, ly-9, seriesColors[j%len(seriesColors)]))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s">%s</text>`,
			lx+20, ly, cfg.FontSize, cfg.TextColor, escapeXML(tk.String())))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// SVG Helpers
// ════════════════════════════════════════════════════════════════════

func svgHeader(cfg ChartConfig) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
}

func emptySVG(cfg ChartConfig, msg string) string {
	if cfg.Width == 0 {
		cfg.Width = 400
	}
	if cfg.Height == 0 {
		cfg.Height = 200
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="30" text-anchor="middle" fill="#333" font-size="16">%s</text><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height, cfg.Width/2, escapeXML(cfg.Title), cfg.Width/2, cfg.Height/2, escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
