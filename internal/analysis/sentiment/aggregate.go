package sentiment

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/seenimoa/tickersentiment/pkg/models"
)

type cellKey struct {
	date   models.Date
	ticker models.Ticker
}

type cell struct {
	sum   float64
	count int
}

// Table is the mean compound score per (date, ticker). A pair with no
// headlines has no cell, which is different from a mean of zero.
// A Table is read-only once built.
type Table struct {
	cells   map[cellKey]cell
	dates   []models.Date
	tickers []models.Ticker
}

// Build groups scored headlines by (date, ticker). Records without a
// resolved date are ignored.
func Build(scored []models.ScoredHeadline) *Table {
	t := &Table{cells: make(map[cellKey]cell)}
	for _, s := range scored {
		if !s.Resolved() {
			continue
		}
		k := cellKey{date: s.Date, ticker: s.Ticker}
		c := t.cells[k]
		c.sum += s.Compound
		c.count++
		t.cells[k] = c
	}

	keys := lo.Keys(t.cells)
	t.dates = lo.Uniq(lo.Map(keys, func(k cellKey, _ int) models.Date { return k.date }))
	slices.SortFunc(t.dates, func(a, b models.Date) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}
		return 0
	})
	t.tickers = lo.Uniq(lo.Map(keys, func(k cellKey, _ int) models.Ticker { return k.ticker }))
	slices.SortFunc(t.tickers, func(a, b models.Ticker) int {
		return strings.Compare(string(a), string(b))
	})
	return t
}

// Mean returns the average score for the pair. ok is false when the pair
// has no headlines.
func (t *Table) Mean(date models.Date, ticker models.Ticker) (mean float64, ok bool) {
	c, ok := t.cells[cellKey{date: date, ticker: ticker}]
	if !ok || c.count == 0 {
		return 0, false
	}
	return c.sum / float64(c.count), true
}

// Count returns how many headlines contributed to the pair.
func (t *Table) Count(date models.Date, ticker models.Ticker) int {
	return t.cells[cellKey{date: date, ticker: ticker}].count
}

// Dates returns the row labels, oldest first.
func (t *Table) Dates() []models.Date { return slices.Clone(t.dates) }

// Tickers returns the column labels in lexical order.
func (t *Table) Tickers() []models.Ticker { return slices.Clone(t.tickers) }

// Len returns the number of populated cells.
func (t *Table) Len() int { return len(t.cells) }

// Empty reports whether the table has no cells.
func (t *Table) Empty() bool { return len(t.cells) == 0 }
