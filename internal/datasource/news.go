package datasource

import (
	"strings"
	"time"

	"github.com/seenimoa/tickersentiment/pkg/models"
	"github.com/seenimoa/tickersentiment/pkg/utils"
)

// ParseResult holds the records parsed from one ticker's rows.
type ParseResult struct {
	Records []models.HeadlineRecord
	Dropped int // rows with no resolvable date
}

// ParseNewsRows turns one ticker's rows into headline records.
//
// The site prints a date only on the first headline of each day, so a
// single-token cell is a time that inherits the most recent explicit date
// seen earlier in rows. That state lives only for this call: dates never
// carry from one ticker to another. A row that ends up without a date,
// including one that inherits an unparseable date, is dropped. A row
// without link text is kept with an empty title. now anchors the "Today" literal and sets the
// location of the resulting dates.
func ParseNewsRows(ticker models.Ticker, rows []NewsRow, now time.Time) ParseResult {
	var (
		res      ParseResult
		lastDate models.Date
	)

	for _, row := range rows {
		var (
			date  models.Date
			clock string
		)

		switch tokens := strings.Fields(row.Cell); len(tokens) {
		case 0:
		case 1:
			clock = tokens[0]
			date = lastDate
		default:
			clock = tokens[1]
			if t, ok := utils.ParseHeadlineDate(tokens[0], now); ok {
				date = models.DateOf(t)
			}
			lastDate = date
		}

		if date.IsZero() {
			res.Dropped++
			continue
		}

		res.Records = append(res.Records, models.HeadlineRecord{
			Ticker: ticker,
			Date:   date,
			Time:   clock,
			Title:  row.Title,
			Link:   row.Link,
			Source: row.Source,
		})
	}
	return res
}
