package utils

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Eastern is the US market time zone. Finviz lists headline times in it.
var Eastern *time.Location

func init() {
	var err error
	Eastern, err = time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		Eastern = time.FixedZone("EST", -5*60*60)
	}
}

// HeadlineDateLayout is the date format of Finviz news rows, e.g. "Jan-05-24".
const HeadlineDateLayout = "Jan-02-06"

// LoadLocation resolves a time zone name. An empty name yields Eastern.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return Eastern, nil
	}
	return time.LoadLocation(name)
}

// NowIn returns the current time in loc.
func NowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}

// ParseHeadlineDate parses the date token of a news row. It accepts the
// Finviz layout, the literal "Today" (resolved against now), and falls back
// to permissive parsing. The result is midnight in now's location.
// ok is false when the token is not a date. Permissive results outside
// 1970 through a year after now are rejected: dateparse reads fragments
// such as "4/" or "1:" as dates in year 0.
func ParseHeadlineDate(token string, now time.Time) (time.Time, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false
	}

	loc := now.Location()
	midnight := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}

	switch strings.ToLower(token) {
	case "today":
		return midnight(now), true
	case "yesterday":
		return midnight(now.AddDate(0, 0, -1)), true
	}

	if t, err := time.ParseInLocation(HeadlineDateLayout, token, loc); err == nil {
		return t, true
	}

	t, err := dateparse.ParseIn(token, loc)
	if err != nil || t.Year() < minHeadlineYear || t.After(now.AddDate(1, 0, 0)) {
		return time.Time{}, false
	}
	return midnight(t), true
}

const minHeadlineYear = 1970
