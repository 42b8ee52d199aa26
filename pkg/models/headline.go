// Package models defines the core data structures used throughout tickersentiment.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Ticker is a stock symbol, e.g. "AMZN". It is both the request target
// and a grouping key in the aggregate table.
type Ticker string

// String returns the symbol.
func (t Ticker) String() string { return string(t) }

// Date is a calendar date without a time-of-day or zone.
// The zero value means "unresolved".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate builds a Date from its parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// IsZero reports whether the date is unresolved.
func (d Date) IsZero() bool { return d.Year == 0 && d.Month == 0 && d.Day == 0 }

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// String formats the date as 2006-01-02. Unresolved dates render as "".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// HeadlineRecord is one parsed news row for a ticker.
type HeadlineRecord struct {
	Ticker Ticker `json:"ticker"`
	Date   Date   `json:"date"`             // zero when unresolved
	Time   string `json:"time"`             // e.g. "08:00AM", as listed
	Title  string `json:"title"`
	Link   string `json:"link,omitempty"`
	Source string `json:"source,omitempty"` // e.g. "Reuters"
}

// Resolved reports whether the record has a calendar date.
func (r HeadlineRecord) Resolved() bool { return !r.Date.IsZero() }

// PublishedAt combines the record's date and clock time in loc.
// When the clock cannot be parsed, midnight is used.
func (r HeadlineRecord) PublishedAt(loc *time.Location) time.Time {
	day := r.Date.In(loc)
	clock, err := time.Parse("3:04PM", strings.ToUpper(strings.TrimSpace(r.Time)))
	if err != nil {
		return day
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
}

// ScoredHeadline is a HeadlineRecord with its compound sentiment score.
type ScoredHeadline struct {
	HeadlineRecord
	Compound float64 `json:"compound"` // -1.0 (most negative) to +1.0 (most positive)
}
