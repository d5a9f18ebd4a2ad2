// Package calendar provides date and month values without time-of-day semantics.
package calendar

import (
	"encoding/json"
	"fmt"
	"time"
)

const layout = time.DateOnly

// Date is a calendar date. Comparisons use the stored fields, never elapsed time.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for the given fields, normalizing out-of-range values
// the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the date part of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current local date.
func Today() Date {
	return FromTime(time.Now())
}

// Parse reads a YYYY-MM-DD date.
func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return FromTime(t), nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return d.Time().Format(layout)
}

// Period returns the month the date falls in.
func (d Date) Period() Period {
	return Period{Year: d.Year, Month: d.Month}
}

// AddDays returns the date n days later (earlier when n is negative).
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// Period is a calendar month of a given year.
type Period struct {
	Year  int
	Month time.Month
}

// CurrentPeriod returns the month containing today.
func CurrentPeriod() Period {
	return Today().Period()
}

// Prev returns the preceding month; January rolls back to December of the previous year.
func (p Period) Prev() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}

	return Period{Year: p.Year, Month: p.Month - 1}
}

// Next returns the following month; December rolls over to January of the next year.
func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}

	return Period{Year: p.Year, Month: p.Month + 1}
}

// Contains reports whether d falls in the period.
func (p Period) Contains(d Date) bool {
	return d.Year == p.Year && d.Month == p.Month
}

// Valid reports whether the month is in range.
func (p Period) Valid() bool {
	return p.Month >= time.January && p.Month <= time.December
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}
