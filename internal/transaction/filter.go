package transaction

import (
	"strings"

	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
)

// Timeframe narrows a transaction list relative to a reference date.
type Timeframe string

const (
	TimeframeAll   Timeframe = "All"
	TimeframeDay   Timeframe = "Day"
	TimeframeWeek  Timeframe = "Week"
	TimeframeMonth Timeframe = "Month"
	TimeframeYear  Timeframe = "Year"
)

// Timeframes lists the selectable timeframes in display order.
var Timeframes = []Timeframe{TimeframeAll, TimeframeDay, TimeframeWeek, TimeframeMonth, TimeframeYear}

// ParseTimeframe accepts a timeframe name case-insensitively. Unknown or empty input means All.
func ParseTimeframe(s string) Timeframe {
	for _, tf := range Timeframes {
		if strings.EqualFold(string(tf), s) {
			return tf
		}
	}

	return TimeframeAll
}

// Next cycles to the following timeframe.
func (tf Timeframe) Next() Timeframe {
	for i, candidate := range Timeframes {
		if candidate == tf {
			return Timeframes[(i+1)%len(Timeframes)]
		}
	}

	return TimeframeAll
}

func (tf Timeframe) includes(d, today calendar.Date) bool {
	switch tf {
	case TimeframeDay:
		return d == today
	case TimeframeWeek:
		return !d.Before(today.AddDays(-7))
	case TimeframeMonth:
		return today.Period().Contains(d)
	case TimeframeYear:
		return d.Year == today.Year
	}

	return true
}

// Filter selects transactions by free-text query and timeframe.
type Filter struct {
	Query     string
	Timeframe Timeframe
}

// Apply returns the matching transactions in their original order.
// The query matches category or note, case-insensitively.
func (f Filter) Apply(txs []Transaction, today calendar.Date) []Transaction {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Transaction, 0, len(txs))

	for _, tx := range txs {
		if query != "" &&
			!strings.Contains(strings.ToLower(tx.Category), query) &&
			!strings.Contains(strings.ToLower(tx.Note), query) {
			continue
		}

		if !f.Timeframe.includes(tx.Date, today) {
			continue
		}

		out = append(out, tx)
	}

	return out
}
