package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
)

const storeTimeout = 5 * time.Second

// Currency is appended to every rendered amount.
const Currency = "Dh"

// FormatAmount renders an amount with two decimals and the currency suffix.
func FormatAmount(d decimal.Decimal) string {
	return fmt.Sprintf("%s %s", d.StringFixed(2), Currency)
}

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(d calendar.Date) string {
	return d.String()
}

// StoreCtx returns a context with a standard timeout for store writes.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// ParseAmount reads a strictly positive amount from user input.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("enter a number")
	}

	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be greater than zero")
	}

	return d, nil
}

func validateAmount(s string) error {
	_, err := ParseAmount(s)
	return err
}

func validateDate(s string) error {
	if _, err := calendar.Parse(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

// bar renders a horizontal gauge of width cells filled to pct percent.
func bar(pct int64, width int) string {
	filled := int(min(max(pct, 0), 100)) * width / 100
	return strings.Repeat("█", filled) + faintStyle.Render(strings.Repeat("░", width-filled))
}
