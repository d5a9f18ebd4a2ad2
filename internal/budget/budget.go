// Package budget holds spending limits per category and the user-defined expense categories.
package budget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalid = errors.New("invalid budget")

// Icons offered when creating a category.
var Icons = []string{"🛒", "🏠", "🚗", "⚡", "🍱", "🎬", "🏥", "👔", "🎓", "✈️", "💍", "🛡️", "🎁", "📱", "🍎", "☕", "🎮", "🏋️", "📚", "🐈"}

// Budget is a monthly spending limit for one expense category.
// Rollover carries the previous month's unspent limit into the current one.
type Budget struct {
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
	Rollover bool            `json:"rollover"`
	Icon     string          `json:"icon,omitempty"`
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalid)
	}

	if !b.Limit.IsPositive() {
		return fmt.Errorf("%w: limit must be positive", ErrInvalid)
	}

	return nil
}

// Params is the user input for defining a budget. The icon is taken from the category.
type Params struct {
	Category string
	Limit    decimal.Decimal
	Rollover bool
}

func (p Params) Validate() error {
	return Budget{Category: p.Category, Limit: p.Limit}.Validate()
}

// Category is a user-defined expense category.
type Category struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name is required", ErrInvalid)
	}

	return nil
}

// FindCategory returns the category with the given name.
func FindCategory(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}

	return Category{}, false
}

// Names returns the category names in order.
func Names(categories []Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}

	return names
}
