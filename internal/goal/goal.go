// Package goal models savings objectives and their funding progress.
package goal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
)

var ErrInvalid = errors.New("invalid goal")

// DefaultIcon is used when a goal is created without one.
const DefaultIcon = "🎯"

var hundred = decimal.NewFromInt(100)

type Goal struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Target   decimal.Decimal `json:"targetAmount"`
	Current  decimal.Decimal `json:"currentAmount"`
	Deadline calendar.Date   `json:"deadline"`
	Icon     string          `json:"icon"`
}

// Completed reports whether the saved amount has reached the target.
func (g Goal) Completed() bool {
	return g.Current.GreaterThanOrEqual(g.Target)
}

// Progress is the funded share of the target as a whole percent in [0, 100].
func (g Goal) Progress() int64 {
	if !g.Target.IsPositive() {
		return 0
	}

	pct := g.Current.Div(g.Target).Mul(hundred).Round(0).IntPart()

	return max(0, min(100, pct))
}

// Remaining is the amount still missing, never negative.
func (g Goal) Remaining() decimal.Decimal {
	return decimal.Max(decimal.Zero, g.Target.Sub(g.Current))
}

// DaysLeft counts whole days from today until the deadline. Past deadlines are negative.
func (g Goal) DaysLeft(today calendar.Date) int {
	return int(g.Deadline.Time().Sub(today.Time()).Hours() / 24)
}

// Contribute adds amount to the saved total, capped at the target.
func (g Goal) Contribute(amount decimal.Decimal) (Goal, error) {
	if !amount.IsPositive() {
		return g, fmt.Errorf("%w: contribution must be positive", ErrInvalid)
	}

	g.Current = decimal.Min(g.Target, g.Current.Add(amount))

	return g, nil
}

// Validate checks a stored goal.
func (g Goal) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}

	return validate(g.Name, g.Target, g.Current, g.Deadline)
}

// Params holds user input for a new goal.
type Params struct {
	Name     string
	Target   decimal.Decimal
	Current  decimal.Decimal
	Deadline calendar.Date
	Icon     string
}

func (p Params) Validate() error {
	if err := validate(p.Name, p.Target, p.Current, p.Deadline); err != nil {
		return err
	}

	if p.Current.GreaterThan(p.Target) {
		return fmt.Errorf("%w: current amount exceeds target", ErrInvalid)
	}

	return nil
}

// New builds a goal from params under the given id.
func (p Params) New(id string) Goal {
	icon := strings.TrimSpace(p.Icon)
	if icon == "" {
		icon = DefaultIcon
	}

	return Goal{
		ID:       id,
		Name:     strings.TrimSpace(p.Name),
		Target:   p.Target,
		Current:  p.Current,
		Deadline: p.Deadline,
		Icon:     icon,
	}
}

func validate(name string, target, current decimal.Decimal, deadline calendar.Date) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}

	if !target.IsPositive() {
		return fmt.Errorf("%w: target must be positive", ErrInvalid)
	}

	if current.IsNegative() {
		return fmt.Errorf("%w: current amount cannot be negative", ErrInvalid)
	}

	if deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", ErrInvalid)
	}

	return nil
}
