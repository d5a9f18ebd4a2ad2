// Package stats derives read-only aggregates from the stored collections.
// Every function is pure; results are recomputed on demand.
package stats

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthwise/internal/budget"
	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
	"github.com/MrJamesThe3rd/wealthwise/internal/goal"
	"github.com/MrJamesThe3rd/wealthwise/internal/transaction"
)

var hundred = decimal.NewFromInt(100)

// Summary holds all-time totals over every transaction.
type Summary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	Balance          decimal.Decimal `json:"balance"`
	FixedExpenses    decimal.Decimal `json:"fixedExpenses"`
	VariableExpenses decimal.Decimal `json:"variableExpenses"`
	SalaryIncome     decimal.Decimal `json:"salaryIncome"`
	FreelanceIncome  decimal.Decimal `json:"freelanceIncome"`
	ROIIncome        decimal.Decimal `json:"roiIncome"`
	OtherIncome      decimal.Decimal `json:"otherIncome"`
}

// Global sums income and expenses across all transactions.
func Global(txs []transaction.Transaction) Summary {
	var s Summary

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)

			switch tx.Category {
			case transaction.CategorySalary:
				s.SalaryIncome = s.SalaryIncome.Add(tx.Amount)
			case transaction.CategoryFreelance:
				s.FreelanceIncome = s.FreelanceIncome.Add(tx.Amount)
			case transaction.CategoryROI:
				s.ROIIncome = s.ROIIncome.Add(tx.Amount)
			default:
				s.OtherIncome = s.OtherIncome.Add(tx.Amount)
			}
		case transaction.TypeExpense:
			s.TotalExpenses = s.TotalExpenses.Add(tx.Amount)

			switch tx.Nature {
			case transaction.NatureFixed:
				s.FixedExpenses = s.FixedExpenses.Add(tx.Amount)
			case transaction.NatureVariable:
				s.VariableExpenses = s.VariableExpenses.Add(tx.Amount)
			}
		}
	}

	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)

	return s
}

// Slice is one labelled share of a breakdown chart.
type Slice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// IncomeBreakdown splits income into salary, freelance and ROI. Salary absorbs
// everything that is neither freelance nor ROI and never goes below zero.
func IncomeBreakdown(s Summary) []Slice {
	salary := decimal.Max(decimal.Zero, s.TotalIncome.Sub(s.FreelanceIncome).Sub(s.ROIIncome))

	return []Slice{
		{Name: transaction.CategorySalary, Value: salary},
		{Name: transaction.CategoryFreelance, Value: s.FreelanceIncome},
		{Name: transaction.CategoryROI, Value: s.ROIIncome},
	}
}

func ExpenseBreakdown(s Summary) []Slice {
	return []Slice{
		{Name: string(transaction.NatureFixed), Value: s.FixedExpenses},
		{Name: string(transaction.NatureVariable), Value: s.VariableExpenses},
	}
}

// PeriodStat is a budget's consumption for one month.
type PeriodStat struct {
	Budget     budget.Budget   `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Rollover   decimal.Decimal `json:"rolloverAmount"`
	TotalLimit decimal.Decimal `json:"totalLimit"`
	Percentage int64           `json:"percentage"`
}

// Exceeded reports whether spending has reached the effective limit.
func (p PeriodStat) Exceeded() bool {
	return p.Spent.GreaterThanOrEqual(p.TotalLimit)
}

// Warning reports spending at or above 80% of the effective limit that has not yet exceeded it.
func (p PeriodStat) Warning() bool {
	return !p.Exceeded() && p.Spent.GreaterThanOrEqual(p.TotalLimit.Mul(decimal.NewFromFloat(0.8)))
}

// PeriodStats computes each budget's spend in period, in budget order.
//
// Rollover looks exactly one month back: an enabled budget carries
// max(0, limit - previous month's spend) into the period. Carry-over does not compound.
func PeriodStats(budgets []budget.Budget, txs []transaction.Transaction, period calendar.Period) []PeriodStat {
	out := make([]PeriodStat, 0, len(budgets))
	prev := period.Prev()

	for _, b := range budgets {
		spent := Spent(txs, b.Category, period)

		rollover := decimal.Zero
		if b.Rollover {
			rollover = decimal.Max(decimal.Zero, b.Limit.Sub(Spent(txs, b.Category, prev)))
		}

		total := b.Limit.Add(rollover)

		out = append(out, PeriodStat{
			Budget:     b,
			Spent:      spent,
			Rollover:   rollover,
			TotalLimit: total,
			Percentage: percent(spent, total),
		})
	}

	return out
}

// Spent sums expenses of category whose date falls in period.
func Spent(txs []transaction.Transaction, category string, period calendar.Period) decimal.Decimal {
	sum := decimal.Zero

	for _, tx := range txs {
		if tx.IsExpense() && tx.Category == category && period.Contains(tx.Date) {
			sum = sum.Add(tx.Amount)
		}
	}

	return sum
}

// Share is a budget's part of the period's total spending.
type Share struct {
	Category string `json:"category"`
	Percent  int64  `json:"percent"`
}

// SpendingShare distributes the period's spending across budgets.
// With nothing spent every share is 0.
func SpendingShare(periodStats []PeriodStat) []Share {
	total := decimal.Zero
	for _, s := range periodStats {
		total = total.Add(s.Spent)
	}

	if total.IsZero() {
		total = decimal.NewFromInt(1)
	}

	out := make([]Share, 0, len(periodStats))
	for _, s := range periodStats {
		out = append(out, Share{Category: s.Budget.Category, Percent: percent(s.Spent, total)})
	}

	return out
}

// Watchlist returns at most n budgets ordered by spend relative to the base limit,
// most consumed first. Rollover is ignored here.
func Watchlist(periodStats []PeriodStat, n int) []PeriodStat {
	sorted := slices.Clone(periodStats)

	slices.SortStableFunc(sorted, func(a, b PeriodStat) int {
		return cmp.Compare(usage(b), usage(a))
	})

	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}

func usage(s PeriodStat) float64 {
	if !s.Budget.Limit.IsPositive() {
		return 0
	}

	f, _ := s.Spent.Div(s.Budget.Limit).Float64()

	return f
}

// GoalProgress is the whole-percent funding of g, clamped to [0, 100].
func GoalProgress(g goal.Goal) int64 {
	return g.Progress()
}

// GoalSummary aggregates all goals.
type GoalSummary struct {
	TotalTarget decimal.Decimal `json:"totalTarget"`
	TotalSaved  decimal.Decimal `json:"totalSaved"`
	Progress    int64           `json:"progress"`
	Active      int             `json:"activeCount"`
	Completed   int             `json:"completedCount"`
}

func Goals(goals []goal.Goal) GoalSummary {
	var s GoalSummary

	for _, g := range goals {
		s.TotalTarget = s.TotalTarget.Add(g.Target)
		s.TotalSaved = s.TotalSaved.Add(g.Current)

		if g.Completed() {
			s.Completed++
		}
	}

	s.Active = len(goals) - s.Completed
	s.Progress = percent(s.TotalSaved, s.TotalTarget)

	return s
}

// AverageProgress is the mean of current/target over all goals as a whole percent,
// or 0 without goals.
func AverageProgress(goals []goal.Goal) int64 {
	if len(goals) == 0 {
		return 0
	}

	sum := decimal.Zero

	for _, g := range goals {
		if g.Target.IsPositive() {
			sum = sum.Add(g.Current.Div(g.Target))
		}
	}

	return sum.Div(decimal.NewFromInt(int64(len(goals)))).Mul(hundred).Round(0).IntPart()
}

// percent returns round(part / whole * 100), or 0 when whole is not positive.
func percent(part, whole decimal.Decimal) int64 {
	if !whole.IsPositive() {
		return 0
	}

	return part.Div(whole).Mul(hundred).Round(0).IntPart()
}
