package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthwise/internal/budget"
	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
	"github.com/MrJamesThe3rd/wealthwise/internal/goal"
	"github.com/MrJamesThe3rd/wealthwise/internal/transaction"
)

// The built-in collections used on first start and whenever a stored record is unusable.
// Each call returns a fresh slice.

func DefaultTransactions() []transaction.Transaction {
	return []transaction.Transaction{
		{
			ID: "1", Type: transaction.TypeIncome, Category: transaction.CategorySalary,
			Amount: decimal.NewFromInt(5000), Date: calendar.NewDate(2023, time.November, 1), Note: "Monthly Salary",
		},
		{
			ID: "2", Type: transaction.TypeIncome, Category: transaction.CategoryFreelance,
			Amount: decimal.NewFromInt(1200), Date: calendar.NewDate(2023, time.November, 5), Note: "UI Design Project",
		},
		{
			ID: "3", Type: transaction.TypeExpense, Category: "Rent",
			Amount: decimal.NewFromInt(1500), Date: calendar.NewDate(2023, time.November, 1), Note: "Monthly Rent",
			Nature: transaction.NatureFixed,
		},
		{
			ID: "4", Type: transaction.TypeExpense, Category: "Groceries",
			Amount: decimal.NewFromInt(400), Date: calendar.NewDate(2023, time.November, 10), Note: "Weekly Shopping",
			Nature: transaction.NatureVariable,
		},
		{
			ID: "5", Type: transaction.TypeIncome, Category: transaction.CategoryROI,
			Amount: decimal.NewFromInt(300), Date: calendar.NewDate(2023, time.November, 15), Note: "Dividends",
		},
	}
}

func DefaultGoals() []goal.Goal {
	return []goal.Goal{
		{
			ID: "g1", Name: "New iPhone 16 Pro", Target: decimal.NewFromInt(1200), Current: decimal.NewFromInt(450),
			Deadline: calendar.NewDate(2024, time.March, 1), Icon: "📱",
		},
		{
			ID: "g2", Name: "House Downpayment", Target: decimal.NewFromInt(50000), Current: decimal.NewFromInt(12500),
			Deadline: calendar.NewDate(2026, time.December, 31), Icon: "🏠",
		},
		{
			ID: "g3", Name: "Dream Car", Target: decimal.NewFromInt(35000), Current: decimal.NewFromInt(2000),
			Deadline: calendar.NewDate(2025, time.June, 30), Icon: "🚗",
		},
	}
}

func DefaultBudgets() []budget.Budget {
	return []budget.Budget{
		{Category: "Rent", Limit: decimal.NewFromInt(1600), Rollover: false, Icon: "🏠"},
		{Category: "Groceries", Limit: decimal.NewFromInt(500), Rollover: true, Icon: "🛒"},
		{Category: "Dining", Limit: decimal.NewFromInt(300), Rollover: false, Icon: "🍱"},
	}
}

func DefaultCategories() []budget.Category {
	return []budget.Category{
		{Name: "Rent", Icon: "🏠"},
		{Name: "Groceries", Icon: "🛒"},
		{Name: "Utilities", Icon: "⚡"},
		{Name: "Dining", Icon: "🍱"},
		{Name: "Entertainment", Icon: "🎬"},
		{Name: "Transport", Icon: "🚗"},
	}
}
