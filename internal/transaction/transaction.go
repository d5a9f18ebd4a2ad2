package transaction

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
)

var ErrInvalid = errors.New("invalid transaction")

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Nature classifies an expense as recurring or discretionary.
type Nature string

const (
	NatureFixed    Nature = "Fixed"
	NatureVariable Nature = "Variable"
)

// Income categories form a closed set; expense categories are user-defined.
const (
	CategorySalary    = "Salary"
	CategoryFreelance = "Freelance"
	CategoryROI       = "ROI"
	CategoryOther     = "Other"
)

// IncomeCategories lists the allowed income categories in display order.
var IncomeCategories = []string{CategorySalary, CategoryFreelance, CategoryROI, CategoryOther}

// Transaction represents a single recorded cash movement.
type Transaction struct {
	ID       string          `json:"id"`
	Type     Type            `json:"type"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     calendar.Date   `json:"date"`
	Note     string          `json:"note"`
	Nature   Nature          `json:"expenseType,omitempty"`
}

func (t Transaction) IsIncome() bool  { return t.Type == TypeIncome }
func (t Transaction) IsExpense() bool { return t.Type == TypeExpense }

// Params holds user input for creating or editing a transaction.
type Params struct {
	Type     Type
	Category string
	Amount   decimal.Decimal
	Date     calendar.Date
	Note     string
	Nature   Nature
}

// Validate rejects input that must never reach persisted state:
// non-positive amounts, missing fields, and a nature that does not match the type.
func (p Params) Validate() error {
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}

	if p.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalid)
	}

	return validateShape(p.Type, p.Category, p.Nature)
}

// Apply copies the params onto tx, keeping its identifier.
func (p Params) Apply(tx Transaction) Transaction {
	tx.Type = p.Type
	tx.Category = strings.TrimSpace(p.Category)
	tx.Amount = p.Amount
	tx.Date = p.Date
	tx.Note = p.Note
	tx.Nature = p.Nature

	if p.Type == TypeIncome {
		tx.Nature = ""
	}

	return tx
}

// ParamsOf returns editable params pre-filled from an existing transaction.
func ParamsOf(tx Transaction) Params {
	return Params{
		Type:     tx.Type,
		Category: tx.Category,
		Amount:   tx.Amount,
		Date:     tx.Date,
		Note:     tx.Note,
		Nature:   tx.Nature,
	}
}

// Normalize repairs fields that older records carry but that have no meaning for the
// transaction's type: income never has an expense type, and an unrecognised expense
// type is dropped.
func (t Transaction) Normalize() Transaction {
	t.Category = strings.TrimSpace(t.Category)

	switch {
	case t.Type == TypeIncome:
		t.Nature = ""
	case t.Nature != NatureFixed && t.Nature != NatureVariable:
		t.Nature = ""
	}

	return t
}

// Validate checks the invariants of a stored transaction. It is looser than
// Params.Validate: zero amounts, income outside the income categories and expenses
// without an expense type may exist in persisted data. Call Normalize first.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}

	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: negative amount", ErrInvalid)
	}

	if t.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalid)
	}

	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalid)
	}

	switch t.Type {
	case TypeIncome:
		if t.Nature != "" {
			return fmt.Errorf("%w: income cannot have an expense type", ErrInvalid)
		}
	case TypeExpense:
		if t.Nature != "" && t.Nature != NatureFixed && t.Nature != NatureVariable {
			return fmt.Errorf("%w: unknown expense type %q", ErrInvalid, t.Nature)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, t.Type)
	}

	return nil
}

func validateShape(typ Type, category string, nature Nature) error {
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalid)
	}

	switch typ {
	case TypeIncome:
		if !slices.Contains(IncomeCategories, category) {
			return fmt.Errorf("%w: unknown income category %q", ErrInvalid, category)
		}

		if nature != "" {
			return fmt.Errorf("%w: income cannot have an expense type", ErrInvalid)
		}
	case TypeExpense:
		if nature != NatureFixed && nature != NatureVariable {
			return fmt.Errorf("%w: expense type must be %s or %s", ErrInvalid, NatureFixed, NatureVariable)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalid, typ)
	}

	return nil
}
