// Package store owns the transactions, goals, budgets and categories collections.
//
// Every mutation validates its input, writes only the collection it changed, and
// updates memory after the write succeeds. Memory always mirrors the last successful write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthwise/internal/budget"
	"github.com/MrJamesThe3rd/wealthwise/internal/goal"
	"github.com/MrJamesThe3rd/wealthwise/internal/metrics"
	"github.com/MrJamesThe3rd/wealthwise/internal/transaction"
)

var (
	ErrInvalid         = errors.New("invalid input")
	ErrDuplicate       = errors.New("already exists")
	ErrUnknownCategory = errors.New("unknown category")
)

type Store struct {
	backend Backend
	newID   func() string

	mu           sync.RWMutex
	transactions []transaction.Transaction
	goals        []goal.Goal
	budgets      []budget.Budget
	categories   []budget.Category
}

type Option func(*Store)

// WithIDGenerator replaces the uuid generator used for new transactions and goals.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// New returns an empty Store. Call Load before use.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		newID:   uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Snapshot is a copy of all four collections.
type Snapshot struct {
	Transactions []transaction.Transaction
	Goals        []goal.Goal
	Budgets      []budget.Budget
	Categories   []budget.Category
}

func (s *Store) Transactions() []transaction.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.transactions)
}

func (s *Store) Goals() []goal.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.goals)
}

func (s *Store) Budgets() []budget.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.budgets)
}

func (s *Store) Categories() []budget.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.categories)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Transactions: slices.Clone(s.transactions),
		Goals:        slices.Clone(s.goals),
		Budgets:      slices.Clone(s.budgets),
		Categories:   slices.Clone(s.categories),
	}
}

// AddTransaction records a new transaction under a fresh id. The newest entry comes first.
func (s *Store) AddTransaction(ctx context.Context, params transaction.Params) (transaction.Transaction, error) {
	if err := params.Validate(); err != nil {
		return transaction.Transaction{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := params.Apply(transaction.Transaction{ID: s.newID()})
	next := append([]transaction.Transaction{tx}, s.transactions...)

	if err := s.save(ctx, CollectionTransactions, next); err != nil {
		return transaction.Transaction{}, err
	}

	s.transactions = next

	return tx, nil
}

// UpdateTransaction replaces the stored transaction with the same id.
func (s *Store) UpdateTransaction(ctx context.Context, tx transaction.Transaction) error {
	params := transaction.ParamsOf(tx)
	if err := params.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.transactions, func(t transaction.Transaction) bool { return t.ID == tx.ID })
	if idx < 0 {
		return fmt.Errorf("transaction %q: %w", tx.ID, ErrNotFound)
	}

	next := slices.Clone(s.transactions)
	next[idx] = params.Apply(next[idx])

	if err := s.save(ctx, CollectionTransactions, next); err != nil {
		return err
	}

	s.transactions = next

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.transactions), func(t transaction.Transaction) bool { return t.ID == id })
	if len(next) == len(s.transactions) {
		return fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}

	if err := s.save(ctx, CollectionTransactions, next); err != nil {
		return err
	}

	s.transactions = next

	return nil
}

func (s *Store) AddGoal(ctx context.Context, params goal.Params) (goal.Goal, error) {
	if err := params.Validate(); err != nil {
		return goal.Goal{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := params.New(s.newID())
	next := append(slices.Clone(s.goals), g)

	if err := s.save(ctx, CollectionGoals, next); err != nil {
		return goal.Goal{}, err
	}

	s.goals = next

	return g, nil
}

// Contribute adds a positive amount to a goal, capped at its target.
func (s *Store) Contribute(ctx context.Context, id string, amount decimal.Decimal) (goal.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.goals, func(g goal.Goal) bool { return g.ID == id })
	if idx < 0 {
		return goal.Goal{}, fmt.Errorf("goal %q: %w", id, ErrNotFound)
	}

	updated, err := s.goals[idx].Contribute(amount)
	if err != nil {
		return goal.Goal{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	next := slices.Clone(s.goals)
	next[idx] = updated

	if err := s.save(ctx, CollectionGoals, next); err != nil {
		return goal.Goal{}, err
	}

	s.goals = next

	return updated, nil
}

// SetBudget defines the budget for a known category, replacing any existing one.
// The icon is copied from the category.
func (s *Store) SetBudget(ctx context.Context, params budget.Params) (budget.Budget, error) {
	if err := params.Validate(); err != nil {
		return budget.Budget{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := budget.FindCategory(s.categories, params.Category)
	if !ok {
		return budget.Budget{}, fmt.Errorf("budget for %q: %w", params.Category, ErrUnknownCategory)
	}

	b := budget.Budget{
		Category: category.Name,
		Limit:    params.Limit,
		Rollover: params.Rollover,
		Icon:     category.Icon,
	}

	next := slices.DeleteFunc(slices.Clone(s.budgets), func(existing budget.Budget) bool {
		return existing.Category == b.Category
	})
	next = append(next, b)

	if err := s.save(ctx, CollectionBudgets, next); err != nil {
		return budget.Budget{}, err
	}

	s.budgets = next

	return b, nil
}

func (s *Store) RemoveBudget(ctx context.Context, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := withoutBudget(s.budgets, category)
	if len(next) == len(s.budgets) {
		return fmt.Errorf("budget %q: %w", category, ErrNotFound)
	}

	if err := s.save(ctx, CollectionBudgets, next); err != nil {
		return err
	}

	s.budgets = next

	return nil
}

// AddCategory defines a new expense category. Names are unique and compared exactly.
func (s *Store) AddCategory(ctx context.Context, category budget.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if category.Icon == "" {
		category.Icon = budget.Icons[0]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := budget.FindCategory(s.categories, category.Name); ok {
		return fmt.Errorf("category %q: %w", category.Name, ErrDuplicate)
	}

	next := append(slices.Clone(s.categories), category)

	if err := s.save(ctx, CollectionCategories, next); err != nil {
		return err
	}

	s.categories = next

	return nil
}

// RemoveCategory deletes a category and any budget bound to it.
// Transactions recorded against the category are left untouched.
func (s *Store) RemoveCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := slices.DeleteFunc(slices.Clone(s.categories), func(c budget.Category) bool { return c.Name == name })
	if len(categories) == len(s.categories) {
		return fmt.Errorf("category %q: %w", name, ErrNotFound)
	}

	if err := s.save(ctx, CollectionCategories, categories); err != nil {
		return err
	}

	s.categories = categories

	budgets := withoutBudget(s.budgets, name)
	if len(budgets) == len(s.budgets) {
		return nil
	}

	if err := s.save(ctx, CollectionBudgets, budgets); err != nil {
		return fmt.Errorf("removing budget of deleted category %q: %w", name, err)
	}

	s.budgets = budgets

	return nil
}

func withoutBudget(budgets []budget.Budget, category string) []budget.Budget {
	return slices.DeleteFunc(slices.Clone(budgets), func(b budget.Budget) bool { return b.Category == category })
}

// save writes one collection. The caller holds the write lock.
func (s *Store) save(ctx context.Context, c Collection, items any) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c, err)
	}

	if err := s.backend.Put(ctx, c.Key(), payload); err != nil {
		metrics.StoreWrites.WithLabelValues(string(c), "error").Inc()
		return fmt.Errorf("saving %s: %w", c, err)
	}

	metrics.StoreWrites.WithLabelValues(string(c), "ok").Inc()

	return nil
}
