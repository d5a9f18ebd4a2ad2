package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/wealthwise/internal/budget"
	"github.com/MrJamesThe3rd/wealthwise/internal/goal"
	"github.com/MrJamesThe3rd/wealthwise/internal/metrics"
	"github.com/MrJamesThe3rd/wealthwise/internal/transaction"
)

// FallbackReason explains why a collection was replaced by its defaults.
type FallbackReason string

const (
	ReasonMissing   FallbackReason = "missing"
	ReasonCorrupt   FallbackReason = "corrupt"
	ReasonInvalid   FallbackReason = "invalid"
	ReasonReadError FallbackReason = "read_error"
)

// Fallback records one collection that was loaded from defaults.
type Fallback struct {
	Collection Collection
	Reason     FallbackReason
	Err        error
}

// LoadReport lists the collections that fell back to defaults. An empty report means
// every collection was read from the backend.
type LoadReport struct {
	Fallbacks []Fallback
}

func (r LoadReport) Clean() bool {
	return len(r.Fallbacks) == 0
}

// Load reads every collection independently. A missing, unparsable or invalid record
// is replaced by the defaults, which are then written back. When the backend cannot be
// read the defaults are used in memory only, leaving the stored record alone.
// Load never fails.
func (s *Store) Load(ctx context.Context) LoadReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) LoadReport {
	var report LoadReport

	note := func(fb *Fallback) {
		if fb != nil {
			report.Fallbacks = append(report.Fallbacks, *fb)
		}
	}

	var fb *Fallback

	s.transactions, fb = loadCollection(ctx, s, CollectionTransactions, DefaultTransactions, validateTransactions)
	note(fb)

	s.goals, fb = loadCollection(ctx, s, CollectionGoals, DefaultGoals, validateGoals)
	note(fb)

	s.budgets, fb = loadCollection(ctx, s, CollectionBudgets, DefaultBudgets, validateBudgets)
	note(fb)

	s.categories, fb = loadCollection(ctx, s, CollectionCategories, DefaultCategories, validateCategories)
	note(fb)

	return report
}

func loadCollection[T any](
	ctx context.Context,
	s *Store,
	c Collection,
	defaults func() []T,
	validate func([]T) error,
) ([]T, *Fallback) {
	items, reason, err := read(ctx, s.backend, c, validate)
	if err == nil {
		return items, nil
	}

	slog.Warn("Using default collection", "collection", c, "reason", reason, "error", err)
	metrics.StoreLoadFallbacks.WithLabelValues(string(c), string(reason)).Inc()

	items = defaults()

	if reason != ReasonReadError {
		if err := s.save(ctx, c, items); err != nil {
			slog.Warn("Failed to persist default collection", "collection", c, "error", err)
		}
	}

	return items, &Fallback{Collection: c, Reason: reason, Err: err}
}

func read[T any](ctx context.Context, backend Backend, c Collection, validate func([]T) error) ([]T, FallbackReason, error) {
	payload, err := backend.Get(ctx, c.Key())
	if errors.Is(err, ErrNotFound) {
		return nil, ReasonMissing, err
	}

	if err != nil {
		return nil, ReasonReadError, fmt.Errorf("reading %s: %w", c, err)
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, ReasonCorrupt, fmt.Errorf("decoding %s: %w", c, err)
	}

	if items == nil {
		items = []T{}
	}

	if err := validate(items); err != nil {
		return nil, ReasonInvalid, err
	}

	return items, "", nil
}

// Restore overwrites all four records with snap and reloads.
func (s *Store) Restore(ctx context.Context, snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	writes := []struct {
		c     Collection
		items any
	}{
		{CollectionTransactions, nonNil(snap.Transactions)},
		{CollectionGoals, nonNil(snap.Goals)},
		{CollectionBudgets, nonNil(snap.Budgets)},
		{CollectionCategories, nonNil(snap.Categories)},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range writes {
		if err := s.save(ctx, w.c, w.items); err != nil {
			s.load(ctx)
			return fmt.Errorf("restoring: %w", err)
		}
	}

	report := s.load(ctx)
	if !report.Clean() {
		slog.Warn("Restored data did not load cleanly", "fallbacks", len(report.Fallbacks))
	}

	return nil
}

// Validate checks every collection of the snapshot against the persisted invariants.
// Transactions are normalized in place first.
func (snap Snapshot) Validate() error {
	if err := validateTransactions(snap.Transactions); err != nil {
		return err
	}

	if err := validateGoals(snap.Goals); err != nil {
		return err
	}

	if err := validateBudgets(snap.Budgets); err != nil {
		return err
	}

	return validateCategories(snap.Categories)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}

// validateTransactions normalizes txs in place, then checks them.
func validateTransactions(txs []transaction.Transaction) error {
	seen := make(map[string]struct{}, len(txs))

	for i := range txs {
		txs[i] = txs[i].Normalize()
		tx := txs[i]

		if err := tx.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}

		if _, dup := seen[tx.ID]; dup {
			return fmt.Errorf("transaction %d: duplicate id %q", i, tx.ID)
		}

		seen[tx.ID] = struct{}{}
	}

	return nil
}

func validateGoals(goals []goal.Goal) error {
	seen := make(map[string]struct{}, len(goals))

	for i, g := range goals {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("goal %d: %w", i, err)
		}

		if _, dup := seen[g.ID]; dup {
			return fmt.Errorf("goal %d: duplicate id %q", i, g.ID)
		}

		seen[g.ID] = struct{}{}
	}

	return nil
}

func validateBudgets(budgets []budget.Budget) error {
	seen := make(map[string]struct{}, len(budgets))

	for i, b := range budgets {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("budget %d: %w", i, err)
		}

		if _, dup := seen[b.Category]; dup {
			return fmt.Errorf("budget %d: duplicate category %q", i, b.Category)
		}

		seen[b.Category] = struct{}{}
	}

	return nil
}

func validateCategories(categories []budget.Category) error {
	seen := make(map[string]struct{}, len(categories))

	for i, c := range categories {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("category %d: %w", i, err)
		}

		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("category %d: duplicate name %q", i, c.Name)
		}

		seen[c.Name] = struct{}{}
	}

	return nil
}
