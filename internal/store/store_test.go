package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/wealthwise/internal/budget"
	"github.com/MrJamesThe3rd/wealthwise/internal/calendar"
	"github.com/MrJamesThe3rd/wealthwise/internal/goal"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
	"github.com/MrJamesThe3rd/wealthwise/internal/transaction"
)

func sequentialIDs() store.Option {
	n := 0

	return store.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func loadedStore(t *testing.T) (*store.Store, *store.MemoryBackend) {
	t.Helper()

	backend := store.NewMemoryBackend()
	s := store.New(backend, sequentialIDs())
	s.Load(context.Background())

	return s, backend
}

func expenseParams(category string, amount int64) transaction.Params {
	return transaction.Params{
		Type:     transaction.TypeExpense,
		Category: category,
		Amount:   decimal.NewFromInt(amount),
		Date:     calendar.NewDate(2024, time.January, 12),
		Nature:   transaction.NatureVariable,
	}
}

func TestStore_Load_EmptyBackendUsesAndPersistsDefaults(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()
	s := store.New(backend)

	report := s.Load(ctx)

	require.Len(t, report.Fallbacks, 4)
	for _, fb := range report.Fallbacks {
		assert.Equal(t, store.ReasonMissing, fb.Reason)
	}

	assert.Len(t, s.Transactions(), 5)
	assert.Len(t, s.Goals(), 3)
	assert.Len(t, s.Budgets(), 3)
	assert.Len(t, s.Categories(), 6)

	for _, key := range []string{"ww_transactions", "ww_goals", "ww_budgets", "ww_categories"} {
		_, err := backend.Get(ctx, key)
		assert.NoError(t, err, key)
	}

	assert.True(t, store.New(backend).Load(ctx).Clean())
}

func TestStore_Load_CorruptCollectionDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()

	require.NoError(t, backend.Put(ctx, "ww_transactions", []byte(`[]`)))
	require.NoError(t, backend.Put(ctx, "ww_goals", []byte(`{not json`)))
	require.NoError(t, backend.Put(ctx, "ww_budgets", []byte(`[{"category":"Rent","limit":"900","rollover":false}]`)))
	require.NoError(t, backend.Put(ctx, "ww_categories", []byte(`[{"name":"Rent","icon":"🏠"}]`)))

	s := store.New(backend)
	report := s.Load(ctx)

	require.Len(t, report.Fallbacks, 1)
	assert.Equal(t, store.CollectionGoals, report.Fallbacks[0].Collection)
	assert.Equal(t, store.ReasonCorrupt, report.Fallbacks[0].Reason)

	assert.Empty(t, s.Transactions())
	assert.Equal(t, store.DefaultGoals()[0].Name, s.Goals()[0].Name)
	require.Len(t, s.Budgets(), 1)
	assert.True(t, s.Budgets()[0].Limit.Equal(decimal.NewFromInt(900)))
	assert.Len(t, s.Categories(), 1)
}

func TestStore_Load_InvalidPayloadFallsBack(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()

	// unknown transaction type
	require.NoError(t, backend.Put(ctx, "ww_transactions",
		[]byte(`[{"id":"x","type":"TRANSFER","category":"Rent","amount":"10","date":"2024-01-01","note":""}]`)))

	s := store.New(backend)
	report := s.Load(ctx)

	require.NotEmpty(t, report.Fallbacks)
	assert.Equal(t, store.CollectionTransactions, report.Fallbacks[0].Collection)
	assert.Equal(t, store.ReasonInvalid, report.Fallbacks[0].Reason)
	assert.Len(t, s.Transactions(), 5)
}

func TestStore_Load_NormalizesLegacyTransactions(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemoryBackend()

	stored := []byte(`[
		{"id":"a","type":"INCOME","category":"Salary","amount":4200,"date":"2024-01-01","note":"pay","expenseType":"Fixed"},
		{"id":"b","type":"INCOME","category":"Rent","amount":300,"date":"2024-01-02","note":"sublet","expenseType":"Fixed"},
		{"id":"c","type":"EXPENSE","category":"Dining","amount":40,"date":"2024-01-03","note":""}
	]`)
	require.NoError(t, backend.Put(ctx, "ww_transactions", stored))

	s := store.New(backend)
	report := s.Load(ctx)

	for _, fb := range report.Fallbacks {
		assert.NotEqual(t, store.CollectionTransactions, fb.Collection)
	}

	txs := s.Transactions()
	require.Len(t, txs, 3)
	assert.Equal(t, "a", txs[0].ID)
	assert.Empty(t, txs[0].Nature)
	assert.Equal(t, "Rent", txs[1].Category)
	assert.Empty(t, txs[1].Nature)
	assert.Empty(t, txs[2].Nature)

	payload, err := backend.Get(ctx, "ww_transactions")
	require.NoError(t, err)
	assert.Equal(t, stored, payload)
}

func TestStore_Load_ReadErrorKeepsStoredRecord(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)

	backend.EXPECT().Get(gomock.Any(), "ww_transactions").Return(nil, errors.New("disk unavailable"))
	backend.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, store.ErrNotFound).Times(3)

	backend.EXPECT().Put(gomock.Any(), "ww_goals", gomock.Any()).Return(nil)
	backend.EXPECT().Put(gomock.Any(), "ww_budgets", gomock.Any()).Return(nil)
	backend.EXPECT().Put(gomock.Any(), "ww_categories", gomock.Any()).Return(nil)

	s := store.New(backend)
	report := s.Load(ctx)

	require.Len(t, report.Fallbacks, 4)
	assert.Equal(t, store.ReasonReadError, report.Fallbacks[0].Reason)
	assert.Len(t, s.Transactions(), 5)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, backend := loadedStore(t)

	_, err := s.AddTransaction(ctx, expenseParams("Dining", 42))
	require.NoError(t, err)

	_, err = s.AddGoal(ctx, goal.Params{
		Name: "Trip", Target: decimal.RequireFromString("2500.50"), Deadline: calendar.NewDate(2027, time.July, 1),
	})
	require.NoError(t, err)

	_, err = s.SetBudget(ctx, budget.Params{Category: "Transport", Limit: decimal.NewFromInt(120), Rollover: true})
	require.NoError(t, err)

	require.NoError(t, s.AddCategory(ctx, budget.Category{Name: "Travel", Icon: "✈️"}))

	reloaded := store.New(backend)
	require.True(t, reloaded.Load(ctx).Clean())

	want, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	got, err := json.Marshal(reloaded.Snapshot())
	require.NoError(t, err)

	assert.JSONEq(t, string(want), string(got))
	assert.Equal(t, s.Snapshot().Transactions[0].ID, reloaded.Snapshot().Transactions[0].ID)
}

func TestStore_AddTransaction(t *testing.T) {
	ctx := context.Background()
	s, _ := loadedStore(t)

	tx, err := s.AddTransaction(ctx, expenseParams("Dining", 30))
	require.NoError(t, err)

	assert.Equal(t, "id-1", tx.ID)
	assert.Equal(t, tx, s.Transactions()[0])
	assert.Len(t, s.Transactions(), 6)

	_, err = s.AddTransaction(ctx, expenseParams("Dining", 0))
	assert.ErrorIs(t, err, store.ErrInvalid)
	assert.ErrorIs(t, err, transaction.ErrInvalid)
	assert.Len(t, s.Transactions(), 6)
}

func TestStore_UpdateAndDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	s, _ := loadedStore(t)

	tx := s.Transactions()[3]
	tx.Amount = decimal.NewFromInt(450)
	tx.Note = "Monthly groceries"

	require.NoError(t, s.UpdateTransaction(ctx, tx))
	assert.Equal(t, tx.ID, s.Transactions()[3].ID)
	assert.True(t, s.Transactions()[3].Amount.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, "Monthly groceries", s.Transactions()[3].Note)

	missing := tx
	missing.ID = "nope"
	assert.ErrorIs(t, s.UpdateTransaction(ctx, missing), store.ErrNotFound)

	require.NoError(t, s.DeleteTransaction(ctx, tx.ID))
	assert.Len(t, s.Transactions(), 4)
	assert.ErrorIs(t, s.DeleteTransaction(ctx, tx.ID), store.ErrNotFound)
}

func TestStore_Contribute_Clamps(t *testing.T) {
	ctx := context.Background()
	s, _ := loadedStore(t)

	g, err := s.AddGoal(ctx, goal.Params{
		Name: "Laptop", Target: decimal.NewFromInt(500), Current: decimal.NewFromInt(200),
		Deadline: calendar.NewDate(2027, time.January, 1),
	})
	require.NoError(t, err)

	updated, err := s.Contribute(ctx, g.ID, decimal.NewFromInt(1000))
	require.NoError(t, err)
	assert.True(t, updated.Current.Equal(decimal.NewFromInt(500)))
	assert.True(t, updated.Completed())

	_, err = s.Contribute(ctx, g.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, store.ErrInvalid)

	_, err = s.Contribute(ctx, "missing", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_SetBudget_ReplacesByCategory(t *testing.T) {
	ctx := context.Background()
	s, _ := loadedStore(t)

	_, err := s.SetBudget(ctx, budget.Params{Category: "Groceries", Limit: decimal.NewFromInt(500)})
	require.NoError(t, err)

	b, err := s.SetBudget(ctx, budget.Params{Category: "Groceries", Limit: decimal.NewFromInt(700), Rollover: true})
	require.NoError(t, err)
	assert.Equal(t, "🛒", b.Icon)

	var groceries []budget.Budget
	for _, b := range s.Budgets() {
		if b.Category == "Groceries" {
			groceries = append(groceries, b)
		}
	}

	require.Len(t, groceries, 1)
	assert.True(t, groceries[0].Limit.Equal(decimal.NewFromInt(700)))
	assert.Len(t, s.Budgets(), 3)

	_, err = s.SetBudget(ctx, budget.Params{Category: "Yachts", Limit: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, store.ErrUnknownCategory)

	_, err = s.SetBudget(ctx, budget.Params{Category: "Rent", Limit: decimal.Zero})
	assert.ErrorIs(t, err, store.ErrInvalid)
}

func TestStore_RemoveBudget(t *testing.T) {
	ctx := context.Background()
	s, _ := loadedStore(t)

	require.NoError(t, s.RemoveBudget(ctx, "Dining"))
	assert.Len(t, s.Budgets(), 2)
	assert.Len(t, s.Categories(), 6)
	assert.ErrorIs(t, s.RemoveBudget(ctx, "Dining"), store.ErrNotFound)
}

func TestStore_Categories(t *testing.T) {
	ctx := context.Background()
	s, _ := loadedStore(t)

	require.NoError(t, s.AddCategory(ctx, budget.Category{Name: "  Pets  "}))

	pets, ok := budget.FindCategory(s.Categories(), "Pets")
	require.True(t, ok)
	assert.Equal(t, budget.Icons[0], pets.Icon)

	assert.ErrorIs(t, s.AddCategory(ctx, budget.Category{Name: "Pets"}), store.ErrDuplicate)
	assert.ErrorIs(t, s.AddCategory(ctx, budget.Category{Name: ""}), store.ErrInvalid)
	assert.ErrorIs(t, s.RemoveCategory(ctx, "Unknown"), store.ErrNotFound)
}

func TestStore_RemoveCategory_Cascades(t *testing.T) {
	ctx := context.Background()
	s, _ := loadedStore(t)

	dining, err := s.AddTransaction(ctx, expenseParams("Dining", 25))
	require.NoError(t, err)

	require.NoError(t, s.RemoveCategory(ctx, "Dining"))

	for _, b := range s.Budgets() {
		assert.NotEqual(t, "Dining", b.Category)
	}

	_, ok := budget.FindCategory(s.Categories(), "Dining")
	assert.False(t, ok)
	assert.Equal(t, dining, s.Transactions()[0])
}

func TestStore_WriteFailureLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)

	backend.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, store.ErrNotFound).Times(4)
	backend.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)

	s := store.New(backend, sequentialIDs())
	s.Load(ctx)

	before := s.Snapshot()
	diskFull := errors.New("disk full")

	backend.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(diskFull).AnyTimes()

	_, err := s.AddTransaction(ctx, expenseParams("Rent", 1500))
	assert.ErrorIs(t, err, diskFull)

	_, err = s.Contribute(ctx, "g1", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, diskFull)

	_, err = s.SetBudget(ctx, budget.Params{Category: "Utilities", Limit: decimal.NewFromInt(90)})
	assert.ErrorIs(t, err, diskFull)

	assert.ErrorIs(t, s.RemoveCategory(ctx, "Dining"), diskFull)

	assert.Equal(t, before, s.Snapshot())
}

func TestStore_RemoveCategory_BudgetWriteFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	backend := store.NewMockBackend(ctrl)

	backend.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, store.ErrNotFound).Times(4)
	backend.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)

	s := store.New(backend)
	s.Load(ctx)

	gomock.InOrder(
		backend.EXPECT().Put(gomock.Any(), "ww_categories", gomock.Any()).Return(nil),
		backend.EXPECT().Put(gomock.Any(), "ww_budgets", gomock.Any()).Return(errors.New("disk full")),
	)

	err := s.RemoveCategory(ctx, "Dining")
	require.Error(t, err)

	_, ok := budget.FindCategory(s.Categories(), "Dining")
	assert.False(t, ok)
	assert.Len(t, s.Budgets(), 3)
}

func TestStore_Restore(t *testing.T) {
	ctx := context.Background()
	s, backend := loadedStore(t)

	snap := store.Snapshot{
		Transactions: []transaction.Transaction{{
			ID: "r1", Type: transaction.TypeIncome, Category: transaction.CategoryOther,
			Amount: decimal.NewFromInt(10), Date: calendar.NewDate(2024, time.February, 2),
		}},
		Goals:      []goal.Goal{},
		Budgets:    nil,
		Categories: []budget.Category{{Name: "Books", Icon: "📚"}},
	}

	require.NoError(t, s.Restore(ctx, snap))

	assert.Len(t, s.Transactions(), 1)
	assert.Empty(t, s.Goals())
	assert.Empty(t, s.Budgets())
	assert.Equal(t, snap.Categories, s.Categories())

	payload, err := backend.Get(ctx, "ww_budgets")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(payload))

	bad := snap
	bad.Budgets = []budget.Budget{{Category: "Books", Limit: decimal.Zero}}
	assert.ErrorIs(t, s.Restore(ctx, bad), store.ErrInvalid)
	assert.Len(t, s.Transactions(), 1)
}
