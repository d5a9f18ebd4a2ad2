package backup_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wealthwise/internal/backup"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
	"github.com/MrJamesThe3rd/wealthwise/internal/transaction"
)

const legacyBackup = `{
  "transactions": [
    {"id":"1","type":"INCOME","category":"Salary","amount":5000,"date":"2023-11-01","note":"Monthly Salary"},
    {"id":"3","type":"EXPENSE","category":"Rent","amount":1500,"date":"2023-11-01","note":"Monthly Rent","expenseType":"Fixed"}
  ],
  "goals": [
    {"id":"g1","name":"New iPhone 16 Pro","targetAmount":1200,"currentAmount":450,"deadline":"2024-03-01","icon":"📱"}
  ],
  "budgets": [{"category":"Rent","limit":1600,"rollover":false,"icon":"🏠"}],
  "categories": [{"name":"Rent","icon":"🏠"}],
  "version": "1.0",
  "timestamp": "2024-01-15T09:30:00.000Z"
}`

func loadedStore(t *testing.T) *store.Store {
	t.Helper()

	s := store.New(store.NewMemoryBackend())
	s.Load(context.Background())

	return s
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "wealthwise_backup_2024-01-15.json", backup.FileName(time.Date(2024, time.January, 15, 23, 0, 0, 0, time.UTC)))
}

func TestExport(t *testing.T) {
	s := loadedStore(t)

	var buf bytes.Buffer
	doc, err := backup.NewService(s).Export(&buf)
	require.NoError(t, err)

	assert.Equal(t, backup.Version, doc.Version)
	assert.Len(t, doc.Transactions, 5)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	for _, key := range []string{"transactions", "goals", "budgets", "categories", "version", "timestamp"} {
		assert.Contains(t, raw, key)
	}

	assert.Contains(t, buf.String(), "\n  \"transactions\"")
}

func TestExportThenImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	source := loadedStore(t)

	var buf bytes.Buffer
	_, err := backup.NewService(source).Export(&buf)
	require.NoError(t, err)

	target := store.New(store.NewMemoryBackend())
	require.NoError(t, target.Restore(ctx, store.Snapshot{}))
	require.Empty(t, target.Transactions())

	replaced, err := backup.NewService(target).Import(ctx, &buf, func(backup.Document) bool { return true })
	require.NoError(t, err)
	assert.True(t, replaced)

	want, _ := json.Marshal(source.Snapshot())
	got, _ := json.Marshal(target.Snapshot())
	assert.JSONEq(t, string(want), string(got))
}

func TestParse_LegacyDocument(t *testing.T) {
	doc, err := backup.Parse(strings.NewReader(legacyBackup))
	require.NoError(t, err)

	assert.Len(t, doc.Transactions, 2)
	assert.Equal(t, "g1", doc.Goals[0].ID)
	assert.Equal(t, 2024, doc.Timestamp.Year())
	assert.Equal(t, "2 transactions, 1 goals, 1 budgets, 1 categories", doc.Summary())
}

func TestParse_FormDefaultsOnIncome(t *testing.T) {
	input := `{
  "transactions": [
    {"id":"1","type":"INCOME","category":"Salary","amount":4200,"date":"2024-02-01","note":"Pay","expenseType":"Fixed"},
    {"id":"2","type":"INCOME","category":"Rent","amount":250,"date":"2024-02-03","note":"Sublet","expenseType":"Fixed"},
    {"id":"3","type":"EXPENSE","category":"Dining","amount":35,"date":"2024-02-04","note":"Lunch","expenseType":"Variable"}
  ],
  "goals": [],
  "budgets": [],
  "categories": [{"name":"Dining","icon":"🍽️"}],
  "version": "1.0",
  "timestamp": "2024-02-05T10:00:00.000Z"
}`

	doc, err := backup.Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, doc.Transactions, 3)
	assert.Empty(t, doc.Transactions[0].Nature)
	assert.Empty(t, doc.Transactions[1].Nature)
	assert.Equal(t, "Rent", doc.Transactions[1].Category)
	assert.Equal(t, transaction.NatureVariable, doc.Transactions[2].Nature)

	ctx := context.Background()
	s := loadedStore(t)

	replaced, err := backup.NewService(s).Import(ctx, strings.NewReader(input), func(backup.Document) bool { return true })
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Len(t, s.Transactions(), 3)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"NotJSON", `this is not a backup`},
		{"Truncated", legacyBackup[:100]},
		{"MissingCategories", `{"transactions":[],"goals":[],"budgets":[]}`},
		{"NullGoals", `{"transactions":[],"goals":null,"budgets":[],"categories":[]}`},
		{"NegativeAmount", `{"transactions":[{"id":"1","type":"INCOME","category":"Salary","amount":-5,"date":"2023-11-01","note":""}],"goals":[],"budgets":[],"categories":[]}`},
		{"DuplicateBudget", `{"transactions":[],"goals":[],"budgets":[{"category":"Rent","limit":1,"rollover":false},{"category":"Rent","limit":2,"rollover":true}],"categories":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := backup.Parse(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, backup.ErrInvalidBackup)
		})
	}
}

func TestImport_InvalidLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	s := loadedStore(t)
	before := s.Snapshot()

	called := false
	replaced, err := backup.NewService(s).Import(ctx, strings.NewReader(`{"transactions":`), func(backup.Document) bool {
		called = true
		return true
	})

	assert.ErrorIs(t, err, backup.ErrInvalidBackup)
	assert.False(t, replaced)
	assert.False(t, called)
	assert.Equal(t, before, s.Snapshot())
}

func TestImport_Declined(t *testing.T) {
	ctx := context.Background()
	s := loadedStore(t)
	before := s.Snapshot()

	var seen backup.Document
	replaced, err := backup.NewService(s).Import(ctx, strings.NewReader(legacyBackup), func(doc backup.Document) bool {
		seen = doc
		return false
	})

	require.NoError(t, err)
	assert.False(t, replaced)
	assert.Len(t, seen.Transactions, 2)
	assert.Equal(t, before, s.Snapshot())
}

func TestImport_Confirmed(t *testing.T) {
	ctx := context.Background()
	s := loadedStore(t)

	replaced, err := backup.NewService(s).Import(ctx, strings.NewReader(legacyBackup), func(backup.Document) bool { return true })
	require.NoError(t, err)
	assert.True(t, replaced)

	assert.Len(t, s.Transactions(), 2)
	assert.Len(t, s.Goals(), 1)
	assert.Len(t, s.Categories(), 1)
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := backup.NewService(loadedStore(t)).WriteFile(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "wealthwise_backup_"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	doc, err := backup.Parse(f)
	require.NoError(t, err)
	assert.Len(t, doc.Transactions, 5)
}
