package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wealthwise/internal/advisor"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
)

func memoryEnv(t *testing.T) (*store.Store, opener) {
	t.Helper()

	st := store.New(store.NewMemoryBackend())
	st.Load(context.Background())

	exportDir := t.TempDir()

	return st, func(context.Context) (*env, error) {
		return &env{
			store:     st,
			advisor:   advisor.NewService(nil, advisor.ProviderGemini),
			exportDir: exportDir,
			close:     func() error { return nil },
		}, nil
	}
}

func run(t *testing.T, open opener, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd(open)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	_, open := memoryEnv(t)
	cmd := newRootCmd(open)

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	for _, want := range []string{"stats", "budgets", "goals", "export", "import", "advise", "quote"} {
		assert.Contains(t, names, want)
	}
}

func TestStatsCmd(t *testing.T) {
	_, open := memoryEnv(t)

	out, err := run(t, open, "", "stats")
	require.NoError(t, err)

	assert.Contains(t, out, "6500.00 Dh")
	assert.Contains(t, out, "1900.00 Dh")
	assert.Contains(t, out, "4600.00 Dh")
}

func TestBudgetsCmd(t *testing.T) {
	_, open := memoryEnv(t)

	out, err := run(t, open, "", "budgets", "--month", "11", "--year", "2023")
	require.NoError(t, err)

	assert.Contains(t, out, "November 2023")
	assert.Contains(t, out, "Rent")
	assert.Contains(t, out, "94%")

	_, err = run(t, open, "", "budgets", "--month", "13")
	assert.Error(t, err)
}

func TestGoalsCmd(t *testing.T) {
	_, open := memoryEnv(t)

	out, err := run(t, open, "", "goals")
	require.NoError(t, err)

	assert.Contains(t, out, "New iPhone 16 Pro")
	assert.Contains(t, out, "3 active, 0 completed")
}

func TestExportImportCmd(t *testing.T) {
	st, open := memoryEnv(t)
	dir := t.TempDir()

	out, err := run(t, open, "", "export", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Backup written to")

	files, err := filepath.Glob(filepath.Join(dir, "wealthwise_backup_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	emptied := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(emptied,
		[]byte(`{"transactions":[],"goals":[],"budgets":[],"categories":[],"version":"1.0","timestamp":"2024-01-15T09:30:00Z"}`), 0o644))

	out, err = run(t, open, "n\n", "import", emptied)
	require.NoError(t, err)
	assert.Contains(t, out, "Replace all data with 0 transactions")
	assert.Contains(t, out, "Import cancelled")
	assert.Len(t, st.Transactions(), 5)

	out, err = run(t, open, "", "import", "--yes", emptied)
	require.NoError(t, err)
	assert.Contains(t, out, "Backup restored.")
	assert.Empty(t, st.Transactions())

	out, err = run(t, open, "y\n", "import", files[0])
	require.NoError(t, err)
	assert.Contains(t, out, "Backup restored.")
	assert.Len(t, st.Transactions(), 5)
}

func TestImportCmd_InvalidFile(t *testing.T) {
	st, open := memoryEnv(t)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"transactions":`), 0o644))

	_, err := run(t, open, "", "import", "--yes", bad)
	assert.Error(t, err)
	assert.Len(t, st.Transactions(), 5)
}

func TestAdviseCmd_Fallback(t *testing.T) {
	_, open := memoryEnv(t)

	out, err := run(t, open, "", "advise")
	require.NoError(t, err)
	assert.Contains(t, out, advisor.FallbackMessage)
}

func TestQuoteCmd(t *testing.T) {
	out, err := run(t, nil, "", "quote", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Warren Buffett")
	assert.Contains(t, out, "Tony Robbins")
}
