package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wealthwise/internal/config"
	"github.com/MrJamesThe3rd/wealthwise/internal/storage"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()

	var cfg config.Config
	cfg.Storage.Backend = backend
	cfg.Storage.DataDir = t.TempDir()

	return &cfg
}

func TestOpen(t *testing.T) {
	for _, name := range []string{storage.BackendSQLite, storage.BackendFile, storage.BackendMemory} {
		t.Run(name, func(t *testing.T) {
			backend, closer, err := storage.Open(testConfig(t, name))
			require.NoError(t, err)
			t.Cleanup(func() { closer.Close() })

			s := store.New(backend)
			s.Load(context.Background())

			assert.True(t, store.New(backend).Load(context.Background()).Clean())
		})
	}
}

func TestOpen_Unknown(t *testing.T) {
	_, _, err := storage.Open(testConfig(t, "floppy"))
	assert.Error(t, err)
}
