// Package file stores each record as a JSON file in a data directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/MrJamesThe3rd/wealthwise/internal/store"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type Backend struct {
	dir string
}

// New creates dir if needed and returns a backend rooted there.
func New(dir string) (*Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Backend{dir: dir}, nil
}

func (b *Backend) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid record key %q", key)
	}

	return filepath.Join(b.dir, key+".json"), nil
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := b.path(key)
	if err != nil {
		return nil, err
	}

	payload, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return payload, nil
}

// Put replaces the record atomically: the payload is written to a temporary file
// in the same directory and renamed over the target.
func (b *Backend) Put(ctx context.Context, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := b.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}
