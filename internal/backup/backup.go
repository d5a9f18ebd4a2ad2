// Package backup exports all collections to a single JSON document and restores them from one.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/MrJamesThe3rd/wealthwise/internal/budget"
	"github.com/MrJamesThe3rd/wealthwise/internal/encoding"
	"github.com/MrJamesThe3rd/wealthwise/internal/goal"
	"github.com/MrJamesThe3rd/wealthwise/internal/metrics"
	"github.com/MrJamesThe3rd/wealthwise/internal/store"
	"github.com/MrJamesThe3rd/wealthwise/internal/transaction"
)

// Version is written into every exported document.
const Version = "1.0"

var ErrInvalidBackup = errors.New("invalid backup file")

type Document struct {
	Transactions []transaction.Transaction `json:"transactions"`
	Goals        []goal.Goal               `json:"goals"`
	Budgets      []budget.Budget           `json:"budgets"`
	Categories   []budget.Category         `json:"categories"`
	Version      string                    `json:"version"`
	Timestamp    time.Time                 `json:"timestamp"`
}

// Snapshot returns the document's collections.
func (d Document) Snapshot() store.Snapshot {
	return store.Snapshot{
		Transactions: d.Transactions,
		Goals:        d.Goals,
		Budgets:      d.Budgets,
		Categories:   d.Categories,
	}
}

// Summary describes the document's contents in one line.
func (d Document) Summary() string {
	return fmt.Sprintf("%d transactions, %d goals, %d budgets, %d categories",
		len(d.Transactions), len(d.Goals), len(d.Budgets), len(d.Categories))
}

// FileName is the suggested download name for a backup taken at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("wealthwise_backup_%s.json", now.Format(time.DateOnly))
}

// Store is the part of the store a backup reads from and restores into.
type Store interface {
	Snapshot() store.Snapshot
	Restore(ctx context.Context, snap store.Snapshot) error
}

// Confirmer approves a destructive restore after seeing what will replace the current data.
type Confirmer func(Document) bool

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(s Store) *Service {
	return &Service{store: s, now: time.Now}
}

// Export writes the current collections to w as indented JSON.
func (s *Service) Export(w io.Writer) (Document, error) {
	snap := s.store.Snapshot()

	doc := Document{
		Transactions: nonNil(snap.Transactions),
		Goals:        nonNil(snap.Goals),
		Budgets:      nonNil(snap.Budgets),
		Categories:   nonNil(snap.Categories),
		Version:      Version,
		Timestamp:    s.now().UTC(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		metrics.BackupOperations.WithLabelValues("export", "error").Inc()
		return Document{}, fmt.Errorf("encoding backup: %w", err)
	}

	metrics.BackupOperations.WithLabelValues("export", "ok").Inc()

	return doc, nil
}

// WriteFile exports into dir under FileName and returns the written path.
func (s *Service) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(s.now()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if _, err := s.Export(f); err != nil {
		f.Close()
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}

	return path, nil
}

// Parse decodes a backup document. All four collections must be present and valid;
// otherwise ErrInvalidBackup is returned.
func Parse(r io.Reader) (Document, error) {
	utf8, charset, err := encoding.Detect(r)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	if charset != encoding.CharsetUTF8 {
		slog.Info("Decoding backup", "charset", charset)
	}

	var raw struct {
		Transactions *[]transaction.Transaction `json:"transactions"`
		Goals        *[]goal.Goal               `json:"goals"`
		Budgets      *[]budget.Budget           `json:"budgets"`
		Categories   *[]budget.Category         `json:"categories"`
		Version      string                     `json:"version"`
		Timestamp    time.Time                  `json:"timestamp"`
	}

	if err := json.NewDecoder(utf8).Decode(&raw); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	if raw.Transactions == nil || raw.Goals == nil || raw.Budgets == nil || raw.Categories == nil {
		return Document{}, fmt.Errorf("%w: transactions, goals, budgets and categories are required", ErrInvalidBackup)
	}

	doc := Document{
		Transactions: *raw.Transactions,
		Goals:        *raw.Goals,
		Budgets:      *raw.Budgets,
		Categories:   *raw.Categories,
		Version:      raw.Version,
		Timestamp:    raw.Timestamp,
	}

	if err := doc.Snapshot().Validate(); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	if doc.Version != "" && doc.Version != Version {
		slog.Warn("Backup has an unexpected version", "version", doc.Version)
	}

	return doc, nil
}

// Restore overwrites all four collections with the document and reloads the store.
func (s *Service) Restore(ctx context.Context, doc Document) error {
	if err := s.store.Restore(ctx, doc.Snapshot()); err != nil {
		metrics.BackupOperations.WithLabelValues("import", "error").Inc()
		return fmt.Errorf("restoring backup: %w", err)
	}

	metrics.BackupOperations.WithLabelValues("import", "ok").Inc()

	return nil
}

// Import parses r and, once confirm approves, restores it. It reports whether data was
// replaced. A parse failure or a declined confirmation leaves the store untouched.
func (s *Service) Import(ctx context.Context, r io.Reader, confirm Confirmer) (bool, error) {
	doc, err := Parse(r)
	if err != nil {
		metrics.BackupOperations.WithLabelValues("import", "invalid").Inc()
		return false, err
	}

	if confirm == nil || !confirm(doc) {
		metrics.BackupOperations.WithLabelValues("import", "declined").Inc()
		return false, nil
	}

	if err := s.Restore(ctx, doc); err != nil {
		return false, err
	}

	return true, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}
