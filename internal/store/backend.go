package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by a Backend for an absent record and by the Store for an unknown item.
var ErrNotFound = errors.New("not found")

//go:generate mockgen -source=backend.go -destination=backend_mock.go -package=store

// Backend reads and writes named records. Payloads are opaque to the backend.
type Backend interface {
	// Get returns the payload stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
}

// Collection names one of the four persisted collections.
type Collection string

const (
	CollectionTransactions Collection = "transactions"
	CollectionGoals        Collection = "goals"
	CollectionBudgets      Collection = "budgets"
	CollectionCategories   Collection = "categories"
)

// Key is the record key the collection is stored under.
func (c Collection) Key() string {
	return "ww_" + string(c)
}

func init() {
	// Amounts are persisted as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
