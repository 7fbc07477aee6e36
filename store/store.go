// Package store is the durable key-value layer behind the plan progress and
// calendar journal records.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key has never been set or was
// cleared. It is not a storage failure.
var ErrNotFound = errors.New("store: key not found")

// Store provides keyed access to opaque serialized records.
type Store interface {
	// Get returns the stored value. Returns ErrNotFound if absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Clear removes key. Clearing an absent key is not an error.
	Clear(ctx context.Context, key string) error

	Close() error
}

type Entry struct {
	Key   string
	Value []byte
}

// Batcher is implemented by stores that can apply several writes atomically.
type Batcher interface {
	SetBatch(ctx context.Context, entries []Entry) error
}

// Registration is an audit record of one registered plan result.
type Registration struct {
	ID        string
	Step      int
	Status    string
	Date      string
	Amount    float64
	CreatedAt time.Time
}

// Auditor is implemented by stores that keep an append-only registration log.
type Auditor interface {
	RecordRegistration(ctx context.Context, r Registration) error
	ListRegistrations(ctx context.Context) ([]Registration, error)
	ClearRegistrations(ctx context.Context) error
}
