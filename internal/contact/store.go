// Package contact stores messages submitted through the contact form.
package contact

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"mukesh.dev/internal/models"
)

// Store persists contact messages
type Store interface {
	Save(ctx context.Context, msg models.ContactMessage) error
	// List returns the newest messages first
	List(ctx context.Context, limit int) ([]models.ContactMessage, error)
	Close() error
}

// Drivers accepted by Open
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Open creates a store for driver. dsn is a file path for sqlite and a
// connection URL for postgres.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverSQLite:
		return OpenSQLite(dsn)
	case DriverPostgres:
		return OpenPostgres(ctx, dsn)
	case DriverMemory, "":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown contact store driver %q", driver)
}

// MemoryStore keeps messages in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	messages []models.ContactMessage
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save appends msg
func (s *MemoryStore) Save(_ context.Context, msg models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

// List returns up to limit messages, newest first
func (s *MemoryStore) List(_ context.Context, limit int) ([]models.ContactMessage, error) {
	s.mu.RLock()
	out := append([]models.ContactMessage(nil), s.messages...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
