package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by a Storage when a key has no value.
var ErrNotFound = errors.New("key not found")

// Storage is the persistent key/value storage the Store is written to.
// Implementations must be safe for concurrent use.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

type memoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Storage = (*memoryStorage)(nil)

// NewMemoryStorage returns a process-local Storage.
func NewMemoryStorage() Storage {
	return &memoryStorage{values: make(map[string]string)}
}

func (m *memoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (m *memoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.values, key)
	}
	m.mu.Unlock()
	return nil
}

type namespaced struct {
	prefix string
	next   Storage
}

// Namespace scopes every key of `storage` under `ns`, so that several sessions can share one
// backend.
func Namespace(storage Storage, ns string) Storage {
	return &namespaced{prefix: ns + ":", next: storage}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, error) {
	return n.next.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.next.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, n.prefix+key)
	}
	return n.next.Delete(ctx, prefixed...)
}
