package cartstate

import "context"

// StorageKey is the fixed name the cart blob is persisted under.
const StorageKey = "cart-storage"

// ErrNotFound is returned by Storage.Load when no blob exists for the key.
// The store treats it as an empty cart.
type notFoundError struct{}

func (notFoundError) Error() string { return "cartstate: blob not found" }

var ErrNotFound error = notFoundError{}

// Storage is the minimal get/set-blob interface the store persists through.
// Any key-value backend works: process memory, redis, a file.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// MemoryStorage keeps blobs in process memory. It backs tests and
// deployments that don't need cross-process cart persistence.
type MemoryStorage struct {
	blobs map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]byte, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *MemoryStorage) Save(_ context.Context, key string, data []byte) error {
	m.blobs[key] = data
	return nil
}
