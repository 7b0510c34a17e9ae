package storage

import (
	"context"
	"sync"

	"github.com/example/storefront/internal/domain/cart"
)

// MemoryStorage keeps serialized carts in process memory. Used for
// ephemeral mode and in tests.
type MemoryStorage struct {
	mu    sync.RWMutex
	carts map[string][]cart.Item
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: make(map[string][]cart.Item)}
}

func (m *MemoryStorage) Load(ctx context.Context, cartID string) ([]cart.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored, ok := m.carts[cartID]
	if !ok {
		return nil, nil
	}
	items := make([]cart.Item, len(stored))
	copy(items, stored)
	return items, nil
}

func (m *MemoryStorage) Save(ctx context.Context, cartID string, items []cart.Item) error {
	stored := make([]cart.Item, len(items))
	copy(stored, items)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cartID] = stored
	return nil
}

func (m *MemoryStorage) Delete(ctx context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, cartID)
	return nil
}
