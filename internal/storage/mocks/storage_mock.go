package mocks

import (
	"context"
	"sync"

	"github.com/example/storefront/internal/domain/cart"
)

// MockStorage is a mock implementation of cart.Storage for testing.
type MockStorage struct {
	mu    sync.RWMutex
	carts map[string][]cart.Item

	// For tracking calls and forcing failures in tests
	SaveCalls   []SaveCall
	DeleteCalls []string
	LoadErr     error
	SaveErr     error
}

// SaveCall records parameters passed to Save
type SaveCall struct {
	CartID string
	Items  []cart.Item
}

// NewMockStorage creates a new MockStorage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		carts:     make(map[string][]cart.Item),
		SaveCalls: make([]SaveCall, 0),
	}
}

// Load returns the stored items for a cart id
func (m *MockStorage) Load(ctx context.Context, cartID string) ([]cart.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	stored, ok := m.carts[cartID]
	if !ok {
		return nil, nil
	}
	items := make([]cart.Item, len(stored))
	copy(items, stored)
	return items, nil
}

// Save stores the items and records the call
func (m *MockStorage) Save(ctx context.Context, cartID string, items []cart.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]cart.Item, len(items))
	copy(stored, items)
	m.SaveCalls = append(m.SaveCalls, SaveCall{CartID: cartID, Items: stored})

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.carts[cartID] = stored
	return nil
}

// Delete removes a cart and records the call
func (m *MockStorage) Delete(ctx context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, cartID)
	delete(m.carts, cartID)
	return nil
}

// SetItems seeds stored items directly for testing
func (m *MockStorage) SetItems(cartID string, items []cart.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cartID] = items
}

// Reset clears stored carts and recorded calls
func (m *MockStorage) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts = make(map[string][]cart.Item)
	m.SaveCalls = make([]SaveCall, 0)
	m.DeleteCalls = nil
	m.LoadErr = nil
	m.SaveErr = nil
}
