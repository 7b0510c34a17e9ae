package cart

import (
	"context"
	"sync"
)

// CartID returns the cart id for a user (using userID as the session key).
func CartID(userID string) string {
	return "cart-" + userID
}

// Manager hands out exactly one Store per cart id, so each browsing session
// has a single logical writer. Stores are rehydrated lazily on first use.
type Manager struct {
	mu      sync.Mutex
	storage Storage
	stores  map[string]*Store
}

func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
		stores:  make(map[string]*Store),
	}
}

// Store returns the cart store for a user, creating and rehydrating it on
// first access.
func (m *Manager) Store(ctx context.Context, userID string) *Store {
	cartID := CartID(userID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[cartID]; ok {
		return s
	}
	s := NewStore(ctx, cartID, m.storage)
	m.stores[cartID] = s
	return s
}
