package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// Item is a single cart line, keyed by product id. Quantities are always
// positive; an item whose quantity drops to zero is removed from the store.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Image    string `json:"image,omitempty"`
	Qty      int    `json:"qty"`
	Selected bool   `json:"selected"`
}

// UnmarshalJSON treats an absent "selected" field as true so carts persisted
// before the selection feature load with every item selected.
func (i *Item) UnmarshalJSON(data []byte) error {
	type alias Item
	aux := &struct {
		Selected *bool `json:"selected"`
		*alias
	}{alias: (*alias)(i)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if aux.Selected == nil {
		i.Selected = true
	} else {
		i.Selected = *aux.Selected
	}
	return nil
}

// Storage persists cart contents between sessions. Implementations live in
// internal/storage.
type Storage interface {
	Load(ctx context.Context, cartID string) ([]Item, error)
	Save(ctx context.Context, cartID string, items []Item) error
	Delete(ctx context.Context, cartID string) error
}

// Store is the sole owner of one cart's line items. All mutation goes
// through it: quantities merge on re-add, descriptive fields are
// first-write-wins, and every mutation is persisted best-effort and fanned
// out to subscribers.
type Store struct {
	mu      sync.RWMutex
	id      string
	items   []Item
	storage Storage
	subs    []func()
}

// NewStore rehydrates a cart from storage. A read failure or malformed
// payload yields an empty cart, never an error.
func NewStore(ctx context.Context, cartID string, storage Storage) *Store {
	s := &Store{id: cartID, storage: storage}
	if storage != nil {
		items, err := storage.Load(ctx, cartID)
		if err != nil {
			log.Printf("[Cart] failed to load cart %s, starting empty: %v", cartID, err)
		} else {
			s.items = items
		}
	}
	return s
}

// ID returns the cart id.
func (s *Store) ID() string {
	return s.id
}

// Subscribe registers fn to run after every mutation. Used by read
// projections that need to recompute when the cart changes.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Add inserts item or, when an item with the same id exists, increments its
// quantity by item.Qty (default 1). Name, price and image of an existing
// item are never refreshed. New items start selected.
func (s *Store) Add(ctx context.Context, item Item) {
	if item.Qty <= 0 {
		item.Qty = 1
	}
	s.mu.Lock()
	if idx := s.indexOf(item.ID); idx >= 0 {
		s.items[idx].Qty += item.Qty
	} else {
		item.Selected = true
		s.items = append(s.items, item)
	}
	s.commit(ctx)
}

// Remove deletes the item with the given id. Absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.commit(ctx)
}

// SetQuantity replaces the stored quantity. A quantity of zero or less
// removes the item. Absent ids are a no-op.
func (s *Store) SetQuantity(ctx context.Context, id string, qty int) {
	if qty <= 0 {
		s.Remove(ctx, id)
		return
	}
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items[idx].Qty = qty
	s.commit(ctx)
}

// ToggleSelection sets the selected flag on the matching item. Absent ids
// are a no-op.
func (s *Store) ToggleSelection(ctx context.Context, id string, selected bool) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items[idx].Selected = selected
	s.commit(ctx)
}

// SelectAll sets the selected flag uniformly on every item.
func (s *Store) SelectAll(ctx context.Context, selected bool) {
	s.mu.Lock()
	for i := range s.items {
		s.items[i].Selected = selected
	}
	s.commit(ctx)
}

// RemoveSelected drops every selected item, leaving unselected items intact
// for a later session. Called after a successful partial checkout.
func (s *Store) RemoveSelected(ctx context.Context) {
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if !item.Selected {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.commit(ctx)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.commit(ctx)
}

// Items returns a snapshot of the current line items.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// commit persists and notifies after a mutation. Must be called with the
// write lock held; it releases the lock.
func (s *Store) commit(ctx context.Context) {
	snapshot := s.copyLocked()
	subs := s.subs
	s.mu.Unlock()

	if s.storage != nil {
		if err := s.storage.Save(ctx, s.id, snapshot); err != nil {
			log.Printf("[Cart] failed to persist cart %s: %v", s.id, err)
		}
	}
	for _, fn := range subs {
		fn()
	}
}

func (s *Store) copyLocked() []Item {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
