package order

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"
)

const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

// Item is a purchased line inside an order.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Qty   int    `json:"qty"`
}

// Order is a completed (or pending) checkout as shown on the dashboard.
type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Items     []Item    `json:"items"`
	Total     int       `json:"total"`
	Discount  int       `json:"discount"`
	Method    string    `json:"method"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// History keeps per-user order records in memory. There is deliberately no
// durable order store; the dashboard only needs the history of the current
// process plus whatever the checkout flow appends.
type History struct {
	mu     sync.RWMutex
	byUser map[string][]Order
}

func NewHistory() *History {
	return &History{byUser: make(map[string][]Order)}
}

// Record appends an order, filling in id, status and timestamp when absent,
// and returns the stored copy.
func (h *History) Record(o Order) Order {
	if o.ID == "" {
		o.ID = NewOrderID()
	}
	if o.Status == "" {
		o.Status = StatusPaid
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	h.mu.Lock()
	h.byUser[o.UserID] = append(h.byUser[o.UserID], o)
	h.mu.Unlock()
	return o
}

// ListByUser returns a user's orders, newest first.
func (h *History) ListByUser(userID string) []Order {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stored := h.byUser[userID]
	orders := make([]Order, len(stored))
	copy(orders, stored)
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

// NewOrderID builds an order id like ORD-123456.
func NewOrderID() string {
	return fmt.Sprintf("ORD-%06d", 100000+rand.Intn(900000))
}
