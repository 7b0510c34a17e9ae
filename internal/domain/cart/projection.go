package cart

// Derived, recomputed-on-read views over the store's current contents.
// None of these maintain independent state; totals are always re-summed so
// they can never drift from the line items.

// TotalItems is the sum of quantities over all items.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.items {
		total += item.Qty
	}
	return total
}

// TotalPrice is the sum of price*qty over all items.
func (s *Store) TotalPrice() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.items {
		total += item.Price * item.Qty
	}
	return total
}

// SelectedItems returns the items marked for checkout.
func (s *Store) SelectedItems() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var selected []Item
	for _, item := range s.items {
		if item.Selected {
			selected = append(selected, item)
		}
	}
	return selected
}

// SelectedCount is the sum of quantities over selected items.
func (s *Store) SelectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.items {
		if item.Selected {
			total += item.Qty
		}
	}
	return total
}

// SelectedTotal is the sum of price*qty over selected items.
func (s *Store) SelectedTotal() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.items {
		if item.Selected {
			total += item.Price * item.Qty
		}
	}
	return total
}

// Split partitions the cart into regular products and add-ons for display
// grouping. The partition never affects pricing or storage.
func (s *Store) Split() (products, addons []Item) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if IsAddonID(item.ID) {
			addons = append(addons, item)
		} else {
			products = append(products, item)
		}
	}
	return products, addons
}
