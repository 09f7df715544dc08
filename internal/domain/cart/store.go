// internal/domain/cart/store.go
package cart

import "sync"

// Store holds an ordered collection of line items. Insertion order is the
// display order. There is at most one line per product ID and a stored
// quantity is always at least 1. The store has no side effects beyond the
// in-memory collection; persistence is the synchronizer's job.
type Store struct {
	mu    sync.RWMutex
	items []LineItem
}

// NewStore creates an empty cart store
func NewStore() *Store {
	return &Store{}
}

// Add inserts a new line item at the end, or increments the quantity of an
// existing line for the same product in place
func (s *Store) Add(item LineItem, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += qty
			return nil
		}
	}

	item.Quantity = qty
	s.items = append(s.items, item)
	return nil
}

// SetQuantity overwrites the quantity of an existing line, preserving its
// position. A quantity below 1 is rejected; callers must use Remove.
func (s *Store) SetQuantity(productID int64, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = qty
			return nil
		}
	}

	return ErrItemNotFound
}

// Remove deletes a line by product ID. Removing an absent product is a no-op.
func (s *Store) Remove(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear empties the collection
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// ReplaceAll fully replaces the contents, preserving the given order. Used
// by the synchronizer after a server read.
func (s *Store) ReplaceAll(items []LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]LineItem, len(items))
	copy(s.items, items)
}

// Items returns a copy of the line items in display order
func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Get returns the line for a product, if present
func (s *Store) Get(productID int64) (LineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return LineItem{}, false
}

// Len returns the number of distinct lines
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// IsEmpty reports whether the cart has no lines
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}
