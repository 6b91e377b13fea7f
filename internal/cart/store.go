// Package cart persists shopper carts behind a small repository
// interface so the same cart logic can target the database, or an
// in-memory store under test.
package cart

import (
	"sync"

	"amarthrift-backend/internal/models"
)

// Store loads and saves carts keyed by an opaque cart id (the storefront
// client generates one and sends it with every cart request).
type Store interface {
	Load(cartID string) (*models.Cart, error)
	Save(cartID string, c *models.Cart) error
	Clear(cartID string) error
}

// MemoryStore is an in-memory Store used in tests
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]models.CartItem
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]models.CartItem)}
}

// Load returns the cart for the id, or an empty cart if absent
func (s *MemoryStore) Load(cartID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.carts[cartID]
	if !ok {
		return &models.Cart{}, nil
	}
	copied := make([]models.CartItem, len(items))
	copy(copied, items)
	return &models.Cart{Items: copied}, nil
}

// Save stores the cart's items under the id
func (s *MemoryStore) Save(cartID string, c *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.CartItem, len(c.Items))
	copy(items, c.Items)
	s.carts[cartID] = items
	return nil
}

// Clear removes the cart for the id
func (s *MemoryStore) Clear(cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, cartID)
	return nil
}
