package cart

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"amarthrift-backend/internal/models"
)

// SQLStore persists carts in the carts table, items serialized as JSON
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates a database-backed cart store
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Load rehydrates the cart for the id. A missing row or malformed items
// column yields an empty cart rather than an error.
func (s *SQLStore) Load(cartID string) (*models.Cart, error) {
	var itemsJSON string
	err := s.db.QueryRow("SELECT items FROM carts WHERE id = ?", cartID).Scan(&itemsJSON)
	if err == sql.ErrNoRows {
		return &models.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		log.Printf("Warning: discarding malformed cart %s: %v", cartID, err)
		return &models.Cart{}, nil
	}

	return &models.Cart{Items: items}, nil
}

// Save upserts the cart's items under the id
func (s *SQLStore) Save(cartID string, c *models.Cart) error {
	items := c.Items
	if items == nil {
		items = []models.CartItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize cart items: %w", err)
	}

	query := `
		INSERT INTO carts (id, items, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET items = excluded.items, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, cartID, string(itemsJSON), time.Now()); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Clear removes the cart row for the id
func (s *SQLStore) Clear(cartID string) error {
	if _, err := s.db.Exec("DELETE FROM carts WHERE id = ?", cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
