package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"amarthrift-backend/internal/models"
	"amarthrift-backend/internal/utils"
)

// ErrProductNotFound is returned when no product matches the lookup
var ErrProductNotFound = errors.New("product not found")

// ProductService handles catalog business logic
type ProductService struct {
	db       *sql.DB
	activity *ActivityService
}

// NewProductService creates a new product service
func NewProductService(db *sql.DB, activity *ActivityService) *ProductService {
	return &ProductService{db: db, activity: activity}
}

// Create creates a new product
func (s *ProductService) Create(creation *models.ProductCreation) (*models.Product, error) {
	if err := utils.ValidateStruct(creation); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if !creation.Category.IsValid() {
		return nil, fmt.Errorf("unknown category: %s", creation.Category)
	}
	if creation.DiscountPercentage != nil && (*creation.DiscountPercentage < 0 || *creation.DiscountPercentage > 100) {
		return nil, errors.New("discount percentage must be between 0 and 100")
	}

	product := &models.Product{
		ID:                 uuid.New().String(),
		Name:               creation.Name,
		Description:        creation.Description,
		Category:           creation.Category,
		Price:              creation.Price,
		Images:             creation.Images,
		Stock:              creation.Stock,
		DiscountPercentage: creation.DiscountPercentage,
		FreeDelivery:       creation.FreeDelivery,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	imagesJSON, err := product.GetImagesJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize images: %w", err)
	}

	query := `
		INSERT INTO products (
			id, name, description, category, price, images, stock,
			discount_percentage, free_delivery, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(query,
		product.ID, product.Name, product.Description, product.Category,
		product.Price, imagesJSON, product.Stock,
		product.DiscountPercentage, product.FreeDelivery,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.activity.Record(models.ActivityProductCreated, fmt.Sprintf("product %s (%s)", product.Name, product.ID))
	return product, nil
}

// GetByID retrieves a product by id
func (s *ProductService) GetByID(productID string) (*models.Product, error) {
	query := `
		SELECT id, name, description, category, price, images, stock,
		       discount_percentage, free_delivery, created_at, updated_at
		FROM products WHERE id = ?
	`

	product := &models.Product{}
	var imagesJSON string
	err := s.db.QueryRow(query, productID).Scan(
		&product.ID, &product.Name, &product.Description, &product.Category,
		&product.Price, &imagesJSON, &product.Stock,
		&product.DiscountPercentage, &product.FreeDelivery,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if err := product.SetImagesFromJSON(imagesJSON); err != nil {
		return nil, fmt.Errorf("failed to parse images: %w", err)
	}
	return product, nil
}

// List retrieves products, newest first, optionally filtered by category
func (s *ProductService) List(category string, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT id, name, description, category, price, images, stock,
		       discount_percentage, free_delivery, created_at, updated_at
		FROM products
	`
	var args []interface{}
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		var imagesJSON string
		err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.Category,
			&product.Price, &imagesJSON, &product.Stock,
			&product.DiscountPercentage, &product.FreeDelivery,
			&product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if err := product.SetImagesFromJSON(imagesJSON); err != nil {
			return nil, fmt.Errorf("failed to parse images: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// Update applies a partial update to a product
func (s *ProductService) Update(productID string, update *models.ProductUpdate) (*models.Product, error) {
	product, err := s.GetByID(productID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Category != nil {
		if !update.Category.IsValid() {
			return nil, fmt.Errorf("unknown category: %s", *update.Category)
		}
		product.Category = *update.Category
	}
	if update.Price != nil {
		if *update.Price <= 0 {
			return nil, errors.New("price must be positive")
		}
		product.Price = *update.Price
	}
	if update.Images != nil {
		if len(update.Images) > models.MaxProductImages {
			return nil, fmt.Errorf("a product can have at most %d images", models.MaxProductImages)
		}
		product.Images = update.Images
	}
	if update.Stock != nil {
		if *update.Stock < 0 {
			return nil, errors.New("stock must be non-negative")
		}
		product.Stock = *update.Stock
	}
	if update.DiscountPercentage != nil {
		if *update.DiscountPercentage < 0 || *update.DiscountPercentage > 100 {
			return nil, errors.New("discount percentage must be between 0 and 100")
		}
		product.DiscountPercentage = update.DiscountPercentage
	}
	if update.FreeDelivery != nil {
		product.FreeDelivery = *update.FreeDelivery
	}
	product.UpdatedAt = time.Now()

	imagesJSON, err := product.GetImagesJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize images: %w", err)
	}

	query := `
		UPDATE products SET name = ?, description = ?, category = ?, price = ?,
		       images = ?, stock = ?, discount_percentage = ?, free_delivery = ?,
		       updated_at = ?
		WHERE id = ?
	`
	_, err = s.db.Exec(query,
		product.Name, product.Description, product.Category, product.Price,
		imagesJSON, product.Stock, product.DiscountPercentage, product.FreeDelivery,
		product.UpdatedAt, product.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.activity.Record(models.ActivityProductUpdated, fmt.Sprintf("product %s (%s)", product.Name, product.ID))
	return product, nil
}

// Delete removes a product. Images in storage are not cascaded; image
// cleanup is a separate explicit operation.
func (s *ProductService) Delete(productID string) error {
	result, err := s.db.Exec("DELETE FROM products WHERE id = ?", productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	s.activity.Record(models.ActivityProductDeleted, fmt.Sprintf("product %s", productID))
	return nil
}

// Count returns the number of products in the catalog
func (s *ProductService) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
