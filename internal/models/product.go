package models

import (
	"encoding/json"
	"time"
)

// ProductCategory represents product categories
type ProductCategory string

const (
	ProductCategoryClothing    ProductCategory = "clothing"
	ProductCategoryShoes       ProductCategory = "shoes"
	ProductCategoryAccessories ProductCategory = "accessories"
	ProductCategoryElectronics ProductCategory = "electronics"
	ProductCategoryHome        ProductCategory = "home"
	ProductCategoryOther       ProductCategory = "other"
)

// AllCategories lists the closed category enumeration
var AllCategories = []ProductCategory{
	ProductCategoryClothing,
	ProductCategoryShoes,
	ProductCategoryAccessories,
	ProductCategoryElectronics,
	ProductCategoryHome,
	ProductCategoryOther,
}

// MaxProductImages caps the number of images carried on one product,
// on both the JSON and the multipart upload paths.
const MaxProductImages = 6

// IsValid checks if the category is part of the closed enumeration
func (c ProductCategory) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents a catalog product
type Product struct {
	ID                 string          `json:"id" db:"id"`
	Name               string          `json:"name" db:"name"`
	Description        string          `json:"description" db:"description"`
	Category           ProductCategory `json:"category" db:"category"`
	Price              float64         `json:"price" db:"price"`
	Images             []string        `json:"images" db:"images"`
	Stock              int             `json:"stock" db:"stock"`
	DiscountPercentage *float64        `json:"discountPercentage,omitempty" db:"discount_percentage"`
	FreeDelivery       bool            `json:"freeDelivery" db:"free_delivery"`
	CreatedAt          time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time       `json:"updatedAt" db:"updated_at"`
}

// EffectivePrice returns the price after applying the optional discount
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPercentage == nil {
		return p.Price
	}
	return p.Price - p.Price*(*p.DiscountPercentage)/100
}

// IsInStock checks if the product has any stock left
func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// GetImagesJSON returns images as JSON string for database storage
func (p *Product) GetImagesJSON() (string, error) {
	if len(p.Images) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(p.Images)
	return string(data), err
}

// SetImagesFromJSON sets images from JSON string
func (p *Product) SetImagesFromJSON(imagesJSON string) error {
	if imagesJSON == "" {
		p.Images = []string{}
		return nil
	}
	return json.Unmarshal([]byte(imagesJSON), &p.Images)
}

// ProductCreation represents data for creating a new product
type ProductCreation struct {
	Name               string          `json:"name" validate:"required,max=200"`
	Description        string          `json:"description" validate:"max=5000"`
	Category           ProductCategory `json:"category" validate:"required"`
	Price              float64         `json:"price" validate:"required,gt=0"`
	Images             []string        `json:"images" validate:"required,min=1,max=6"`
	Stock              int             `json:"stock" validate:"gte=0"`
	DiscountPercentage *float64        `json:"discountPercentage,omitempty"`
	FreeDelivery       bool            `json:"freeDelivery"`
}

// ProductUpdate represents data for updating a product
type ProductUpdate struct {
	Name               *string          `json:"name,omitempty"`
	Description        *string          `json:"description,omitempty"`
	Category           *ProductCategory `json:"category,omitempty"`
	Price              *float64         `json:"price,omitempty"`
	Images             []string         `json:"images,omitempty"`
	Stock              *int             `json:"stock,omitempty"`
	DiscountPercentage *float64         `json:"discountPercentage,omitempty"`
	FreeDelivery       *bool            `json:"freeDelivery,omitempty"`
}
