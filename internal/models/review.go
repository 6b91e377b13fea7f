package models

import "time"

// Review represents a storefront review. Reviews are created and deleted,
// never edited.
type Review struct {
	ID         string    `json:"id" db:"id"`
	AuthorName string    `json:"authorName" db:"author_name"`
	Rating     int       `json:"rating" db:"rating"`
	Message    string    `json:"message" db:"message"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// IsValidRating checks if the rating is valid (1-5)
func (r *Review) IsValidRating() bool {
	return r.Rating >= 1 && r.Rating <= 5
}

// ReviewCreation represents data for creating a review
type ReviewCreation struct {
	AuthorName string `json:"authorName" validate:"required,min=2,max=100"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Message    string `json:"message" validate:"required,max=2000"`
}
