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

// ErrReviewNotFound is returned when no review matches the lookup
var ErrReviewNotFound = errors.New("review not found")

// ReviewService handles storefront reviews
type ReviewService struct {
	db       *sql.DB
	activity *ActivityService
}

// NewReviewService creates a new review service
func NewReviewService(db *sql.DB, activity *ActivityService) *ReviewService {
	return &ReviewService{db: db, activity: activity}
}

// Create creates a new review
func (s *ReviewService) Create(creation *models.ReviewCreation) (*models.Review, error) {
	if err := utils.ValidateStruct(creation); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		AuthorName: utils.SanitizeString(creation.AuthorName),
		Rating:     creation.Rating,
		Message:    utils.SanitizeString(creation.Message),
		CreatedAt:  time.Now(),
	}
	if !review.IsValidRating() {
		return nil, errors.New("rating must be between 1 and 5")
	}

	query := "INSERT INTO reviews (id, author_name, rating, message, created_at) VALUES (?, ?, ?, ?, ?)"
	_, err := s.db.Exec(query, review.ID, review.AuthorName, review.Rating, review.Message, review.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// List retrieves reviews, newest first
func (s *ReviewService) List(limit, offset int) ([]*models.Review, error) {
	query := "SELECT id, author_name, rating, message, created_at FROM reviews ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review := &models.Review{}
		if err := rows.Scan(&review.ID, &review.AuthorName, &review.Rating, &review.Message, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// Delete removes a review
func (s *ReviewService) Delete(reviewID string) error {
	result, err := s.db.Exec("DELETE FROM reviews WHERE id = ?", reviewID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrReviewNotFound
	}

	s.activity.Record(models.ActivityReviewDeleted, fmt.Sprintf("review %s", reviewID))
	return nil
}
