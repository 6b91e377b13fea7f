package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"amarthrift-backend/internal/models"
	"amarthrift-backend/internal/services"
)

// ReviewHandlers handles storefront review endpoints
type ReviewHandlers struct {
	reviewService *services.ReviewService
}

// NewReviewHandlers creates new review handlers
func NewReviewHandlers(reviewService *services.ReviewService) *ReviewHandlers {
	return &ReviewHandlers{reviewService: reviewService}
}

// List handles GET /api/v1/reviews
func (h *ReviewHandlers) List(c *gin.Context) {
	limit, offset := pagination(c, 50)
	reviews, err := h.reviewService.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to get reviews: " + err.Error(),
		})
		return
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reviews,
	})
}

// Create handles POST /api/v1/reviews
func (h *ReviewHandlers) Create(c *gin.Context) {
	var creation models.ReviewCreation
	if err := c.ShouldBindJSON(&creation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	review, err := h.reviewService.Create(&creation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    review,
		"message": "Review submitted successfully",
	})
}

// Delete handles DELETE /api/v1/admin/reviews/:id
func (h *ReviewHandlers) Delete(c *gin.Context) {
	if err := h.reviewService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Review not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to delete review: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review deleted successfully",
	})
}
