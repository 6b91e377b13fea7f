package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"amarthrift-backend/internal/models"
	"amarthrift-backend/internal/services"
)

// AdminHandlers handles the back-office dashboard endpoints
type AdminHandlers struct {
	activityService *services.ActivityService
	orderService    *services.OrderService
	feedService     *services.FeedService
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(activityService *services.ActivityService, orderService *services.OrderService, feedService *services.FeedService) *AdminHandlers {
	return &AdminHandlers{
		activityService: activityService,
		orderService:    orderService,
		feedService:     feedService,
	}
}

// Activity handles GET /api/v1/admin/activity
func (h *AdminHandlers) Activity(c *gin.Context) {
	limit, offset := pagination(c, 100)
	entries, err := h.activityService.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to get activity log: " + err.Error(),
		})
		return
	}
	if entries == nil {
		entries = []*models.ActivityLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// Stats handles GET /api/v1/admin/stats
func (h *AdminHandlers) Stats(c *gin.Context) {
	stats, err := h.orderService.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to compute stats: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// OrderFeed handles GET /api/v1/admin/ws, the live order feed
func (h *AdminHandlers) OrderFeed(c *gin.Context) {
	h.feedService.HandleWebSocket(c)
}
