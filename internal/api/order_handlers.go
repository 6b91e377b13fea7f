package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"amarthrift-backend/internal/models"
	"amarthrift-backend/internal/services"
)

// OrderHandlers handles checkout, tracking and order administration
type OrderHandlers struct {
	orderService *services.OrderService
	cartStore    CartClearer
}

// CartClearer is the slice of the cart store checkout needs
type CartClearer interface {
	Clear(cartID string) error
}

// NewOrderHandlers creates new order handlers
func NewOrderHandlers(orderService *services.OrderService, cartStore CartClearer) *OrderHandlers {
	return &OrderHandlers{
		orderService: orderService,
		cartStore:    cartStore,
	}
}

// Create handles POST /api/v1/orders (checkout). When the request
// carries an X-Cart-ID header the server-side cart is cleared after
// the order lands.
func (h *OrderHandlers) Create(c *gin.Context) {
	var creation models.OrderCreation
	if err := c.ShouldBindJSON(&creation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	order, err := h.orderService.PlaceOrder(&creation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if id := c.GetHeader("X-Cart-ID"); id != "" {
		if err := h.cartStore.Clear(id); err != nil {
			// The order is already placed; a stale cart is not worth a 500
			c.Error(err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
		"message": "Order placed successfully",
	})
}

// Track handles GET /api/v1/orders/track?token=&phone=. Zero matches
// and ambiguous matches both come back as a plain 404.
func (h *OrderHandlers) Track(c *gin.Context) {
	token := c.Query("token")
	phone := c.Query("phone")
	if token == "" || phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Both token and phone are required",
		})
		return
	}

	order, err := h.orderService.TrackOrder(token, phone)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "No order found for that token and phone",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to track order: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// List handles GET /api/v1/admin/orders
func (h *OrderHandlers) List(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.OrderStatus(status).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Unknown status: " + status,
		})
		return
	}

	limit, offset := pagination(c, 50)
	orders, err := h.orderService.List(status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to get orders: " + err.Error(),
		})
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// Get handles GET /api/v1/admin/orders/:id
func (h *OrderHandlers) Get(c *gin.Context) {
	order, err := h.orderService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to get order: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// Update handles PUT /api/v1/admin/orders/:id
func (h *OrderHandlers) Update(c *gin.Context) {
	var update models.OrderUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	order, err := h.orderService.Update(c.Param("id"), &update)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Order not found",
			})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   err.Error(),
			})
		default:
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
		"message": "Order updated successfully",
	})
}

// Delete handles DELETE /api/v1/admin/orders/:id
func (h *OrderHandlers) Delete(c *gin.Context) {
	if err := h.orderService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to delete order: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order deleted successfully",
	})
}
