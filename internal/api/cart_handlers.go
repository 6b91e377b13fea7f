package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"amarthrift-backend/internal/cart"
	"amarthrift-backend/internal/services"
)

// CartHandlers handles the server-side cart endpoints. Carts are keyed
// by an opaque id the storefront client generates and sends in the
// X-Cart-ID header.
type CartHandlers struct {
	store          cart.Store
	productService *services.ProductService
}

// NewCartHandlers creates new cart handlers
func NewCartHandlers(store cart.Store, productService *services.ProductService) *CartHandlers {
	return &CartHandlers{
		store:          store,
		productService: productService,
	}
}

func cartID(c *gin.Context) string {
	return c.GetHeader("X-Cart-ID")
}

// Get handles GET /api/v1/cart
func (h *CartHandlers) Get(c *gin.Context) {
	id := cartID(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "X-Cart-ID header required",
		})
		return
	}

	shoppingCart, err := h.store.Load(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to load cart: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items": shoppingCart.Items,
			"count": shoppingCart.Count(),
			"total": shoppingCart.Total(),
		},
	})
}

// AddItem handles POST /api/v1/cart/items. Adding a product already in
// the cart bumps its quantity and refreshes the snapshotted price
// fields from the catalog.
func (h *CartHandlers) AddItem(c *gin.Context) {
	id := cartID(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "X-Cart-ID header required",
		})
		return
	}

	var req struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	product, err := h.productService.GetByID(req.ProductID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to get product: " + err.Error(),
		})
		return
	}

	shoppingCart, err := h.store.Load(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to load cart: " + err.Error(),
		})
		return
	}

	shoppingCart.Add(product)

	if err := h.store.Save(id, shoppingCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to save cart: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items": shoppingCart.Items,
			"count": shoppingCart.Count(),
			"total": shoppingCart.Total(),
		},
		"message": "Item added to cart",
	})
}

// UpdateQuantity handles PUT /api/v1/cart/items/:productId. The delta
// may be any non-zero step; quantity never drops below one (removal is
// explicit).
func (h *CartHandlers) UpdateQuantity(c *gin.Context) {
	id := cartID(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "X-Cart-ID header required",
		})
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}
	shoppingCart, err := h.store.Load(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to load cart: " + err.Error(),
		})
		return
	}

	if !shoppingCart.UpdateQuantity(c.Param("productId"), req.Delta) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Item not in cart",
		})
		return
	}

	if err := h.store.Save(id, shoppingCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to save cart: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items": shoppingCart.Items,
			"count": shoppingCart.Count(),
			"total": shoppingCart.Total(),
		},
	})
}

// RemoveItem handles DELETE /api/v1/cart/items/:productId
func (h *CartHandlers) RemoveItem(c *gin.Context) {
	id := cartID(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "X-Cart-ID header required",
		})
		return
	}

	shoppingCart, err := h.store.Load(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to load cart: " + err.Error(),
		})
		return
	}

	shoppingCart.Remove(c.Param("productId"))

	if err := h.store.Save(id, shoppingCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to save cart: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items": shoppingCart.Items,
			"count": shoppingCart.Count(),
			"total": shoppingCart.Total(),
		},
		"message": "Item removed from cart",
	})
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandlers) Clear(c *gin.Context) {
	id := cartID(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "X-Cart-ID header required",
		})
		return
	}

	if err := h.store.Clear(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to clear cart: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart cleared",
	})
}
