package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"amarthrift-backend/internal/models"
	"amarthrift-backend/internal/services"
)

// ProductHandlers handles catalog endpoints
type ProductHandlers struct {
	productService *services.ProductService
	storageService *services.StorageService
	activity       *services.ActivityService
}

// NewProductHandlers creates new product handlers
func NewProductHandlers(productService *services.ProductService, storageService *services.StorageService, activity *services.ActivityService) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
		storageService: storageService,
		activity:       activity,
	}
}

// List handles GET /api/v1/products
func (h *ProductHandlers) List(c *gin.Context) {
	category := c.Query("category")
	if category != "" && !models.ProductCategory(category).IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Unknown category: " + category,
		})
		return
	}

	limit, offset := pagination(c, 50)
	products, err := h.productService.List(category, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to get products: " + err.Error(),
		})
		return
	}
	if products == nil {
		products = []*models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// Get handles GET /api/v1/products/:id
func (h *ProductHandlers) Get(c *gin.Context) {
	product, err := h.productService.GetByID(c.Param("id"))
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// Create handles POST /api/v1/admin/products
func (h *ProductHandlers) Create(c *gin.Context) {
	var creation models.ProductCreation
	if err := c.ShouldBindJSON(&creation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	product, err := h.productService.Create(&creation)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
		"message": "Product created successfully",
	})
}

// Update handles PUT /api/v1/admin/products/:id
func (h *ProductHandlers) Update(c *gin.Context) {
	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	product, err := h.productService.Update(c.Param("id"), &update)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Product not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
		"message": "Product updated successfully",
	})
}

// Delete handles DELETE /api/v1/admin/products/:id
func (h *ProductHandlers) Delete(c *gin.Context) {
	if err := h.productService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to delete product: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// UploadStandalone handles POST /api/v1/admin/images: stores a batch of
// images without binding them to a product, returning their URLs for a
// subsequent product creation.
func (h *ProductHandlers) UploadStandalone(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Failed to parse multipart form: " + err.Error(),
		})
		return
	}

	urls, err := h.storageService.SaveProductImages(0, form.File["images"])
	if err != nil {
		var uploadErrors services.UploadErrors
		if errors.As(err, &uploadErrors) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Image validation failed",
				"details": []string(uploadErrors),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	h.activity.Record(models.ActivityImageUploaded, strconv.Itoa(len(urls))+" image(s)")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"urls": urls},
		"message": "Images uploaded successfully",
	})
}

// UploadImages handles POST /api/v1/admin/products/:id/images.
// The whole submission is validated before any file is written; a
// failed batch stores nothing and reports every per-file problem.
func (h *ProductHandlers) UploadImages(c *gin.Context) {
	product, err := h.productService.GetByID(c.Param("id"))
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

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Failed to parse multipart form: " + err.Error(),
		})
		return
	}

	files := form.File["images"]
	urls, err := h.storageService.SaveProductImages(len(product.Images), files)
	if err != nil {
		var uploadErrors services.UploadErrors
		if errors.As(err, &uploadErrors) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Image validation failed",
				"details": []string(uploadErrors),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	images := append(product.Images, urls...)
	updated, err := h.productService.Update(product.ID, &models.ProductUpdate{Images: images})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to attach images: " + err.Error(),
		})
		return
	}

	h.activity.Record(models.ActivityImageUploaded, "product "+product.ID+": "+strconv.Itoa(len(urls))+" image(s)")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"product": updated,
			"urls":    urls,
		},
		"message": "Images uploaded successfully",
	})
}

// DeleteImage handles DELETE /api/v1/admin/products/:id/images.
// Removes one image file and drops its URL from the product row.
func (h *ProductHandlers) DeleteImage(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	product, err := h.productService.GetByID(c.Param("id"))
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

	images := make([]string, 0, len(product.Images))
	found := false
	for _, url := range product.Images {
		if url == req.URL {
			found = true
			continue
		}
		images = append(images, url)
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Image not found on product",
		})
		return
	}

	if err := h.storageService.DeleteImage(req.URL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to delete image: " + err.Error(),
		})
		return
	}

	updated, err := h.productService.Update(product.ID, &models.ProductUpdate{Images: images})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to update product: " + err.Error(),
		})
		return
	}

	h.activity.Record(models.ActivityImageDeleted, "product "+product.ID+": "+req.URL)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
		"message": "Image deleted successfully",
	})
}

// pagination reads limit/offset query parameters with a default limit
func pagination(c *gin.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > 200 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
