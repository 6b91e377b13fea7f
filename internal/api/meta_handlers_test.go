package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amarthrift-backend/database"
	"amarthrift-backend/internal/models"
	"amarthrift-backend/internal/services"
)

func setupMetaRouter(t *testing.T) (*gin.Engine, *services.ProductService) {
	db, err := database.Initialize(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	products := services.NewProductService(db, services.NewActivityService(db))
	handlers := NewMetaHandlers(products, "https://amarthrift.example.com")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", handlers.Health)
	router.GET("/sitemap.xml", handlers.Sitemap)
	router.GET("/api/v1/meta/districts", handlers.Districts)
	router.GET("/api/v1/meta/categories", handlers.Categories)
	return router, products
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	router, _ := setupMetaRouter(t)
	w := get(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestDistricts(t *testing.T) {
	router, _ := setupMetaRouter(t)
	w := get(router, "/api/v1/meta/districts")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dhaka")
}

func TestCategories(t *testing.T) {
	router, _ := setupMetaRouter(t)
	w := get(router, "/api/v1/meta/categories")
	assert.Equal(t, http.StatusOK, w.Code)
	for _, category := range models.AllCategories {
		assert.Contains(t, w.Body.String(), string(category))
	}
}

func TestSitemap(t *testing.T) {
	router, products := setupMetaRouter(t)

	product, err := products.Create(&models.ProductCreation{
		Name:     "Denim Jacket",
		Category: models.ProductCategoryClothing,
		Price:    2400,
		Images:   []string{"/uploads/products/jacket.jpg"},
	})
	require.NoError(t, err)

	w := get(router, "/sitemap.xml")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	assert.Contains(t, body, "<urlset")
	assert.Contains(t, body, "https://amarthrift.example.com/</loc>")
	assert.Contains(t, body, "https://amarthrift.example.com/products?category=clothing")
	assert.Contains(t, body, "https://amarthrift.example.com/products/"+product.ID)
}

func TestSitemapCoversWholeCatalog(t *testing.T) {
	router, products := setupMetaRouter(t)

	// One more product than a single catalog page holds
	total := sitemapPageSize + 1
	for i := 0; i < total; i++ {
		_, err := products.Create(&models.ProductCreation{
			Name:     "Denim Jacket",
			Category: models.ProductCategoryClothing,
			Price:    2400,
			Images:   []string{"/uploads/products/jacket.jpg"},
		})
		require.NoError(t, err)
	}

	w := get(router, "/sitemap.xml")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, total, strings.Count(w.Body.String(), "https://amarthrift.example.com/products/"))
}
