package api

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"amarthrift-backend/internal/models"
	"amarthrift-backend/internal/services"
)

// MetaHandlers serves reference data and the sitemap
type MetaHandlers struct {
	productService *services.ProductService
	baseURL        string
}

// NewMetaHandlers creates new meta handlers
func NewMetaHandlers(productService *services.ProductService, baseURL string) *MetaHandlers {
	return &MetaHandlers{
		productService: productService,
		baseURL:        baseURL,
	}
}

// Districts handles GET /api/v1/meta/districts
func (h *MetaHandlers) Districts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    models.Districts,
	})
}

// Categories handles GET /api/v1/meta/categories
func (h *MetaHandlers) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    models.AllCategories,
	})
}

// Health handles GET /health
func (h *MetaHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// sitemapPageSize is the catalog page size used while building the sitemap
const sitemapPageSize = 200

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap handles GET /sitemap.xml: static pages, category listings and
// one entry per product with its creation date.
func (h *MetaHandlers) Sitemap(c *gin.Context) {
	urlSet := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: h.baseURL + "/", ChangeFreq: "daily", Priority: "1.0"},
			{Loc: h.baseURL + "/products", ChangeFreq: "daily", Priority: "0.9"},
			{Loc: h.baseURL + "/track", ChangeFreq: "monthly", Priority: "0.5"},
			{Loc: h.baseURL + "/reviews", ChangeFreq: "weekly", Priority: "0.5"},
		},
	}

	for _, category := range models.AllCategories {
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc:        h.baseURL + "/products?category=" + string(category),
			ChangeFreq: "daily",
			Priority:   "0.8",
		})
	}

	// The sitemap covers the whole catalog, one page at a time
	for offset := 0; ; offset += sitemapPageSize {
		page, err := h.productService.List("", sitemapPageSize, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to build sitemap: " + err.Error(),
			})
			return
		}
		for _, product := range page {
			urlSet.URLs = append(urlSet.URLs, sitemapURL{
				Loc:      h.baseURL + "/products/" + product.ID,
				LastMod:  product.CreatedAt.Format("2006-01-02"),
				Priority: "0.7",
			})
		}
		if len(page) < sitemapPageSize {
			break
		}
	}

	body, err := xml.MarshalIndent(urlSet, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to render sitemap: " + err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), body...))
}
