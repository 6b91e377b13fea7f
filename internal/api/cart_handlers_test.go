package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"amarthrift-backend/database"
	"amarthrift-backend/internal/cart"
	"amarthrift-backend/internal/models"
	"amarthrift-backend/internal/services"
)

func cartWithItem() *models.Cart {
	return &models.Cart{Items: []models.CartItem{
		{ProductID: "p1", Name: "Denim Jacket", Price: 2400, Quantity: 1},
	}}
}

type CartHandlersTestSuite struct {
	suite.Suite
	db       *sql.DB
	router   *gin.Engine
	products *services.ProductService
	product  *models.Product
}

func (suite *CartHandlersTestSuite) SetupTest() {
	db, err := database.Initialize(":memory:")
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(db))
	suite.db = db

	suite.products = services.NewProductService(db, services.NewActivityService(db))
	suite.product, err = suite.products.Create(&models.ProductCreation{
		Name:     "Denim Jacket",
		Category: models.ProductCategoryClothing,
		Price:    2400,
		Images:   []string{"/uploads/products/jacket.jpg"},
		Stock:    3,
	})
	suite.Require().NoError(err)

	handlers := NewCartHandlers(cart.NewMemoryStore(), suite.products)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.GET("/api/v1/cart", handlers.Get)
	suite.router.DELETE("/api/v1/cart", handlers.Clear)
	suite.router.POST("/api/v1/cart/items", handlers.AddItem)
	suite.router.PUT("/api/v1/cart/items/:productId", handlers.UpdateQuantity)
	suite.router.DELETE("/api/v1/cart/items/:productId", handlers.RemoveItem)
}

func (suite *CartHandlersTestSuite) TearDownTest() {
	suite.db.Close()
}

type cartResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Items []models.CartItem `json:"items"`
		Count int               `json:"count"`
		Total float64           `json:"total"`
	} `json:"data"`
}

func (suite *CartHandlersTestSuite) do(method, path, cartID string, body interface{}) (*httptest.ResponseRecorder, cartResponse) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cartID != "" {
		req.Header.Set("X-Cart-ID", cartID)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response cartResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

func (suite *CartHandlersTestSuite) TestRequiresCartID() {
	w, _ := suite.do(http.MethodGet, "/api/v1/cart", "", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w, _ = suite.do(http.MethodPost, "/api/v1/cart/items", "", map[string]string{"productId": suite.product.ID})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *CartHandlersTestSuite) TestAddAndGet() {
	w, response := suite.do(http.MethodPost, "/api/v1/cart/items", "cart-1", map[string]string{"productId": suite.product.ID})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(1, response.Data.Count)
	suite.Equal(2400.0, response.Data.Total)

	// Adding the same product again bumps quantity, not entries
	w, response = suite.do(http.MethodPost, "/api/v1/cart/items", "cart-1", map[string]string{"productId": suite.product.ID})
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(response.Data.Items, 1)
	suite.Equal(2, response.Data.Count)
	suite.Equal(4800.0, response.Data.Total)

	w, response = suite.do(http.MethodGet, "/api/v1/cart", "cart-1", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(2, response.Data.Count)

	// Carts are isolated per id
	w, response = suite.do(http.MethodGet, "/api/v1/cart", "cart-2", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(0, response.Data.Count)
}

func (suite *CartHandlersTestSuite) TestAddUnknownProduct() {
	w, _ := suite.do(http.MethodPost, "/api/v1/cart/items", "cart-1", map[string]string{"productId": "no-such-product"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *CartHandlersTestSuite) TestUpdateQuantity() {
	suite.do(http.MethodPost, "/api/v1/cart/items", "cart-1", map[string]string{"productId": suite.product.ID})

	w, response := suite.do(http.MethodPut, "/api/v1/cart/items/"+suite.product.ID, "cart-1", map[string]int{"delta": 1})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(2, response.Data.Items[0].Quantity)

	// Quantity floors at one
	suite.do(http.MethodPut, "/api/v1/cart/items/"+suite.product.ID, "cart-1", map[string]int{"delta": -1})
	w, response = suite.do(http.MethodPut, "/api/v1/cart/items/"+suite.product.ID, "cart-1", map[string]int{"delta": -1})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(1, response.Data.Items[0].Quantity)

	// Deltas larger than one step are accepted
	w, response = suite.do(http.MethodPut, "/api/v1/cart/items/"+suite.product.ID, "cart-1", map[string]int{"delta": 5})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(6, response.Data.Items[0].Quantity)

	// A large negative delta still floors at one
	w, response = suite.do(http.MethodPut, "/api/v1/cart/items/"+suite.product.ID, "cart-1", map[string]int{"delta": -100})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(1, response.Data.Items[0].Quantity)

	w, _ = suite.do(http.MethodPut, "/api/v1/cart/items/no-such-product", "cart-1", map[string]int{"delta": 1})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *CartHandlersTestSuite) TestRemoveAndClear() {
	suite.do(http.MethodPost, "/api/v1/cart/items", "cart-1", map[string]string{"productId": suite.product.ID})

	w, response := suite.do(http.MethodDelete, "/api/v1/cart/items/"+suite.product.ID, "cart-1", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Empty(response.Data.Items)

	suite.do(http.MethodPost, "/api/v1/cart/items", "cart-1", map[string]string{"productId": suite.product.ID})
	w, _ = suite.do(http.MethodDelete, "/api/v1/cart", "cart-1", nil)
	suite.Equal(http.StatusOK, w.Code)

	_, response = suite.do(http.MethodGet, "/api/v1/cart", "cart-1", nil)
	suite.Equal(0, response.Data.Count)
}

func TestCartHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(CartHandlersTestSuite))
}
