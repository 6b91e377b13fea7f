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
	"amarthrift-backend/internal/middleware"
	"amarthrift-backend/internal/services"
)

type AuthHandlersTestSuite struct {
	suite.Suite
	db          *sql.DB
	authService *services.AuthService
	userService *services.UserService
	router      *gin.Engine
}

func (suite *AuthHandlersTestSuite) SetupTest() {
	db, err := database.Initialize(":memory:")
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(db))
	suite.db = db

	suite.authService = services.NewAuthService("test-secret", 3600)
	suite.userService = services.NewUserService(db)
	handlers := NewAuthHandlers(suite.userService, suite.authService, nil)
	authMiddleware := middleware.NewAuthMiddleware(suite.authService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	auth := suite.router.Group("/api/v1/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/logout", handlers.Logout)
		auth.POST("/google", handlers.GoogleLogin)
		auth.GET("/me", authMiddleware.AuthRequired(), handlers.Me)
	}
	suite.router.GET("/api/v1/admin/ping",
		authMiddleware.AuthRequired(), authMiddleware.RequireStoreManager(),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) })
}

func (suite *AuthHandlersTestSuite) TearDownTest() {
	suite.db.Close()
}

func (suite *AuthHandlersTestSuite) post(path string, body interface{}, token string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlersTestSuite) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlersTestSuite) registerAndExtractToken() string {
	w := suite.post("/api/v1/auth/register", map[string]string{
		"email":    "shopper@example.com",
		"fullName": "Test Shopper",
		"password": "password123",
	}, "")
	suite.Require().Equal(http.StatusCreated, w.Code)

	var response struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().NotEmpty(response.Data.Token)
	return response.Data.Token
}

func (suite *AuthHandlersTestSuite) TestRegisterLoginMe() {
	token := suite.registerAndExtractToken()

	w := suite.get("/api/v1/auth/me", token)
	suite.Equal(http.StatusOK, w.Code)

	var me struct {
		Data struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &me))
	suite.Equal("shopper@example.com", me.Data.Email)
	suite.Equal("customer", me.Data.Role)

	// The password hash never leaves the server
	suite.NotContains(w.Body.String(), "passwordHash")

	w = suite.post("/api/v1/auth/login", map[string]string{
		"email":    "shopper@example.com",
		"password": "password123",
	}, "")
	suite.Equal(http.StatusOK, w.Code)

	w = suite.post("/api/v1/auth/login", map[string]string{
		"email":    "shopper@example.com",
		"password": "wrong-password",
	}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlersTestSuite) TestMeRequiresToken() {
	w := suite.get("/api/v1/auth/me", "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.get("/api/v1/auth/me", "garbage-token")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlersTestSuite) TestLogoutRevokesToken() {
	token := suite.registerAndExtractToken()

	w := suite.get("/api/v1/auth/me", token)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.post("/api/v1/auth/logout", nil, token)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.get("/api/v1/auth/me", token)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlersTestSuite) TestAdminGate() {
	token := suite.registerAndExtractToken()

	// A plain customer is rejected with 403
	w := suite.get("/api/v1/admin/ping", token)
	suite.Equal(http.StatusForbidden, w.Code)

	// No token at all is 401
	w = suite.get("/api/v1/admin/ping", "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	// Promote the profile to staff and the gate opens
	_, err := suite.db.Exec("UPDATE users SET role = 'staff' WHERE email = 'shopper@example.com'")
	suite.Require().NoError(err)

	user, err := suite.userService.GetByEmail("shopper@example.com")
	suite.Require().NoError(err)
	staffToken, err := suite.authService.GenerateToken(user)
	suite.Require().NoError(err)

	w = suite.get("/api/v1/admin/ping", staffToken)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AuthHandlersTestSuite) TestGoogleLoginUnconfigured() {
	w := suite.post("/api/v1/auth/google", map[string]string{"code": "auth-code"}, "")
	suite.Equal(http.StatusNotImplemented, w.Code)
}

func TestAuthHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlersTestSuite))
}
