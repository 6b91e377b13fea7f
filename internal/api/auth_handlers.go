package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"amarthrift-backend/internal/models"
	"amarthrift-backend/internal/services"
)

// AuthHandlers handles registration, sign-in and profile endpoints
type AuthHandlers struct {
	userService   *services.UserService
	authService   *services.AuthService
	googleService *services.GoogleService
}

// NewAuthHandlers creates new auth handlers. googleService may be nil
// when federated sign-in is not configured.
func NewAuthHandlers(userService *services.UserService, authService *services.AuthService, googleService *services.GoogleService) *AuthHandlers {
	return &AuthHandlers{
		userService:   userService,
		authService:   authService,
		googleService: googleService,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandlers) Register(c *gin.Context) {
	var registration models.UserRegistration
	if err := c.ShouldBindJSON(&registration); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	user, err := h.userService.Register(&registration)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to generate token: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"user":  user,
			"token": token,
		},
		"message": "Registration successful",
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var login models.UserLogin
	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	user, err := h.userService.Authenticate(&login)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid email or password",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Login failed: " + err.Error(),
		})
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to generate token: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":  user,
			"token": token,
		},
		"message": "Login successful",
	})
}

// Logout handles POST /api/v1/auth/logout by revoking the presented token
func (h *AuthHandlers) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No token provided",
		})
		return
	}

	h.authService.BlacklistToken(token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// GoogleLogin handles POST /api/v1/auth/google: exchanges an OAuth
// authorization code for a profile, creating one on first sign-in.
func (h *AuthHandlers) GoogleLogin(c *gin.Context) {
	if h.googleService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"success": false,
			"error":   "Google sign-in is not configured",
		})
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	identity, err := h.googleService.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Google sign-in failed: " + err.Error(),
		})
		return
	}

	user, err := h.userService.EnsureFederatedProfile(identity.Email, identity.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to load profile: " + err.Error(),
		})
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to generate token: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":  user,
			"token": token,
		},
		"message": "Login successful",
	})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandlers) Me(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "User not authenticated",
		})
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Profile no longer exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to get profile: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
