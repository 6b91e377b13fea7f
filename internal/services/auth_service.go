package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"amarthrift-backend/internal/models"
)

// AuthService handles token issuing and validation
type AuthService struct {
	jwtSecret     string
	jwtExpiration time.Duration

	// In-memory blacklist for logged-out tokens
	blacklistedTokens map[string]time.Time
	blacklistMutex    sync.Mutex
}

// NewAuthService creates a new auth service
func NewAuthService(jwtSecret string, jwtExpirationSeconds int) *AuthService {
	return &AuthService{
		jwtSecret:         jwtSecret,
		jwtExpiration:     time.Duration(jwtExpirationSeconds) * time.Second,
		blacklistedTokens: make(map[string]time.Time),
	}
}

// JWTClaims represents JWT token claims
type JWTClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for a user
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "amarthrift",
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	if s.isBlacklisted(tokenString) {
		return nil, fmt.Errorf("token has been revoked")
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// BlacklistToken revokes a token until its natural expiry
func (s *AuthService) BlacklistToken(tokenString string) {
	expiry := time.Now().Add(s.jwtExpiration)
	if claims, err := s.ValidateToken(tokenString); err == nil {
		expiry = claims.ExpiresAt.Time
	}

	s.blacklistMutex.Lock()
	defer s.blacklistMutex.Unlock()
	s.blacklistedTokens[tokenString] = expiry
}

// isBlacklisted checks membership, dropping entries whose tokens have
// expired on their own.
func (s *AuthService) isBlacklisted(tokenString string) bool {
	s.blacklistMutex.Lock()
	defer s.blacklistMutex.Unlock()

	expiry, exists := s.blacklistedTokens[tokenString]
	if !exists {
		return false
	}
	if time.Now().After(expiry) {
		delete(s.blacklistedTokens, tokenString)
		return false
	}
	return true
}

// CleanupExpiredTokens removes expired tokens from the blacklist
func (s *AuthService) CleanupExpiredTokens() {
	s.blacklistMutex.Lock()
	defer s.blacklistMutex.Unlock()

	now := time.Now()
	for token, expiry := range s.blacklistedTokens {
		if now.After(expiry) {
			delete(s.blacklistedTokens, token)
		}
	}
}
