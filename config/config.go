package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"amarthrift-backend/internal/models"
)

// Config holds all configuration for the application
type Config struct {
	Environment   string
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTExpiration int

	// Public surface of the store (used for sitemap and image URLs).
	// STORE_BASE_URL with PUBLIC_BASE_URL as the documented fallback name.
	StoreBaseURL string
	StoreAPIKey  string

	// Delivery charge rule: flat rate inside the metro districts of the
	// district table, a higher flat rate everywhere else.
	DeliveryChargeMetro  float64
	DeliveryChargeRemote float64

	// File Upload Configuration
	MaxFileSize      int64
	AllowedFileTypes []string
	UploadPath       string
	MaxProductImages int

	// Google OAuth Configuration (federated sign-in)
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Rate Limiting Configuration
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// CORS Configuration
	AllowedOrigins  []string
	AllowAllOrigins bool
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", "amarthrift.db"),
		JWTSecret:     getEnv("JWT_SECRET", "amarthrift-dev-secret-change-in-production"),
		JWTExpiration: getEnvAsInt("JWT_EXPIRATION", 24*60*60), // 24 hours in seconds

		StoreBaseURL: getEnvWithFallback("STORE_BASE_URL", "PUBLIC_BASE_URL", "http://localhost:8080"),
		StoreAPIKey:  getEnvWithFallback("STORE_API_KEY", "PUBLIC_API_KEY", ""),

		DeliveryChargeMetro:  getEnvAsFloat("DELIVERY_CHARGE_METRO", 80),
		DeliveryChargeRemote: getEnvAsFloat("DELIVERY_CHARGE_REMOTE", 150),

		MaxFileSize:      getEnvAsInt64("MAX_FILE_SIZE", 5*1024*1024), // 5MB
		AllowedFileTypes: []string{"image/jpeg", "image/png", "image/webp"},
		UploadPath:       getEnv("UPLOAD_PATH", "./uploads"),
		MaxProductImages: getEnvAsInt("MAX_PRODUCT_IMAGES", models.MaxProductImages),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),

		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		AllowedOrigins:  getEnvAsStringSlice("ALLOWED_ORIGINS", []string{}),
		AllowAllOrigins: getEnvAsBool("ALLOW_ALL_ORIGINS", true), // Default to true for development
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvWithFallback(key, fallbackKey, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value := os.Getenv(fallbackKey); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// ServerPort returns the server port
func (c *Config) ServerPort() string {
	return c.Port
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("database URL is required")
	}
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.DeliveryChargeMetro < 0 || c.DeliveryChargeRemote < 0 {
		return fmt.Errorf("delivery charges must be non-negative")
	}
	if c.MaxProductImages <= 0 {
		return fmt.Errorf("max product images must be positive")
	}

	validEnvs := map[string]bool{
		"development": true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	return nil
}
