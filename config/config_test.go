package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.ServerPort())
	assert.Equal(t, 80.0, cfg.DeliveryChargeMetro)
	assert.Equal(t, 150.0, cfg.DeliveryChargeRemote)
	assert.Equal(t, 6, cfg.MaxProductImages)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxFileSize)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DELIVERY_CHARGE_METRO", "60")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 60.0, cfg.DeliveryChargeMetro)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestBaseURLFallback(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://fallback.example.com")
	cfg := Load()
	assert.Equal(t, "https://fallback.example.com", cfg.StoreBaseURL)

	// The primary name wins when both are set
	t.Setenv("STORE_BASE_URL", "https://primary.example.com")
	cfg = Load()
	assert.Equal(t, "https://primary.example.com", cfg.StoreBaseURL)
}

func TestValidate(t *testing.T) {
	cfg := Load()

	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.Environment = "staging"
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.DeliveryChargeMetro = -1
	assert.Error(t, cfg.Validate())

	cfg = Load()
	cfg.MaxProductImages = 0
	assert.Error(t, cfg.Validate())
}
