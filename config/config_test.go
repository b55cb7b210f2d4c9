package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "stockive.db", cfg.DatabaseURL)
	assert.Equal(t, 24*60*60, cfg.JWTExpiration)
	assert.Equal(t, "200", cfg.BarcodeCompanyPrefix)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, 7, cfg.ExpiryWarningDays)
	assert.Equal(t, 14, cfg.ClearanceWindowDays)
	assert.Equal(t, 200, cfg.POSSyncPageSize)
	assert.False(t, cfg.POSConfigured())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, 3, cfg.LowStockThreshold)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	assert.NoError(t, cfg.Validate())

	invalid := cfg.Clone()
	invalid.JWTSecret = ""
	assert.Error(t, invalid.Validate())

	invalid = cfg.Clone()
	invalid.Environment = "staging"
	assert.Error(t, invalid.Validate())

	invalid = cfg.Clone()
	invalid.BarcodeCompanyPrefix = "20a"
	assert.Error(t, invalid.Validate())

	invalid = cfg.Clone()
	invalid.BarcodeCompanyPrefix = "1234567890"
	assert.Error(t, invalid.Validate())
}

func TestLoadClampsAlertScanInterval(t *testing.T) {
	t.Setenv("ALERT_SCAN_INTERVAL_MIN", "0")
	assert.Equal(t, 1, Load().AlertScanIntervalMin)

	t.Setenv("ALERT_SCAN_INTERVAL_MIN", "-5")
	assert.Equal(t, 1, Load().AlertScanIntervalMin)

	t.Setenv("ALERT_SCAN_INTERVAL_MIN", "15")
	assert.Equal(t, 15, Load().AlertScanIntervalMin)
}

func TestPOSConfigured(t *testing.T) {
	t.Setenv("POS_TOKEN_URL", "https://pos.example.com/oauth/token")
	t.Setenv("POS_CLIENT_ID", "client")
	t.Setenv("POS_CLIENT_SECRET", "secret")

	cfg := Load()
	assert.True(t, cfg.POSConfigured())
}

func TestClone(t *testing.T) {
	cfg := Load()
	cfg.AllowedOrigins = []string{"https://a.example.com"}

	clone := cfg.Clone()
	clone.AllowedOrigins[0] = "https://mutated.example.com"
	assert.Equal(t, "https://a.example.com", cfg.AllowedOrigins[0])
}
