package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	Environment   string
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTExpiration int

	// POS Integration Configuration
	POSAPIBaseURL   string
	POSTokenURL     string
	POSClientID     string
	POSClientSecret string
	POSSyncPageSize int

	// Barcode Configuration
	BarcodeCompanyPrefix string

	// Inventory Alert Configuration
	LowStockThreshold    int
	ExpiryWarningDays    int
	ClearanceWindowDays  int
	AlertScanIntervalMin int

	// Rate Limiting Configuration
	RateLimitRequests int
	RateLimitWindow   int

	// CORS Configuration
	AllowedOrigins  []string
	AllowAllOrigins bool

	// Logging Configuration
	LogLevel string
	LogFile  string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", "stockive.db"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpiration: getEnvAsInt("JWT_EXPIRATION", 24*60*60), // 24 hours in seconds

		// POS Integration Configuration
		POSAPIBaseURL:   getEnv("POS_API_BASE_URL", ""),
		POSTokenURL:     getEnv("POS_TOKEN_URL", ""),
		POSClientID:     getEnv("POS_CLIENT_ID", ""),
		POSClientSecret: getEnv("POS_CLIENT_SECRET", ""),
		POSSyncPageSize: getEnvAsInt("POS_SYNC_PAGE_SIZE", 200),

		// Barcode Configuration
		BarcodeCompanyPrefix: getEnv("BARCODE_COMPANY_PREFIX", "200"),

		// Inventory Alert Configuration
		LowStockThreshold:    getEnvAsInt("LOW_STOCK_THRESHOLD", 5),
		ExpiryWarningDays:    getEnvAsInt("EXPIRY_WARNING_DAYS", 7),
		ClearanceWindowDays:  getEnvAsInt("CLEARANCE_WINDOW_DAYS", 14),
		AlertScanIntervalMin: getEnvAsInt("ALERT_SCAN_INTERVAL_MIN", 30),

		// Rate Limiting Configuration
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),

		// CORS Configuration
		AllowedOrigins:  getEnvAsStringSlice("ALLOWED_ORIGINS", []string{}),
		AllowAllOrigins: getEnvAsBool("ALLOW_ALL_ORIGINS", true), // Default to true for development

		// Logging Configuration
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}

	// A zero or negative interval would make the alert ticker unusable
	if cfg.AlertScanIntervalMin < 1 {
		cfg.AlertScanIntervalMin = 1
	}

	return cfg
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
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

// POSConfigured reports whether the external POS integration is usable
func (c *Config) POSConfigured() bool {
	return c.POSTokenURL != "" && c.POSClientID != "" && c.POSClientSecret != ""
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

	// Validate environment values
	validEnvs := map[string]bool{
		"development": true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	if len(c.BarcodeCompanyPrefix) < 1 || len(c.BarcodeCompanyPrefix) > 9 {
		return fmt.Errorf("barcode company prefix must be 1-9 digits, got %q", c.BarcodeCompanyPrefix)
	}
	for _, r := range c.BarcodeCompanyPrefix {
		if r < '0' || r > '9' {
			return fmt.Errorf("barcode company prefix must be numeric, got %q", c.BarcodeCompanyPrefix)
		}
	}

	return nil
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.JWTSecret == "" {
		c.JWTSecret = "change-me-in-production"
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = "stockive.db"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.BarcodeCompanyPrefix == "" {
		c.BarcodeCompanyPrefix = "200"
	}
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Port: %s, DatabaseURL: %s}", c.Environment, c.Port, c.DatabaseURL)
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	if c.AllowedOrigins != nil {
		clone.AllowedOrigins = make([]string, len(c.AllowedOrigins))
		copy(clone.AllowedOrigins, c.AllowedOrigins)
	}
	return &clone
}
