package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"bonusbot/database"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken          string // Optional, enables the channel announcer
	BonusChannelID        string // Channel the daily bonus transitions are posted to
	DiscordPostsPerSecond float64

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated), empty disables publishing

	// Bonus configuration
	NotifyCron            string // Cron spec for the daily bonus check
	DefaultTimezone       string // IANA zone for artists without their own
	RosterRefreshInterval time.Duration
	ImportDateFormat      string // Go layout of dates in imported CSV exports

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelServiceName          string
	OTelExporterType         string // "console", "otlp" or "none"
	OTelOTLPEndpoint         string
	OTelExportIntervalMillis int

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// DefaultLocation loads DefaultTimezone, falling back to UTC when it is unset
func (c *Config) DefaultLocation() (*time.Location, error) {
	if c.DefaultTimezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_TIMEZONE %q: %w", c.DefaultTimezone, err)
	}
	return loc, nil
}

// AnnouncerEnabled reports whether bonus transitions should be posted to Discord
func (c *Config) AnnouncerEnabled() bool {
	return c.DiscordToken != "" && c.BonusChannelID != ""
}

// load loads configuration from the environment, reading a .env file first when present
func load() (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	config := &Config{
		// Discord
		DiscordToken:          os.Getenv("DISCORD_TOKEN"),
		BonusChannelID:        os.Getenv("BONUS_CHANNEL_ID"),
		DiscordPostsPerSecond: 1,

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// Bonus settings with defaults
		NotifyCron:            getEnvWithDefault("NOTIFY_CRON", "5 * * * *"),
		DefaultTimezone:       getEnvWithDefault("DEFAULT_TIMEZONE", "Asia/Seoul"),
		RosterRefreshInterval: 30 * time.Minute,
		ImportDateFormat:      getEnvWithDefault("IMPORT_DATE_FORMAT", "2006-01-02"),

		// OpenTelemetry
		OTelEnabled:              os.Getenv("OTEL_ENABLED") == "true",
		OTelServiceName:          getEnvWithDefault("OTEL_SERVICE_NAME", "bonusbot"),
		OTelExporterType:         getEnvWithDefault("OTEL_EXPORTER_TYPE", "console"),
		OTelOTLPEndpoint:         getEnvWithDefault("OTEL_OTLP_ENDPOINT", "otel-collector:4317"),
		OTelExportIntervalMillis: 60000,

		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if minutes := os.Getenv("ROSTER_REFRESH_MINUTES"); minutes != "" {
		if parsed, err := strconv.Atoi(minutes); err == nil && parsed > 0 {
			config.RosterRefreshInterval = time.Duration(parsed) * time.Minute
		}
	}
	if rate := os.Getenv("DISCORD_POSTS_PER_SECOND"); rate != "" {
		if parsed, err := strconv.ParseFloat(rate, 64); err == nil && parsed > 0 {
			config.DiscordPostsPerSecond = parsed
		}
	}
	if interval := os.Getenv("OTEL_EXPORT_INTERVAL_MS"); interval != "" {
		if parsed, err := strconv.Atoi(interval); err == nil && parsed > 0 {
			config.OTelExportIntervalMillis = parsed
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Environment == "test" {
		return nil
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	// If DatabaseName is provided, ensure it's not blank
	if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
		return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
	}
	if c.DiscordToken != "" && c.BonusChannelID == "" {
		return fmt.Errorf("BONUS_CHANNEL_ID is required when DISCORD_TOKEN is set")
	}
	if _, err := c.DefaultLocation(); err != nil {
		return err
	}
	switch c.OTelExporterType {
	case "console", "otlp", "none":
	default:
		return fmt.Errorf("unknown OTEL_EXPORTER_TYPE: %s", c.OTelExporterType)
	}
	return nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:           "test",
		NotifyCron:            "5 * * * *",
		DefaultTimezone:       "UTC",
		RosterRefreshInterval: time.Minute,
		ImportDateFormat:      "2006-01-02",
		DiscordPostsPerSecond: 1,
		OTelServiceName:       "bonusbot-test",
		OTelExporterType:      "none",
		LogLevel:              "debug",
	}
}
