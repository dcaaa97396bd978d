package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// HTTP.
	MaxRequestsPerMin int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`

	// Scheduling.
	SlotGranularityMinutes int           `mapstructure:"SLOT_GRANULARITY_MINUTES"`
	PendingBookingTTL      time.Duration `mapstructure:"PENDING_BOOKING_TTL"`

	// External calendar sync.
	SyncFetchTimeout    time.Duration `mapstructure:"SYNC_FETCH_TIMEOUT"`
	SyncMaxAttempts     int           `mapstructure:"SYNC_MAX_ATTEMPTS"`
	SyncBusyCacheTTL    time.Duration `mapstructure:"SYNC_BUSY_CACHE_TTL"`
	SyncFailClosed      bool          `mapstructure:"SYNC_FAIL_CLOSED"`
	SyncRatePerSecond   int           `mapstructure:"SYNC_RATE_PER_SECOND"`
	GoogleClientID      string        `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret  string        `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleSyncEnabled   bool          `mapstructure:"GOOGLE_SYNC_ENABLED"`
	GoogleWritebackFlag bool          `mapstructure:"GOOGLE_WRITEBACK_ENABLED"`
}

// Load reads config.yaml (current dir or ./config) plus environment
// variables and returns the resolved configuration.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "slotwise")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("CORS_ORIGINS", []string{"*"})
	v.SetDefault("SLOT_GRANULARITY_MINUTES", 30)
	v.SetDefault("PENDING_BOOKING_TTL", "24h")
	v.SetDefault("SYNC_FETCH_TIMEOUT", "5s")
	v.SetDefault("SYNC_MAX_ATTEMPTS", 3)
	v.SetDefault("SYNC_BUSY_CACHE_TTL", "60s")
	v.SetDefault("SYNC_FAIL_CLOSED", false)
	v.SetDefault("SYNC_RATE_PER_SECOND", 10)
	v.SetDefault("GOOGLE_SYNC_ENABLED", false)
	v.SetDefault("GOOGLE_WRITEBACK_ENABLED", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the environment is production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
