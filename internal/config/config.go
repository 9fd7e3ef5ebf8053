package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Query     QueryConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
	Dashboard DashboardConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds SurrealDB connection settings. URL, when set, wins
// over Host and Port.
type DatabaseConfig struct {
	URL       string
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// RedisConfig holds the report cache connection. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// QueryConfig tunes the fixed reports
type QueryConfig struct {
	TotalContests int
	Timeout       time.Duration
}

// RateLimitConfig holds per-client request limits
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type MetricsConfig struct {
	Enabled bool
}

// DashboardConfig holds settings for the dashboard client
type DashboardConfig struct {
	APIURL      string
	SnapshotDir string
	Timeout     time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "5000"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			URL:       getEnv("DB_URL", ""),
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "foodfest"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			TTL:      getDurationEnv("QUERY_CACHE_TTL", 30*time.Second),
		},
		Query: QueryConfig{
			TotalContests: getIntEnv("QUERY_TOTAL_CONTESTS", 3),
			Timeout:       getDurationEnv("QUERY_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			RPS:   getFloatEnv("RATE_LIMIT_RPS", 20),
			Burst: getIntEnv("RATE_LIMIT_BURST", 40),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("METRICS_ENABLED", true),
		},
		Dashboard: DashboardConfig{
			APIURL:      getEnv("DASHBOARD_API_URL", "http://localhost:5000/api"),
			SnapshotDir: getEnv("DASHBOARD_SNAPSHOT_DIR", ""),
			Timeout:     getDurationEnv("DASHBOARD_TIMEOUT", 5*time.Second),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Database validation
	if c.Database.URL != "" {
		if u, err := url.Parse(c.Database.URL); err != nil || u.Host == "" {
			errs = append(errs, fmt.Errorf("DB_URL must be an absolute URL, got '%s'", c.Database.URL))
		}
	} else {
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required"))
		}
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	// Cache validation
	if c.Redis.DB < 0 {
		errs = append(errs, errors.New("REDIS_DB must not be negative"))
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		errs = append(errs, errors.New("QUERY_CACHE_TTL must be positive when REDIS_ADDR is set"))
	}

	// Query validation
	if c.Query.TotalContests <= 0 {
		errs = append(errs, errors.New("QUERY_TOTAL_CONTESTS must be positive"))
	}
	if c.Query.Timeout < 0 {
		errs = append(errs, errors.New("QUERY_TIMEOUT must not be negative"))
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ValidateDashboard checks the settings used by the dashboard client.
func (c *Config) ValidateDashboard() error {
	var errs []error
	u, err := url.Parse(c.Dashboard.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("DASHBOARD_API_URL must be an http(s) URL, got '%s'", c.Dashboard.APIURL))
	}
	if c.Dashboard.Timeout <= 0 {
		errs = append(errs, errors.New("DASHBOARD_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getSliceEnv splits a comma separated value, trimming blanks.
func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
