package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the top-level configuration for the site server
type Config struct {
	Server ServerConfig `json:"server"`
	Site   SiteConfig   `json:"site"`
	Views  ViewsConfig  `json:"views"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	Env            string        `json:"env"`
	ReadTimeout    time.Duration `json:"readTimeout"`
	WriteTimeout   time.Duration `json:"writeTimeout"`
	EnableCORS     bool          `json:"enableCors"`
	AllowedOrigins string        `json:"allowedOrigins"`
}

// SiteConfig holds site identity used by page templates
type SiteConfig struct {
	Name        string `json:"name"`
	BaseURL     string `json:"baseUrl"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// ViewsConfig holds view-counter store configuration
type ViewsConfig struct {
	Backend   string         `json:"backend"`
	KeyPrefix string         `json:"keyPrefix"`
	Redis     RedisConfig    `json:"redis"`
	Postgres  PostgresConfig `json:"postgres"`
}

// RedisConfig holds Redis-specific configuration.
// URL is the hosted-store form (rediss://default:<token>@host:port) and takes
// precedence over the discrete Address/Password/Database fields when set.
type RedisConfig struct {
	URL          string        `json:"url"`
	Address      string        `json:"address"`
	Password     string        `json:"password"`
	Database     int           `json:"database"`
	PoolSize     int           `json:"poolSize"`
	MinIdleConns int           `json:"minIdleConns"`
	DialTimeout  time.Duration `json:"dialTimeout"`
	ReadTimeout  time.Duration `json:"readTimeout"`
	WriteTimeout time.Duration `json:"writeTimeout"`
}

// PostgresConfig holds PostgreSQL-specific configuration
type PostgresConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	Database        string        `json:"database"`
	SSLMode         string        `json:"sslMode"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
	ConnectTimeout  int           `json:"connectTimeout"`
}

// Valid view-counter backends
const (
	ViewsBackendRedis    = "redis"
	ViewsBackendPostgres = "postgres"
	ViewsBackendMemory   = "memory"
)

// LoadFromEnv loads configuration from the environment.
// It follows a clear precedence:
// 1. Explicit Environment Variables (e.g., set in the shell or by CI)
// 2. Values from the .env file (if it exists)
// 3. Hardcoded defaults
func LoadFromEnv() (*Config, error) {
	// godotenv.Load() reads the .env file and loads its values into the
	// environment for this process only if they are not already set, which
	// gives the precedence above. Try a few likely locations.
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	var loadErr error
	for _, envPath := range envPaths {
		loadErr = godotenv.Load(envPath)
		if loadErr == nil {
			break
		}
	}

	if loadErr != nil {
		// Not an error: running without a .env file is the normal
		// deployment mode.
		fmt.Println("INFO: .env file not found, using environment variables and defaults.")
	}

	config := &Config{
		Server: ServerConfig{
			Host:           getEnvOrDefault("HOST", ""),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Env:            getEnvOrDefault("APP_ENV", "development"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			EnableCORS:     getEnvAsBool("ENABLE_CORS", false),
			AllowedOrigins: getEnvOrDefault("ALLOWED_ORIGINS", ""),
		},
		Site: SiteConfig{
			Name:        getEnvOrDefault("SITE_NAME", "solstack.dev"),
			BaseURL:     getEnvOrDefault("SITE_BASE_URL", "http://localhost:8080"),
			Author:      getEnvOrDefault("SITE_AUTHOR", "solstack"),
			Description: getEnvOrDefault("SITE_DESCRIPTION", "Notes on smart contracts, EVM internals, and backend engineering."),
		},
		Views: ViewsConfig{
			Backend:   getEnvOrDefault("VIEWS_BACKEND", ViewsBackendRedis),
			KeyPrefix: getEnvOrDefault("VIEWS_KEY_PREFIX", "pageviews:posts:"),
			Redis: RedisConfig{
				URL:          getEnvOrDefault("REDIS_URL", ""),
				Address:      getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:     getEnvOrDefault("REDIS_PASSWORD", ""),
				Database:     getEnvAsInt("REDIS_DATABASE", 0),
				PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				DialTimeout:  getEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:  getEnvAsDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout: getEnvAsDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			},
			Postgres: PostgresConfig{
				Host:            getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:            getEnvAsInt("POSTGRES_PORT", 5432),
				Username:        getEnvOrDefault("POSTGRES_USERNAME", ""),
				Password:        getEnvOrDefault("POSTGRES_PASSWORD", ""),
				Database:        getEnvOrDefault("POSTGRES_DATABASE", "site"),
				SSLMode:         getEnvOrDefault("POSTGRES_SSL_MODE", "disable"),
				MaxOpenConns:    getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 10),
				MaxIdleConns:    getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 5),
				ConnMaxLifetime: time.Duration(getEnvAsInt("POSTGRES_CONN_MAX_LIFETIME", 300)) * time.Second,
				ConnectTimeout:  getEnvAsInt("POSTGRES_CONNECT_TIMEOUT", 10),
			},
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadFromMap loads configuration from an in-memory map.
// This is the primary helper for testing configuration logic in isolation
// without manipulating global environment variables.
func LoadFromMap(envMap map[string]string) (*Config, error) {
	get := func(key, defaultValue string) string {
		if value, exists := envMap[key]; exists {
			return value
		}
		return defaultValue
	}

	getInt := func(key string, defaultValue int) int {
		if value, exists := envMap[key]; exists {
			if intValue, err := strconv.Atoi(value); err == nil {
				return intValue
			}
		}
		return defaultValue
	}

	getBool := func(key string, defaultValue bool) bool {
		if value, exists := envMap[key]; exists {
			if boolValue, err := strconv.ParseBool(value); err == nil {
				return boolValue
			}
		}
		return defaultValue
	}

	getDuration := func(key string, defaultValue time.Duration) time.Duration {
		if value, exists := envMap[key]; exists {
			if duration, err := time.ParseDuration(value); err == nil {
				return duration
			}
		}
		return defaultValue
	}

	config := &Config{
		Server: ServerConfig{
			Host:           get("HOST", ""),
			Port:           getInt("SERVER_PORT", 8080),
			Env:            get("APP_ENV", "development"),
			ReadTimeout:    getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			EnableCORS:     getBool("ENABLE_CORS", false),
			AllowedOrigins: get("ALLOWED_ORIGINS", ""),
		},
		Site: SiteConfig{
			Name:        get("SITE_NAME", "solstack.dev"),
			BaseURL:     get("SITE_BASE_URL", "http://localhost:8080"),
			Author:      get("SITE_AUTHOR", "solstack"),
			Description: get("SITE_DESCRIPTION", "Notes on smart contracts, EVM internals, and backend engineering."),
		},
		Views: ViewsConfig{
			Backend:   get("VIEWS_BACKEND", ViewsBackendRedis),
			KeyPrefix: get("VIEWS_KEY_PREFIX", "pageviews:posts:"),
			Redis: RedisConfig{
				URL:          get("REDIS_URL", ""),
				Address:      get("REDIS_ADDRESS", "localhost:6379"),
				Password:     get("REDIS_PASSWORD", ""),
				Database:     getInt("REDIS_DATABASE", 0),
				PoolSize:     getInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
				DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			},
			Postgres: PostgresConfig{
				Host:            get("POSTGRES_HOST", "localhost"),
				Port:            getInt("POSTGRES_PORT", 5432),
				Username:        get("POSTGRES_USERNAME", ""),
				Password:        get("POSTGRES_PASSWORD", ""),
				Database:        get("POSTGRES_DATABASE", "site"),
				SSLMode:         get("POSTGRES_SSL_MODE", "disable"),
				MaxOpenConns:    getInt("POSTGRES_MAX_OPEN_CONNS", 10),
				MaxIdleConns:    getInt("POSTGRES_MAX_IDLE_CONNS", 5),
				ConnMaxLifetime: time.Duration(getInt("POSTGRES_CONN_MAX_LIFETIME", 300)) * time.Second,
				ConnectTimeout:  getInt("POSTGRES_CONNECT_TIMEOUT", 10),
			},
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields
func (c *Config) Validate() error {
	var errors []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port))
	}

	validBackends := []string{ViewsBackendRedis, ViewsBackendPostgres, ViewsBackendMemory}
	if !contains(validBackends, c.Views.Backend) {
		errors = append(errors, fmt.Sprintf("VIEWS_BACKEND must be one of: %s", strings.Join(validBackends, ", ")))
	}

	if strings.TrimSpace(c.Views.KeyPrefix) == "" {
		errors = append(errors, "VIEWS_KEY_PREFIX is required")
	}

	switch c.Views.Backend {
	case ViewsBackendRedis:
		if c.Views.Redis.URL == "" && c.Views.Redis.Address == "" {
			errors = append(errors, "REDIS_URL or REDIS_ADDRESS is required when VIEWS_BACKEND is redis")
		}
	case ViewsBackendPostgres:
		if strings.TrimSpace(c.Views.Postgres.Host) == "" {
			errors = append(errors, "POSTGRES_HOST is required when VIEWS_BACKEND is postgres")
		}
		if strings.TrimSpace(c.Views.Postgres.Database) == "" {
			errors = append(errors, "POSTGRES_DATABASE is required when VIEWS_BACKEND is postgres")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Helper functions
func getEnvOrDefault(key, defaultValue string) string {
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
