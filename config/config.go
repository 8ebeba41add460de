package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Cache     CacheConfig
	Providers ProvidersConfig
	Pricing   PricingConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CacheConfig holds price cache configuration
type CacheConfig struct {
	Type      string        `mapstructure:"type"` // "memory" or "redis"
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// ProvidersConfig holds live pricing provider configuration
type ProvidersConfig struct {
	// LookupTimeout bounds each individual provider call
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"`
	Kroger        KrogerConfig  `mapstructure:"kroger"`
}

// KrogerConfig holds Kroger Products API configuration
type KrogerConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BaseURL  string `mapstructure:"base_url"`
	APIToken string `mapstructure:"api_token"`
}

// PricingConfig holds the fallback pricing heuristics applied when no
// catalog entry matches
type PricingConfig struct {
	FallbackPerKg   float64 `mapstructure:"fallback_per_kg"`
	SmallCountEach  float64 `mapstructure:"small_count_each"`
	MediumCountEach float64 `mapstructure:"medium_count_each"`
	BulkCountEach   float64 `mapstructure:"bulk_count_each"`
}

// RateLimitConfig holds HTTP rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/platecost/")

	// Environment variable settings
	v.SetEnvPrefix("PLATECOST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.ttl", "1h")

	// Provider defaults
	v.SetDefault("providers.lookup_timeout", "5s")
	v.SetDefault("providers.kroger.enabled", false)
	v.SetDefault("providers.kroger.base_url", "https://api.kroger.com")
	v.SetDefault("providers.kroger.api_token", "")

	// Fallback pricing defaults
	v.SetDefault("pricing.fallback_per_kg", 6.00)
	v.SetDefault("pricing.small_count_each", 2.50)
	v.SetDefault("pricing.medium_count_each", 1.00)
	v.SetDefault("pricing.bulk_count_each", 0.50)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisAddr == "" {
		return fmt.Errorf("redis address is required when cache type is 'redis'")
	}

	if config.Providers.Kroger.Enabled && config.Providers.Kroger.APIToken == "" {
		return fmt.Errorf("Kroger API token is required when the provider is enabled (set PLATECOST_PROVIDERS_KROGER_API_TOKEN)")
	}

	return nil
}
