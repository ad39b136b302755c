package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Proxy   ProxyConfig
	Newegg  NeweggConfig
	Resolve ResolveConfig
	Cache   CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProxyConfig holds ScraperAPI proxy configuration
type ProxyConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// NeweggConfig holds the structured API endpoints
type NeweggConfig struct {
	RealtimeURL string `mapstructure:"realtime_url"`
	CompareURL  string `mapstructure:"compare_url"`
}

// ResolveConfig holds resolution pipeline configuration
type ResolveConfig struct {
	RequestInterval time.Duration `mapstructure:"request_interval"`
	Workers         int           `mapstructure:"workers"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/storelens/")

	// Environment variable settings
	v.SetEnvPrefix("RESOLVER")
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
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Proxy defaults
	v.SetDefault("proxy.base_url", "https://api.scraperapi.com")
	v.SetDefault("proxy.timeout", "60s")

	// Newegg API defaults
	v.SetDefault("newegg.realtime_url", "https://www.newegg.com/product/api/ProductRealtime")
	v.SetDefault("newegg.compare_url", "https://www.newegg.com/product/api/CompareRecommendsItem")

	// Resolution defaults
	v.SetDefault("resolve.request_interval", "1s")
	v.SetDefault("resolve.workers", 1)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Proxy.APIKey == "" {
		return fmt.Errorf("proxy API key is required (set RESOLVER_PROXY_API_KEY)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Resolve.Workers < 1 {
		return fmt.Errorf("resolve workers must be at least 1, got: %d", config.Resolve.Workers)
	}

	return nil
}
