package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("RESOLVER_SERVER_PORT")
		os.Unsetenv("RESOLVER_SERVER_ENVIRONMENT")
		os.Unsetenv("RESOLVER_PROXY_API_KEY")
		os.Unsetenv("RESOLVER_PROXY_BASE_URL")
		os.Unsetenv("RESOLVER_PROXY_TIMEOUT")
		os.Unsetenv("RESOLVER_NEWEGG_REALTIME_URL")
		os.Unsetenv("RESOLVER_NEWEGG_COMPARE_URL")
		os.Unsetenv("RESOLVER_RESOLVE_REQUEST_INTERVAL")
		os.Unsetenv("RESOLVER_RESOLVE_WORKERS")
		os.Unsetenv("RESOLVER_CACHE_TYPE")
		os.Unsetenv("RESOLVER_CACHE_REDIS_URL")
		os.Unsetenv("RESOLVER_CACHE_TTL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		// Set required API key
		os.Setenv("RESOLVER_PROXY_API_KEY", "test-key")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Proxy.BaseURL != "https://api.scraperapi.com" {
			t.Errorf("Proxy.BaseURL = %s, want https://api.scraperapi.com", cfg.Proxy.BaseURL)
		}
		if cfg.Proxy.Timeout != 60*time.Second {
			t.Errorf("Proxy.Timeout = %v, want 60s", cfg.Proxy.Timeout)
		}
		if cfg.Newegg.RealtimeURL != "https://www.newegg.com/product/api/ProductRealtime" {
			t.Errorf("Newegg.RealtimeURL = %s", cfg.Newegg.RealtimeURL)
		}
		if cfg.Newegg.CompareURL != "https://www.newegg.com/product/api/CompareRecommendsItem" {
			t.Errorf("Newegg.CompareURL = %s", cfg.Newegg.CompareURL)
		}
		if cfg.Resolve.RequestInterval != time.Second {
			t.Errorf("Resolve.RequestInterval = %v, want 1s", cfg.Resolve.RequestInterval)
		}
		if cfg.Resolve.Workers != 1 {
			t.Errorf("Resolve.Workers = %d, want 1", cfg.Resolve.Workers)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("RESOLVER_SERVER_PORT", "9090")
		os.Setenv("RESOLVER_SERVER_ENVIRONMENT", "production")
		os.Setenv("RESOLVER_PROXY_API_KEY", "custom-api-key")
		os.Setenv("RESOLVER_PROXY_TIMEOUT", "30s")
		os.Setenv("RESOLVER_RESOLVE_WORKERS", "8")
		os.Setenv("RESOLVER_CACHE_TYPE", "redis")
		os.Setenv("RESOLVER_CACHE_REDIS_URL", "redis://localhost:6379")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Proxy.APIKey != "custom-api-key" {
			t.Errorf("Proxy.APIKey = %s, want custom-api-key", cfg.Proxy.APIKey)
		}
		if cfg.Proxy.Timeout != 30*time.Second {
			t.Errorf("Proxy.Timeout = %v, want 30s", cfg.Proxy.Timeout)
		}
		if cfg.Resolve.Workers != 8 {
			t.Errorf("Resolve.Workers = %d, want 8", cfg.Resolve.Workers)
		}
		if cfg.Cache.Type != "redis" {
			t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
		}
	})

	t.Run("fails without proxy api key", func(t *testing.T) {
		cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want missing api key error")
		}
	})

	t.Run("fails when redis cache has no url", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("RESOLVER_PROXY_API_KEY", "test-key")
		os.Setenv("RESOLVER_CACHE_TYPE", "redis")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want missing redis url error")
		}
	})
}
