package main

import (
	"fmt"
	"log"
	"os"

	"github.com/storelens/resolver/config"
	httpDelivery "github.com/storelens/resolver/internal/delivery/http"
	"github.com/storelens/resolver/internal/domain"
	"github.com/storelens/resolver/internal/infrastructure/cache"
	"github.com/storelens/resolver/internal/infrastructure/newegg"
	"github.com/storelens/resolver/internal/infrastructure/scraperapi"
	"github.com/storelens/resolver/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Storelens Resolver v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Proxy: %s (key: %s...)", cfg.Proxy.BaseURL, keyPreview(cfg.Proxy.APIKey))
	log.Printf("Request interval: %s, workers: %d", cfg.Resolve.RequestInterval, cfg.Resolve.Workers)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	proxy := scraperapi.NewClient(cfg.Proxy.APIKey, cfg.Proxy.BaseURL, cfg.Proxy.Timeout, cfg.Resolve.RequestInterval)

	// Source adapters in fallback order
	adapters := []domain.SourceAdapter{
		newegg.NewRealtimeAdapter(proxy, cfg.Newegg.RealtimeURL),
		newegg.NewCompareAdapter(proxy, cfg.Newegg.CompareURL),
		scraperapi.NewAutoparseAdapter(proxy),
	}

	// Initialize usecase layer
	resolver := usecase.NewResolverService(
		memoryCache,
		proxy,
		adapters,
		usecase.ResolverConfig{
			CacheTTL: cfg.Cache.TTL,
			Workers:  cfg.Resolve.Workers,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(resolver)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// keyPreview returns the first few characters of a credential for log
// lines, tolerating keys shorter than the preview.
func keyPreview(key string) string {
	if len(key) > 4 {
		return key[:4]
	}
	return key
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
