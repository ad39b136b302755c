package usecase

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/storelens/resolver/internal/domain"
	"github.com/storelens/resolver/internal/extract"
)

// itemNumberRegex captures the catalog item number from the /p/ path
// segment of a product URL.
var itemNumberRegex = regexp.MustCompile(`(?i)/p/([^/?#]+)`)

// ItemNumber extracts the catalog item number from a product URL, or ""
// when the URL carries none.
func ItemNumber(url string) string {
	if m := itemNumberRegex.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// ResolverConfig holds configuration for the resolver service
type ResolverConfig struct {
	CacheTTL time.Duration
	Workers  int
}

// ResolverService resolves canonical product records by walking an
// ordered chain of source adapters and falling back until one produces
// a usable record.
type ResolverService struct {
	adapters []domain.SourceAdapter
	fetcher  domain.PageFetcher
	cache    domain.CacheRepository
	cacheTTL time.Duration
	workers  int
}

// NewResolverService creates a resolver service. Adapter order is the
// fallback order and is fixed for the life of the service.
func NewResolverService(
	cache domain.CacheRepository,
	fetcher domain.PageFetcher,
	adapters []domain.SourceAdapter,
	config ResolverConfig,
) *ResolverService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	workers := config.Workers
	if workers < 1 {
		workers = 1
	}

	return &ResolverService{
		adapters: adapters,
		fetcher:  fetcher,
		cache:    cache,
		cacheTTL: cacheTTL,
		workers:  workers,
	}
}

// Resolve produces the terminal outcome for one product URL. Source
// failures of any kind advance the chain to the next adapter; Resolve
// itself never fails.
func (s *ResolverService) Resolve(ctx context.Context, url string) *domain.Outcome {
	url = strings.TrimSpace(url)

	cacheKey := "resolve:" + url
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		return cached
	}

	item := ItemNumber(url)
	if item == "" {
		return &domain.Outcome{Status: domain.StatusBadURL, Record: domain.BlankRecord(url)}
	}

	target := domain.Target{URL: url, ItemNumber: item}

	for _, adapter := range s.adapters {
		record, err := adapter.Attempt(ctx, target)
		if err != nil {
			log.Printf("[RESOLVE] %s source failed for %s: %v", adapter.Name(), url, err)
			continue
		}

		// Structured sources get an unconditional enrichment pass; the
		// last-resort source already extracts from the page, so it is
		// patched only when mapping produced no title.
		if adapter.Status() != domain.StatusAutoparse || !record.Usable() {
			extract.FillMissing(ctx, s.fetcher, record)
		}

		if record.Usable() {
			outcome := &domain.Outcome{Status: adapter.Status(), Record: record}
			if err := s.cache.Set(ctx, cacheKey, outcome, s.cacheTTL); err != nil {
				log.Printf("[RESOLVE] cache set failed for %s: %v", url, err)
			}
			return outcome
		}
	}

	return &domain.Outcome{Status: domain.StatusEmpty, Record: domain.BlankRecord(url)}
}
