package domain

import (
	"context"
	"time"
)

// Target identifies one product to a source adapter. ItemNumber is the
// catalog code from the /p/ path segment; it is empty only for sources
// keyed by raw URL.
type Target struct {
	URL        string
	ItemNumber string
}

// SourceAdapter is one upstream source in the fallback chain. Attempt
// returns the mapped record, which may be partial or nil; transport and
// decode failures surface as errors and are absorbed by the caller.
type SourceAdapter interface {
	Name() string
	Status() Status
	Attempt(ctx context.Context, target Target) (*ProductRecord, error)
}

// PageFetcher retrieves rendered product-page markup for a URL. An empty
// string means the page could not be fetched.
type PageFetcher interface {
	FetchHTML(ctx context.Context, url string) string
}

// CacheRepository defines the interface for caching resolved outcomes
type CacheRepository interface {
	Get(ctx context.Context, key string) (*Outcome, error)
	Set(ctx context.Context, key string, value *Outcome, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
