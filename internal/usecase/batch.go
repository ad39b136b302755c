package usecase

import (
	"context"
	"log"
	"sync"

	"github.com/storelens/resolver/internal/domain"
)

// ResolveBatch resolves a list of URLs with a bounded worker pool.
// Results come back in input order; each URL's adapter chain stays
// strictly sequential inside its worker, and the shared client rate
// limiter preserves inter-request spacing across workers.
func (s *ResolverService) ResolveBatch(ctx context.Context, urls []string) []*domain.Outcome {
	outcomes := make([]*domain.Outcome, len(urls))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = s.Resolve(ctx, urls[i])
				log.Printf("[RESOLVE] %d/%d %s %s", i+1, len(urls), outcomes[i].Status, urls[i])
			}
		}()
	}

	for i := range urls {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

// FailedURLs collects the URLs that produced a terminal bad-url or
// empty outcome, for the caller to surface or retry.
func FailedURLs(outcomes []*domain.Outcome) []string {
	var failed []string
	for _, outcome := range outcomes {
		if outcome != nil && outcome.Failed() {
			failed = append(failed, outcome.Record.URL)
		}
	}
	return failed
}
