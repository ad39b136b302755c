package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/storelens/resolver/config"
	"github.com/storelens/resolver/internal/domain"
	"github.com/storelens/resolver/internal/infrastructure/cache"
	"github.com/storelens/resolver/internal/infrastructure/newegg"
	"github.com/storelens/resolver/internal/infrastructure/scraperapi"
	"github.com/storelens/resolver/internal/usecase"
)

var csvHeader = []string{"url", "title", "description", "price", "seller", "rating"}

func main() {
	urlsFile := flag.String("urls", "urls.txt", "file with one product URL per line")
	outFile := flag.String("out", "products.csv", "output CSV file")
	failedFile := flag.String("failed", "failed_urls.txt", "file for URLs that produced no usable data")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	urls, err := readURLs(*urlsFile)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *urlsFile, err)
	}
	log.Printf("Resolving %d URLs with %d worker(s)", len(urls), cfg.Resolve.Workers)

	proxy := scraperapi.NewClient(cfg.Proxy.APIKey, cfg.Proxy.BaseURL, cfg.Proxy.Timeout, cfg.Resolve.RequestInterval)
	adapters := []domain.SourceAdapter{
		newegg.NewRealtimeAdapter(proxy, cfg.Newegg.RealtimeURL),
		newegg.NewCompareAdapter(proxy, cfg.Newegg.CompareURL),
		scraperapi.NewAutoparseAdapter(proxy),
	}
	resolver := usecase.NewResolverService(
		cache.NewMemoryCache(),
		proxy,
		adapters,
		usecase.ResolverConfig{
			CacheTTL: cfg.Cache.TTL,
			Workers:  cfg.Resolve.Workers,
		},
	)

	outcomes := resolver.ResolveBatch(context.Background(), urls)

	kept, err := writeCSV(*outFile, outcomes)
	if err != nil {
		log.Fatalf("Failed to write %s: %v", *outFile, err)
	}

	failed := usecase.FailedURLs(outcomes)
	if len(failed) > 0 {
		if err := os.WriteFile(*failedFile, []byte(strings.Join(failed, "\n")+"\n"), 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", *failedFile, err)
		}
	}

	log.Printf("Done: %s (%d rows)", *outFile, kept)
	if len(failed) > 0 {
		log.Printf("Skipped %d URL(s) with no usable data: %s", len(failed), *failedFile)
	}
}

// readURLs loads non-blank lines from the input file.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	return urls, scanner.Err()
}

// writeCSV writes the usable records, preserving input order, and
// returns how many rows were kept.
func writeCSV(path string, outcomes []*domain.Outcome) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return 0, err
	}

	kept := 0
	for _, outcome := range outcomes {
		if outcome == nil || outcome.Failed() {
			continue
		}
		r := outcome.Record
		if err := w.Write([]string{r.URL, r.Title, r.Description, r.Price, r.Seller, r.Rating}); err != nil {
			return kept, err
		}
		kept++
	}

	w.Flush()
	return kept, w.Error()
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
