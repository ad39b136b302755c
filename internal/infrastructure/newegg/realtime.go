package newegg

import (
	"context"
	"fmt"
	"net/url"

	"github.com/storelens/resolver/internal/domain"
	"github.com/storelens/resolver/internal/infrastructure/scraperapi"
)

// RealtimeAdapter queries the ProductRealtime API, the richest and
// first-tried source.
type RealtimeAdapter struct {
	proxy    *scraperapi.Client
	endpoint string
}

// NewRealtimeAdapter creates the realtime source adapter. endpoint is
// the ProductRealtime API base URL.
func NewRealtimeAdapter(proxy *scraperapi.Client, endpoint string) *RealtimeAdapter {
	return &RealtimeAdapter{proxy: proxy, endpoint: endpoint}
}

func (a *RealtimeAdapter) Name() string { return "realtime" }

func (a *RealtimeAdapter) Status() domain.Status { return domain.StatusRealtime }

type realtimePayload struct {
	MainItem itemBlock `json:"MainItem"`
}

// Attempt fetches the realtime payload for the target's item number and
// maps its main item.
func (a *RealtimeAdapter) Attempt(ctx context.Context, target domain.Target) (*domain.ProductRecord, error) {
	params := url.Values{}
	params.Add("ItemNumber", target.ItemNumber)
	params.Add("IsVATPrice", "true")
	reqURL := fmt.Sprintf("%s?%s", a.endpoint, params.Encode())

	var payload realtimePayload
	if err := a.proxy.GetJSON(ctx, reqURL, true, &payload); err != nil {
		return nil, err
	}

	return mapBlock(payload.MainItem, target.URL), nil
}
