package scraperapi

import (
	"context"

	"github.com/storelens/resolver/internal/domain"
	"github.com/storelens/resolver/internal/normalize"
)

// priceKeys are the field names the auto-extraction service has been
// seen using for a price, tried in priority order.
var priceKeys = []string{
	"price",
	"sale_price", "salePrice",
	"original_price", "originalPrice",
	"list_price", "listPrice",
}

// AutoparseAdapter resolves a record through the proxy's generic
// auto-extraction, keyed by raw URL. It is the last source in the
// fallback chain and needs no item number.
type AutoparseAdapter struct {
	client *Client
}

// NewAutoparseAdapter creates the auto-extraction source adapter.
func NewAutoparseAdapter(client *Client) *AutoparseAdapter {
	return &AutoparseAdapter{client: client}
}

func (a *AutoparseAdapter) Name() string { return "autoparse" }

func (a *AutoparseAdapter) Status() domain.Status { return domain.StatusAutoparse }

// autoparsePayload is the loosely-shaped auto-extraction response. The
// pricing object stays generic because its key set varies by site.
type autoparsePayload struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Seller      string                 `json:"seller"`
	Rating      interface{}            `json:"rating"`
	Pricing     map[string]interface{} `json:"pricing"`
}

// Attempt fetches and maps the auto-extraction payload.
func (a *AutoparseAdapter) Attempt(ctx context.Context, target domain.Target) (*domain.ProductRecord, error) {
	var payload autoparsePayload
	if err := a.client.GetJSON(ctx, a.client.AutoparseURL(target.URL), false, &payload); err != nil {
		return nil, err
	}

	return &domain.ProductRecord{
		URL:         target.URL,
		Title:       payload.Title,
		Description: normalize.TidyText(payload.Description),
		Price:       normalize.Price(pickPrice(payload.Pricing)),
		Seller:      payload.Seller,
		Rating:      normalize.Stringify(payload.Rating),
	}, nil
}

// pickPrice returns the first non-empty price-like value.
func pickPrice(pricing map[string]interface{}) interface{} {
	for _, key := range priceKeys {
		v, ok := pricing[key]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && s == "" {
			continue
		}
		return v
	}
	return nil
}
