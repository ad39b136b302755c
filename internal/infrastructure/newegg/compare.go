package newegg

import (
	"context"
	"fmt"
	"net/url"

	"github.com/storelens/resolver/internal/domain"
	"github.com/storelens/resolver/internal/infrastructure/scraperapi"
)

// CompareAdapter queries the CompareRecommendsItem API, which returns a
// list of offers for the item. Second in the fallback chain.
type CompareAdapter struct {
	proxy    *scraperapi.Client
	endpoint string
}

// NewCompareAdapter creates the compare source adapter. endpoint is the
// CompareRecommendsItem API base URL.
func NewCompareAdapter(proxy *scraperapi.Client, endpoint string) *CompareAdapter {
	return &CompareAdapter{proxy: proxy, endpoint: endpoint}
}

func (a *CompareAdapter) Name() string { return "compare" }

func (a *CompareAdapter) Status() domain.Status { return domain.StatusCompare }

// Attempt fetches the offer list and maps the best offer. The item
// number goes into both the compare and parent item parameters; the API
// expects the base item duplicated that way.
func (a *CompareAdapter) Attempt(ctx context.Context, target domain.Target) (*domain.ProductRecord, error) {
	params := url.Values{}
	params.Add("compareItemList", target.ItemNumber)
	params.Add("smc", "10")
	params.Add("isNeedBaseItemDeactivateInfo", "true")
	params.Add("parentItemList", target.ItemNumber)
	reqURL := fmt.Sprintf("%s?%s", a.endpoint, params.Encode())

	var offers []itemBlock
	if err := a.proxy.GetJSON(ctx, reqURL, true, &offers); err != nil {
		return nil, err
	}

	return mapBlock(pickOffer(offers), target.URL), nil
}
