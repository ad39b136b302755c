package newegg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelens/resolver/internal/domain"
	"github.com/storelens/resolver/internal/infrastructure/scraperapi"
)

func proxyFor(server *httptest.Server) *scraperapi.Client {
	return scraperapi.NewClient("test-key", server.URL, 5*time.Second, 0)
}

func TestRealtimeAdapterAttempt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Proxied request: the real endpoint travels in the url param.
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Contains(t, r.URL.Query().Get("url"), "ItemNumber=N82E1")
		assert.Contains(t, r.URL.Query().Get("url"), "IsVATPrice=true")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"MainItem": {
			"Description": {"Title": "Realtime Item", "BulletDescription": "a\nb"},
			"FinalPrice": "149.99",
			"Seller": {"SellerName": "Acme"},
			"Review": {"RatingOneDecimal": "4.2"}
		}}`))
	}))
	defer server.Close()

	adapter := NewRealtimeAdapter(proxyFor(server), "https://www.newegg.com/product/api/ProductRealtime")
	target := domain.Target{URL: "https://www.newegg.com/p/N82E1", ItemNumber: "N82E1"}

	record, err := adapter.Attempt(context.Background(), target)

	require.NoError(t, err)
	assert.Equal(t, "Realtime Item", record.Title)
	assert.Equal(t, "a | b", record.Description)
	assert.Equal(t, "149.99", record.Price)
	assert.Equal(t, "Acme", record.Seller)
	assert.Equal(t, "4.2", record.Rating)
	assert.Equal(t, target.URL, record.URL)
}

func TestRealtimeAdapterDecodeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>blocked</html>"))
	}))
	defer server.Close()

	adapter := NewRealtimeAdapter(proxyFor(server), "https://www.newegg.com/product/api/ProductRealtime")

	record, err := adapter.Attempt(context.Background(), domain.Target{URL: "u", ItemNumber: "N"})

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestCompareAdapterAttempt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The item number feeds both list parameters.
		wrapped := r.URL.Query().Get("url")
		assert.Contains(t, wrapped, "compareItemList=N82E1")
		assert.Contains(t, wrapped, "parentItemList=N82E1")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"FinalPrice": null, "Description": {"Title": "No price"}},
			{"FinalPrice": 89.99, "Seller": {"SellerName": "Best Offer"}, "Description": {"Title": "Winner"}}
		]`))
	}))
	defer server.Close()

	adapter := NewCompareAdapter(proxyFor(server), "https://www.newegg.com/product/api/CompareRecommendsItem")
	target := domain.Target{URL: "https://www.newegg.com/p/N82E1", ItemNumber: "N82E1"}

	record, err := adapter.Attempt(context.Background(), target)

	require.NoError(t, err)
	assert.Equal(t, "Winner", record.Title)
	assert.Equal(t, "89.99", record.Price)
	assert.Equal(t, "Best Offer", record.Seller)
}

func TestCompareAdapterEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	adapter := NewCompareAdapter(proxyFor(server), "https://www.newegg.com/product/api/CompareRecommendsItem")

	record, err := adapter.Attempt(context.Background(), domain.Target{URL: "u", ItemNumber: "N"})

	require.NoError(t, err)
	assert.Equal(t, "", record.Title)
	assert.Equal(t, "Newegg", record.Seller)
}
