package newegg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockFromJSON(t *testing.T, raw string) itemBlock {
	t.Helper()
	var block itemBlock
	require.NoError(t, json.Unmarshal([]byte(raw), &block))
	return block
}

func TestMapBlock(t *testing.T) {
	t.Run("full block", func(t *testing.T) {
		block := blockFromJSON(t, `{
			"Description": {"Title": "GeForce RTX 4070", "BulletDescription": "  12GB GDDR6X \n\n PCIe 4.0 \n"},
			"FinalPrice": 599.99,
			"Seller": {"SellerName": "GPU World"},
			"Review": {"RatingOneDecimal": "4.7", "Rating": 5}
		}`)

		record := mapBlock(block, "https://www.newegg.com/p/X")

		assert.Equal(t, "https://www.newegg.com/p/X", record.URL)
		assert.Equal(t, "GeForce RTX 4070", record.Title)
		assert.Equal(t, "12GB GDDR6X | PCIe 4.0", record.Description)
		assert.Equal(t, "599.99", record.Price)
		assert.Equal(t, "GPU World", record.Seller)
		assert.Equal(t, "4.7", record.Rating)
	})

	t.Run("missing seller defaults to platform", func(t *testing.T) {
		block := blockFromJSON(t, `{"Description": {"Title": "Item"}, "FinalPrice": "12.50"}`)

		record := mapBlock(block, "u")

		assert.Equal(t, "Newegg", record.Seller)
		assert.Equal(t, "12.50", record.Price)
	})

	t.Run("sentinel price maps to empty", func(t *testing.T) {
		block := blockFromJSON(t, `{"Description": {"Title": "Item"}, "FinalPrice": 100004}`)

		assert.Equal(t, "", mapBlock(block, "u").Price)
	})

	t.Run("rating falls back to coarse field", func(t *testing.T) {
		block := blockFromJSON(t, `{"Review": {"Rating": 4}}`)

		assert.Equal(t, "4", mapBlock(block, "u").Rating)
	})

	t.Run("empty block yields blank fields", func(t *testing.T) {
		record := mapBlock(itemBlock{}, "u")

		assert.Equal(t, "", record.Title)
		assert.Equal(t, "", record.Price)
		assert.Equal(t, "", record.Rating)
		assert.Equal(t, "Newegg", record.Seller)
	})
}

func TestPickOffer(t *testing.T) {
	t.Run("prefers offer with price and seller name", func(t *testing.T) {
		var offers []itemBlock
		require.NoError(t, json.Unmarshal([]byte(`[
			{"FinalPrice": null},
			{"FinalPrice": 10, "Seller": {"SellerName": "X"}},
			{"FinalPrice": 5}
		]`), &offers))

		assert.Equal(t, "X", pickOffer(offers).Seller.SellerName)
	})

	t.Run("falls back to first offer with any price", func(t *testing.T) {
		var offers []itemBlock
		require.NoError(t, json.Unmarshal([]byte(`[
			{"FinalPrice": null},
			{"FinalPrice": 5, "Description": {"Title": "second"}},
			{"FinalPrice": 10, "Description": {"Title": "third"}}
		]`), &offers))

		assert.Equal(t, "second", pickOffer(offers).Description.Title)
	})

	t.Run("no priced offer yields empty block", func(t *testing.T) {
		var offers []itemBlock
		require.NoError(t, json.Unmarshal([]byte(`[{"FinalPrice": null}, {"FinalPrice": ""}]`), &offers))

		assert.Equal(t, itemBlock{}, pickOffer(offers))
	})

	t.Run("empty list yields empty block", func(t *testing.T) {
		assert.Equal(t, itemBlock{}, pickOffer(nil))
	})
}
