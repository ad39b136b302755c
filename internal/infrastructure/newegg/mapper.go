// Package newegg resolves product records from Newegg's structured
// product APIs, keyed by the catalog item number.
package newegg

import (
	"github.com/storelens/resolver/internal/domain"
	"github.com/storelens/resolver/internal/normalize"
)

// itemBlock is the item shape shared by the realtime payload's MainItem
// and each offer of the compare payload. FinalPrice stays untyped: the
// API returns it as number or string depending on the item state.
type itemBlock struct {
	Description struct {
		Title             string `json:"Title"`
		BulletDescription string `json:"BulletDescription"`
	} `json:"Description"`
	FinalPrice interface{} `json:"FinalPrice"`
	Seller     struct {
		SellerName string `json:"SellerName"`
	} `json:"Seller"`
	Review struct {
		RatingOneDecimal interface{} `json:"RatingOneDecimal"`
		Rating           interface{} `json:"Rating"`
	} `json:"Review"`
}

// mapBlock converts one item block into the canonical record.
func mapBlock(block itemBlock, url string) *domain.ProductRecord {
	rating := normalize.Stringify(block.Review.RatingOneDecimal)
	if rating == "" {
		rating = normalize.Stringify(block.Review.Rating)
	}

	return &domain.ProductRecord{
		URL:         url,
		Title:       block.Description.Title,
		Description: normalize.TidyText(block.Description.BulletDescription),
		Price:       normalize.Price(block.FinalPrice),
		Seller:      normalize.Seller(block.Seller.SellerName),
		Rating:      rating,
	}
}

// hasPrice reports whether the block carries any final price at all,
// sentinel or not. Offer selection works on raw presence; the sentinel
// filter applies later, during normalization.
func (b itemBlock) hasPrice() bool {
	switch v := b.FinalPrice.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case float64:
		return v != 0
	default:
		return true
	}
}

// pickOffer selects which offer of a compare response to map. First
// offer with both a final price and an explicit seller name wins; then
// the first with any final price; then an empty block.
func pickOffer(offers []itemBlock) itemBlock {
	for _, offer := range offers {
		if offer.hasPrice() && offer.Seller.SellerName != "" {
			return offer
		}
	}
	for _, offer := range offers {
		if offer.hasPrice() {
			return offer
		}
	}
	return itemBlock{}
}
