package upstream

import (
	"context"
	"net/http"
	"net/url"
)

// ProductFilter narrows the catalogue listing.
type ProductFilter struct {
	AvailableOnly bool
	Category      string
}

// ListProducts fetches the catalogue. Listing is public; no token required.
func (c *Client) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	query := url.Values{}
	if filter.AvailableOnly {
		query.Set("available_only", "true")
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}

	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products/", query, "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}
