package controllers

import (
	"context"
	"net/http"

	"github.com/chickorder/web/api/responses"
	"github.com/chickorder/web/internal/upstream"
	"github.com/chickorder/web/pkg/images"
	"github.com/chickorder/web/pkg/logger"
	"github.com/chickorder/web/pkg/money"
)

type productLister interface {
	ListProducts(ctx context.Context, filter upstream.ProductFilter) ([]upstream.Product, error)
}

type productView struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       string  `json:"price"`
	PriceValue  float64 `json:"price_value"`
	ImageURL    string  `json:"image_url"`
	IsAvailable bool    `json:"is_available"`
	Category    string  `json:"category,omitempty"`
}

// ListProducts serves the catalogue with display prices and image paths
// resolved. The listing is public; browsing needs no account.
func ListProducts(client productLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := upstream.ProductFilter{
			AvailableOnly: r.URL.Query().Get("available_only") == "true",
			Category:      r.URL.Query().Get("category"),
		}

		products, err := client.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views := make([]productView, 0, len(products))
		for _, p := range products {
			views = append(views, productView{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Price:       money.GHSFloat(p.Price),
				PriceValue:  p.Price,
				ImageURL:    images.ForProduct(p.Name),
				IsAvailable: p.IsAvailable,
				Category:    p.Category,
			})
		}
		responses.WriteSuccess(w, views)
	}
}
