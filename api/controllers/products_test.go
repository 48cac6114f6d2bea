package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chickorder/web/internal/upstream"
)

type stubProductLister struct {
	products   []upstream.Product
	lastFilter upstream.ProductFilter
}

func (s *stubProductLister) ListProducts(_ context.Context, filter upstream.ProductFilter) ([]upstream.Product, error) {
	s.lastFilter = filter
	return s.products, nil
}

func TestListProductsViews(t *testing.T) {
	lister := &stubProductLister{products: []upstream.Product{
		{ID: 1, Name: "Layer", Price: 50, IsAvailable: true, Category: "poultry"},
		{ID: 2, Name: "Guinea Fowl", Price: 80, IsAvailable: false},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?available_only=true&category=poultry", nil)
	rec := httptest.NewRecorder()
	ListProducts(lister, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !lister.lastFilter.AvailableOnly || lister.lastFilter.Category != "poultry" {
		t.Fatalf("filter = %+v", lister.lastFilter)
	}

	var views []productView
	decodeData(t, rec, &views)
	if len(views) != 2 {
		t.Fatalf("views = %+v", views)
	}
	if views[0].Price != "GHS 50.00" || views[0].ImageURL != "/layer.jpeg" {
		t.Fatalf("layer view = %+v", views[0])
	}
	if views[1].ImageURL != "/guinea-fowl.jpeg" {
		t.Fatalf("guinea fowl view = %+v", views[1])
	}
}
