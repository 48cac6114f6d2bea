package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/chickorder/web/internal/cart"
	"github.com/chickorder/web/internal/orders"
	"github.com/chickorder/web/internal/session"
	"github.com/chickorder/web/internal/upstream"
	"github.com/chickorder/web/pkg/enums"
)

type stubCatalogAPI struct {
	products   []upstream.Product
	created    *upstream.Order
	lastCreate upstream.CreateOrderRequest
}

func (s *stubCatalogAPI) ListProducts(_ context.Context, _ upstream.ProductFilter) ([]upstream.Product, error) {
	return s.products, nil
}

func (s *stubCatalogAPI) CreateOrder(_ context.Context, _ string, req upstream.CreateOrderRequest) (*upstream.Order, error) {
	s.lastCreate = req
	return s.created, nil
}

func testCartService(t *testing.T, store *memStore, api *stubCatalogAPI) *cart.Service {
	t.Helper()
	repo, err := cart.NewRepo(store, testKeys{}, time.Hour)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return cart.NewService(repo, api, api, testLogger())
}

func cartFixtures() []upstream.Product {
	return []upstream.Product{
		{ID: 1, Name: "Layer", Price: 50, IsAvailable: true},
		{ID: 2, Name: "Broiler", Price: 30, IsAvailable: true},
	}
}

func addToCart(t *testing.T, svc *cart.Service, mgr *session.Manager, sess *session.Session, productID int) {
	t.Helper()
	body := strings.NewReader(`{"product_id":` + strconv.Itoa(productID) + `}`)
	req := requestWithSession(http.MethodPost, "/api/v1/cart/items", body, sess)
	rec := httptest.NewRecorder()
	AddCartItem(svc, mgr, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("add item %d: status = %d (body %s)", productID, rec.Code, rec.Body.String())
	}
}

func TestCartRoundTripOverHTTP(t *testing.T) {
	store := newMemStore()
	mgr := testSessionManager(t, store)
	sess := seedSession(t, mgr, store, upstream.User{ID: 1})
	api := &stubCatalogAPI{products: cartFixtures()}
	svc := testCartService(t, store, api)

	addToCart(t, svc, mgr, sess, 1)
	addToCart(t, svc, mgr, sess, 1)
	addToCart(t, svc, mgr, sess, 2)

	req := requestWithSession(http.MethodGet, "/api/v1/cart", nil, sess)
	rec := httptest.NewRecorder()
	GetCart(svc, mgr, testLogger()).ServeHTTP(rec, req)

	var view cart.View
	decodeData(t, rec, &view)
	if view.TotalAmount != "GHS 130.00" || view.TotalQuantity != 3 {
		t.Fatalf("view = %+v", view)
	}
	if len(view.Items) != 2 {
		t.Fatalf("items = %+v", view.Items)
	}

	body := strings.NewReader(`{"product_id":1,"quantity":0}`)
	req = requestWithSession(http.MethodPut, "/api/v1/cart/items/quantity", body, sess)
	rec = httptest.NewRecorder()
	SetCartQuantity(svc, mgr, testLogger()).ServeHTTP(rec, req)

	decodeData(t, rec, &view)
	if len(view.Items) != 1 || view.TotalAmount != "GHS 30.00" {
		t.Fatalf("view after removal = %+v", view)
	}
}

func TestCheckoutOverHTTP(t *testing.T) {
	store := newMemStore()
	mgr := testSessionManager(t, store)
	sess := seedSession(t, mgr, store, upstream.User{ID: 1})
	api := &stubCatalogAPI{
		products: cartFixtures(),
		created: &upstream.Order{
			ID:          42,
			OrderNumber: "ORD-042",
			Status:      enums.OrderStatusPending,
			TotalAmount: 50,
			CreatedAt:   time.Now(),
		},
	}
	svc := testCartService(t, store, api)
	addToCart(t, svc, mgr, sess, 1)

	body := strings.NewReader(`{"customer_name":"Ama Mensah","customer_phone":"0244000000"}`)
	req := requestWithSession(http.MethodPost, "/api/v1/checkout", body, sess)
	rec := httptest.NewRecorder()
	Checkout(svc, mgr, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var view orders.TrackingView
	decodeData(t, rec, &view)
	if view.OrderID != 42 {
		t.Fatalf("view = %+v", view)
	}
	if api.lastCreate.CustomerName != "Ama Mensah" {
		t.Fatalf("create request = %+v", api.lastCreate)
	}
	if store.has("cart:" + sess.ID) {
		t.Fatal("cart should be cleared")
	}
}

func TestCheckoutEmptyCartFailsValidation(t *testing.T) {
	store := newMemStore()
	mgr := testSessionManager(t, store)
	sess := seedSession(t, mgr, store, upstream.User{ID: 1})
	svc := testCartService(t, store, &stubCatalogAPI{products: cartFixtures()})

	body := strings.NewReader(`{"customer_name":"Ama","customer_phone":"0244000000"}`)
	req := requestWithSession(http.MethodPost, "/api/v1/checkout", body, sess)
	rec := httptest.NewRecorder()
	Checkout(svc, mgr, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if decodeErrorCode(t, rec) != "VALIDATION_ERROR" {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestCheckoutMissingNameFailsValidation(t *testing.T) {
	store := newMemStore()
	mgr := testSessionManager(t, store)
	sess := seedSession(t, mgr, store, upstream.User{ID: 1})
	api := &stubCatalogAPI{products: cartFixtures()}
	svc := testCartService(t, store, api)
	addToCart(t, svc, mgr, sess, 1)

	body := strings.NewReader(`{"customer_phone":"0244000000"}`)
	req := requestWithSession(http.MethodPost, "/api/v1/checkout", body, sess)
	rec := httptest.NewRecorder()
	Checkout(svc, mgr, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
}
