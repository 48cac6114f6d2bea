package controllers

import (
	"net/http"

	"github.com/chickorder/web/api/middleware"
	"github.com/chickorder/web/api/responses"
	"github.com/chickorder/web/api/validators"
	"github.com/chickorder/web/internal/cart"
	"github.com/chickorder/web/internal/orders"
	"github.com/chickorder/web/internal/session"
	"github.com/chickorder/web/pkg/logger"
)

type addItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
}

type setQuantityRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"gte=0"`
}

type setCustomizationRequest struct {
	ProductID     int    `json:"product_id" validate:"required,gt=0"`
	Customization string `json:"customization" validate:"max=500"`
}

// GetCart returns the session's priced cart.
func GetCart(svc *cart.Service, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFrom(r.Context())
		view, err := svc.View(r.Context(), sess.ID)
		if err != nil {
			writeSessionAwareError(w, r, logg, mgr, sess, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// AddCartItem puts one unit of a product into the cart.
func AddCartItem(svc *cart.Service, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFrom(r.Context())

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Add(r.Context(), sess.ID, payload.ProductID)
		if err != nil {
			writeSessionAwareError(w, r, logg, mgr, sess, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// SetCartQuantity overwrites a line's quantity; zero removes the line.
func SetCartQuantity(svc *cart.Service, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFrom(r.Context())

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.SetQuantity(r.Context(), sess.ID, payload.ProductID, payload.Quantity)
		if err != nil {
			writeSessionAwareError(w, r, logg, mgr, sess, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// SetCartCustomization stores a preparation note on a cart line.
func SetCartCustomization(svc *cart.Service, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFrom(r.Context())

		var payload setCustomizationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.SetCustomization(r.Context(), sess.ID, payload.ProductID, payload.Customization)
		if err != nil {
			writeSessionAwareError(w, r, logg, mgr, sess, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// Checkout turns the cart into an order and returns the tracking view for
// the new order.
func Checkout(svc *cart.Service, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFrom(r.Context())

		var payload cart.CheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), sess.ID, sess.Token, payload)
		if err != nil {
			writeSessionAwareError(w, r, logg, mgr, sess, err)
			return
		}

		logg.Info(logg.WithOrderID(r.Context(), order.OrderNumber), "order placed")
		responses.WriteSuccessStatus(w, http.StatusCreated, orders.BuildTrackingView(order))
	}
}
