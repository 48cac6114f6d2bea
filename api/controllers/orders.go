package controllers

import (
	"context"
	"net/http"

	"github.com/chickorder/web/api/middleware"
	"github.com/chickorder/web/api/responses"
	"github.com/chickorder/web/api/validators"
	"github.com/chickorder/web/internal/orders"
	"github.com/chickorder/web/internal/payment"
	"github.com/chickorder/web/internal/session"
	"github.com/chickorder/web/internal/upstream"
	"github.com/chickorder/web/pkg/enums"
	"github.com/chickorder/web/pkg/errors"
	"github.com/chickorder/web/pkg/logger"
)

type orderGetter interface {
	GetOrder(ctx context.Context, token string, orderID int) (*upstream.Order, error)
}

type initiatePaymentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

type confirmPaymentRequest struct {
	PIN string `json:"pin" validate:"required"`
}

// GetOrderTracking serves the tracking page model for one order.
func GetOrderTracking(client orderGetter, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFrom(r.Context())

		orderID, err := orderIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := client.GetOrder(r.Context(), sess.Token, orderID)
		if err != nil {
			writeSessionAwareError(w, r, logg, mgr, sess, err)
			return
		}
		responses.WriteSuccess(w, orders.BuildTrackingView(order))
	}
}

// InitiatePayment starts payment for an order with the chosen method.
func InitiatePayment(svc *payment.Service, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFrom(r.Context())

		orderID, err := orderIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload initiatePaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, errors.Wrap(errors.CodeValidation, err, "unknown payment method"))
			return
		}

		outcome, err := svc.Initiate(r.Context(), sess.Token, orderID, method)
		if err != nil {
			writeSessionAwareError(w, r, logg, mgr, sess, err)
			return
		}
		responses.WriteSuccess(w, outcome)
	}
}

// ConfirmPayment completes the simulated mobile money flow and returns the
// refreshed tracking view. The PIN is checked locally and never forwarded.
func ConfirmPayment(svc *payment.Service, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFrom(r.Context())

		orderID, err := orderIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload confirmPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.ConfirmMobileMoney(r.Context(), sess.Token, orderID, payload.PIN)
		if err != nil {
			writeSessionAwareError(w, r, logg, mgr, sess, err)
			return
		}
		responses.WriteSuccess(w, orders.BuildTrackingView(order))
	}
}
