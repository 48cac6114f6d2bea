package controllers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/chickorder/web/api/middleware"
	"github.com/chickorder/web/api/responses"
	"github.com/chickorder/web/api/validators"
	"github.com/chickorder/web/internal/session"
	"github.com/chickorder/web/internal/upstream"
	"github.com/chickorder/web/pkg/enums"
	"github.com/chickorder/web/pkg/errors"
	"github.com/chickorder/web/pkg/logger"
	"github.com/chickorder/web/pkg/money"
)

type adminClient interface {
	Dashboard(ctx context.Context, token string) (*upstream.DashboardStats, error)
	PendingOrders(ctx context.Context, token string) ([]upstream.Order, error)
	TodaySalesSummary(ctx context.Context, token string) (*upstream.TodaySales, error)
	GetOrder(ctx context.Context, token string, orderID int) (*upstream.Order, error)
	UpdateOrderStatus(ctx context.Context, token string, orderID int, status enums.OrderStatus) (*upstream.Order, error)
}

type dashboardView struct {
	TotalOrders              int    `json:"total_orders"`
	PendingOrders            int    `json:"pending_orders"`
	CompletedOrders          int    `json:"completed_orders"`
	TotalRevenue             string `json:"total_revenue"`
	TodayRevenue             string `json:"today_revenue"`
	AverageWaitTime          string `json:"average_wait_time"`
	DigitalPaymentPercentage string `json:"digital_payment_percentage"`
}

type adminOrderView struct {
	ID            int               `json:"id"`
	OrderNumber   string            `json:"order_number"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	Status        enums.OrderStatus `json:"status"`
	StatusBadge   string            `json:"status_badge"`
	PaymentStatus string            `json:"payment_status,omitempty"`
	TotalAmount   string            `json:"total_amount"`
	ItemCount     int               `json:"item_count"`
	PlacedAt      string            `json:"placed_at"`
	NextStatus    string            `json:"next_status,omitempty"`
	NextAction    string            `json:"next_action,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type todaySalesView struct {
	TotalChickensSold int            `json:"total_chickens_sold"`
	TotalRevenue      string         `json:"total_revenue"`
	Breakdown         map[string]int `json:"breakdown"`
}

// AdminDashboard serves the operational counters formatted for display.
func AdminDashboard(client adminClient, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFrom(r.Context())

		stats, err := client.Dashboard(r.Context(), sess.Token)
		if err != nil {
			writeSessionAwareError(w, r, logg, mgr, sess, err)
			return
		}

		view := dashboardView{
			TotalOrders:              stats.TotalOrders,
			PendingOrders:            stats.PendingOrders,
			CompletedOrders:          stats.CompletedOrders,
			TotalRevenue:             money.GHSFloat(stats.TotalRevenue),
			TodayRevenue:             money.GHSFloat(stats.TodayRevenue),
			AverageWaitTime:          formatWaitTime(stats.AverageWaitTime),
			DigitalPaymentPercentage: formatPercentage(stats.DigitalPaymentPercentage),
		}
		responses.WriteSuccess(w, view)
	}
}

// AdminPendingOrders lists open orders with their one-click advance action.
func AdminPendingOrders(client adminClient, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFrom(r.Context())

		pending, err := client.PendingOrders(r.Context(), sess.Token)
		if err != nil {
			writeSessionAwareError(w, r, logg, mgr, sess, err)
			return
		}

		views := make([]adminOrderView, 0, len(pending))
		for i := range pending {
			views = append(views, buildAdminOrderView(&pending[i]))
		}
		responses.WriteSuccess(w, views)
	}
}

// AdminAdvanceOrder moves an order one step along the pipeline. Terminal
// orders cannot advance.
func AdminAdvanceOrder(client adminClient, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
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

		next, ok := order.Status.Next()
		if !ok {
			responses.WriteError(r.Context(), logg, w,
				errors.New(errors.CodeStateConflict, fmt.Sprintf("order in status %q cannot advance", order.Status)))
			return
		}

		updated, err := client.UpdateOrderStatus(r.Context(), sess.Token, orderID, next)
		if err != nil {
			writeSessionAwareError(w, r, logg, mgr, sess, err)
			return
		}

		logg.Info(logg.WithOrderID(r.Context(), updated.OrderNumber), "order advanced")
		responses.WriteSuccess(w, buildAdminOrderView(updated))
	}
}

// AdminUpdateOrderStatus sets an explicit status, e.g. cancelling an order.
func AdminUpdateOrderStatus(client adminClient, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFrom(r.Context())

		orderID, err := orderIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, errors.Wrap(errors.CodeValidation, err, "unknown order status"))
			return
		}

		updated, err := client.UpdateOrderStatus(r.Context(), sess.Token, orderID, status)
		if err != nil {
			writeSessionAwareError(w, r, logg, mgr, sess, err)
			return
		}
		responses.WriteSuccess(w, buildAdminOrderView(updated))
	}
}

// AdminTodaySales reports what moved today, by product.
func AdminTodaySales(client adminClient, mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.SessionFrom(r.Context())

		sales, err := client.TodaySalesSummary(r.Context(), sess.Token)
		if err != nil {
			writeSessionAwareError(w, r, logg, mgr, sess, err)
			return
		}

		breakdown := sales.Breakdown
		if breakdown == nil {
			breakdown = map[string]int{}
		}
		responses.WriteSuccess(w, todaySalesView{
			TotalChickensSold: sales.TotalChickensSold,
			TotalRevenue:      money.GHSFloat(sales.TotalRevenue),
			Breakdown:         breakdown,
		})
	}
}

func buildAdminOrderView(o *upstream.Order) adminOrderView {
	view := adminOrderView{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Status:        o.Status,
		StatusBadge:   o.Status.Badge(),
		PaymentStatus: string(o.PaymentStatus),
		TotalAmount:   money.GHSFloat(o.TotalAmount),
		ItemCount:     len(o.Items),
		PlacedAt:      o.CreatedAt.Format("Jan 2, 2006 3:04 PM"),
	}
	if next, ok := o.Status.Next(); ok {
		view.NextStatus = string(next)
		view.NextAction = "Mark as " + titleCase(string(next))
	}
	return view
}

func formatWaitTime(minutes *float64) string {
	if minutes == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d min", int(math.Round(*minutes)))
}

func formatPercentage(pct float64) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return fmt.Sprintf("%.0f%%", pct)
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
