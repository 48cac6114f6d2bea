// Package orders turns raw order records into the view models the tracking
// page renders.
package orders

import (
	"github.com/chickorder/web/internal/upstream"
	"github.com/chickorder/web/pkg/enums"
	"github.com/chickorder/web/pkg/money"
)

const displayTimeLayout = "Jan 2, 2006 3:04 PM"

// Step is one stop on the four-step progress tracker. A preparing order
// shows as still on the confirmed step; customers only see the coarse
// pipeline.
type Step struct {
	Status  enums.OrderStatus `json:"status"`
	Label   string            `json:"label"`
	Done    bool              `json:"done"`
	Current bool              `json:"current"`
}

// ItemLine is an order item formatted for display.
type ItemLine struct {
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	Customization string `json:"customization,omitempty"`
	UnitPrice     string `json:"unit_price"`
	Subtotal      string `json:"subtotal"`
}

// PaymentPanel drives the payment section of the tracking page: which
// notice to show, and whether the method selector is offered.
type PaymentPanel struct {
	Status           enums.PaymentStatus `json:"status"`
	Method           enums.PaymentMethod `json:"method,omitempty"`
	MethodLabel      string              `json:"method_label,omitempty"`
	Reference        string              `json:"reference,omitempty"`
	AwaitingPayment  bool                `json:"awaiting_payment"`
	Processing       bool                `json:"processing"`
	Paid             bool                `json:"paid"`
	AvailableMethods []MethodOption      `json:"available_methods,omitempty"`
}

// MethodOption is a selectable payment method.
type MethodOption struct {
	Value   enums.PaymentMethod `json:"value"`
	Label   string              `json:"label"`
	Digital bool                `json:"digital"`
}

// TrackingView is the full order-tracking page payload.
type TrackingView struct {
	OrderID       int               `json:"order_id"`
	OrderNumber   string            `json:"order_number"`
	Status        enums.OrderStatus `json:"status"`
	StatusBadge   string            `json:"status_badge"`
	Cancelled     bool              `json:"cancelled"`
	Steps         []Step            `json:"steps"`
	Items         []ItemLine        `json:"items"`
	TotalAmount   string            `json:"total_amount"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	PlacedAt      string            `json:"placed_at"`
	CompletedAt   string            `json:"completed_at,omitempty"`
	Payment       PaymentPanel      `json:"payment"`
}

// MethodOptions lists every selectable payment method in display order.
func MethodOptions() []MethodOption {
	methods := []enums.PaymentMethod{
		enums.PaymentMethodCash,
		enums.PaymentMethodMobileMoney,
		enums.PaymentMethodCard,
		enums.PaymentMethodHubtel,
		enums.PaymentMethodPaystack,
	}
	options := make([]MethodOption, 0, len(methods))
	for _, m := range methods {
		options = append(options, MethodOption{Value: m, Label: m.Display(), Digital: m.IsDigital()})
	}
	return options
}

// BuildTrackingView maps an order record onto the tracking page model.
func BuildTrackingView(o *upstream.Order) *TrackingView {
	current := o.Status.CustomerStepIndex()

	steps := make([]Step, 0, len(enums.CustomerSteps()))
	for i, status := range enums.CustomerSteps() {
		steps = append(steps, Step{
			Status:  status,
			Label:   status.StepLabel(),
			Done:    i < current,
			Current: i == current,
		})
	}

	items := make([]ItemLine, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemLine{
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			Customization: item.Customization,
			UnitPrice:     money.GHSFloat(item.UnitPrice),
			Subtotal:      money.GHSFloat(item.Subtotal),
		})
	}

	view := &TrackingView{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		StatusBadge:   o.Status.Badge(),
		Cancelled:     o.Status == enums.OrderStatusCancelled,
		Steps:         steps,
		Items:         items,
		TotalAmount:   money.GHSFloat(o.TotalAmount),
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		CustomerEmail: o.CustomerEmail,
		Notes:         o.Notes,
		PlacedAt:      o.CreatedAt.Format(displayTimeLayout),
		Payment:       buildPaymentPanel(o),
	}
	if o.CompletedAt != nil {
		view.CompletedAt = o.CompletedAt.Format(displayTimeLayout)
	}
	return view
}

func buildPaymentPanel(o *upstream.Order) PaymentPanel {
	panel := PaymentPanel{
		Status:    o.PaymentStatus,
		Method:    o.PaymentMethod,
		Reference: o.PaymentReference,
	}
	if o.PaymentMethod != "" {
		panel.MethodLabel = o.PaymentMethod.Display()
	}
	if o.Status == enums.OrderStatusCancelled {
		return panel
	}

	switch {
	case o.PaymentStatus.AwaitingPayment():
		panel.AwaitingPayment = true
		panel.AvailableMethods = MethodOptions()
	case o.PaymentStatus == enums.PaymentStatusProcessing:
		panel.Processing = true
	case o.PaymentStatus == enums.PaymentStatusCompleted:
		panel.Paid = true
	}
	return panel
}
