// Package payment drives payment initiation for orders and the simulated
// mobile money confirmation flow.
package payment

import (
	"context"

	"github.com/chickorder/web/internal/upstream"
	"github.com/chickorder/web/pkg/enums"
	"github.com/chickorder/web/pkg/errors"
	"github.com/chickorder/web/pkg/logger"
	"github.com/chickorder/web/pkg/metrics"
	"github.com/chickorder/web/pkg/money"
)

// OutcomeKind says what the storefront should do after initiation.
type OutcomeKind string

const (
	// OutcomeRedirect sends the browser to an external payment page.
	OutcomeRedirect OutcomeKind = "redirect"
	// OutcomePrompt opens the in-app mobile money PIN prompt.
	OutcomePrompt OutcomeKind = "prompt"
	// OutcomeNotice shows an informational message, e.g. pay cash on pickup.
	OutcomeNotice OutcomeKind = "notice"
	// OutcomeAlreadyInitiated means payment was started earlier; nothing to do.
	OutcomeAlreadyInitiated OutcomeKind = "already_initiated"
)

// MobileMoneyPrompt carries what the PIN dialog displays. The PIN itself is
// collected and checked locally; it never appears here or on the wire.
type MobileMoneyPrompt struct {
	Phone     string `json:"phone"`
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
}

// Outcome is the result of a payment initiation.
type Outcome struct {
	Kind        OutcomeKind         `json:"kind"`
	Method      enums.PaymentMethod `json:"method"`
	Reference   string              `json:"reference,omitempty"`
	RedirectURL string              `json:"redirect_url,omitempty"`
	Message     string              `json:"message,omitempty"`
	Prompt      *MobileMoneyPrompt  `json:"prompt,omitempty"`
}

type orderClient interface {
	GetOrder(ctx context.Context, token string, orderID int) (*upstream.Order, error)
	InitiatePayment(ctx context.Context, token string, orderID int, method enums.PaymentMethod) (*upstream.PaymentInitiation, error)
}

// Service coordinates payment initiation against the order service.
type Service struct {
	client    orderClient
	confirmer Confirmer
	metrics   *metrics.PaymentMetrics
	log       *logger.Logger
}

// NewService builds the payment service.
func NewService(client orderClient, confirmer Confirmer, m *metrics.PaymentMetrics, log *logger.Logger) *Service {
	return &Service{client: client, confirmer: confirmer, metrics: m, log: log}
}

// Initiate starts payment for an order. Orders whose payment is already
// processing or completed are left alone; the order service is not called
// again for them.
func (s *Service) Initiate(ctx context.Context, token string, orderID int, method enums.PaymentMethod) (*Outcome, error) {
	if !method.IsValid() {
		return nil, errors.New(errors.CodeValidation, "unknown payment method")
	}

	order, err := s.client.GetOrder(ctx, token, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus.Initiated() {
		s.count(method, "already_initiated")
		return &Outcome{
			Kind:      OutcomeAlreadyInitiated,
			Method:    order.PaymentMethod,
			Reference: order.PaymentReference,
			Message:   "Payment has already been initiated for this order.",
		}, nil
	}

	initiation, err := s.client.InitiatePayment(ctx, token, orderID, method)
	if err != nil {
		s.count(method, "error")
		return nil, err
	}

	outcome := &Outcome{
		Kind:      OutcomeNotice,
		Method:    method,
		Reference: initiation.PaymentReference,
		Message:   initiation.Message,
	}
	switch {
	case initiation.PaymentURL != "":
		outcome.Kind = OutcomeRedirect
		outcome.RedirectURL = initiation.PaymentURL
	case method == enums.PaymentMethodMobileMoney:
		outcome.Kind = OutcomePrompt
		outcome.Prompt = &MobileMoneyPrompt{
			Phone:     order.CustomerPhone,
			Amount:    money.GHSFloat(order.TotalAmount),
			Reference: initiation.PaymentReference,
		}
	case outcome.Message == "":
		outcome.Message = "Please pay with cash when you pick up your order."
	}

	s.count(method, string(outcome.Kind))
	s.log.Info(s.log.WithOrderID(ctx, order.OrderNumber), "payment initiated")
	return outcome, nil
}

// ConfirmMobileMoney runs the simulated PIN confirmation and returns the
// refreshed order. The PIN is validated locally and discarded.
func (s *Service) ConfirmMobileMoney(ctx context.Context, token string, orderID int, pin string) (*upstream.Order, error) {
	if err := s.confirmer.Confirm(ctx, pin); err != nil {
		return nil, err
	}
	return s.client.GetOrder(ctx, token, orderID)
}

func (s *Service) count(method enums.PaymentMethod, outcome string) {
	if s.metrics != nil {
		s.metrics.IncInitiation(string(method), outcome)
	}
}
