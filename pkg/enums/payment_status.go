package enums

import "fmt"

// PaymentStatus tracks the payment lifecycle of an order. The web app only
// reads it; transitions belong to the order service.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

var validPaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusProcessing,
	PaymentStatusCompleted,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentStatus.
func (p PaymentStatus) IsValid() bool {
	for _, candidate := range validPaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentStatus converts raw input into a PaymentStatus.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	for _, candidate := range validPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment status %q", value)
}

// Initiated reports whether a payment is already in flight or settled.
// Re-initiating payment is disallowed in either case.
func (p PaymentStatus) Initiated() bool {
	return p == PaymentStatusProcessing || p == PaymentStatusCompleted
}

// AwaitingPayment reports whether the payment selector should be offered.
// An absent status counts as awaiting, matching orders created before the
// payment step.
func (p PaymentStatus) AwaitingPayment() bool {
	return p == "" || p == PaymentStatusPending
}
