package enums

import "fmt"

// OrderStatus tracks the lifecycle of an order as reported by the order
// service. The web app never owns transitions; it renders them and, for
// admins, requests the next one.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// customerSteps is the four-stage tracker shown to customers. The preparing
// stage is intentionally folded into the confirmed segment; admins see the
// full five-stage flow via Next.
var customerSteps = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusReady,
	OrderStatusCompleted,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// Next returns the status an admin advances the order to, and false when the
// order is terminal or unknown. The switch is exhaustive over valid statuses
// so adding a status forces a decision here.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderStatusPending:
		return OrderStatusConfirmed, true
	case OrderStatusConfirmed:
		return OrderStatusPreparing, true
	case OrderStatusPreparing:
		return OrderStatusReady, true
	case OrderStatusReady:
		return OrderStatusCompleted, true
	case OrderStatusCompleted, OrderStatusCancelled:
		return "", false
	default:
		return "", false
	}
}

// IsTerminal reports whether no further progression is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CustomerSteps returns the ordered tracker stages shown to customers.
func CustomerSteps() []OrderStatus {
	steps := make([]OrderStatus, len(customerSteps))
	copy(steps, customerSteps)
	return steps
}

// CustomerStepIndex maps a status to its position on the customer tracker.
// preparing renders inside the confirmed segment; unknown values render as
// pending rather than breaking the page.
func (s OrderStatus) CustomerStepIndex() int {
	if s == OrderStatusPreparing {
		return 1
	}
	for i, step := range customerSteps {
		if step == s {
			return i
		}
	}
	return 0
}

// StepLabel is the customer-facing label for a tracker stage.
func (s OrderStatus) StepLabel() string {
	switch s {
	case OrderStatusPending:
		return "Order Placed"
	case OrderStatusConfirmed:
		return "Confirmed"
	case OrderStatusReady:
		return "Ready for Pickup"
	case OrderStatusCompleted:
		return "Completed"
	case OrderStatusPreparing:
		return "Preparing"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return "Order Placed"
	}
}

// Badge returns the CSS badge classes for the status pill. Unknown values
// fall back to the pending badge.
func (s OrderStatus) Badge() string {
	switch s {
	case OrderStatusConfirmed:
		return "bg-blue-100 text-blue-800"
	case OrderStatusPreparing:
		return "bg-purple-100 text-purple-800"
	case OrderStatusReady:
		return "bg-green-100 text-green-800"
	case OrderStatusCompleted:
		return "bg-gray-100 text-gray-800"
	case OrderStatusCancelled:
		return "bg-red-100 text-red-800"
	default:
		return "bg-yellow-100 text-yellow-800"
	}
}
