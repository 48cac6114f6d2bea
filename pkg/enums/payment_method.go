package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod enumerates how a customer settles an order.
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
	PaymentMethodCard        PaymentMethod = "card"
	PaymentMethodHubtel      PaymentMethod = "hubtel"
	PaymentMethodPaystack    PaymentMethod = "paystack"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodMobileMoney,
	PaymentMethodCard,
	PaymentMethodHubtel,
	PaymentMethodPaystack,
}

// String implements fmt.Stringer.
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid reports whether the value is a known PaymentMethod.
func (m PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}

// IsDigital reports whether the method counts toward the digital-payment
// adoption metric. Everything except cash on pickup does.
func (m PaymentMethod) IsDigital() bool {
	return m != PaymentMethodCash && m.IsValid()
}

// Display renders the method for humans, e.g. "Mobile Money".
func (m PaymentMethod) Display() string {
	words := strings.Split(string(m), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
