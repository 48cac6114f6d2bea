package money

import "github.com/shopspring/decimal"

// Amounts are displayed with a fixed GHS prefix and two decimals; there is no
// locale-aware formatting anywhere in the app.
const currencyPrefix = "GHS "

// GHS renders an amount the way every page displays money, e.g. "GHS 80.00".
func GHS(amount decimal.Decimal) string {
	return currencyPrefix + amount.StringFixed(2)
}

// GHSFloat renders a float amount received from the order service.
func GHSFloat(amount float64) string {
	return GHS(decimal.NewFromFloat(amount))
}

// Subtotal multiplies a unit price by a quantity.
func Subtotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
