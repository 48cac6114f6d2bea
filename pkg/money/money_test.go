package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestGHSFormatting(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "GHS 0.00"},
		{50, "GHS 50.00"},
		{129.999, "GHS 130.00"},
		{1234.5, "GHS 1234.50"},
	}
	for _, tc := range cases {
		if got := GHSFloat(tc.amount); got != tc.want {
			t.Errorf("GHSFloat(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestSubtotal(t *testing.T) {
	got := Subtotal(decimal.NewFromFloat(50), 3)
	if !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("subtotal = %s", got)
	}
}
