package utils

import (
	"strings"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{name: "no rounding needed", amount: 85.55, want: 85.55},
		{name: "rounds down", amount: 15.404, want: 15.40},
		{name: "rounds up", amount: 15.406, want: 15.41},
		{name: "half rounds away from zero", amount: 10.005, want: 10.01},
		{name: "negative half rounds away from zero", amount: -10.005, want: -10.01},
		{name: "zero", amount: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.amount); got != tt.want {
				t.Errorf("Round2(%v) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	got := FormatCurrency(100.954, "INR")
	if !strings.HasSuffix(got, "100.95") {
		t.Errorf("FormatCurrency() = %q, want suffix 100.95", got)
	}

	// Unknown codes fall back to the default currency symbol.
	fallback := FormatCurrency(50, "XYZ")
	want := FormatCurrency(50, DefaultCurrency)
	if fallback != want {
		t.Errorf("FormatCurrency() with unknown code = %q, want %q", fallback, want)
	}
}

func TestValidateCurrencyCode(t *testing.T) {
	for _, code := range []string{"INR", "USD", "EUR", "GBP"} {
		if !ValidateCurrencyCode(code) {
			t.Errorf("ValidateCurrencyCode(%q) = false, want true", code)
		}
	}

	if ValidateCurrencyCode("BTC") {
		t.Error("ValidateCurrencyCode(\"BTC\") = true, want false")
	}
}

func TestCalculateTax(t *testing.T) {
	if got := CalculateTax(85.55, GSTRate); got != 15.40 {
		t.Errorf("CalculateTax(85.55, 0.18) = %v, want 15.40", got)
	}
}
