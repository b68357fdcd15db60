package valueobject

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectedErr error
	}{
		{name: "integer", input: "100", expected: "100"},
		{name: "two decimals", input: "1234.50", expected: "1234.5"},
		{name: "comma decimal separator", input: "12,34", expected: "12.34"},
		{name: "surrounding spaces", input: "  7.1 ", expected: "7.1"},
		{name: "zero", input: "0", expected: "0"},
		{name: "empty", input: "", expectedErr: ErrInvalidAmountFormat},
		{name: "letters", input: "abc", expectedErr: ErrInvalidAmountFormat},
		{name: "thousands and decimals mixed", input: "1,234.5,6", expectedErr: ErrInvalidAmountFormat},
		{name: "negative", input: "-5", expectedErr: ErrNegativeAmount},
		{name: "three decimals", input: "1.005", expectedErr: ErrAmountTooPrecise},
		{name: "trailing zero decimals", input: "1.000", expected: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("ParseAmount(%q) error = %v, want %v", tt.input, err, tt.expectedErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCents(t *testing.T) {
	tests := []struct {
		amount string
		cents  int64
	}{
		{"0", 0},
		{"0.01", 1},
		{"12.34", 1234},
		{"50000", 5000000},
		{"-150.00", -15000},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			if got := ToCents(amount); got != tt.cents {
				t.Errorf("ToCents(%s) = %d, want %d", tt.amount, got, tt.cents)
			}
			if back := FromCents(tt.cents); !back.Equal(amount) {
				t.Errorf("FromCents(%d) = %s, want %s", tt.cents, back, tt.amount)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(decimal.RequireFromString("60")); got != "60.00" {
		t.Errorf("FormatAmount(60) = %q, want %q", got, "60.00")
	}
	if got := FormatAmount(decimal.RequireFromString("1234.5")); got != "1234.50" {
		t.Errorf("FormatAmount(1234.5) = %q, want %q", got, "1234.50")
	}
}

func TestMoneyFormatter_Format(t *testing.T) {
	tests := []struct {
		name      string
		separator string
		amount    string
		expected  string
	}{
		{name: "dot groups thousands", separator: ".", amount: "50000", expected: "$50.000"},
		{name: "fraction is truncated", separator: ".", amount: "50000.99", expected: "$50.000"},
		{name: "millions", separator: ".", amount: "1234567.89", expected: "$1.234.567"},
		{name: "below a thousand", separator: ".", amount: "999.99", expected: "$999"},
		{name: "zero", separator: ".", amount: "0", expected: "$0"},
		{name: "comma separator", separator: ",", amount: "50000", expected: "$50,000"},
		{name: "invalid separator falls back to dot", separator: "ab", amount: "50000", expected: "$50.000"},
		{name: "negative amount", separator: ".", amount: "-1500.50", expected: "-$1.500"},
		{name: "negative below a thousand", separator: ".", amount: "-150", expected: "-$150"},
		{name: "negative fraction truncates to zero", separator: ".", amount: "-0.75", expected: "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewMoneyFormatter(tt.separator)
			if got := f.Format(decimal.RequireFromString(tt.amount)); got != tt.expected {
				t.Errorf("Format(%s) = %q, want %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestMonthKey(t *testing.T) {
	if got := (MonthKey{Year: 2025, Month: 3}).String(); got != "March 2025" {
		t.Errorf("String() = %q, want %q", got, "March 2025")
	}
	if MonthName(0) != "" || MonthName(13) != "" {
		t.Error("MonthName out of range should be empty")
	}
	if !IsValidMonth(1) || !IsValidMonth(12) || IsValidMonth(0) {
		t.Error("IsValidMonth boundaries are wrong")
	}
}
