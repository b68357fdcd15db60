// Package valueobject contains domain value objects for the ledger.
package valueobject

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for every stored amount.
const MoneyScale = 2

// DefaultThousandsSeparator is used when no valid separator is configured.
const DefaultThousandsSeparator = "."

var (
	// ErrInvalidAmountFormat is returned when an amount string cannot be parsed.
	ErrInvalidAmountFormat = errors.New("invalid amount format")

	// ErrAmountTooPrecise is returned when an amount has more than two fractional digits.
	ErrAmountTooPrecise = errors.New("amount has more than two decimal places")

	// ErrNegativeAmount is returned when a negative amount is given where it is not allowed.
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// ParseAmount parses a user supplied amount. Both "12.34" and "12,34" are accepted.
// Negative values and values with more than two fractional digits are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmountFormat
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmountFormat
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	if !HasMoneyScale(amount) {
		return decimal.Zero, ErrAmountTooPrecise
	}
	return amount, nil
}

// HasMoneyScale reports whether the amount fits in two fractional digits.
func HasMoneyScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(MoneyScale))
}

// ToCents converts an amount to integer cents for storage.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Shift(MoneyScale).Round(0).IntPart()
}

// FromCents converts stored integer cents back into an amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -MoneyScale)
}

// FormatAmount renders the exact stored representation ("1234.50").
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyScale)
}

// MoneyFormatter renders amounts for presentation: whole units, grouped thousands, "$" prefix.
type MoneyFormatter struct {
	pattern string
}

// NewMoneyFormatter creates a formatter grouping thousands with the given single-character separator.
func NewMoneyFormatter(thousandsSeparator string) MoneyFormatter {
	if len(thousandsSeparator) != 1 || strings.ContainsAny(thousandsSeparator, "#0123456789+") {
		thousandsSeparator = DefaultThousandsSeparator
	}
	// humanize needs a decimal directive distinct from the thousands one; zero digits after it.
	decimalSeparator := ","
	if thousandsSeparator == "," {
		decimalSeparator = "."
	}
	return MoneyFormatter{pattern: "#" + thousandsSeparator + "###" + decimalSeparator}
}

// Format truncates toward zero and groups thousands: 50000.99 -> "$50.000", -150 -> "-$150".
func (f MoneyFormatter) Format(amount decimal.Decimal) string {
	whole := amount.Truncate(0).IntPart()
	sign := ""
	if whole < 0 {
		sign = "-"
		whole = -whole
	}
	if f.pattern == "" {
		return sign + "$" + strconv.FormatInt(whole, 10)
	}
	return sign + "$" + humanize.FormatInteger(f.pattern, int(whole))
}
