package valueobject

import (
	"fmt"
	"time"
)

// MonthsPerYear is the number of monthly books owned by every annual flow.
const MonthsPerYear = 12

var monthNames = [MonthsPerYear]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthKey identifies one calendar month of a flow.
type MonthKey struct {
	Year  int
	Month int
}

// MonthKeyOf returns the calendar month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: int(t.Month())}
}

// IsValidMonth reports whether m is a calendar month number (1-12).
func IsValidMonth(m int) bool {
	return m >= 1 && m <= MonthsPerYear
}

// MonthName returns the English name of a calendar month, or an empty string when out of range.
func MonthName(m int) string {
	if !IsValidMonth(m) {
		return ""
	}
	return monthNames[m-1]
}

// String renders the key as "March 2025".
func (k MonthKey) String() string {
	return fmt.Sprintf("%s %d", MonthName(k.Month), k.Year)
}
