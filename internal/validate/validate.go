// Package validate holds the pure request-normalization helpers shared by
// the HTTP handlers. Nothing here touches storage or returns errors: absent
// or unusable input comes back as a zero value plus an ok flag so callers
// can collect every problem into a single 400 response.
package validate

import (
	"math"
	"strings"
)

// String trims surrounding whitespace. A string that is empty after
// trimming counts as absent.
func String(v string) string {
	return strings.TrimSpace(v)
}

// Present reports whether v survives trimming.
func Present(v string) bool {
	return strings.TrimSpace(v) != ""
}

// IntMin coerces a JSON number to an integer with a lower bound. Fractional
// values and values below min are rejected.
func IntMin(v float64, min int) (int, bool) {
	if v != math.Trunc(v) {
		return 0, false
	}
	n := int(v)
	if n < min {
		return 0, false
	}
	return n, true
}

// FloatMin bounds a JSON number from below. NaN and infinities are rejected.
func FloatMin(v float64, min float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v < min {
		return 0, false
	}
	return v, true
}

// Quantity normalizes an order-item quantity: zero means absent and
// defaults to 1, anything negative is invalid.
func Quantity(v int) (int, bool) {
	if v == 0 {
		return 1, true
	}
	if v < 0 {
		return 0, false
	}
	return v, true
}

// RestaurantKey derives the denormalized Restaurants row key from a
// restaurant name: lowercased, spaces joined with dashes.
func RestaurantKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// Round2 rounds a money amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
