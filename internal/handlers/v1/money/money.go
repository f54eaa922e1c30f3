// Package money converts between the wire format for amounts (decimal
// strings) and the core's float64 representation.
package money

import (
	"github.com/shopspring/decimal"
)

// Parse converts a decimal string like "42.50" into a float64.
func Parse(raw string) (float64, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

// Format renders an amount with two decimal places for display.
func Format(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
