// Package money provides the exact-decimal type used for prices and
// amounts throughout the engine.
package money

import "github.com/shopspring/decimal"

// Decimal is an exact, arbitrary-precision decimal. No binary floating
// point ever touches a price or an amount.
type Decimal = decimal.Decimal

// Zero is the additive identity, and doubles as the synthetic price of a
// market sell order (it crosses every resting buy price >= 0).
var Zero = decimal.Zero

// MaxPrice is the "effectively unbounded" sentinel used as the synthetic
// price of a market buy order. It must cross any resting ask a real
// participant could plausibly quote; decimal.Decimal has no true infinity,
// so we use a value large enough that no realistic limit price exceeds it.
var MaxPrice = decimal.New(1, 30)

// Parse parses a decimal literal exactly, with no float64 round-trip.
func Parse(s string) (Decimal, error) {
	return decimal.NewFromString(s)
}
