package entity

import "math"

// Amounts are stored as NUMERIC(12,2); sums are done in cents so the value a caller
// sees is the value a re-read returns.
const (
	// MaxAmountMinor is the largest amount NUMERIC(12,2) can hold, in cents.
	MaxAmountMinor int64 = 999_999_999_999
	// MaxLineQuantity bounds a single line item so quantity × price cannot overflow.
	MaxLineQuantity = 100_000
)

// ToMinorUnits rounds a currency amount to whole cents.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts cents back to a currency amount.
func FromMinorUnits(cents int64) float64 {
	return float64(cents) / 100
}
