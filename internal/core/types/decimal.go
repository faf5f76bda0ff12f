// Package types provides common type aliases and monetary arithmetic helpers.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors. Intermediate
// values carry arbitrary precision; rounding happens only at the
// boundaries defined by the pricing engine.
type Money = decimal.Decimal

// Percent represents a percentage adjustment. Negative values are
// discounts, positive values are surcharges, zero is neutral.
type Percent = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Round2 rounds to 2 decimals using round-half-up.
// decimal.Round is half-away-from-zero, which equals half-up on the
// non-negative domain this engine operates on. Not banker's rounding:
// 0.005 must round to 0.01 on a printed ticket.
func Round2(x Money) Money {
	return x.Round(2)
}

// ApplyPercent returns amount × percent / 100, unrounded.
// Callers round once at computation boundaries to avoid compounding
// rounding error.
func ApplyPercent(amount Money, percent Percent) Money {
	return amount.Mul(percent).Div(decimal.NewFromInt(100))
}

// Sum accumulates amounts without rounding.
func Sum(amounts ...Money) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// FloorCents truncates a value down to whole cents.
// Used for per-installment amounts: all installments but the last are
// floored, and the residual is absorbed into the last one.
func FloorCents(x Money) Money {
	return x.Mul(decimal.NewFromInt(100)).Floor().Div(decimal.NewFromInt(100))
}
