package domain

import (
	"fmt"
	"math"
)

// Money is an amount in minor currency units (cents).
type Money int64

// MoneyFromFloat converts a decimal amount to Money, rounding to the nearest cent.
func MoneyFromFloat(amount float64) Money {
	return Money(math.Round(amount * 100))
}

// Float64 returns the decimal amount.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// Cents returns the raw minor unit amount.
func (m Money) Cents() int64 {
	return int64(m)
}

// String formats the amount with two decimals.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
