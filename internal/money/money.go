// Package money represents currency amounts as integer minor units.
//
// Balances are summed in cents so that conservation holds exactly. Fractional
// values only appear at the API boundary, where FromFloat rounds to
// the nearest cent (half away from zero) using shopspring/decimal.
package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrNonFinite  = errors.New("amount must be a finite number")
	ErrOutOfRange = errors.New("amount out of range")
)

// maxUnits bounds boundary values so that cents never overflow int64 when
// summed across a realistic ledger.
const maxUnits = 1e13

// Cents is an amount in minor currency units. Positive and negative values
// are both meaningful for balances.
type Cents int64

// FromFloat converts a fractional amount to cents.
func FromFloat(f float64) (Cents, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNonFinite, f)
	}
	if math.Abs(f) >= maxUnits {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, f)
	}
	return fromDecimal(decimal.NewFromFloat(f)), nil
}

func fromDecimal(d decimal.Decimal) Cents {
	// Round rounds half away from zero.
	return Cents(d.Shift(2).Round(0).IntPart())
}

// Decimal returns the amount in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Float64 returns the amount in major units.
func (c Cents) Float64() float64 {
	return c.Decimal().InexactFloat64()
}

// String formats the amount with exactly two decimals, e.g. "-12.30".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

func Min(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}

// Split divides total into n shares that differ by at most one cent and sum
// to total. The first total%n shares carry the extra cent. total must not be
// negative.
func Split(total Cents, n int) []Cents {
	if n <= 0 {
		return nil
	}
	base := total / Cents(n)
	rem := total % Cents(n)
	shares := make([]Cents, n)
	for i := range shares {
		shares[i] = base
		if Cents(i) < rem {
			shares[i]++
		}
	}
	return shares
}
