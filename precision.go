package piseries

import (
	"fmt"
	"math"
	"math/big"
)

const (
	// DigitsPerTerm is the number of correct decimal digits each additional
	// series term contributes (empirically just under 8).
	DigitsPerTerm = 7

	// GuardDigits are carried on top of the request to absorb rounding
	// error from cache construction and summation.
	GuardDigits = 1

	// IntegerDigits is the number of digits of π before the point. Requested
	// digits count places after the point, so bit budgets include these.
	IntegerDigits = 1
)

// Precision is a decimal digit request converted into a term count and the
// binary precisions used by the computation.
type Precision struct {
	// Digits is the requested number of decimal digits after the point.
	Digits uint64
	// Terms is the number of series terms summed, k = 0..Terms-1.
	Terms uint64
	// WorkingBits is the mantissa length of every intermediate value.
	WorkingBits uint
	// FinalBits is the mantissa length of the returned value,
	// floor((Digits+IntegerDigits)·log2 10). The leading "3" is counted, so
	// this is a few bits wider than floor(Digits·log2 10); with one digit
	// that narrower width would be 3 bits and could not hold 3.1.
	FinalBits uint
}

// NewPrecision converts a request for digits decimal places into a
// [Precision]. It returns [ErrInvalidPrecision] for zero digits or when the
// working precision would exceed big.MaxPrec. Anything smaller that does not
// fit in memory is the caller's concern.
func NewPrecision(digits uint64) (Precision, error) {
	if digits == 0 {
		return Precision{}, fmt.Errorf("%w: digits must be at least 1", ErrInvalidPrecision)
	}

	working, ok := digitsToBits(digits + IntegerDigits + GuardDigits)
	if !ok {
		return Precision{}, fmt.Errorf("%w: %d digits exceed %d bits", ErrInvalidPrecision, digits, uint64(big.MaxPrec))
	}
	final, _ := digitsToBits(digits + IntegerDigits)

	return Precision{
		Digits:      digits,
		Terms:       (digits + DigitsPerTerm - 1) / DigitsPerTerm,
		WorkingBits: working,
		FinalBits:   final,
	}, nil
}

// MaxIndex is the largest factorial argument the series needs, 4·Terms.
func (p Precision) MaxIndex() uint64 {
	return 4 * p.Terms
}

// digitsToBits returns floor(d·log2(10)), and false if that overflows
// big.MaxPrec.
func digitsToBits(d uint64) (uint, bool) {
	// Reject before the float conversion loses integer precision.
	if d > big.MaxPrec {
		return 0, false
	}
	bits := math.Floor(float64(d) * math.Log2(10))
	if bits > big.MaxPrec {
		return 0, false
	}
	return uint(bits), true
}
