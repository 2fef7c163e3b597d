package piseries

import (
	"fmt"
	"math/big"
)

// FactorialCache holds i! for i = 0..MaxIndex at a fixed binary precision.
//
// Entry 0 is exactly 1 and entry i is entry i-1 times i rounded to the
// cache precision, so large entries are approximations. A cache is built
// once by [BuildFactorialCache] and never modified afterwards, which makes
// it safe to share between goroutines without locking.
type FactorialCache struct {
	prec    uint
	entries []*big.Float
}

// BuildFactorialCache computes the factorials 0!..maxIndex! at prec bits.
// The recurrence is sequential; each entry depends on the previous one.
func BuildFactorialCache(prec uint, maxIndex uint64) *FactorialCache {
	entries := make([]*big.Float, maxIndex+1)
	entries[0] = new(big.Float).SetPrec(prec).SetUint64(1)

	var factor big.Float
	for i := uint64(1); i <= maxIndex; i++ {
		factor.SetUint64(i)
		entries[i] = new(big.Float).SetPrec(prec).Mul(entries[i-1], &factor)
	}

	return &FactorialCache{prec: prec, entries: entries}
}

// Get returns entry i. The returned value is shared and must not be
// modified; use it only as an operand. Get reports
// [ErrCacheIndexOutOfRange] for i > MaxIndex.
func (c *FactorialCache) Get(i uint64) (*big.Float, error) {
	if i >= uint64(len(c.entries)) {
		return nil, fmt.Errorf("%w: %d! requested, cache holds up to %d!", ErrCacheIndexOutOfRange, i, c.MaxIndex())
	}
	return c.entries[i], nil
}

// Len is the number of cached entries, MaxIndex+1.
func (c *FactorialCache) Len() int {
	return len(c.entries)
}

// MaxIndex is the largest argument whose factorial is cached.
func (c *FactorialCache) MaxIndex() uint64 {
	return uint64(len(c.entries) - 1)
}

// Prec is the binary precision of every entry.
func (c *FactorialCache) Prec() uint {
	return c.prec
}
