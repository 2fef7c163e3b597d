package piseries

import (
	"context"
	"math/big"
)

// Coefficients of the Ramanujan series
//
//	1/π = (2√2/9801) Σ (4k)! (1103 + 26390k) / ((k!)^4 396^(4k))
const (
	seriesA    = 1103
	seriesB    = 26390
	seriesBase = 396
	seriesNum  = 9801
)

// seriesStep is 396^4, the factor between consecutive powers 396^(4k).
var seriesStep = new(big.Int).Exp(big.NewInt(seriesBase), big.NewInt(4), nil)

// termEvaluator computes consecutive series terms against a shared cache.
// It owns its scratch values and the running power 396^(4k), so each worker
// uses its own evaluator.
type termEvaluator struct {
	cache *FactorialCache
	prec  uint

	k     uint64  // index the power below belongs to
	power big.Int // 396^(4k), exact

	num, den, pow big.Float
}

func newTermEvaluator(cache *FactorialCache, prec uint) *termEvaluator {
	e := &termEvaluator{cache: cache, prec: prec}
	e.num.SetPrec(prec)
	e.den.SetPrec(prec)
	e.pow.SetPrec(prec)
	e.seek(0)
	return e
}

// seek positions the running power at index k.
func (e *termEvaluator) seek(k uint64) {
	var exp big.Int
	exp.SetUint64(4 * k)
	e.power.Exp(big.NewInt(seriesBase), &exp, nil)
	e.k = k
}

// term stores term(k) in z, rounded to the evaluator precision.
func (e *termEvaluator) term(z *big.Float, k uint64) (*big.Float, error) {
	f4k, err := e.cache.Get(4 * k)
	if err != nil {
		return nil, err
	}
	fk, err := e.cache.Get(k)
	if err != nil {
		return nil, err
	}

	switch {
	case k == e.k:
	case k == e.k+1:
		e.power.Mul(&e.power, seriesStep)
		e.k = k
	default:
		e.seek(k)
	}

	// (4k)! (1103 + 26390k)
	e.num.SetUint64(seriesA + seriesB*k)
	e.num.Mul(f4k, &e.num)

	// (k!)^4 396^(4k)
	e.den.Mul(fk, fk)
	e.den.Mul(&e.den, &e.den)
	e.pow.SetInt(&e.power)
	e.den.Mul(&e.den, &e.pow)

	return z.SetPrec(e.prec).Quo(&e.num, &e.den), nil
}

// Term returns the k-th series term at prec bits. Factorials are read from
// cache, which must hold at least (4k)!.
func Term(cache *FactorialCache, prec uint, k uint64) (*big.Float, error) {
	e := newTermEvaluator(cache, prec)
	return e.term(new(big.Float), k)
}

// PartialSum adds up the series terms of every index in ranges at prec bits.
// The cache is only read. ctx is checked between terms so that evaluation
// stops once a sibling worker has failed.
func PartialSum(ctx context.Context, cache *FactorialCache, prec uint, ranges ...Range) (*big.Float, error) {
	sum := new(big.Float).SetPrec(prec)
	e := newTermEvaluator(cache, prec)

	var t big.Float
	for _, r := range ranges {
		for k := r.Start; k < r.End; k++ {
			if err := ctx.Err(); err != nil {
				return nil, context.Cause(ctx)
			}
			if _, err := e.term(&t, k); err != nil {
				return nil, err
			}
			sum.Add(sum, &t)
		}
	}

	return sum, nil
}
