package piseries

import "math/big"

// Reduce turns the partial sums of the series into π at p.FinalBits.
//
// The partials are added in slice order at p.WorkingBits, multiplied by
// 2√2/9801 and inverted, since the series converges to 1/π. The result is
// then narrowed to p.FinalBits, dropping the guard digits.
func Reduce(partials []*big.Float, p Precision) *big.Float {
	prec := p.WorkingBits

	sum := new(big.Float).SetPrec(prec)
	for _, s := range partials {
		sum.Add(sum, s)
	}

	// 2√2 / 9801
	factor := new(big.Float).SetPrec(prec).SetUint64(2)
	factor.Sqrt(factor)
	factor.Mul(factor, big.NewFloat(2))
	factor.Quo(factor, new(big.Float).SetUint64(seriesNum))

	sum.Mul(sum, factor)

	one := new(big.Float).SetUint64(1)
	pi := new(big.Float).SetPrec(prec).Quo(one, sum)

	return pi.SetPrec(p.FinalBits)
}
