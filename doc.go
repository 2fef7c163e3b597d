// Package piseries computes π to an arbitrary number of decimal digits by
// summing Ramanujan's series
//
//	1/π = (2√2/9801) Σ (4k)! (1103 + 26390k) / ((k!)^4 396^(4k))
//
// across several goroutines.
//
// # Computing
//
// The entry point is [Compute]:
//
//	pi, err := piseries.Compute(ctx, 1000, runtime.NumCPU())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(piseries.Format(pi, 1000))
//
// [ComputePi] is the same call with a background context.
//
// # Pipeline
//
// A call runs five stages in order:
//
//   - [NewPrecision] converts the digit request into a term count
//     (about seven digits per term) and two binary precisions: the working
//     precision, which carries [GuardDigits] extra digits, and the final one.
//   - [BuildFactorialCache] computes 0!..(4n)! once, sequentially. The cache
//     is immutable afterwards and shared by all workers without locking.
//   - [Partition] splits the term indices [0, n) into one contiguous block
//     per worker; the last worker also takes the remainder. With fewer terms
//     than workers the series is summed by a single worker.
//   - [PartialSum] evaluates one worker's block into its own accumulator.
//   - [Reduce] adds the partial sums in worker order, applies 2√2/9801,
//     inverts and narrows the result to the final precision.
//
// # Errors
//
// [ErrInvalidPrecision] and [ErrInvalidWorkers] are reported before any work
// begins. The first failing worker stops the others; its error is returned
// and all partial sums are discarded. A panicking worker is reported as
// [ErrWorkerFailure]. [ErrCacheIndexOutOfRange] means the cache was sized
// wrong and is never expected from [Compute].
//
// # Observability
//
// [WithLogger] takes a *zap.Logger that receives Debug records for the cache
// build, every worker and the whole computation. [WithMetrics] takes a
// [metrics.Collector]; see [github.com/baxromumarov/piseries/metrics] for a
// Prometheus implementation. Neither affects results.
//
// # Determinism
//
// The same digits and worker count always produce bit-identical results.
// Different worker counts sum in a different order and may differ in the
// last bits; they agree to the requested number of digits.
package piseries
