package piseries

import "fmt"

// Range is a half-open interval [Start, End) of series term indices.
type Range struct {
	Start uint64
	End   uint64
}

// Len is the number of indices in r.
func (r Range) Len() uint64 {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Assignment maps a worker index to the ranges that worker evaluates.
type Assignment [][]Range

// Terms is the number of indices assigned to worker w.
func (a Assignment) Terms(w int) uint64 {
	var n uint64
	for _, r := range a[w] {
		n += r.Len()
	}
	return n
}

// Partition splits [0, n) across workers. The first workers-1 workers
// receive contiguous blocks of n/workers indices in increasing order; the
// last worker receives the rest, n/workers + n%workers indices.
//
// It reports false when n < workers (or workers < 1): spawning more workers
// than there are terms is not allowed and the caller evaluates [0, n) on a
// single worker instead.
func Partition(n uint64, workers int) (Assignment, bool) {
	if workers < 1 || n < uint64(workers) {
		return nil, false
	}

	t := uint64(workers)
	base := n / t

	a := make(Assignment, workers)
	for i := uint64(0); i < t-1; i++ {
		a[i] = []Range{{Start: i * base, End: (i + 1) * base}}
	}
	a[t-1] = []Range{{Start: (t - 1) * base, End: n}}

	return a, true
}
