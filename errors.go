package piseries

import (
	"errors"

	"github.com/baxromumarov/piseries/internal/fanout"
)

// Sentinel errors returned by the engine. Match them with errors.Is; the
// returned errors carry additional context.
var (
	// ErrInvalidPrecision is returned when the requested digit count is zero
	// or exceeds what the arbitrary-precision type can represent. It is
	// reported before any work is started.
	ErrInvalidPrecision = errors.New("piseries: invalid precision")

	// ErrInvalidWorkers is returned when the worker count is below one.
	ErrInvalidWorkers = errors.New("piseries: worker count must be at least 1")

	// ErrCacheIndexOutOfRange reports a request for a factorial beyond the
	// precomputed bound. It indicates a cache-sizing or partitioning defect
	// and never occurs in correct operation.
	ErrCacheIndexOutOfRange = errors.New("piseries: factorial cache index out of range")

	// ErrWorkerFailure is returned when a worker terminates abnormally
	// (panics) before producing its partial sum. The partial sums of the
	// other workers are discarded.
	ErrWorkerFailure = errors.New("piseries: worker failure")
)

// FailedWorker reports the name of the worker ("worker-0", "worker-1", ...)
// whose error stopped a [Compute] call. It returns false when err did not
// come from a worker, such as validation errors or a cancelled context.
func FailedWorker(err error) (string, bool) {
	info, ok := fanout.TaskOf(err)
	if !ok {
		return "", false
	}
	return info.Name, true
}
