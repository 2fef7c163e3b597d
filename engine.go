package piseries

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/baxromumarov/piseries/internal/fanout"
)

// ComputePi is [Compute] with a background context and default options.
func ComputePi(digits uint64, workers int) (*big.Float, error) {
	return Compute(context.Background(), digits, workers)
}

// Compute returns π to digits decimal places, evaluating the series on
// workers goroutines.
//
// The returned value has precision [Precision].FinalBits. When workers is 1,
// or when the series needs fewer terms than there are workers, the whole
// series is summed by a single worker; this is not an error.
//
// Validation errors ([ErrInvalidPrecision], [ErrInvalidWorkers]) are returned
// before any work starts. A worker error stops the remaining workers and is
// returned with the worker's name attached, see [FailedWorker]; a worker
// panic is returned as [ErrWorkerFailure].
func Compute(ctx context.Context, digits uint64, workers int, opts ...Option) (pi *big.Float, err error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, workers)
	}
	p, err := NewPrecision(digits)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log := cfg.logger.With(zap.Uint64("digits", digits), zap.Int("workers", workers))
	log.Debug("computation starting",
		zap.Uint64("terms", p.Terms),
		zap.Uint("working_bits", p.WorkingBits),
		zap.Uint("final_bits", p.FinalBits),
	)

	defer func() {
		elapsed := time.Since(start)
		cfg.metrics.ObserveCompute(digits, elapsed.Seconds(), err == nil)
		if err != nil {
			log.Debug("computation failed", zap.Duration("elapsed", elapsed), zap.Error(err))
			return
		}
		log.Debug("computation done", zap.Duration("elapsed", elapsed))
	}()

	cacheStart := time.Now()
	cache := BuildFactorialCache(p.WorkingBits, p.MaxIndex())
	cacheElapsed := time.Since(cacheStart)
	cfg.metrics.ObserveCacheBuild(cache.Len(), cacheElapsed.Seconds())
	log.Debug("factorial cache ready", zap.Int("entries", cache.Len()), zap.Duration("elapsed", cacheElapsed))

	partials, err := evaluate(ctx, &cfg, log, cache, p, workers)
	if err != nil {
		return nil, err
	}

	return Reduce(partials, p), nil
}

// evaluate fans the series out over the workers and returns one partial
// sum per worker, in worker order.
func evaluate(
	ctx context.Context,
	cfg *config,
	log *zap.Logger,
	cache *FactorialCache,
	p Precision,
	workers int,
) ([]*big.Float, error) {
	assignment, ok := Partition(p.Terms, workers)
	if !ok || workers == 1 {
		assignment = Assignment{{{Start: 0, End: p.Terms}}}
		log.Debug("single-range evaluation", zap.Uint64("terms", p.Terms))
	}

	// Read-only after this point; the hooks look up terms by task name.
	terms := make(map[string]uint64, len(assignment))
	for w := range assignment {
		terms[workerName(w)] = assignment.Terms(w)
	}

	opts := []fanout.Option{
		fanout.WithOnStart(func(info fanout.TaskInfo) {
			log.Debug("worker starting", zap.String("worker", info.Name), zap.Uint64("terms", terms[info.Name]))
		}),
		fanout.WithOnDone(func(info fanout.TaskInfo, err error, d time.Duration) {
			cfg.metrics.ObserveWorker(terms[info.Name], d.Seconds(), err == nil)
			log.Debug("worker done",
				zap.String("worker", info.Name),
				zap.Duration("elapsed", d),
				zap.Error(err),
			)
		}),
	}
	if cfg.maxConcurrency > 0 {
		opts = append(opts, fanout.WithLimit(cfg.maxConcurrency))
	}

	partials, err := fanout.Map(ctx, assignment, workerName,
		func(ctx context.Context, _ int, ranges []Range) (*big.Float, error) {
			return PartialSum(ctx, cache, p.WorkingBits, ranges...)
		}, opts...)
	if err != nil {
		if info, ok := fanout.TaskOf(err); ok {
			log.Debug("worker failed",
				zap.String("worker", info.Name),
				zap.Uint64("terms", terms[info.Name]),
				zap.NamedError("cause", fanout.CauseOf(err)),
			)
		}

		var pe *fanout.PanicError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("%w: %w", ErrWorkerFailure, err)
		}
		return nil, err
	}

	return partials, nil
}

func workerName(w int) string {
	return fmt.Sprintf("worker-%d", w)
}

// Format renders x with digits decimal places.
func Format(x *big.Float, digits uint64) string {
	return x.Text('f', int(digits))
}
