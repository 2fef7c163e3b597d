package piseries

import (
	"go.uber.org/zap"

	"github.com/baxromumarov/piseries/metrics"
)

type config struct {
	logger         *zap.Logger
	metrics        metrics.Collector
	maxConcurrency int
}

// Option configures a single [Compute] call.
type Option func(*config)

func defaultConfig() config {
	return config{
		logger:  zap.NewNop(),
		metrics: metrics.NewNop(),
	}
}

// WithLogger sets the logger that receives Debug-level timing records
// (cache build, per worker, total). A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the collector that receives timing observations.
// A nil collector is ignored.
func WithMetrics(m metrics.Collector) Option {
	return func(c *config) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithMaxConcurrency caps the number of workers evaluating at the same time.
// The partition still has one block per worker; blocks beyond the cap wait
// for a free slot. Zero (the default) runs every worker at once.
//
// WithMaxConcurrency panics if n is negative.
func WithMaxConcurrency(n int) Option {
	return func(c *config) {
		if n < 0 {
			panic("piseries: max concurrency must be non-negative")
		}
		c.maxConcurrency = n
	}
}
