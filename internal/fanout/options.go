package fanout

import "time"

// TaskInfo provides metadata about a running task.
// It is passed to observability hooks registered via [WithOnStart] and [WithOnDone].
type TaskInfo struct {
	Name string
}

type config struct {
	limit   int
	onStart func(TaskInfo)
	onDone  func(TaskInfo, error, time.Duration)
}

// Option configures a [Run] or [Map] call.
type Option func(*config)

func defaultConfig() config {
	return config{}
}

// WithLimit sets the maximum number of goroutines that can execute
// concurrently within the scope. Tasks beyond the limit block until
// a slot becomes available or the context is canceled.
//
// A limit of zero (the default) means unlimited concurrency.
// WithLimit panics if n is negative.
func WithLimit(n int) Option {
	return func(c *config) {
		if n < 0 {
			panic("fanout: limit must be non-negative")
		}
		c.limit = n
	}
}

// WithOnStart registers a hook invoked when each task begins executing.
// The hook runs inside the task's goroutine before the task function.
func WithOnStart(fn func(TaskInfo)) Option {
	return func(c *config) {
		c.onStart = fn
	}
}

// WithOnDone registers a hook invoked when each task finishes.
// The hook receives the task's error (nil on success) and wall-clock duration.
// The hook runs inside the task's goroutine after the task function returns.
func WithOnDone(fn func(TaskInfo, error, time.Duration)) Option {
	return func(c *config) {
		c.onDone = fn
	}
}
