package fanout

import (
	"context"
	"sync/atomic"
)

// Semaphore is the counting semaphore behind [WithLimit].
// Acquire unblocks if the context is cancelled.
type Semaphore struct {
	ch       chan struct{}
	acquired atomic.Int64
}

// NewSemaphore creates a semaphore with the given capacity.
// Panics if n <= 0.
func NewSemaphore(n int) *Semaphore {
	if n <= 0 {
		panic("fanout: NewSemaphore requires n > 0")
	}
	return &Semaphore{
		ch: make(chan struct{}, n),
	}
}

// Acquire blocks until a slot is available or ctx is cancelled.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
		s.acquired.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release releases a slot. Panics if more slots are released than acquired.
func (s *Semaphore) Release() {
	if s.acquired.Add(-1) < 0 {
		s.acquired.Add(1)
		panic("fanout: Semaphore.Release called without matching Acquire")
	}
	<-s.ch
}
