package fanout

import (
	"context"
	"sync"
	"sync/atomic"
)

// TaskFunc is the signature for a task function running within a scope.
// It receives the scope context, which is cancelled after the first task
// error or once the scope is finalized.
type TaskFunc func(ctx context.Context) error

// scope maintains the state shared by every task of one fan-out.
type scope struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	cfg    config

	wg sync.WaitGroup

	firstErr atomicError
	errOnce  sync.Once

	sem *Semaphore
}

// Run creates a scope, invokes fn with its [Spawner], then waits for every
// spawned task to complete. It returns the first task error, if any.
//
// A panic in fn itself is re-raised after the spawned tasks have returned.
func Run(parent context.Context, fn func(sp Spawner), opts ...Option) (err error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancelCause(parent)
	s := &scope{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
	}
	if cfg.limit > 0 {
		s.sem = NewSemaphore(cfg.limit)
	}

	sp := &spawner{s: s}
	sp.open.Store(true)

	defer func() {
		runPanic := recover()

		sp.close()
		waitErr := s.finalize()

		if runPanic != nil {
			panic(runPanic)
		}
		err = waitErr
	}()

	fn(sp)
	return nil
}

// finalize waits for all tasks to complete and returns the first error.
func (s *scope) finalize() error {
	s.wg.Wait()

	ctxWasCancelled := s.ctx.Err() != nil
	s.cancel(nil)

	if err := s.firstErr.Load(); err != nil {
		return err
	}

	// Parent cancellation with no task error is still a failure.
	if ctxWasCancelled {
		return context.Cause(s.ctx)
	}
	return nil
}

// exec runs a function, converting a panic into a [*PanicError].
func (s *scope) exec(fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()
	return fn(s.ctx)
}

// recordError keeps the first error and cancels the siblings.
func (s *scope) recordError(info TaskInfo, err error) {
	te := &TaskError{
		Task: info,
		Err:  err,
	}

	s.errOnce.Do(func() {
		s.firstErr.Store(te)
		s.cancel(err)
	})
}

// atomicError is an error slot safe for concurrent Store and Load.
type atomicError struct {
	p atomic.Pointer[errBox]
}

type errBox struct{ err error }

func (a *atomicError) Store(err error) {
	if err == nil {
		a.p.Store(nil)
		return
	}
	a.p.Store(&errBox{err: err})
}

func (a *atomicError) Load() error {
	if b := a.p.Load(); b != nil {
		return b.err
	}
	return nil
}
