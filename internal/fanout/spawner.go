package fanout

import (
	"context"
	"sync/atomic"
	"time"
)

// Spawner starts tasks inside a scope.
type Spawner interface {
	// Go starts a new concurrent task with the given name.
	Go(name string, fn TaskFunc)
}

type spawner struct {
	s    *scope
	open atomic.Bool
}

// Go implements Spawner.Go.
func (sp *spawner) Go(name string, fn TaskFunc) {
	// Check open before wg.Add so finalize's wg.Wait never races a late Add.
	if !sp.open.Load() {
		panic("fanout: Go called after scope shutdown")
	}

	sp.s.wg.Add(1)

	info := TaskInfo{Name: name}

	go func() {
		defer sp.s.wg.Done()

		if sp.s.sem != nil {
			// On cancellation the cause is already recorded by whoever cancelled.
			if err := sp.s.sem.Acquire(sp.s.ctx); err != nil {
				return
			}
			defer sp.s.sem.Release()
		}

		if sp.s.ctx.Err() != nil {
			return
		}

		start := time.Now()
		err := sp.s.exec(func(ctx context.Context) error {
			if sp.s.cfg.onStart != nil {
				sp.s.cfg.onStart(info)
			}
			return fn(ctx)
		})
		elapsed := time.Since(start)

		if sp.s.cfg.onDone != nil {
			sp.s.cfg.onDone(info, err, elapsed)
		}

		if err != nil {
			sp.s.recordError(info, err)
		}
	}()
}

func (sp *spawner) close() {
	sp.open.Store(false)
}
