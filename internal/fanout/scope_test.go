package fanout_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/baxromumarov/piseries/internal/fanout"
)

func TestRunAllSuccess(t *testing.T) {
	var count atomic.Int32
	err := fanout.Run(context.Background(), func(sp fanout.Spawner) {
		for i := 0; i < 10; i++ {
			sp.Go("task", func(ctx context.Context) error {
				count.Add(1)
				return nil
			})
		}
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := count.Load(); got != 10 {
		t.Fatalf("expected 10 tasks completed, got %d", got)
	}
}

func TestRunEmpty(t *testing.T) {
	err := fanout.Run(context.Background(), func(sp fanout.Spawner) {})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestRunSetupPanicStillClosesScope(t *testing.T) {
	var runScope fanout.Spawner

	p := capturePanic(func() {
		_ = fanout.Run(context.Background(), func(sp fanout.Spawner) {
			runScope = sp
			panic("setup boom")
		})
	})

	if p != "setup boom" {
		t.Fatalf("expected setup panic value, got %v", p)
	}

	late := capturePanic(func() {
		runScope.Go("late", func(context.Context) error { return nil })
	})
	if late == nil {
		t.Fatal("expected Go to panic after Run cleanup")
	}
}

func TestRunFailFast(t *testing.T) {
	sentinel := errors.New("task-3 failed")
	err := fanout.Run(context.Background(), func(sp fanout.Spawner) {
		for i := 0; i < 10; i++ {
			sp.Go(fmt.Sprintf("task-%d", i), func(ctx context.Context) error {
				if i == 3 {
					return sentinel
				}
				<-ctx.Done()
				return nil
			})
		}
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	info, ok := fanout.TaskOf(err)
	if !ok || info.Name != "task-3" {
		t.Fatalf("expected attribution to task-3, got %+v (%v)", info, ok)
	}
}

func TestRunFailFastCancelsOthers(t *testing.T) {
	var cancelled atomic.Int32
	started := make(chan struct{}, 5)

	err := fanout.Run(context.Background(), func(sp fanout.Spawner) {
		for i := 0; i < 5; i++ {
			sp.Go("worker", func(ctx context.Context) error {
				started <- struct{}{}
				<-ctx.Done()
				cancelled.Add(1)
				return ctx.Err()
			})
		}

		for i := 0; i < 5; i++ {
			<-started
		}

		sp.Go("fail", func(ctx context.Context) error {
			return errors.New("boom")
		})
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := cancelled.Load(); got != 5 {
		t.Fatalf("expected 5 workers cancelled, got %d", got)
	}
	if cause := fanout.CauseOf(err); cause == nil || cause.Error() != "boom" {
		t.Fatalf("expected boom as first error, got %v", cause)
	}
}

func TestRunPanicBecomesError(t *testing.T) {
	err := fanout.Run(context.Background(), func(sp fanout.Spawner) {
		sp.Go("panicker", func(ctx context.Context) error {
			panic("boom")
		})
	})
	if err == nil {
		t.Fatal("expected error from panic, got nil")
	}
	var pe *fanout.PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %T: %v", err, err)
	}
	if pe.Value != "boom" {
		t.Fatalf("expected 'boom', got %v", pe.Value)
	}
	if pe.Stack == "" {
		t.Fatal("expected non-empty stack trace")
	}
	if info, ok := fanout.TaskOf(err); !ok || info.Name != "panicker" {
		t.Fatalf("expected attribution to panicker, got %+v (%v)", info, ok)
	}
}

func TestRunPanicWithErrorValue(t *testing.T) {
	sentinel := errors.New("index out of range")
	err := fanout.Run(context.Background(), func(sp fanout.Spawner) {
		sp.Go("panicker", func(ctx context.Context) error {
			panic(sentinel)
		})
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected panic value to unwrap to sentinel, got %v", err)
	}
}

func TestRunLimit(t *testing.T) {
	const limit = 3
	var active atomic.Int32
	var maxActive atomic.Int32

	err := fanout.Run(context.Background(), func(sp fanout.Spawner) {
		for i := 0; i < 20; i++ {
			sp.Go("worker", func(ctx context.Context) error {
				cur := active.Add(1)
				for {
					old := maxActive.Load()
					if cur <= old || maxActive.CompareAndSwap(old, cur) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				active.Add(-1)
				return nil
			})
		}
	}, fanout.WithLimit(limit))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := maxActive.Load(); got > int32(limit) {
		t.Fatalf("max active goroutines %d exceeded limit %d", got, limit)
	}
}

func TestRunExternalCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	var sawCancel atomic.Bool
	err := fanout.Run(ctx, func(sp fanout.Spawner) {
		sp.Go("long", func(ctx context.Context) error {
			<-ctx.Done()
			sawCancel.Store(true)
			return ctx.Err()
		})
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !sawCancel.Load() {
		t.Fatal("task did not observe cancellation")
	}
}

func TestRunPreCancelledSkipsTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	err := fanout.Run(ctx, func(sp fanout.Spawner) {
		sp.Go("never", func(ctx context.Context) error {
			ran.Store(true)
			return nil
		})
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ran.Load() {
		t.Fatal("task should not run on a cancelled scope")
	}
}

func TestHooks(t *testing.T) {
	var starts, dones atomic.Int32
	var failed atomic.Int32

	err := fanout.Run(context.Background(), func(sp fanout.Spawner) {
		sp.Go("ok", func(ctx context.Context) error { return nil })
		sp.Go("bad", func(ctx context.Context) error { return errors.New("bad") })
	},
		fanout.WithOnStart(func(fanout.TaskInfo) { starts.Add(1) }),
		fanout.WithOnDone(func(info fanout.TaskInfo, err error, d time.Duration) {
			dones.Add(1)
			if err != nil && info.Name == "bad" {
				failed.Add(1)
			}
			if d < 0 {
				t.Errorf("negative duration for %s", info.Name)
			}
		}),
	)
	if err == nil {
		t.Fatal("expected error")
	}
	// "ok" may be skipped if "bad" cancels the scope first.
	if starts.Load() < 1 || starts.Load() != dones.Load() {
		t.Fatalf("starts=%d dones=%d", starts.Load(), dones.Load())
	}
	if failed.Load() != 1 {
		t.Fatalf("expected onDone to see the failure once, got %d", failed.Load())
	}
}

func TestWithLimitNegativePanics(t *testing.T) {
	if p := capturePanic(func() { fanout.WithLimit(-1) }); p != nil {
		t.Fatalf("option construction should not panic, got %v", p)
	}
	p := capturePanic(func() {
		_ = fanout.Run(context.Background(), func(fanout.Spawner) {}, fanout.WithLimit(-1))
	})
	if p == nil {
		t.Fatal("expected panic for negative limit")
	}
}

func capturePanic(fn func()) (r any) {
	defer func() { r = recover() }()
	fn()
	return nil
}
