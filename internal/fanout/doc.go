// Package fanout runs a fixed set of worker goroutines inside a scope that is
// joined exactly once.
//
// Every goroutine spawned through a [Spawner] belongs to the scope created by
// [Run], which blocks until all of them have returned. The first task error
// cancels the shared context so that siblings can stop early, and is returned
// wrapped in a [*TaskError]; [TaskOf] and [CauseOf] take it apart again:
//
//	err := fanout.Run(ctx, func(sp fanout.Spawner) {
//	    for i, r := range ranges {
//	        sp.Go(fmt.Sprintf("worker-%d", i), func(ctx context.Context) error {
//	            return eval(ctx, r)
//	        })
//	    }
//	})
//
// [Map] is the common shape: one task per input item, results collected in
// input order.
//
// # Panics
//
// A panic inside a task is captured together with its stack trace as a
// [*PanicError] and treated as that task's error. A panic in the function
// passed to [Run] is re-raised once every spawned task has finished.
//
// # Bounded Concurrency
//
// [WithLimit] restricts how many tasks execute at once. Tasks beyond the
// limit wait for a slot on a [Semaphore].
//
// # Observability
//
// [WithOnStart] and [WithOnDone] receive [TaskInfo] for every task; the
// done hook also gets the error and the wall-clock duration.
package fanout
