package fanout

import (
	"context"
	"fmt"
)

// Map runs fn for every item concurrently, one task per item, and returns
// the results in input order. Task names are produced by name(i); a nil name
// function yields "map[i]".
//
// On error Map returns nil and the first error.
//
//	sums, err := fanout.Map(ctx, assignment, nil, func(ctx context.Context, i int, rs []Range) (*big.Float, error) {
//	    return eval(ctx, rs)
//	})
func Map[T, R any](
	ctx context.Context,
	items []T,
	name func(i int) string,
	fn func(ctx context.Context, i int, item T) (R, error),
	opts ...Option,
) ([]R, error) {
	if name == nil {
		name = func(i int) string { return fmt.Sprintf("map[%d]", i) }
	}

	results := make([]R, len(items))
	err := Run(ctx, func(sp Spawner) {
		for i, item := range items {
			sp.Go(name(i), func(ctx context.Context) error {
				r, err := fn(ctx, i, item)
				if err != nil {
					return err
				}
				results[i] = r // each task writes its own index
				return nil
			})
		}
	}, opts...)
	if err != nil {
		return nil, err
	}
	return results, nil
}
