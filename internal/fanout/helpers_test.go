package fanout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Run("empty slice", func(t *testing.T) {
		out, err := Map(context.Background(), []int{}, nil, func(ctx context.Context, i, item int) (int, error) {
			return item, nil
		})
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("preserves order", func(t *testing.T) {
		in := []int{5, 4, 3, 2, 1}
		out, err := Map(context.Background(), in, nil, func(ctx context.Context, i, item int) (string, error) {
			return fmt.Sprintf("%d:%d", i, item*item), nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"0:25", "1:16", "2:9", "3:4", "4:1"}, out)
	})

	t.Run("custom names reach the error", func(t *testing.T) {
		_, err := Map(context.Background(), []int{1, 2, 3},
			func(i int) string { return fmt.Sprintf("worker-%d", i) },
			func(ctx context.Context, i, item int) (int, error) {
				if item == 2 {
					return 0, errors.New("error on 2")
				}
				<-ctx.Done()
				return 0, nil
			})
		require.Error(t, err)
		info, ok := TaskOf(err)
		require.True(t, ok)
		assert.Equal(t, "worker-1", info.Name)
	})

	t.Run("error returns nil results", func(t *testing.T) {
		out, err := Map(context.Background(), []int{1, 2}, nil, func(ctx context.Context, i, item int) (int, error) {
			return 0, errors.New("fail")
		})
		assert.Error(t, err)
		assert.Nil(t, out)
	})

	t.Run("panic as error", func(t *testing.T) {
		out, err := Map(context.Background(), []int{1}, nil, func(ctx context.Context, i, item int) (int, error) {
			panic("map panic")
		})
		assert.Nil(t, out)
		var pe *PanicError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "map panic", pe.Value)
	})

	t.Run("limit", func(t *testing.T) {
		var active, peak atomic.Int32
		items := make([]int, 16)
		_, err := Map(context.Background(), items, nil, func(ctx context.Context, i, item int) (int, error) {
			cur := active.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			active.Add(-1)
			return i, nil
		}, WithLimit(2))
		require.NoError(t, err)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})
}

func TestAtomicError(t *testing.T) {
	t.Run("load before store", func(t *testing.T) {
		var ae atomicError
		assert.Nil(t, ae.Load())
	})

	t.Run("store and load error", func(t *testing.T) {
		var ae atomicError
		err := errors.New("test")
		ae.Store(err)
		assert.Same(t, err, ae.Load())
	})

	t.Run("store error then nil", func(t *testing.T) {
		var ae atomicError
		ae.Store(errors.New("test"))
		ae.Store(nil)
		assert.Nil(t, ae.Load())
	})
}
