// Package bench measures the engine over a grid of digit counts and worker
// counts, the way a criterion group would, and renders the timings.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
)

// ComputeFunc computes π to digits places on workers workers.
type ComputeFunc func(ctx context.Context, digits uint64, workers int) (*big.Float, error)

// Plan describes one benchmark run.
type Plan struct {
	Keypoints    []uint64
	WorkerCounts []int
	Samples      int
}

// Row holds the timings of one (digits, workers) measurement.
type Row struct {
	Digits  uint64
	Workers int
	Samples int
	Min     time.Duration
	Mean    time.Duration
	Max     time.Duration
	// Speedup is the single-worker mean divided by this mean, or zero when
	// the plan has no single-worker measurement for these digits.
	Speedup float64
}

// Run measures fn for every keypoint and worker count. Samples run
// sequentially so that measurements do not compete for CPUs. The first
// error aborts the run.
func Run(ctx context.Context, plan Plan, fn ComputeFunc) ([]Row, error) {
	if plan.Samples < 1 {
		return nil, errors.New("bench: samples must be positive")
	}

	rows := make([]Row, 0, len(plan.Keypoints)*len(plan.WorkerCounts))
	for _, digits := range plan.Keypoints {
		var single time.Duration
		first := len(rows)

		for _, workers := range plan.WorkerCounts {
			row, err := measure(ctx, digits, workers, plan.Samples, fn)
			if err != nil {
				return nil, err
			}
			if workers == 1 {
				single = row.Mean
			}
			rows = append(rows, row)
		}

		if single > 0 {
			for i := first; i < len(rows); i++ {
				rows[i].Speedup = float64(single) / float64(rows[i].Mean)
			}
		}
	}

	return rows, nil
}

func measure(ctx context.Context, digits uint64, workers, samples int, fn ComputeFunc) (Row, error) {
	row := Row{Digits: digits, Workers: workers, Samples: samples}

	var total time.Duration
	for i := 0; i < samples; i++ {
		start := time.Now()
		if _, err := fn(ctx, digits, workers); err != nil {
			return Row{}, fmt.Errorf("bench: %d digits on %d workers: %w", digits, workers, err)
		}
		d := time.Since(start)

		total += d
		if i == 0 || d < row.Min {
			row.Min = d
		}
		if d > row.Max {
			row.Max = d
		}
	}
	row.Mean = total / time.Duration(samples)

	return row, nil
}

// Write renders rows as an aligned table.
func Write(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "digits\tworkers\tsamples\tmin\tmean\tmax\tspeedup\t")
	for _, r := range rows {
		speedup := "-"
		if r.Speedup > 0 {
			speedup = humanize.FtoaWithDigits(r.Speedup, 2) + "x"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t\n",
			humanize.Comma(int64(r.Digits)),
			r.Workers,
			r.Samples,
			round(r.Min),
			round(r.Mean),
			round(r.Max),
			speedup,
		)
	}
	return tw.Flush()
}

func round(d time.Duration) time.Duration {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond)
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond)
	default:
		return d.Round(time.Microsecond)
	}
}
