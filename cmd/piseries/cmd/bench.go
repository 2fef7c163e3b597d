package cmd

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/baxromumarov/piseries"
	"github.com/baxromumarov/piseries/internal/bench"
	"github.com/baxromumarov/piseries/metrics"
)

var (
	benchSamples     int
	benchMetricsAddr string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the engine over digit counts and worker counts",
	Long: `Runs the engine for every configured keypoint and worker count and
prints min/mean/max timings with the speedup over a single worker.

With --metrics-addr the timings are also exported for Prometheus at /metrics.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchSamples, "samples", 0, "runs per measurement (default from config)")
	benchCmd.Flags().StringVar(&benchMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("loading config", err)
		return err
	}
	if cmd.Flags().Changed("samples") {
		cfg.Bench.Samples = benchSamples
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Metrics.Addr = benchMetricsAddr
	}
	if err := cfg.Validate(); err != nil {
		printError("invalid flags", err)
		return err
	}

	log, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		printError("creating logger", err)
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var collector metrics.Collector = metrics.NewNop()
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		collector = metrics.NewPrometheus(reg, "")

		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info("serving metrics", zap.String("addr", cfg.Metrics.Addr))
	}

	compute := func(ctx context.Context, digits uint64, workers int) (*big.Float, error) {
		return piseries.Compute(ctx, digits, workers,
			piseries.WithLogger(log),
			piseries.WithMetrics(collector),
		)
	}

	rows, err := bench.Run(ctx, bench.Plan{
		Keypoints:    cfg.Bench.Keypoints,
		WorkerCounts: cfg.Bench.WorkerCounts,
		Samples:      cfg.Bench.Samples,
	}, compute)
	if err != nil {
		printError("running benchmark", err)
		return err
	}

	return bench.Write(cmd.OutOrStdout(), rows)
}
