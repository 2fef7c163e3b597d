package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/baxromumarov/piseries"
)

var (
	computeDigits  uint64
	computeWorkers int
	computeLimit   int
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Print π to the requested number of decimal places",
	Long: `Computes π to --digits decimal places using --workers parallel workers
and prints it on stdout. Flags override the config file.`,
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().Uint64VarP(&computeDigits, "digits", "d", 0, "decimal places (default from config)")
	computeCmd.Flags().IntVarP(&computeWorkers, "workers", "w", 0, "parallel workers (default from config)")
	computeCmd.Flags().IntVar(&computeLimit, "max-concurrency", 0, "cap on workers running at once (0 = no cap)")
	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("loading config", err)
		return err
	}
	if cmd.Flags().Changed("digits") {
		cfg.Digits = computeDigits
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = computeWorkers
	}
	if err := cfg.Validate(); err != nil {
		printError("invalid flags", err)
		return err
	}
	if computeLimit < 0 {
		err := fmt.Errorf("max-concurrency must be non-negative, got %d", computeLimit)
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

	log.Info("computing",
		zap.String("digits", humanize.Comma(int64(cfg.Digits))),
		zap.Int("workers", cfg.Workers),
	)

	pi, err := piseries.Compute(ctx, cfg.Digits, cfg.Workers,
		piseries.WithLogger(log),
		piseries.WithMaxConcurrency(computeLimit),
	)
	if err != nil {
		printError("computing π", err)
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), piseries.Format(pi, cfg.Digits))
	return nil
}
