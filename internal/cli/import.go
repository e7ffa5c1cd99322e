package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pmarkov/probledger/internal/worker"
	"github.com/spf13/cobra"
)

var (
	importConcurrency int
	importRate        float64
	importBurst       int
	importTimeout     time.Duration
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Apply a batch of adjustments from a YAML file",
	Long: `Import reads adjustments from a YAML file and applies them
concurrently through a worker pool, rate-limited so a large batch
cannot saturate the ledger backend.

File format:
  adjustments:
    - event: rain
      delta: 0.2
    - event: storm
      delta: -0.1

Failed adjustments (e.g. unknown events) are reported but do not stop
the batch.

Example:
  probledger import batch.yaml
  probledger import batch.yaml --concurrency 8 --rate 500`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().IntVar(&importConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	importCmd.Flags().Float64Var(&importRate, "rate", 0, "max adjustments per second (0: use config)")
	importCmd.Flags().IntVar(&importBurst, "burst", 0, "rate limiter burst (0: use config)")
	importCmd.Flags().DurationVar(&importTimeout, "timeout", 5*time.Minute, "total timeout for the batch")
}

func runImport(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()

	cfg := loadConfig()
	if importConcurrency > 0 {
		cfg.Batch.Concurrency = importConcurrency
	}
	if importRate > 0 {
		cfg.Batch.OpsPerSecond = importRate
	}
	if importBurst > 0 {
		cfg.Batch.Burst = importBurst
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Importing: %s\n", file)
		fmt.Fprintf(os.Stderr, "Workers: %d\n", cfg.Batch.Concurrency)
		fmt.Fprintf(os.Stderr, "Rate: %g ops/s (burst %d)\n", cfg.Batch.OpsPerSecond, cfg.Batch.Burst)
		fmt.Fprintln(os.Stderr)
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	limiter := worker.NewLimiter(cfg.Batch.OpsPerSecond, cfg.Batch.Burst)
	processor := worker.NewBatchProcessor(s, limiter, cfg.Batch.Concurrency)

	results, err := processor.ApplyFile(ctx, file)
	if err != nil {
		return err
	}

	applied := 0
	failed := 0
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "failed %s: %v\n", res.Adjustment.Event, res.Error)
			continue
		}
		applied++
		if verbose {
			fmt.Fprintf(os.Stderr, "applied %s: %+g -> %g\n",
				res.Adjustment.Event, res.Adjustment.Delta, res.Entry.Value)
		}
	}

	fmt.Printf("applied %d adjustments, %d failed\n", applied, failed)
	if failed > 0 {
		return fmt.Errorf("%d adjustments failed", failed)
	}
	return nil
}
