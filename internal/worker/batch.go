package worker

import (
	"context"
	"fmt"
	"os"

	"github.com/pmarkov/probledger/internal/model"
	"github.com/pmarkov/probledger/internal/store"
	"gopkg.in/yaml.v3"
)

// Adjustment is a single delta to apply to an event's probability value
type Adjustment struct {
	Event string  `json:"event" yaml:"event"`
	Delta float64 `json:"delta" yaml:"delta"`
}

// AdjustJob applies one adjustment through the store
type AdjustJob struct {
	Adjustment Adjustment
	Store      store.Store
	Limiter    *Limiter
}

// Execute executes the adjustment job
func (j *AdjustJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx); err != nil {
			return &AdjustResult{Adjustment: j.Adjustment, Error: err}
		}
	}

	entry, err := j.Store.Adjust(ctx, j.Adjustment.Event, j.Adjustment.Delta)
	if err != nil {
		return &AdjustResult{Adjustment: j.Adjustment, Error: err}
	}
	return &AdjustResult{Adjustment: j.Adjustment, Entry: entry}
}

// AdjustResult represents the result of an adjustment job
type AdjustResult struct {
	Adjustment Adjustment
	Entry      model.Entry
	Error      error
}

// GetError returns the error from the adjustment result
func (r *AdjustResult) GetError() error {
	return r.Error
}

// BatchProcessor applies many adjustments concurrently
type BatchProcessor struct {
	store       store.Store
	limiter     *Limiter
	concurrency int
}

// NewBatchProcessor creates a new batch processor. The limiter may be
// nil to apply adjustments unthrottled.
func NewBatchProcessor(st store.Store, limiter *Limiter, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		store:       st,
		limiter:     limiter,
		concurrency: concurrency,
	}
}

// Apply applies all adjustments concurrently. Failed adjustments do not
// stop the batch; adjustments refused because the context was cancelled
// are returned as failed results. Jobs already in flight when the
// context is cancelled may yield no result at all.
func (b *BatchProcessor) Apply(ctx context.Context, adjustments []Adjustment) []*AdjustResult {
	if len(adjustments) == 0 {
		return []*AdjustResult{}
	}

	pool := NewPoolContext(ctx, b.concurrency)
	pool.Start()

	var refused []*AdjustResult
	for _, adj := range adjustments {
		accepted := pool.Submit(&AdjustJob{
			Adjustment: adj,
			Store:      b.store,
			Limiter:    b.limiter,
		})
		if !accepted {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			refused = append(refused, &AdjustResult{Adjustment: adj, Error: err})
		}
	}

	results := pool.Wait()

	adjustResults := make([]*AdjustResult, 0, len(results)+len(refused))
	for _, result := range results {
		adjustResults = append(adjustResults, result.(*AdjustResult))
	}
	return append(adjustResults, refused...)
}

// ApplyFile reads adjustments from a YAML file and applies them
func (b *BatchProcessor) ApplyFile(ctx context.Context, filePath string) ([]*AdjustResult, error) {
	adjustments, err := ReadAdjustmentsFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read adjustments: %w", err)
	}

	return b.Apply(ctx, adjustments), nil
}

// adjustmentsFile is the on-disk batch layout
type adjustmentsFile struct {
	Adjustments []Adjustment `yaml:"adjustments"`
}

// ReadAdjustmentsFile reads a batch of adjustments from a YAML file
func ReadAdjustmentsFile(filePath string) ([]Adjustment, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	var doc adjustmentsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	for i, adj := range doc.Adjustments {
		if adj.Event == "" {
			return nil, fmt.Errorf("adjustment %d: missing event name", i)
		}
	}

	return doc.Adjustments, nil
}
