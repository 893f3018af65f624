package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator applies a filter to a list of records, splitting long
// lists into chunks evaluated in parallel
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the records matching filter, in input order. The first
// record that fails to evaluate aborts the whole evaluation.
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, records []Record) ([]Record, error) {
	if len(records) == 0 {
		return []Record{}, nil
	}

	// For small lists, don't bother with concurrency
	if len(records) < e.batchSize {
		return evaluateChunk(filter, records, 0)
	}

	return e.evaluateConcurrent(ctx, filter, records)
}

// evaluateConcurrent evaluates chunks of records with at most workerCount goroutines
func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, records []Record) ([]Record, error) {
	chunkSize := max(len(records)/e.workerCount, e.batchSize)
	chunks := (len(records) + chunkSize - 1) / chunkSize
	results := make([][]Record, chunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(records))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			matches, err := evaluateChunk(filter, records[start:end], start)
			if err != nil {
				return err
			}
			results[i] = matches
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Combine results in order
	total := 0
	for _, matches := range results {
		total += len(matches)
	}
	all := make([]Record, 0, total)
	for _, matches := range results {
		all = append(all, matches...)
	}

	return all, nil
}

// evaluateChunk evaluates records sequentially; offset is the index of the
// first record in the full list
func evaluateChunk(filter CompiledFilter, records []Record, offset int) ([]Record, error) {
	matches := make([]Record, 0, len(records)/10)
	for i, record := range records {
		ok, err := filter.Evaluate(record)
		if err != nil {
			return nil, &EvaluationError{
				Expression: filter.Expression(),
				Index:      offset + i,
				Err:        err,
			}
		}
		if ok {
			matches = append(matches, record)
		}
	}
	return matches, nil
}
