package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of reports rendered at once when no
// concurrency is configured.
const DefaultConcurrency = 4

// BatchProcessor renders many report files concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on a single report
// 2. Each report gets its own pipeline, so no step state is shared
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each report.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent renders.
	concurrency int

	// failFast cancels the remaining renders after the first failure.
	failFast bool

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent renders.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithFailFast stops starting new renders once one has failed.
// Renders already running are finished.
func WithFailFast(failFast bool) BatchOption {
	return func(b *BatchProcessor) {
		b.failFast = failFast
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each input to create a fresh
// pipeline instance. This ensures that pipeline state doesn't leak between
// reports.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch renders every input and returns one job per input, in input
// order. It respects the configured concurrency limit and context
// cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each input gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Failures are recorded in the jobs. The error return is the cancellation
// cause, or in fail-fast mode the first failure.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, inputs []string) ([]*Job, error) {
	jobs := make([]*Job, len(inputs))
	err := bp.ProcessBatchWithCallback(ctx, inputs, func(job *Job, index int) {
		jobs[index] = job
	})

	// Inputs skipped after cancellation still get a job carrying the cause.
	for i, job := range jobs {
		if job == nil {
			jobs[i] = &Job{
				Input: inputs[i],
				Err:   fmt.Errorf("%w: %w", ErrSkipped, cancelCause(ctx, err)),
			}
		}
	}
	return jobs, err
}

// ProcessBatchWithCallback renders every input and calls callback for each
// finished job. This is useful for streaming progress.
//
// The callback receives the job and the index of its input. It is called
// from the goroutine that ran the job, so it must be safe for concurrent
// use unless it only touches the element at index.
func (bp *BatchProcessor) ProcessBatchWithCallback(ctx context.Context, inputs []string, callback func(job *Job, index int)) error {
	bp.logger.Info("starting batch processing",
		"total_inputs", len(inputs),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bp.logger.Debug("rendering report",
				"input", input,
				"index", i+1,
				"total", len(inputs),
			)

			job := NewJob(input)
			err := bp.pipelineFactory().Execute(gctx, job)
			callback(job, i)

			if err != nil {
				bp.logger.Warn("render failed",
					"input", input,
					"error", err,
				)
				if bp.failFast {
					return err
				}
				// The error is recorded in the job; keep rendering the others
				return nil
			}

			bp.logger.Info("report written",
				"input", input,
				"output", job.Output,
				"pages", job.Pages(),
			)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"total_inputs", len(inputs),
		"elapsed", time.Since(startTime),
	)

	return err
}

// cancelCause returns the reason a job never ran.
func cancelCause(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return context.Canceled
}

// Failed returns the jobs that ended with an error.
func Failed(jobs []*Job) []*Job {
	var failed []*Job
	for _, job := range jobs {
		if job.Err != nil {
			failed = append(failed, job)
		}
	}
	return failed
}
