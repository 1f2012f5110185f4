package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cafescout/contexts/moderation/approval-pipeline/domain/entities"
	domainerrors "cafescout/contexts/moderation/approval-pipeline/domain/errors"
	"cafescout/contexts/moderation/approval-pipeline/ports"
)

// DefaultPause spaces classifier calls so one run stays inside the
// downstream model service's rate limits.
const DefaultPause = 2 * time.Second

// Orchestrator drives repeated classifier calls within one triggered run.
// Batches execute strictly sequentially; the inter-batch pause suspends only
// this run. The hosting environment imposes the overall wall-clock ceiling,
// so maxBatches*(classifier latency+Pause) must stay safely under it (see
// config.Validate).
type Orchestrator struct {
	Classifier ports.Classifier
	Pause      time.Duration
	Verbose    bool
	Logger     *slog.Logger
}

// Run invokes the classifier with limit=batchSize until the queue looks
// drained or maxBatches is reached. A short batch (fewer processed than
// requested) is the drain signal. A classifier error aborts the loop;
// batches completed before the fault are preserved in the returned summary
// so the report can surface partial progress.
func (o Orchestrator) Run(ctx context.Context, batchSize int, maxBatches int) (entities.RunSummary, error) {
	logger := ResolveLogger(o.Logger)
	if batchSize <= 0 || maxBatches <= 0 {
		return entities.RunSummary{}, domainerrors.ErrInvalidRunConfig
	}

	batches := make([]entities.BatchResult, 0, maxBatches)
	hasMore := true
	for hasMore && len(batches) < maxBatches {
		result, err := o.Classifier.Classify(ctx, batchSize, o.Verbose)
		if err != nil {
			logger.Error("submission classifier call failed",
				"event", "approval_batch_failed",
				"module", "moderation/approval-pipeline",
				"layer", "application",
				"batch", len(batches)+1,
				"error", err.Error(),
			)
			return Aggregate(batches), fmt.Errorf("classify batch %d: %w", len(batches)+1, err)
		}

		batches = append(batches, result)
		logger.Info("submission batch classified",
			"event", "approval_batch_classified",
			"module", "moderation/approval-pipeline",
			"layer", "application",
			"batch", len(batches),
			"processed", result.TotalProcessed,
			"approved", result.Approved,
			"rejected", result.Rejected,
			"flagged", result.Flagged,
			"errors", result.Errors,
		)

		hasMore = result.TotalProcessed == batchSize
		if hasMore && len(batches) < maxBatches && o.Pause > 0 {
			select {
			case <-ctx.Done():
				return Aggregate(batches), ctx.Err()
			case <-time.After(o.Pause):
			}
		}
	}

	summary := Aggregate(batches)
	logger.Info("approval run completed",
		"event", "approval_run_completed",
		"module", "moderation/approval-pipeline",
		"layer", "application",
		"batch_runs", summary.BatchRuns,
		"total_processed", summary.TotalProcessed,
		"drained", !hasMore,
	)
	return summary, nil
}
