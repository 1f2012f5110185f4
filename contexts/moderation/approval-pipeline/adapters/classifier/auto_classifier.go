package classifier

import (
	"context"
	"fmt"
	"log/slog"

	"cafescout/contexts/moderation/approval-pipeline/domain/entities"
	domainerrors "cafescout/contexts/moderation/approval-pipeline/domain/errors"
	"cafescout/contexts/moderation/approval-pipeline/ports"
)

// AutoClassifier implements the moderation policy over the pending queue.
// Per-submission failures (scoring or decision write) are tallied in the
// BatchResult and never abort the batch; only an unreadable queue is
// systemic and returns an error.
type AutoClassifier struct {
	Queue         ports.PendingQueue
	Scorer        ports.SubmissionScorer
	Decider       ports.DecisionApplier
	MinConfidence float64
	Logger        *slog.Logger
}

func (c AutoClassifier) Classify(ctx context.Context, limit int, verbose bool) (entities.BatchResult, error) {
	logger := resolveLogger(c.Logger)

	items, err := c.Queue.ClaimPendingBatch(ctx, limit)
	if err != nil {
		return entities.BatchResult{}, fmt.Errorf("%w: %v", domainerrors.ErrPendingQueueUnread, err)
	}

	result := entities.BatchResult{TotalProcessed: len(items)}
	for _, item := range items {
		verdict, err := c.Scorer.Score(ctx, item)
		result.ExternalCallCount++
		if err != nil {
			result.Errors++
			logger.Warn("submission scoring failed",
				"event", "submission_score_failed",
				"module", "moderation/approval-pipeline",
				"layer", "adapter",
				"submission_id", item.SubmissionID,
				"error", err.Error(),
			)
			continue
		}

		decision := verdict.Decision
		reason := verdict.Reason
		if decision != ports.DecisionRejected && verdict.Confidence < c.MinConfidence {
			decision = ports.DecisionFlagged
			reason = "confidence below auto-decision threshold"
		}

		if err := c.Decider.ApplyDecision(ctx, item.SubmissionID, decision, reason, verdict.Confidence); err != nil {
			result.Errors++
			logger.Warn("submission decision write failed",
				"event", "submission_decision_write_failed",
				"module", "moderation/approval-pipeline",
				"layer", "adapter",
				"submission_id", item.SubmissionID,
				"error", err.Error(),
			)
			continue
		}

		switch decision {
		case ports.DecisionApproved:
			result.Approved++
		case ports.DecisionRejected:
			result.Rejected++
		case ports.DecisionFlagged:
			result.Flagged++
		}

		if verbose {
			logger.Info("submission classified",
				"event", "submission_classified",
				"module", "moderation/approval-pipeline",
				"layer", "adapter",
				"submission_id", item.SubmissionID,
				"decision", string(decision),
				"confidence", verdict.Confidence,
			)
		}
	}
	return result, nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
