package application

import (
	"context"
	"errors"
	"testing"

	"cafescout/contexts/moderation/approval-pipeline/domain/entities"
	domainerrors "cafescout/contexts/moderation/approval-pipeline/domain/errors"
)

// queueClassifier simulates a pending queue of fixed depth. Every call
// consumes up to limit submissions and approves them all.
type queueClassifier struct {
	remaining int
	calls     int
	failOn    int
	failErr   error
}

func (c *queueClassifier) Classify(_ context.Context, limit int, _ bool) (entities.BatchResult, error) {
	c.calls++
	if c.failOn > 0 && c.calls == c.failOn {
		return entities.BatchResult{}, c.failErr
	}
	take := limit
	if c.remaining < take {
		take = c.remaining
	}
	c.remaining -= take
	return entities.BatchResult{
		TotalProcessed:    take,
		Approved:          take,
		ExternalCallCount: take,
	}, nil
}

func TestOrchestratorStopsOnShortBatch(t *testing.T) {
	classifier := &queueClassifier{remaining: 87}
	orchestrator := Orchestrator{Classifier: classifier}

	summary, err := orchestrator.Run(context.Background(), 20, 10)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.TotalProcessed != 87 {
		t.Fatalf("expected 87 processed, got %d", summary.TotalProcessed)
	}
	if summary.BatchRuns != 5 {
		t.Fatalf("expected 5 batch runs, got %d", summary.BatchRuns)
	}
	if classifier.calls != 5 {
		t.Fatalf("expected 5 classifier calls, got %d", classifier.calls)
	}
}

// An exact multiple of the batch size needs one extra empty call to
// observe the drain.
func TestOrchestratorExactMultipleQueue(t *testing.T) {
	classifier := &queueClassifier{remaining: 40}
	orchestrator := Orchestrator{Classifier: classifier}

	summary, err := orchestrator.Run(context.Background(), 20, 10)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.TotalProcessed != 40 {
		t.Fatalf("expected 40 processed, got %d", summary.TotalProcessed)
	}
	if classifier.calls != 3 {
		t.Fatalf("expected 3 classifier calls (last one empty), got %d", classifier.calls)
	}
	if summary.BatchRuns != 3 {
		t.Fatalf("expected 3 batch runs, got %d", summary.BatchRuns)
	}
}

func TestOrchestratorRespectsMaxBatches(t *testing.T) {
	classifier := &queueClassifier{remaining: 1000}
	orchestrator := Orchestrator{Classifier: classifier}

	summary, err := orchestrator.Run(context.Background(), 20, 5)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.BatchRuns != 5 {
		t.Fatalf("expected 5 batch runs, got %d", summary.BatchRuns)
	}
	if summary.TotalProcessed != 100 {
		t.Fatalf("expected 100 processed, got %d", summary.TotalProcessed)
	}
	if classifier.calls != 5 {
		t.Fatalf("expected exactly 5 classifier calls, got %d", classifier.calls)
	}
}

func TestOrchestratorAbortsOnSystemicFailurePreservingPartial(t *testing.T) {
	classifier := &queueClassifier{
		remaining: 1000,
		failOn:    3,
		failErr:   domainerrors.ErrPendingQueueUnread,
	}
	orchestrator := Orchestrator{Classifier: classifier}

	summary, err := orchestrator.Run(context.Background(), 20, 10)
	if !errors.Is(err, domainerrors.ErrPendingQueueUnread) {
		t.Fatalf("expected pending queue error, got %v", err)
	}
	if classifier.calls != 3 {
		t.Fatalf("expected no calls after the failing batch, got %d", classifier.calls)
	}
	if summary.BatchRuns != 2 {
		t.Fatalf("expected 2 completed batches in partial summary, got %d", summary.BatchRuns)
	}
	if summary.TotalProcessed != 40 {
		t.Fatalf("expected 40 processed before failure, got %d", summary.TotalProcessed)
	}
}

func TestOrchestratorRejectsInvalidConfig(t *testing.T) {
	orchestrator := Orchestrator{Classifier: &queueClassifier{}}

	if _, err := orchestrator.Run(context.Background(), 0, 5); !errors.Is(err, domainerrors.ErrInvalidRunConfig) {
		t.Fatalf("expected invalid run config for zero batch size, got %v", err)
	}
	if _, err := orchestrator.Run(context.Background(), 20, 0); !errors.Is(err, domainerrors.ErrInvalidRunConfig) {
		t.Fatalf("expected invalid run config for zero max batches, got %v", err)
	}
}

func TestOrchestratorHonorsCancelDuringPause(t *testing.T) {
	classifier := &queueClassifier{remaining: 1000}
	orchestrator := Orchestrator{Classifier: classifier, Pause: DefaultPause}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := orchestrator.Run(ctx, 20, 5)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if summary.BatchRuns != 1 {
		t.Fatalf("expected the first batch preserved, got %d", summary.BatchRuns)
	}
}
