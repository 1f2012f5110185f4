package classifier

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainerrors "cafescout/contexts/moderation/approval-pipeline/domain/errors"
	"cafescout/contexts/moderation/approval-pipeline/ports"
)

type fakeQueue struct {
	items []ports.PendingSubmission
	err   error
}

func (q fakeQueue) ClaimPendingBatch(_ context.Context, limit int) ([]ports.PendingSubmission, error) {
	if q.err != nil {
		return nil, q.err
	}
	if len(q.items) > limit {
		return q.items[:limit], nil
	}
	return q.items, nil
}

type fakeScorer struct {
	verdicts map[string]ports.ScoreResult
	failFor  map[string]bool
	calls    int
}

func (s *fakeScorer) Score(_ context.Context, submission ports.PendingSubmission) (ports.ScoreResult, error) {
	s.calls++
	if s.failFor[submission.SubmissionID] {
		return ports.ScoreResult{}, errors.New("model unavailable")
	}
	return s.verdicts[submission.SubmissionID], nil
}

type fakeDecider struct {
	applied map[string]ports.Decision
	failFor map[string]bool
}

func (d *fakeDecider) ApplyDecision(_ context.Context, submissionID string, decision ports.Decision, _ string, _ float64) error {
	if d.failFor[submissionID] {
		return errors.New("write failed")
	}
	if d.applied == nil {
		d.applied = make(map[string]ports.Decision)
	}
	d.applied[submissionID] = decision
	return nil
}

func pendingSubmissions(n int) []ports.PendingSubmission {
	items := make([]ports.PendingSubmission, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, ports.PendingSubmission{SubmissionID: fmt.Sprintf("sub-%d", i)})
	}
	return items
}

func TestAutoClassifierTalliesDecisions(t *testing.T) {
	scorer := &fakeScorer{
		verdicts: map[string]ports.ScoreResult{
			"sub-0": {Decision: ports.DecisionApproved, Confidence: 0.95},
			"sub-1": {Decision: ports.DecisionRejected, Confidence: 0.9},
			"sub-2": {Decision: ports.DecisionFlagged, Confidence: 0.8},
		},
	}
	decider := &fakeDecider{}
	auto := AutoClassifier{
		Queue:         fakeQueue{items: pendingSubmissions(3)},
		Scorer:        scorer,
		Decider:       decider,
		MinConfidence: 0.7,
	}

	result, err := auto.Classify(context.Background(), 20, false)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if result.TotalProcessed != 3 {
		t.Fatalf("expected 3 processed, got %d", result.TotalProcessed)
	}
	if result.Approved != 1 || result.Rejected != 1 || result.Flagged != 1 || result.Errors != 0 {
		t.Fatalf("unexpected tallies: %+v", result)
	}
	if result.ExternalCallCount != 3 {
		t.Fatalf("expected one external call per submission, got %d", result.ExternalCallCount)
	}
	if decider.applied["sub-1"] != ports.DecisionRejected {
		t.Fatalf("expected rejection applied, got %v", decider.applied["sub-1"])
	}
}

func TestAutoClassifierFlagsLowConfidence(t *testing.T) {
	scorer := &fakeScorer{
		verdicts: map[string]ports.ScoreResult{
			"sub-0": {Decision: ports.DecisionApproved, Confidence: 0.4},
		},
	}
	decider := &fakeDecider{}
	auto := AutoClassifier{
		Queue:         fakeQueue{items: pendingSubmissions(1)},
		Scorer:        scorer,
		Decider:       decider,
		MinConfidence: 0.7,
	}

	result, err := auto.Classify(context.Background(), 20, false)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if result.Flagged != 1 || result.Approved != 0 {
		t.Fatalf("expected low-confidence approval to become a flag: %+v", result)
	}
	if decider.applied["sub-0"] != ports.DecisionFlagged {
		t.Fatalf("expected flagged decision applied, got %v", decider.applied["sub-0"])
	}
}

// A confident rejection stays a rejection regardless of threshold.
func TestAutoClassifierKeepsLowConfidenceRejection(t *testing.T) {
	scorer := &fakeScorer{
		verdicts: map[string]ports.ScoreResult{
			"sub-0": {Decision: ports.DecisionRejected, Confidence: 0.4},
		},
	}
	decider := &fakeDecider{}
	auto := AutoClassifier{
		Queue:         fakeQueue{items: pendingSubmissions(1)},
		Scorer:        scorer,
		Decider:       decider,
		MinConfidence: 0.7,
	}

	result, err := auto.Classify(context.Background(), 20, false)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if result.Rejected != 1 {
		t.Fatalf("expected rejection preserved: %+v", result)
	}
}

func TestAutoClassifierTalliesPerSubmissionFailures(t *testing.T) {
	scorer := &fakeScorer{
		verdicts: map[string]ports.ScoreResult{
			"sub-1": {Decision: ports.DecisionApproved, Confidence: 0.9},
			"sub-2": {Decision: ports.DecisionApproved, Confidence: 0.9},
		},
		failFor: map[string]bool{"sub-0": true},
	}
	decider := &fakeDecider{failFor: map[string]bool{"sub-2": true}}
	auto := AutoClassifier{
		Queue:         fakeQueue{items: pendingSubmissions(3)},
		Scorer:        scorer,
		Decider:       decider,
		MinConfidence: 0.7,
	}

	result, err := auto.Classify(context.Background(), 20, false)
	if err != nil {
		t.Fatalf("per-submission failures must not abort the batch: %v", err)
	}
	if result.Errors != 2 {
		t.Fatalf("expected 2 errors tallied, got %d", result.Errors)
	}
	if result.Approved != 1 {
		t.Fatalf("expected 1 approval, got %d", result.Approved)
	}
	if result.TotalProcessed != 3 {
		t.Fatalf("expected all claimed submissions counted, got %d", result.TotalProcessed)
	}
}

func TestAutoClassifierQueueFailureIsSystemic(t *testing.T) {
	auto := AutoClassifier{
		Queue:  fakeQueue{err: errors.New("connection refused")},
		Scorer: &fakeScorer{},
		Decider: &fakeDecider{},
	}

	_, err := auto.Classify(context.Background(), 20, false)
	if !errors.Is(err, domainerrors.ErrPendingQueueUnread) {
		t.Fatalf("expected pending queue error, got %v", err)
	}
}
