package ports

import (
	"context"
	"time"

	"cafescout/contexts/moderation/approval-pipeline/domain/entities"
)

// Classifier evaluates up to limit pending submissions and returns the
// decision tally. Per-submission failures are folded into the returned
// BatchResult; an error return means the classification capability itself
// failed (queue unreadable, service unreachable) and aborts the run.
// Each call only consumes submissions still pending, so repeated calls
// never reprocess an already-decided submission.
type Classifier interface {
	Classify(ctx context.Context, limit int, verbose bool) (entities.BatchResult, error)
}

// RunLease provides at-most-one-active-run semantics across overlapping
// triggers. Acquire is atomic; a lease whose TTL has elapsed is reclaimable.
type RunLease interface {
	Acquire(ctx context.Context, jobID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, jobID string) error
}

type Clock interface {
	Now() time.Time
}

// PendingSubmission is the narrow projection of a queued listing the
// classifier adapter needs. The pipeline shares no storage handles with the
// submission service; this value is the whole boundary.
type PendingSubmission struct {
	SubmissionID string
	Name         string
	Description  string
	Address      string
	City         string
	Website      string
	Latitude     float64
	Longitude    float64
}

// PendingQueue claims up to limit pending submissions, oldest first.
// Resolved submissions must never be returned again.
type PendingQueue interface {
	ClaimPendingBatch(ctx context.Context, limit int) ([]PendingSubmission, error)
}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
	DecisionFlagged  Decision = "flagged"
)

// ScoreResult is the moderation policy verdict for one submission.
type ScoreResult struct {
	Decision   Decision
	Confidence float64
	Reason     string
}

// SubmissionScorer turns one pending submission into a verdict. Backed by
// an external model service; each call counts against the upstream quota.
type SubmissionScorer interface {
	Score(ctx context.Context, submission PendingSubmission) (ScoreResult, error)
}

// DecisionApplier records a verdict on the owning submission service.
type DecisionApplier interface {
	ApplyDecision(ctx context.Context, submissionID string, decision Decision, reason string, confidence float64) error
}
