package unit

import (
	"context"
	"strings"
	"testing"

	cafeservice "cafescout/contexts/discovery/cafe-service"
	approvalpipeline "cafescout/contexts/moderation/approval-pipeline"
	"cafescout/contexts/moderation/approval-pipeline/adapters/classifier"
	"cafescout/contexts/moderation/approval-pipeline/adapters/submissions"
	"cafescout/contexts/moderation/approval-pipeline/ports"
	submissionservice "cafescout/contexts/moderation/submission-service"
	subworkers "cafescout/contexts/moderation/submission-service/application/workers"
	httptransport "cafescout/contexts/moderation/submission-service/transport/http"
	"cafescout/internal/shared/events"
)

// policyScorer decides from the listing name so the flow is deterministic.
type policyScorer struct {
	calls int
}

func (s *policyScorer) Score(_ context.Context, submission ports.PendingSubmission) (ports.ScoreResult, error) {
	s.calls++
	switch {
	case strings.Contains(submission.Name, "Spam"):
		return ports.ScoreResult{Decision: ports.DecisionRejected, Confidence: 0.99, Reason: "spam listing"}, nil
	case strings.Contains(submission.Name, "Odd"):
		return ports.ScoreResult{Decision: ports.DecisionApproved, Confidence: 0.3, Reason: "hard to tell"}, nil
	default:
		return ports.ScoreResult{Decision: ports.DecisionApproved, Confidence: 0.95, Reason: "legitimate cafe"}, nil
	}
}

type collectPublisher struct {
	published []events.Envelope
}

func (p *collectPublisher) Publish(_ context.Context, _ string, event events.Envelope) error {
	p.published = append(p.published, event)
	return nil
}

func submitCafe(t *testing.T, module submissionservice.Module, name string, address string) string {
	t.Helper()
	created, err := module.Handler.CreateSubmissionHandler(context.Background(), "user-1", httptransport.CreateSubmissionRequest{
		Name:      name,
		Address:   address,
		City:      "Lisbon",
		Latitude:  38.71,
		Longitude: -9.14,
	})
	if err != nil {
		t.Fatalf("create submission %q failed: %v", name, err)
	}
	return created.Submission.SubmissionID
}

// Full path: pending submissions are auto-classified, approvals land in the
// outbox, the relay publishes them, and the discovery context materializes
// cafes from the events.
func TestApprovalPipelineEndToEnd(t *testing.T) {
	subModule := submissionservice.NewInMemoryModule(nil, nil)
	cafeModule := cafeservice.NewInMemoryModule(nil, nil)

	goodID := submitCafe(t, subModule, "Bean There", "1 Rua Augusta")
	submitCafe(t, subModule, "Spam Palace", "2 Rua Augusta")
	oddID := submitCafe(t, subModule, "Odd Corner", "3 Rua Augusta")

	scorer := &policyScorer{}
	bridge := submissions.Bridge{
		Repository: subModule.Store,
		AutoReview: subModule.AutoReview,
	}
	pipeline := approvalpipeline.NewModule(approvalpipeline.Dependencies{
		Classifier: classifier.AutoClassifier{
			Queue:         bridge,
			Scorer:        scorer,
			Decider:       bridge,
			MinConfidence: 0.7,
		},
		Secret:    "s3cret",
		BatchSize: 20,
	})

	report, err := pipeline.Handler.ProcessSubmissionsHandler(context.Background(), "s3cret")
	if err != nil {
		t.Fatalf("pipeline run failed: %v", err)
	}
	if !report.Success {
		t.Fatalf("expected successful run: %+v", report)
	}
	if report.TotalProcessed != 3 {
		t.Fatalf("expected 3 processed, got %d", report.TotalProcessed)
	}
	if report.Summary.Approved != 1 || report.Summary.Rejected != 1 || report.Summary.Flagged != 1 {
		t.Fatalf("unexpected summary: %+v", report.Summary)
	}
	if report.Summary.ExternalCallCount != 3 {
		t.Fatalf("expected 3 external calls, got %d", report.Summary.ExternalCallCount)
	}

	good, err := subModule.Handler.GetSubmissionHandler(context.Background(), goodID)
	if err != nil {
		t.Fatalf("get approved submission failed: %v", err)
	}
	if good.Submission.Status != "approved" || good.Submission.DecidedBy != "auto-moderator" {
		t.Fatalf("expected auto-approved submission, got %+v", good.Submission)
	}

	// The low-confidence approval is held for a human, not published.
	odd, err := subModule.Handler.GetSubmissionHandler(context.Background(), oddID)
	if err != nil {
		t.Fatalf("get flagged submission failed: %v", err)
	}
	if odd.Submission.Status != "flagged" {
		t.Fatalf("expected flagged status, got %s", odd.Submission.Status)
	}

	// Relay the outbox and materialize cafes from the published events.
	publisher := &collectPublisher{}
	relay := subworkers.OutboxRelay{
		Outbox:    subModule.Store,
		Publisher: publisher,
		Clock:     subModule.Store,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("outbox relay failed: %v", err)
	}
	if len(publisher.published) != 1 {
		t.Fatalf("expected exactly the approval published, got %d events", len(publisher.published))
	}
	for _, event := range publisher.published {
		if err := cafeModule.Consumer.Handle(context.Background(), event); err != nil {
			t.Fatalf("cafe materialization failed: %v", err)
		}
	}

	cafes, err := cafeModule.Handler.ListCafesHandler(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("list cafes failed: %v", err)
	}
	if len(cafes.Items) != 1 || cafes.Items[0].Name != "Bean There" {
		t.Fatalf("expected the approved cafe only, got %+v", cafes.Items)
	}

	// Redelivery of the same event must not duplicate the cafe.
	if err := cafeModule.Consumer.Handle(context.Background(), publisher.published[0]); err != nil {
		t.Fatalf("redelivery should be idempotent: %v", err)
	}
	cafes, _ = cafeModule.Handler.ListCafesHandler(context.Background(), "", "", "")
	if len(cafes.Items) != 1 {
		t.Fatalf("expected no duplicate cafe, got %d", len(cafes.Items))
	}

	// A second run has nothing left to do and must not rescore anything.
	before := scorer.calls
	report, err = pipeline.Handler.ProcessSubmissionsHandler(context.Background(), "s3cret")
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if report.TotalProcessed != 0 {
		t.Fatalf("expected drained queue, got %d processed", report.TotalProcessed)
	}
	if scorer.calls != before {
		t.Fatalf("decided submissions must not be rescored")
	}
}
