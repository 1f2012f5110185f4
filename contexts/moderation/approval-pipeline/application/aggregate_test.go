package application

import (
	"testing"

	"cafescout/contexts/moderation/approval-pipeline/domain/entities"
)

func TestAggregateFoldsBatches(t *testing.T) {
	batches := []entities.BatchResult{
		{TotalProcessed: 20, Approved: 12, Rejected: 5, Flagged: 2, Errors: 1, ExternalCallCount: 20},
		{TotalProcessed: 7, Approved: 4, Rejected: 1, Flagged: 2, ExternalCallCount: 7},
	}

	summary := Aggregate(batches)
	if summary.BatchRuns != 2 {
		t.Fatalf("expected 2 batch runs, got %d", summary.BatchRuns)
	}
	if summary.TotalProcessed != 27 {
		t.Fatalf("expected 27 processed, got %d", summary.TotalProcessed)
	}
	if summary.Approved != 16 || summary.Rejected != 6 || summary.Flagged != 4 || summary.Errors != 1 {
		t.Fatalf("unexpected tallies: %+v", summary)
	}
	if summary.ExternalCallCount != 27 {
		t.Fatalf("expected 27 external calls, got %d", summary.ExternalCallCount)
	}
	if len(summary.Batches) != 2 {
		t.Fatalf("expected per-batch list retained, got %d", len(summary.Batches))
	}
}

func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(nil)
	if summary.BatchRuns != 0 || summary.TotalProcessed != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}
