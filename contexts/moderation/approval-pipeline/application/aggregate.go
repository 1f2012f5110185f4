package application

import "cafescout/contexts/moderation/approval-pipeline/domain/entities"

// Aggregate folds per-batch tallies into a single run summary. Pure and
// deterministic; the per-batch list is retained in order for audit.
func Aggregate(batches []entities.BatchResult) entities.RunSummary {
	summary := entities.RunSummary{
		BatchRuns: len(batches),
		Batches:   append([]entities.BatchResult(nil), batches...),
	}
	for _, batch := range batches {
		summary.TotalProcessed += batch.TotalProcessed
		summary.Approved += batch.Approved
		summary.Rejected += batch.Rejected
		summary.Flagged += batch.Flagged
		summary.Errors += batch.Errors
		summary.ExternalCallCount += batch.ExternalCallCount
	}
	return summary
}
