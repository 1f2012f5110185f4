package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "cafescout/contexts/moderation/approval-pipeline/application"
	"cafescout/contexts/moderation/approval-pipeline/domain/entities"
	domainerrors "cafescout/contexts/moderation/approval-pipeline/domain/errors"
	"cafescout/contexts/moderation/approval-pipeline/ports"
	httptransport "cafescout/contexts/moderation/approval-pipeline/transport/http"
)

// RunLeaseJobID keys the cross-trigger mutual exclusion lease.
const RunLeaseJobID = "submission-approval"

const defaultLeaseTTL = 5 * time.Minute

type Handler struct {
	Gate         application.TriggerGate
	Orchestrator application.Orchestrator
	Lease        ports.RunLease
	Clock        ports.Clock
	BatchSize    int
	MaxBatches   int
	LeaseTTL     time.Duration
	Logger       *slog.Logger
}

// ProcessSubmissionsHandler runs the approval pipeline once. Gate and lease
// failures return an error for the server layer to map; once a run starts
// the handler always returns a well-formed report, even when the run aborts
// on a systemic classifier failure.
func (h Handler) ProcessSubmissionsHandler(ctx context.Context, token string) (httptransport.RunReport, error) {
	if err := h.Gate.Authorize(token); err != nil {
		return httptransport.RunReport{}, err
	}

	if h.Lease != nil {
		ttl := h.LeaseTTL
		if ttl <= 0 {
			ttl = defaultLeaseTTL
		}
		acquired, err := h.Lease.Acquire(ctx, RunLeaseJobID, ttl)
		if err != nil {
			return httptransport.RunReport{}, err
		}
		if !acquired {
			return httptransport.RunReport{}, domainerrors.ErrRunInProgress
		}
		defer func() {
			_ = h.Lease.Release(context.WithoutCancel(ctx), RunLeaseJobID)
		}()
	}

	summary, runErr := h.Orchestrator.Run(ctx, h.BatchSize, h.MaxBatches)
	if runErr != nil {
		return buildFailureReport(summary, runErr, h.now()), nil
	}
	return buildSuccessReport(summary, h.now()), nil
}

func (h Handler) now() time.Time {
	if h.Clock != nil {
		return h.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func buildSuccessReport(summary entities.RunSummary, now time.Time) httptransport.RunReport {
	report := httptransport.RunReport{
		Success:        true,
		Timestamp:      now.Format(time.RFC3339),
		TotalProcessed: summary.TotalProcessed,
		BatchRuns:      summary.BatchRuns,
		Summary:        mapSummary(summary),
		Batches:        mapBatches(summary.Batches),
	}
	return report
}

func buildFailureReport(partial entities.RunSummary, err error, now time.Time) httptransport.RunReport {
	return httptransport.RunReport{
		Success:        false,
		Timestamp:      now.Format(time.RFC3339),
		Error:          err.Error(),
		Partial:        partial.BatchRuns > 0,
		TotalProcessed: partial.TotalProcessed,
		BatchRuns:      partial.BatchRuns,
		Summary:        mapSummary(partial),
		Batches:        mapBatches(partial.Batches),
	}
}

func mapSummary(summary entities.RunSummary) httptransport.ReportSummary {
	return httptransport.ReportSummary{
		Approved:          summary.Approved,
		Rejected:          summary.Rejected,
		Flagged:           summary.Flagged,
		Errors:            summary.Errors,
		ExternalCallCount: summary.ExternalCallCount,
	}
}

func mapBatches(batches []entities.BatchResult) []httptransport.ReportBatch {
	result := make([]httptransport.ReportBatch, 0, len(batches))
	for _, batch := range batches {
		result = append(result, httptransport.ReportBatch{
			TotalProcessed:    batch.TotalProcessed,
			Approved:          batch.Approved,
			Rejected:          batch.Rejected,
			Flagged:           batch.Flagged,
			Errors:            batch.Errors,
			ExternalCallCount: batch.ExternalCallCount,
		})
	}
	return result
}
