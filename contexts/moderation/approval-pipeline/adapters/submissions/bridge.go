package submissions

import (
	"context"

	"cafescout/contexts/moderation/approval-pipeline/ports"
	subcommands "cafescout/contexts/moderation/submission-service/application/commands"
	subentities "cafescout/contexts/moderation/submission-service/domain/entities"
	subports "cafescout/contexts/moderation/submission-service/ports"
)

// Bridge adapts the submission service to the pipeline's queue and decision
// ports. The pipeline only ever sees the narrow PendingSubmission
// projection; status transitions stay in the owning service.
type Bridge struct {
	Repository subports.Repository
	AutoReview subcommands.AutoReviewUseCase
}

func (b Bridge) ClaimPendingBatch(ctx context.Context, limit int) ([]ports.PendingSubmission, error) {
	items, err := b.Repository.ListPendingBatch(ctx, limit)
	if err != nil {
		return nil, err
	}
	pending := make([]ports.PendingSubmission, 0, len(items))
	for _, item := range items {
		pending = append(pending, ports.PendingSubmission{
			SubmissionID: item.SubmissionID,
			Name:         item.Name,
			Description:  item.Description,
			Address:      item.Address,
			City:         item.City,
			Website:      item.Website,
			Latitude:     item.Latitude,
			Longitude:    item.Longitude,
		})
	}
	return pending, nil
}

func (b Bridge) ApplyDecision(
	ctx context.Context,
	submissionID string,
	decision ports.Decision,
	reason string,
	confidence float64,
) error {
	return b.AutoReview.Execute(ctx, subcommands.AutoDecisionCommand{
		SubmissionID: submissionID,
		Status:       subentities.SubmissionStatus(decision),
		Reason:       reason,
		Confidence:   confidence,
	})
}
