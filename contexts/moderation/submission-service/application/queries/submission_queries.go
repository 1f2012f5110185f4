package queries

import (
	"context"
	"log/slog"
	"strings"

	"cafescout/contexts/moderation/submission-service/domain/entities"
	domainerrors "cafescout/contexts/moderation/submission-service/domain/errors"
	"cafescout/contexts/moderation/submission-service/ports"
)

type ListSubmissionsQuery struct {
	SubmitterID string
	Status      string
}

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	return uc.Repository.GetSubmission(ctx, strings.TrimSpace(submissionID))
}

func (uc QueryUseCase) ListSubmissions(ctx context.Context, query ListSubmissionsQuery) ([]entities.Submission, error) {
	status := strings.TrimSpace(strings.ToLower(query.Status))
	if status != "" {
		switch entities.SubmissionStatus(status) {
		case entities.SubmissionStatusPending,
			entities.SubmissionStatusApproved,
			entities.SubmissionStatusRejected,
			entities.SubmissionStatusFlagged:
		default:
			return nil, domainerrors.ErrInvalidStatusFilter
		}
	}
	return uc.Repository.ListSubmissions(ctx, ports.SubmissionFilter{
		SubmitterID: strings.TrimSpace(query.SubmitterID),
		Status:      entities.SubmissionStatus(status),
	})
}
