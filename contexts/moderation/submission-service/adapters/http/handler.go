package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"cafescout/contexts/moderation/submission-service/application/commands"
	"cafescout/contexts/moderation/submission-service/application/queries"
	"cafescout/contexts/moderation/submission-service/domain/entities"
	httptransport "cafescout/contexts/moderation/submission-service/transport/http"
)

type Handler struct {
	CreateSubmission commands.CreateSubmissionUseCase
	ReviewSubmission commands.ReviewSubmissionUseCase
	AttachPhoto      commands.AttachPhotoUseCase
	Queries          queries.QueryUseCase
	Logger           *slog.Logger
}

func (h Handler) CreateSubmissionHandler(
	ctx context.Context,
	userID string,
	req httptransport.CreateSubmissionRequest,
) (httptransport.CreateSubmissionResponse, error) {
	item, err := h.CreateSubmission.Execute(ctx, commands.CreateSubmissionCommand{
		SubmitterID: userID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Website:     req.Website,
	})
	if err != nil {
		return httptransport.CreateSubmissionResponse{}, err
	}
	return httptransport.CreateSubmissionResponse{
		Submission: mapSubmission(item),
	}, nil
}

func (h Handler) GetSubmissionHandler(ctx context.Context, submissionID string) (httptransport.GetSubmissionResponse, error) {
	item, err := h.Queries.GetSubmission(ctx, submissionID)
	if err != nil {
		return httptransport.GetSubmissionResponse{}, err
	}
	return httptransport.GetSubmissionResponse{
		Submission: mapSubmission(item),
	}, nil
}

func (h Handler) ListSubmissionsHandler(
	ctx context.Context,
	submitterID string,
	status string,
) (httptransport.ListSubmissionsResponse, error) {
	items, err := h.Queries.ListSubmissions(ctx, queries.ListSubmissionsQuery{
		SubmitterID: submitterID,
		Status:      status,
	})
	if err != nil {
		return httptransport.ListSubmissionsResponse{}, err
	}
	result := make([]httptransport.SubmissionDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapSubmission(item))
	}
	return httptransport.ListSubmissionsResponse{Items: result}, nil
}

func (h Handler) ApproveSubmissionHandler(
	ctx context.Context,
	actorID string,
	submissionID string,
	req httptransport.ReviewSubmissionRequest,
) error {
	return h.ReviewSubmission.Approve(ctx, commands.ApproveSubmissionCommand{
		SubmissionID: submissionID,
		ActorID:      actorID,
		Reason:       req.Reason,
	})
}

func (h Handler) RejectSubmissionHandler(
	ctx context.Context,
	actorID string,
	submissionID string,
	req httptransport.ReviewSubmissionRequest,
) error {
	return h.ReviewSubmission.Reject(ctx, commands.RejectSubmissionCommand{
		SubmissionID: submissionID,
		ActorID:      actorID,
		Reason:       req.Reason,
	})
}

func (h Handler) FlagSubmissionHandler(
	ctx context.Context,
	actorID string,
	submissionID string,
	req httptransport.ReviewSubmissionRequest,
) error {
	return h.ReviewSubmission.Flag(ctx, commands.FlagSubmissionCommand{
		SubmissionID: submissionID,
		ActorID:      actorID,
		Reason:       req.Reason,
	})
}

func (h Handler) AttachPhotoHandler(
	ctx context.Context,
	userID string,
	submissionID string,
	contentType string,
	data []byte,
) (httptransport.AttachPhotoResponse, error) {
	item, err := h.AttachPhoto.Execute(ctx, commands.AttachPhotoCommand{
		SubmissionID: submissionID,
		ActorID:      userID,
		ContentType:  contentType,
		Data:         data,
	})
	if err != nil {
		return httptransport.AttachPhotoResponse{}, err
	}
	return httptransport.AttachPhotoResponse{
		Submission: mapSubmission(item),
	}, nil
}

func mapSubmission(item entities.Submission) httptransport.SubmissionDTO {
	dto := httptransport.SubmissionDTO{
		SubmissionID:   item.SubmissionID,
		SubmitterID:    item.SubmitterID,
		Name:           item.Name,
		Description:    item.Description,
		Address:        item.Address,
		City:           item.City,
		Latitude:       item.Latitude,
		Longitude:      item.Longitude,
		Website:        item.Website,
		PhotoURL:       item.PhotoURL,
		Status:         string(item.Status),
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.UTC().Format(time.RFC3339),
		DecidedBy:      item.DecidedBy,
		DecisionReason: item.DecisionReason,
	}
	if item.DecidedAt != nil {
		dto.DecidedAt = item.DecidedAt.UTC().Format(time.RFC3339)
	}
	return dto
}
