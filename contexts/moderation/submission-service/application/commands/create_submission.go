package commands

import (
	"context"
	"log/slog"
	"strings"

	application "cafescout/contexts/moderation/submission-service/application"
	"cafescout/contexts/moderation/submission-service/domain/entities"
	domainerrors "cafescout/contexts/moderation/submission-service/domain/errors"
	"cafescout/contexts/moderation/submission-service/ports"
)

type CreateSubmissionCommand struct {
	SubmitterID string
	Name        string
	Description string
	Address     string
	City        string
	Latitude    float64
	Longitude   float64
	Website     string
}

type CreateSubmissionUseCase struct {
	Repository ports.Repository
	Metadata   ports.MetadataFetcher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc CreateSubmissionUseCase) Execute(ctx context.Context, cmd CreateSubmissionCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	submission := entities.Submission{
		SubmitterID: strings.TrimSpace(cmd.SubmitterID),
		Name:        strings.TrimSpace(cmd.Name),
		Description: strings.TrimSpace(cmd.Description),
		Address:     strings.TrimSpace(cmd.Address),
		City:        strings.TrimSpace(cmd.City),
		Latitude:    cmd.Latitude,
		Longitude:   cmd.Longitude,
		Website:     strings.TrimSpace(cmd.Website),
		Status:      entities.SubmissionStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !submission.ValidateCreate() {
		return entities.Submission{}, domainerrors.ErrInvalidSubmissionInput
	}

	if submission.Website != "" && submission.Description == "" && uc.Metadata != nil {
		meta, err := uc.Metadata.Fetch(ctx, submission.Website)
		if err != nil {
			// Enrichment is best effort; the submission stands on its own.
			logger.Warn("submission website enrichment failed",
				"event", "submission_enrichment_failed",
				"module", "moderation/submission-service",
				"layer", "application",
				"website", submission.Website,
				"error", err.Error(),
			)
		} else if meta.Description != "" {
			submission.Description = meta.Description
		}
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Submission{}, err
	}
	submission.SubmissionID = id

	if err := uc.Repository.CreateSubmission(ctx, submission); err != nil {
		return entities.Submission{}, err
	}

	logger.Info("submission created",
		"event", "submission_created",
		"module", "moderation/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"submitter_id", submission.SubmitterID,
	)
	return submission, nil
}
