package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "cafescout/contexts/moderation/submission-service/application"
	"cafescout/contexts/moderation/submission-service/domain/entities"
	domainerrors "cafescout/contexts/moderation/submission-service/domain/errors"
	"cafescout/contexts/moderation/submission-service/ports"
)

const maxPhotoBytes = 5 << 20

var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type AttachPhotoCommand struct {
	SubmissionID string
	ActorID      string
	ContentType  string
	Data         []byte
}

type AttachPhotoUseCase struct {
	Repository ports.Repository
	Photos     ports.PhotoStore
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc AttachPhotoUseCase) Execute(ctx context.Context, cmd AttachPhotoCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)

	contentType := strings.ToLower(strings.TrimSpace(cmd.ContentType))
	ext, supported := photoExtensions[contentType]
	if !supported {
		return entities.Submission{}, domainerrors.ErrUnsupportedPhotoType
	}
	if len(cmd.Data) == 0 || len(cmd.Data) > maxPhotoBytes {
		return entities.Submission{}, domainerrors.ErrPhotoTooLarge
	}

	submission, err := uc.Repository.GetSubmission(ctx, strings.TrimSpace(cmd.SubmissionID))
	if err != nil {
		return entities.Submission{}, err
	}
	if strings.TrimSpace(cmd.ActorID) == "" || submission.SubmitterID != strings.TrimSpace(cmd.ActorID) {
		return entities.Submission{}, domainerrors.ErrUnauthorizedActor
	}

	key := fmt.Sprintf("submissions/%s/photo.%s", submission.SubmissionID, ext)
	url, err := uc.Photos.Put(ctx, key, contentType, cmd.Data)
	if err != nil {
		return entities.Submission{}, err
	}

	submission.PhotoURL = url
	submission.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Repository.UpdateSubmission(ctx, submission); err != nil {
		return entities.Submission{}, err
	}

	logger.Info("submission photo attached",
		"event", "submission_photo_attached",
		"module", "moderation/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"bytes", len(cmd.Data),
	)
	return submission, nil
}
