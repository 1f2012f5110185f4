package commands

import (
	"context"
	"log/slog"
	"strings"

	"cafescout/contexts/moderation/submission-service/domain/entities"
	domainerrors "cafescout/contexts/moderation/submission-service/domain/errors"
	"cafescout/contexts/moderation/submission-service/ports"
)

// AutoModeratorActor marks decisions recorded by the approval pipeline.
const AutoModeratorActor = "auto-moderator"

type AutoDecisionCommand struct {
	SubmissionID string
	Status       entities.SubmissionStatus
	Reason       string
	Confidence   float64
}

// AutoReviewUseCase records decisions made by the automated classifier. It
// shares the manual review transition rules, so a run can never overwrite a
// decision a moderator (or an earlier batch) already made.
type AutoReviewUseCase struct {
	Repository ports.Repository
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc AutoReviewUseCase) Execute(ctx context.Context, cmd AutoDecisionCommand) error {
	switch cmd.Status {
	case entities.SubmissionStatusApproved, entities.SubmissionStatusRejected, entities.SubmissionStatusFlagged:
	default:
		return domainerrors.ErrInvalidStatusTransition
	}
	review := ReviewSubmissionUseCase{
		Repository: uc.Repository,
		Outbox:     uc.Outbox,
		Clock:      uc.Clock,
		IDGen:      uc.IDGen,
		Logger:     uc.Logger,
	}
	return review.decide(ctx, cmd.SubmissionID, cmd.Status, AutoModeratorActor, strings.TrimSpace(cmd.Reason), cmd.Confidence)
}
