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

type ApproveSubmissionCommand struct {
	SubmissionID string
	ActorID      string
	Reason       string
}

type RejectSubmissionCommand struct {
	SubmissionID string
	ActorID      string
	Reason       string
}

type FlagSubmissionCommand struct {
	SubmissionID string
	ActorID      string
	Reason       string
}

// ReviewSubmissionUseCase records manual moderator decisions. Approval
// publishes submission.approved through the outbox so the discovery context
// can materialize the cafe.
type ReviewSubmissionUseCase struct {
	Repository ports.Repository
	Outbox     ports.OutboxWriter
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc ReviewSubmissionUseCase) Approve(ctx context.Context, cmd ApproveSubmissionCommand) error {
	if strings.TrimSpace(cmd.ActorID) == "" {
		return domainerrors.ErrUnauthorizedActor
	}
	return uc.decide(ctx, cmd.SubmissionID, entities.SubmissionStatusApproved, strings.TrimSpace(cmd.ActorID), strings.TrimSpace(cmd.Reason), 1)
}

func (uc ReviewSubmissionUseCase) Reject(ctx context.Context, cmd RejectSubmissionCommand) error {
	if strings.TrimSpace(cmd.ActorID) == "" {
		return domainerrors.ErrUnauthorizedActor
	}
	return uc.decide(ctx, cmd.SubmissionID, entities.SubmissionStatusRejected, strings.TrimSpace(cmd.ActorID), strings.TrimSpace(cmd.Reason), 1)
}

func (uc ReviewSubmissionUseCase) Flag(ctx context.Context, cmd FlagSubmissionCommand) error {
	if strings.TrimSpace(cmd.ActorID) == "" {
		return domainerrors.ErrUnauthorizedActor
	}
	return uc.decide(ctx, cmd.SubmissionID, entities.SubmissionStatusFlagged, strings.TrimSpace(cmd.ActorID), strings.TrimSpace(cmd.Reason), 1)
}

func (uc ReviewSubmissionUseCase) decide(
	ctx context.Context,
	submissionID string,
	status entities.SubmissionStatus,
	actorID string,
	reason string,
	confidence float64,
) error {
	logger := application.ResolveLogger(uc.Logger)
	submission, err := uc.Repository.GetSubmission(ctx, strings.TrimSpace(submissionID))
	if err != nil {
		return err
	}
	if !transitionAllowed(submission.Status, status) {
		return domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	submission.Status = status
	submission.DecidedAt = &now
	submission.DecidedBy = actorID
	submission.DecisionReason = reason
	submission.Confidence = confidence
	submission.UpdatedAt = now
	if err := uc.Repository.UpdateSubmission(ctx, submission); err != nil {
		return err
	}

	if status == entities.SubmissionStatusApproved && uc.Outbox != nil {
		eventID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		envelope, err := newSubmissionEnvelope(
			eventID,
			"submission.approved",
			submission.SubmissionID,
			now,
			approvedPayload(submission, actorID, reason, now),
		)
		if err != nil {
			return err
		}
		if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
			return err
		}
	}

	logger.Info("submission decision recorded",
		"event", "submission_decided",
		"module", "moderation/submission-service",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"status", string(status),
		"decided_by", actorID,
	)
	return nil
}

// Pending submissions take any decision; flagged ones can still be resolved
// by a human. Approved and rejected are terminal.
func transitionAllowed(from entities.SubmissionStatus, to entities.SubmissionStatus) bool {
	switch from {
	case entities.SubmissionStatusPending:
		return to == entities.SubmissionStatusApproved ||
			to == entities.SubmissionStatusRejected ||
			to == entities.SubmissionStatusFlagged
	case entities.SubmissionStatusFlagged:
		return to == entities.SubmissionStatusApproved ||
			to == entities.SubmissionStatusRejected
	default:
		return false
	}
}
