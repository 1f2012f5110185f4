package workers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	application "cafescout/contexts/discovery/cafe-service/application"
	"cafescout/contexts/discovery/cafe-service/application/commands"
	domainerrors "cafescout/contexts/discovery/cafe-service/domain/errors"
	"cafescout/internal/shared/events"
)

// SubmissionApprovedConsumer materializes a published cafe from an approved
// submission event. The event payload carries the full listing, so no
// cross-context storage access is needed. Redelivery is tolerated: a
// duplicate cafe for the same source submission is dropped.
type SubmissionApprovedConsumer struct {
	CreateCafe commands.CreateCafeUseCase
	Logger     *slog.Logger
}

type approvedSubmissionPayload struct {
	SubmissionID string  `json:"submission_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Website      string  `json:"website"`
	PhotoURL     string  `json:"photo_url"`
}

func (c SubmissionApprovedConsumer) Handle(ctx context.Context, event events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)
	if event.EventType != "submission.approved" {
		return nil
	}

	raw, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	var payload approvedSubmissionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		logger.Error("approved submission payload decode failed",
			"event", "cafe_materialize_decode_failed",
			"module", "discovery/cafe-service",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return err
	}

	cafe, err := c.CreateCafe.Execute(ctx, commands.CreateCafeCommand{
		Name:               payload.Name,
		Description:        payload.Description,
		Address:            payload.Address,
		City:               payload.City,
		Latitude:           payload.Latitude,
		Longitude:          payload.Longitude,
		Website:            payload.Website,
		PhotoURL:           payload.PhotoURL,
		SourceSubmissionID: payload.SubmissionID,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateCafe) {
			logger.Info("approved submission already materialized",
				"event", "cafe_materialize_duplicate",
				"module", "discovery/cafe-service",
				"layer", "worker",
				"submission_id", payload.SubmissionID,
			)
			return nil
		}
		return err
	}

	logger.Info("cafe materialized from approved submission",
		"event", "cafe_materialized",
		"module", "discovery/cafe-service",
		"layer", "worker",
		"cafe_id", cafe.CafeID,
		"submission_id", payload.SubmissionID,
	)
	return nil
}
