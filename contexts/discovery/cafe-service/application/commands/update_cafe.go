package commands

import (
	"context"
	"log/slog"
	"strings"

	application "cafescout/contexts/discovery/cafe-service/application"
	"cafescout/contexts/discovery/cafe-service/domain/entities"
	domainerrors "cafescout/contexts/discovery/cafe-service/domain/errors"
	"cafescout/contexts/discovery/cafe-service/ports"
)

type UpdateCafeCommand struct {
	CafeID      string
	Description *string
	Website     *string
	PhotoURL    *string
	Amenities   []string
}

type HideCafeCommand struct {
	CafeID string
	Reason string
}

type UpdateCafeUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc UpdateCafeUseCase) Execute(ctx context.Context, cmd UpdateCafeCommand) (entities.Cafe, error) {
	cafe, err := uc.Repository.GetCafe(ctx, strings.TrimSpace(cmd.CafeID))
	if err != nil {
		return entities.Cafe{}, err
	}

	if cmd.Description != nil {
		cafe.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.Website != nil {
		cafe.Website = strings.TrimSpace(*cmd.Website)
	}
	if cmd.PhotoURL != nil {
		cafe.PhotoURL = strings.TrimSpace(*cmd.PhotoURL)
	}
	if cmd.Amenities != nil {
		cafe.Amenities = normalizeAmenities(cmd.Amenities)
	}
	cafe.UpdatedAt = uc.Clock.Now().UTC()

	if err := uc.Repository.UpdateCafe(ctx, cafe); err != nil {
		return entities.Cafe{}, err
	}
	return cafe, nil
}

func (uc UpdateCafeUseCase) Hide(ctx context.Context, cmd HideCafeCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	cafe, err := uc.Repository.GetCafe(ctx, strings.TrimSpace(cmd.CafeID))
	if err != nil {
		return err
	}
	if cafe.Status == entities.CafeStatusHidden {
		return domainerrors.ErrInvalidCafeInput
	}

	cafe.Status = entities.CafeStatusHidden
	cafe.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Repository.UpdateCafe(ctx, cafe); err != nil {
		return err
	}

	logger.Info("cafe hidden",
		"event", "cafe_hidden",
		"module", "discovery/cafe-service",
		"layer", "application",
		"cafe_id", cafe.CafeID,
		"reason", cmd.Reason,
	)
	return nil
}
