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

type CreateCafeCommand struct {
	Name               string
	Description        string
	Address            string
	City               string
	Latitude           float64
	Longitude          float64
	Website            string
	PhotoURL           string
	Amenities          []string
	SourceSubmissionID string
}

type CreateCafeUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc CreateCafeUseCase) Execute(ctx context.Context, cmd CreateCafeCommand) (entities.Cafe, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	cafe := entities.Cafe{
		Name:               strings.TrimSpace(cmd.Name),
		Description:        strings.TrimSpace(cmd.Description),
		Address:            strings.TrimSpace(cmd.Address),
		City:               strings.TrimSpace(cmd.City),
		Latitude:           cmd.Latitude,
		Longitude:          cmd.Longitude,
		Website:            strings.TrimSpace(cmd.Website),
		PhotoURL:           strings.TrimSpace(cmd.PhotoURL),
		Amenities:          normalizeAmenities(cmd.Amenities),
		Status:             entities.CafeStatusActive,
		SourceSubmissionID: strings.TrimSpace(cmd.SourceSubmissionID),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if !cafe.ValidateCreate() {
		return entities.Cafe{}, domainerrors.ErrInvalidCafeInput
	}

	id, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Cafe{}, err
	}
	cafe.CafeID = id

	if err := uc.Repository.CreateCafe(ctx, cafe); err != nil {
		return entities.Cafe{}, err
	}

	logger.Info("cafe created",
		"event", "cafe_created",
		"module", "discovery/cafe-service",
		"layer", "application",
		"cafe_id", cafe.CafeID,
		"city", cafe.City,
	)
	return cafe, nil
}

func normalizeAmenities(amenities []string) []string {
	seen := make(map[string]bool, len(amenities))
	result := make([]string, 0, len(amenities))
	for _, amenity := range amenities {
		amenity = strings.ToLower(strings.TrimSpace(amenity))
		if amenity == "" || seen[amenity] {
			continue
		}
		seen[amenity] = true
		result = append(result, amenity)
	}
	return result
}
