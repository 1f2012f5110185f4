package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cafescout/contexts/discovery/rating-service/domain/entities"
	domainerrors "cafescout/contexts/discovery/rating-service/domain/errors"
	"cafescout/contexts/discovery/rating-service/ports"
)

type RateCafeCommand struct {
	CafeID  string
	UserID  string
	Score   int
	Comment string
}

// RatingService is thin enough that commands and queries share one type.
type RatingService struct {
	Repository ports.Repository
	Cafes      ports.CafeChecker
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// RateCafe records or replaces the caller's rating for a cafe.
func (s RatingService) RateCafe(ctx context.Context, cmd RateCafeCommand) (entities.Rating, error) {
	logger := ResolveLogger(s.Logger)

	now := s.Clock.Now().UTC()
	rating := entities.Rating{
		CafeID:    strings.TrimSpace(cmd.CafeID),
		UserID:    strings.TrimSpace(cmd.UserID),
		Score:     cmd.Score,
		Comment:   strings.TrimSpace(cmd.Comment),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if problems := rating.Validate(); len(problems) > 0 {
		return entities.Rating{}, fmt.Errorf("%w: %s", domainerrors.ErrInvalidRatingInput, strings.Join(problems, "; "))
	}
	if err := s.Cafes.CafeRateable(ctx, rating.CafeID); err != nil {
		return entities.Rating{}, err
	}

	existing, err := s.Repository.GetRating(ctx, rating.CafeID, rating.UserID)
	switch {
	case err == nil:
		rating.RatingID = existing.RatingID
		rating.CreatedAt = existing.CreatedAt
	case !errors.Is(err, domainerrors.ErrRatingNotFound):
		return entities.Rating{}, err
	default:
		id, idErr := s.IDGen.NewID(ctx)
		if idErr != nil {
			return entities.Rating{}, idErr
		}
		rating.RatingID = id
	}

	if err := s.Repository.UpsertRating(ctx, rating); err != nil {
		return entities.Rating{}, err
	}

	logger.Info("cafe rated",
		"event", "rating.recorded",
		"module", "rating-service",
		"layer", "application",
		"cafe_id", rating.CafeID,
		"score", rating.Score,
	)
	return rating, nil
}

// RemoveRating deletes the caller's own rating for a cafe.
func (s RatingService) RemoveRating(ctx context.Context, cafeID string, userID string) error {
	logger := ResolveLogger(s.Logger)

	cafeID = strings.TrimSpace(cafeID)
	userID = strings.TrimSpace(userID)
	if cafeID == "" || userID == "" {
		return fmt.Errorf("%w: cafe_id and user_id are required", domainerrors.ErrInvalidRatingInput)
	}
	if err := s.Repository.DeleteRating(ctx, cafeID, userID); err != nil {
		return err
	}

	logger.Info("rating removed",
		"event", "rating.removed",
		"module", "rating-service",
		"layer", "application",
		"cafe_id", cafeID,
	)
	return nil
}

func (s RatingService) ListRatings(ctx context.Context, cafeID string) ([]entities.Rating, error) {
	cafeID = strings.TrimSpace(cafeID)
	if cafeID == "" {
		return nil, fmt.Errorf("%w: cafe_id is required", domainerrors.ErrInvalidRatingInput)
	}
	return s.Repository.ListRatings(ctx, cafeID)
}

func (s RatingService) GetSummary(ctx context.Context, cafeID string) (ports.RatingSummary, error) {
	cafeID = strings.TrimSpace(cafeID)
	if cafeID == "" {
		return ports.RatingSummary{}, fmt.Errorf("%w: cafe_id is required", domainerrors.ErrInvalidRatingInput)
	}
	return s.Repository.GetRatingSummary(ctx, cafeID)
}
