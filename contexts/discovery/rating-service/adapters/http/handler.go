package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"cafescout/contexts/discovery/rating-service/application"
	"cafescout/contexts/discovery/rating-service/domain/entities"
	httptransport "cafescout/contexts/discovery/rating-service/transport/http"
)

type Handler struct {
	Service application.RatingService
	Logger  *slog.Logger
}

func (h Handler) RateCafeHandler(
	ctx context.Context,
	cafeID string,
	userID string,
	req httptransport.RateCafeRequest,
) (httptransport.RateCafeResponse, error) {
	rating, err := h.Service.RateCafe(ctx, application.RateCafeCommand{
		CafeID:  cafeID,
		UserID:  userID,
		Score:   req.Score,
		Comment: req.Comment,
	})
	if err != nil {
		return httptransport.RateCafeResponse{}, err
	}
	return httptransport.RateCafeResponse{Rating: mapRating(rating)}, nil
}

func (h Handler) RemoveRatingHandler(ctx context.Context, cafeID string, userID string) error {
	return h.Service.RemoveRating(ctx, cafeID, userID)
}

func (h Handler) ListRatingsHandler(ctx context.Context, cafeID string) (httptransport.ListRatingsResponse, error) {
	items, err := h.Service.ListRatings(ctx, cafeID)
	if err != nil {
		return httptransport.ListRatingsResponse{}, err
	}
	result := make([]httptransport.RatingDTO, 0, len(items))
	for _, rating := range items {
		result = append(result, mapRating(rating))
	}
	return httptransport.ListRatingsResponse{Items: result}, nil
}

func (h Handler) RatingSummaryHandler(ctx context.Context, cafeID string) (httptransport.RatingSummaryResponse, error) {
	summary, err := h.Service.GetSummary(ctx, cafeID)
	if err != nil {
		return httptransport.RatingSummaryResponse{}, err
	}
	return httptransport.RatingSummaryResponse{
		CafeID:       summary.CafeID,
		AverageScore: summary.AverageScore,
		RatingCount:  summary.RatingCount,
	}, nil
}

func mapRating(rating entities.Rating) httptransport.RatingDTO {
	return httptransport.RatingDTO{
		RatingID:  rating.RatingID,
		CafeID:    rating.CafeID,
		UserID:    rating.UserID,
		Score:     rating.Score,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: rating.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
