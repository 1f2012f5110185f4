package ports

import (
	"context"
	"time"

	"cafescout/contexts/discovery/rating-service/domain/entities"
)

type RatingSummary struct {
	CafeID       string
	AverageScore float64
	RatingCount  int
}

type Repository interface {
	UpsertRating(ctx context.Context, rating entities.Rating) error
	GetRating(ctx context.Context, cafeID string, userID string) (entities.Rating, error)
	DeleteRating(ctx context.Context, cafeID string, userID string) error
	ListRatings(ctx context.Context, cafeID string) ([]entities.Rating, error)
	GetRatingSummary(ctx context.Context, cafeID string) (RatingSummary, error)
}

// CafeChecker guards rating writes against cafes that do not exist or
// are hidden. Implemented by a bridge over the cafe catalog.
type CafeChecker interface {
	CafeRateable(ctx context.Context, cafeID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
