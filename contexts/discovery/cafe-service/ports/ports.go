package ports

import (
	"context"
	"time"

	"cafescout/contexts/discovery/cafe-service/domain/entities"
)

type CafeFilter struct {
	City    string
	Amenity string
	Status  entities.CafeStatus
}

// SearchQuery is a map viewport search: bounding box plus optional filters.
type SearchQuery struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
	MinRating    float64
	Amenity      string
	Limit        int
}

// RatedCafe is a cafe joined with its rating aggregate for search results.
type RatedCafe struct {
	Cafe          entities.Cafe
	AverageRating float64
	RatingCount   int
}

type Repository interface {
	CreateCafe(ctx context.Context, cafe entities.Cafe) error
	UpdateCafe(ctx context.Context, cafe entities.Cafe) error
	GetCafe(ctx context.Context, cafeID string) (entities.Cafe, error)
	ListCafes(ctx context.Context, filter CafeFilter) ([]entities.Cafe, error)
	SearchCafes(ctx context.Context, query SearchQuery) ([]RatedCafe, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
