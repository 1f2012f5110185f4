package queries

import (
	"context"
	"log/slog"
	"strings"

	"cafescout/contexts/discovery/cafe-service/domain/entities"
	domainerrors "cafescout/contexts/discovery/cafe-service/domain/errors"
	"cafescout/contexts/discovery/cafe-service/ports"
)

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 200
)

type ListCafesQuery struct {
	City    string
	Amenity string
	Status  string
}

type SearchCafesQuery struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
	MinRating    float64
	Amenity      string
	Limit        int
}

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) GetCafe(ctx context.Context, cafeID string) (entities.Cafe, error) {
	return uc.Repository.GetCafe(ctx, strings.TrimSpace(cafeID))
}

func (uc QueryUseCase) ListCafes(ctx context.Context, query ListCafesQuery) ([]entities.Cafe, error) {
	status := strings.TrimSpace(strings.ToLower(query.Status))
	if status != "" {
		switch entities.CafeStatus(status) {
		case entities.CafeStatusActive, entities.CafeStatusHidden:
		default:
			return nil, domainerrors.ErrInvalidStatusFilter
		}
	}
	return uc.Repository.ListCafes(ctx, ports.CafeFilter{
		City:    strings.TrimSpace(query.City),
		Amenity: strings.ToLower(strings.TrimSpace(query.Amenity)),
		Status:  entities.CafeStatus(status),
	})
}

func (uc QueryUseCase) SearchCafes(ctx context.Context, query SearchCafesQuery) ([]ports.RatedCafe, error) {
	if query.MinLatitude >= query.MaxLatitude || query.MinLongitude >= query.MaxLongitude {
		return nil, domainerrors.ErrInvalidSearchBounds
	}
	if query.MinLatitude < -90 || query.MaxLatitude > 90 ||
		query.MinLongitude < -180 || query.MaxLongitude > 180 {
		return nil, domainerrors.ErrInvalidSearchBounds
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	return uc.Repository.SearchCafes(ctx, ports.SearchQuery{
		MinLatitude:  query.MinLatitude,
		MaxLatitude:  query.MaxLatitude,
		MinLongitude: query.MinLongitude,
		MaxLongitude: query.MaxLongitude,
		MinRating:    query.MinRating,
		Amenity:      strings.ToLower(strings.TrimSpace(query.Amenity)),
		Limit:        limit,
	})
}
