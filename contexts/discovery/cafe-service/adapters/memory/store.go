package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"cafescout/contexts/discovery/cafe-service/domain/entities"
	domainerrors "cafescout/contexts/discovery/cafe-service/domain/errors"
	"cafescout/contexts/discovery/cafe-service/ports"

	"github.com/google/uuid"
)

type ratingAggregate struct {
	average float64
	count   int
}

type Store struct {
	mu sync.RWMutex

	cafes   map[string]entities.Cafe
	ratings map[string]ratingAggregate
}

func NewStore(seed []entities.Cafe) *Store {
	cafes := make(map[string]entities.Cafe, len(seed))
	for _, item := range seed {
		cafes[item.CafeID] = item
	}
	return &Store{
		cafes:   cafes,
		ratings: make(map[string]ratingAggregate),
	}
}

// SetRatingAggregate seeds the rating join used by SearchCafes.
func (s *Store) SetRatingAggregate(cafeID string, average float64, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ratings[cafeID] = ratingAggregate{average: average, count: count}
}

func (s *Store) CreateCafe(_ context.Context, cafe entities.Cafe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.cafes {
		if cafe.SourceSubmissionID != "" && existing.SourceSubmissionID == cafe.SourceSubmissionID {
			return domainerrors.ErrDuplicateCafe
		}
		if strings.EqualFold(existing.Name, cafe.Name) && strings.EqualFold(existing.Address, cafe.Address) {
			return domainerrors.ErrDuplicateCafe
		}
	}
	s.cafes[cafe.CafeID] = cafe
	return nil
}

func (s *Store) UpdateCafe(_ context.Context, cafe entities.Cafe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cafes[cafe.CafeID]; !exists {
		return domainerrors.ErrCafeNotFound
	}
	s.cafes[cafe.CafeID] = cafe
	return nil
}

func (s *Store) GetCafe(_ context.Context, cafeID string) (entities.Cafe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.cafes[strings.TrimSpace(cafeID)]
	if !exists {
		return entities.Cafe{}, domainerrors.ErrCafeNotFound
	}
	return item, nil
}

func (s *Store) ListCafes(_ context.Context, filter ports.CafeFilter) ([]entities.Cafe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Cafe, 0, len(s.cafes))
	for _, item := range s.cafes {
		if filter.City != "" && !strings.EqualFold(item.City, filter.City) {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Amenity != "" && !hasAmenity(item.Amenities, filter.Amenity) {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) SearchCafes(_ context.Context, query ports.SearchQuery) ([]ports.RatedCafe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.RatedCafe, 0)
	for _, item := range s.cafes {
		if item.Status != entities.CafeStatusActive {
			continue
		}
		if item.Latitude < query.MinLatitude || item.Latitude > query.MaxLatitude ||
			item.Longitude < query.MinLongitude || item.Longitude > query.MaxLongitude {
			continue
		}
		if query.Amenity != "" && !hasAmenity(item.Amenities, query.Amenity) {
			continue
		}
		aggregate := s.ratings[item.CafeID]
		if query.MinRating > 0 && aggregate.average < query.MinRating {
			continue
		}
		items = append(items, ports.RatedCafe{
			Cafe:          item,
			AverageRating: aggregate.average,
			RatingCount:   aggregate.count,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AverageRating != items[j].AverageRating {
			return items[i].AverageRating > items[j].AverageRating
		}
		return items[i].Cafe.CafeID < items[j].Cafe.CafeID
	})
	if query.Limit > 0 && len(items) > query.Limit {
		items = items[:query.Limit]
	}
	return items, nil
}

func hasAmenity(amenities []string, amenity string) bool {
	for _, item := range amenities {
		if item == amenity {
			return true
		}
	}
	return false
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
