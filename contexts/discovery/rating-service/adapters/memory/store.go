package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cafescout/contexts/discovery/rating-service/domain/entities"
	domainerrors "cafescout/contexts/discovery/rating-service/domain/errors"
	"cafescout/contexts/discovery/rating-service/ports"
)

type ratingKey struct {
	cafeID string
	userID string
}

// Store is the in-memory adapter used by tests and local runs. It also
// satisfies Clock and IDGenerator so a module can run on it alone.
type Store struct {
	mu      sync.RWMutex
	ratings map[ratingKey]entities.Rating
	seq     int
	now     time.Time
}

func NewStore(seed []entities.Rating) *Store {
	store := &Store{
		ratings: make(map[ratingKey]entities.Rating, len(seed)),
		now:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, rating := range seed {
		store.ratings[ratingKey{cafeID: rating.CafeID, userID: rating.UserID}] = rating
	}
	return store
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("rating-%04d", s.seq), nil
}

func (s *Store) UpsertRating(_ context.Context, rating entities.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratings[ratingKey{cafeID: rating.CafeID, userID: rating.UserID}] = rating
	return nil
}

func (s *Store) GetRating(_ context.Context, cafeID string, userID string) (entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rating, ok := s.ratings[ratingKey{cafeID: cafeID, userID: userID}]
	if !ok {
		return entities.Rating{}, domainerrors.ErrRatingNotFound
	}
	return rating, nil
}

func (s *Store) DeleteRating(_ context.Context, cafeID string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ratingKey{cafeID: cafeID, userID: userID}
	if _, ok := s.ratings[key]; !ok {
		return domainerrors.ErrRatingNotFound
	}
	delete(s.ratings, key)
	return nil
}

func (s *Store) ListRatings(_ context.Context, cafeID string) ([]entities.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []entities.Rating
	for _, rating := range s.ratings {
		if rating.CafeID == cafeID {
			items = append(items, rating)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	return items, nil
}

func (s *Store) GetRatingSummary(_ context.Context, cafeID string) (ports.RatingSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary := ports.RatingSummary{CafeID: cafeID}
	total := 0
	for _, rating := range s.ratings {
		if rating.CafeID == cafeID {
			summary.RatingCount++
			total += rating.Score
		}
	}
	if summary.RatingCount > 0 {
		summary.AverageScore = float64(total) / float64(summary.RatingCount)
	}
	return summary, nil
}
