package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"cafescout/contexts/discovery/rating-service/domain/entities"
	domainerrors "cafescout/contexts/discovery/rating-service/domain/errors"
	"cafescout/contexts/discovery/rating-service/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ratingModel rows feed the cafe search join, so column names here are
// load-bearing for the catalog's aggregate query.
type ratingModel struct {
	RatingID  string    `gorm:"column:rating_id;primaryKey"`
	CafeID    string    `gorm:"column:cafe_id;uniqueIndex:idx_ratings_cafe_user"`
	UserID    string    `gorm:"column:user_id;uniqueIndex:idx_ratings_cafe_user"`
	Score     int       `gorm:"column:score"`
	Comment   string    `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ratingModel) TableName() string {
	return "ratings"
}

type summaryRow struct {
	AverageScore float64 `gorm:"column:average_score"`
	RatingCount  int     `gorm:"column:rating_count"`
}

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) UpsertRating(ctx context.Context, rating entities.Rating) error {
	row := ratingModel{
		RatingID:  rating.RatingID,
		CafeID:    rating.CafeID,
		UserID:    rating.UserID,
		Score:     rating.Score,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cafe_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "comment", "updated_at"}),
		}).
		Create(&row).
		Error
}

func (r *Repository) GetRating(ctx context.Context, cafeID string, userID string) (entities.Rating, error) {
	var row ratingModel
	err := r.db.WithContext(ctx).
		Where("cafe_id = ? AND user_id = ?", strings.TrimSpace(cafeID), strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Rating{}, domainerrors.ErrRatingNotFound
		}
		return entities.Rating{}, err
	}
	return entityFromRatingModel(row), nil
}

func (r *Repository) DeleteRating(ctx context.Context, cafeID string, userID string) error {
	result := r.db.WithContext(ctx).
		Where("cafe_id = ? AND user_id = ?", strings.TrimSpace(cafeID), strings.TrimSpace(userID)).
		Delete(&ratingModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRatingNotFound
	}
	return nil
}

func (r *Repository) ListRatings(ctx context.Context, cafeID string) ([]entities.Rating, error) {
	var rows []ratingModel
	err := r.db.WithContext(ctx).
		Where("cafe_id = ?", strings.TrimSpace(cafeID)).
		Order("updated_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Rating, 0, len(rows))
	for _, row := range rows {
		items = append(items, entityFromRatingModel(row))
	}
	return items, nil
}

func (r *Repository) GetRatingSummary(ctx context.Context, cafeID string) (ports.RatingSummary, error) {
	var row summaryRow
	err := r.db.WithContext(ctx).
		Model(&ratingModel{}).
		Select("COALESCE(AVG(score), 0) AS average_score, COUNT(rating_id) AS rating_count").
		Where("cafe_id = ?", strings.TrimSpace(cafeID)).
		Scan(&row).
		Error
	if err != nil {
		return ports.RatingSummary{}, err
	}
	return ports.RatingSummary{
		CafeID:       strings.TrimSpace(cafeID),
		AverageScore: row.AverageScore,
		RatingCount:  row.RatingCount,
	}, nil
}

func entityFromRatingModel(row ratingModel) entities.Rating {
	return entities.Rating{
		RatingID:  row.RatingID,
		CafeID:    row.CafeID,
		UserID:    row.UserID,
		Score:     row.Score,
		Comment:   row.Comment,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
