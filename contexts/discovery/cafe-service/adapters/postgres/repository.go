package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"cafescout/contexts/discovery/cafe-service/domain/entities"
	domainerrors "cafescout/contexts/discovery/cafe-service/domain/errors"
	"cafescout/contexts/discovery/cafe-service/ports"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type cafeModel struct {
	CafeID             string         `gorm:"column:cafe_id;primaryKey"`
	Name               string         `gorm:"column:name"`
	Description        string         `gorm:"column:description"`
	Address            string         `gorm:"column:address"`
	City               string         `gorm:"column:city;index"`
	Latitude           float64        `gorm:"column:latitude"`
	Longitude          float64        `gorm:"column:longitude"`
	Website            string         `gorm:"column:website"`
	PhotoURL           string         `gorm:"column:photo_url"`
	Amenities          pq.StringArray `gorm:"column:amenities;type:text[]"`
	Status             string         `gorm:"column:status;index"`
	SourceSubmissionID string         `gorm:"column:source_submission_id;uniqueIndex"`
	CreatedAt          time.Time      `gorm:"column:created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
}

func (cafeModel) TableName() string {
	return "cafes"
}

type searchRow struct {
	cafeModel
	AverageRating float64 `gorm:"column:average_rating"`
	RatingCount   int     `gorm:"column:rating_count"`
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

func (r *Repository) CreateCafe(ctx context.Context, cafe entities.Cafe) error {
	row := cafeModelFromEntity(cafe)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateCafe
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateCafe(ctx context.Context, cafe entities.Cafe) error {
	result := r.db.WithContext(ctx).
		Model(&cafeModel{}).
		Where("cafe_id = ?", strings.TrimSpace(cafe.CafeID)).
		Updates(map[string]any{
			"description": cafe.Description,
			"website":     cafe.Website,
			"photo_url":   cafe.PhotoURL,
			"amenities":   pq.StringArray(cafe.Amenities),
			"status":      string(cafe.Status),
			"updated_at":  cafe.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCafeNotFound
	}
	return nil
}

func (r *Repository) GetCafe(ctx context.Context, cafeID string) (entities.Cafe, error) {
	var row cafeModel
	err := r.db.WithContext(ctx).
		Where("cafe_id = ?", strings.TrimSpace(cafeID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Cafe{}, domainerrors.ErrCafeNotFound
		}
		return entities.Cafe{}, err
	}
	return entityFromCafeModel(row), nil
}

func (r *Repository) ListCafes(ctx context.Context, filter ports.CafeFilter) ([]entities.Cafe, error) {
	query := r.db.WithContext(ctx).Model(&cafeModel{})
	if filter.City != "" {
		query = query.Where("lower(city) = lower(?)", filter.City)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Amenity != "" {
		query = query.Where("? = ANY(amenities)", filter.Amenity)
	}

	var rows []cafeModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Cafe, 0, len(rows))
	for _, row := range rows {
		items = append(items, entityFromCafeModel(row))
	}
	return items, nil
}

// SearchCafes joins the rating aggregate in SQL so the map viewport query
// stays a single round trip. The statement is built with squirrel because
// the filter set varies per request.
func (r *Repository) SearchCafes(ctx context.Context, query ports.SearchQuery) ([]ports.RatedCafe, error) {
	builder := sq.Select(
		"c.cafe_id", "c.name", "c.description", "c.address", "c.city",
		"c.latitude", "c.longitude", "c.website", "c.photo_url",
		"c.amenities", "c.status", "c.source_submission_id",
		"c.created_at", "c.updated_at",
		"COALESCE(AVG(r.score), 0) AS average_rating",
		"COUNT(r.rating_id) AS rating_count",
	).
		From("cafes c").
		LeftJoin("ratings r ON r.cafe_id = c.cafe_id").
		Where(sq.Eq{"c.status": string(entities.CafeStatusActive)}).
		Where(sq.GtOrEq{"c.latitude": query.MinLatitude}).
		Where(sq.LtOrEq{"c.latitude": query.MaxLatitude}).
		Where(sq.GtOrEq{"c.longitude": query.MinLongitude}).
		Where(sq.LtOrEq{"c.longitude": query.MaxLongitude}).
		GroupBy("c.cafe_id").
		OrderBy("average_rating DESC", "rating_count DESC", "c.cafe_id ASC").
		Limit(uint64(query.Limit)).
		PlaceholderFormat(sq.Dollar)

	if query.Amenity != "" {
		builder = builder.Where(sq.Expr("? = ANY(c.amenities)", query.Amenity))
	}
	if query.MinRating > 0 {
		builder = builder.Having(sq.Expr("COALESCE(AVG(r.score), 0) >= ?", query.MinRating))
	}

	statement, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []searchRow
	if err := r.db.WithContext(ctx).Raw(statement, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]ports.RatedCafe, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.RatedCafe{
			Cafe:          entityFromCafeModel(row.cafeModel),
			AverageRating: row.AverageRating,
			RatingCount:   row.RatingCount,
		})
	}
	return items, nil
}

func cafeModelFromEntity(cafe entities.Cafe) cafeModel {
	return cafeModel{
		CafeID:             cafe.CafeID,
		Name:               cafe.Name,
		Description:        cafe.Description,
		Address:            cafe.Address,
		City:               cafe.City,
		Latitude:           cafe.Latitude,
		Longitude:          cafe.Longitude,
		Website:            cafe.Website,
		PhotoURL:           cafe.PhotoURL,
		Amenities:          pq.StringArray(cafe.Amenities),
		Status:             string(cafe.Status),
		SourceSubmissionID: cafe.SourceSubmissionID,
		CreatedAt:          cafe.CreatedAt,
		UpdatedAt:          cafe.UpdatedAt,
	}
}

func entityFromCafeModel(row cafeModel) entities.Cafe {
	return entities.Cafe{
		CafeID:             row.CafeID,
		Name:               row.Name,
		Description:        row.Description,
		Address:            row.Address,
		City:               row.City,
		Latitude:           row.Latitude,
		Longitude:          row.Longitude,
		Website:            row.Website,
		PhotoURL:           row.PhotoURL,
		Amenities:          []string(row.Amenities),
		Status:             entities.CafeStatus(row.Status),
		SourceSubmissionID: row.SourceSubmissionID,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
