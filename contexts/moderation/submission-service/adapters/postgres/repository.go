package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"cafescout/contexts/moderation/submission-service/domain/entities"
	domainerrors "cafescout/contexts/moderation/submission-service/domain/errors"
	"cafescout/contexts/moderation/submission-service/ports"
	"cafescout/internal/shared/events"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type submissionModel struct {
	SubmissionID   string     `gorm:"column:submission_id;primaryKey"`
	SubmitterID    string     `gorm:"column:submitter_id;index"`
	Name           string     `gorm:"column:name"`
	Description    string     `gorm:"column:description"`
	Address        string     `gorm:"column:address"`
	City           string     `gorm:"column:city"`
	Latitude       float64    `gorm:"column:latitude"`
	Longitude      float64    `gorm:"column:longitude"`
	Website        string     `gorm:"column:website"`
	PhotoURL       string     `gorm:"column:photo_url"`
	Status         string     `gorm:"column:status;index"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
	DecidedAt      *time.Time `gorm:"column:decided_at"`
	DecidedBy      string     `gorm:"column:decided_by"`
	DecisionReason string     `gorm:"column:decision_reason"`
	Confidence     float64    `gorm:"column:confidence"`
}

func (submissionModel) TableName() string {
	return "submissions"
}

type submissionOutboxModel struct {
	OutboxID  string     `gorm:"column:outbox_id;primaryKey"`
	EventType string     `gorm:"column:event_type"`
	Payload   []byte     `gorm:"column:payload"`
	Status    string     `gorm:"column:status;index"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	SentAt    *time.Time `gorm:"column:sent_at"`
}

func (submissionOutboxModel) TableName() string {
	return "submission_outbox"
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

func (r *Repository) CreateSubmission(ctx context.Context, submission entities.Submission) error {
	var duplicateCount int64
	if err := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Where("submitter_id = ?", submission.SubmitterID).
		Where("lower(name) = lower(?)", submission.Name).
		Where("lower(address) = lower(?)", submission.Address).
		Where("status <> ?", string(entities.SubmissionStatusRejected)).
		Count(&duplicateCount).
		Error; err != nil {
		return err
	}
	if duplicateCount > 0 {
		return domainerrors.ErrDuplicateSubmission
	}

	row := submissionModelFromEntity(submission)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateSubmission
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateSubmission(ctx context.Context, submission entities.Submission) error {
	result := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Where("submission_id = ?", strings.TrimSpace(submission.SubmissionID)).
		Updates(map[string]any{
			"description":     submission.Description,
			"photo_url":       submission.PhotoURL,
			"status":          string(submission.Status),
			"updated_at":      submission.UpdatedAt,
			"decided_at":      submission.DecidedAt,
			"decided_by":      submission.DecidedBy,
			"decision_reason": submission.DecisionReason,
			"confidence":      submission.Confidence,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSubmissionNotFound
	}
	return nil
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.Submission{}, err
	}
	return entityFromSubmissionModel(row), nil
}

func (r *Repository) ListSubmissions(ctx context.Context, filter ports.SubmissionFilter) ([]entities.Submission, error) {
	query := r.db.WithContext(ctx).Model(&submissionModel{})
	if strings.TrimSpace(filter.SubmitterID) != "" {
		query = query.Where("submitter_id = ?", strings.TrimSpace(filter.SubmitterID))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var rows []submissionModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		items = append(items, entityFromSubmissionModel(row))
	}
	return items, nil
}

func (r *Repository) ListPendingBatch(ctx context.Context, limit int) ([]entities.Submission, error) {
	var rows []submissionModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.SubmissionStatusPending)).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		items = append(items, entityFromSubmissionModel(row))
	}
	return items, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, event events.Envelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	row := submissionOutboxModel{
		OutboxID:  uuid.NewString(),
		EventType: event.EventType,
		Payload:   payload,
		Status:    outboxStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxRow, error) {
	var rows []submissionOutboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.OutboxRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxRow{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			Payload:   row.Payload,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&submissionOutboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outboxStatusPublished,
			"sent_at": at,
		}).
		Error
}

func submissionModelFromEntity(submission entities.Submission) submissionModel {
	return submissionModel{
		SubmissionID:   submission.SubmissionID,
		SubmitterID:    submission.SubmitterID,
		Name:           submission.Name,
		Description:    submission.Description,
		Address:        submission.Address,
		City:           submission.City,
		Latitude:       submission.Latitude,
		Longitude:      submission.Longitude,
		Website:        submission.Website,
		PhotoURL:       submission.PhotoURL,
		Status:         string(submission.Status),
		CreatedAt:      submission.CreatedAt,
		UpdatedAt:      submission.UpdatedAt,
		DecidedAt:      submission.DecidedAt,
		DecidedBy:      submission.DecidedBy,
		DecisionReason: submission.DecisionReason,
		Confidence:     submission.Confidence,
	}
}

func entityFromSubmissionModel(row submissionModel) entities.Submission {
	return entities.Submission{
		SubmissionID:   row.SubmissionID,
		SubmitterID:    row.SubmitterID,
		Name:           row.Name,
		Description:    row.Description,
		Address:        row.Address,
		City:           row.City,
		Latitude:       row.Latitude,
		Longitude:      row.Longitude,
		Website:        row.Website,
		PhotoURL:       row.PhotoURL,
		Status:         entities.SubmissionStatus(row.Status),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		DecidedAt:      row.DecidedAt,
		DecidedBy:      row.DecidedBy,
		DecisionReason: row.DecisionReason,
		Confidence:     row.Confidence,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
