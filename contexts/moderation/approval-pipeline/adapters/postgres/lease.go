package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type jobLeaseModel struct {
	JobID      string    `gorm:"column:job_id;primaryKey"`
	AcquiredAt time.Time `gorm:"column:acquired_at"`
	ExpiresAt  time.Time `gorm:"column:expires_at"`
}

func (jobLeaseModel) TableName() string {
	return "job_leases"
}

// LeaseRepository implements the run lease on postgres. Acquisition is a
// single upsert guarded by the expiry column, so two overlapping triggers
// can never both win.
type LeaseRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewLeaseRepository(db *gorm.DB, logger *slog.Logger) *LeaseRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *LeaseRepository) Acquire(ctx context.Context, jobID string, ttl time.Duration) (bool, error) {
	now := time.Now().UTC()
	row := jobLeaseModel{
		JobID:      jobID,
		AcquiredAt: now,
		ExpiresAt:  now.Add(ttl),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"acquired_at": now,
			"expires_at":  now.Add(ttl),
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Lte{Column: clause.Column{Table: "job_leases", Name: "expires_at"}, Value: now},
		}},
	}).Create(&row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *LeaseRepository) Release(ctx context.Context, jobID string) error {
	return r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Delete(&jobLeaseModel{}).
		Error
}
