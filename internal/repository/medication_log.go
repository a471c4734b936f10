package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

// MedicationLogRepository stores dose events
type MedicationLogRepository struct {
	db *gorm.DB
}

var _ domain.MedicationLogRepository = (*MedicationLogRepository)(nil)

func NewMedicationLogRepository(db *gorm.DB) *MedicationLogRepository {
	return &MedicationLogRepository{db: db}
}

// ListBetween returns the logs with scheduled_time in [from, to) in one query
func (r *MedicationLogRepository) ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]domain.MedicationLog, error) {
	var logs []domain.MedicationLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND scheduled_time >= ? AND scheduled_time < ?", userID, from, to).
		Order("scheduled_time ASC").
		Find(&logs).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return logs, nil
}

// Upsert inserts the log or, when a row for the same medication and
// scheduled time exists, updates it in a single statement. log is
// refreshed with the stored row.
func (r *MedicationLogRepository) Upsert(ctx context.Context, log *domain.MedicationLog) error {
	if err := upsertLog(r.db.WithContext(ctx), log).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}

	if err := r.db.WithContext(ctx).
		Where("medication_id = ? AND scheduled_time = ?", log.MedicationID, log.ScheduledTime).
		First(log).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func upsertLog(db *gorm.DB, log *domain.MedicationLog) *gorm.DB {
	return db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "medication_id"}, {Name: "scheduled_time"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "taken_at", "notes", "updated_at"}),
		}).
		Create(log)
}
