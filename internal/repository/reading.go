package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

// ReadingRepository stores blood pressure and glucose readings
type ReadingRepository struct {
	db *gorm.DB
}

var _ domain.ReadingRepository = (*ReadingRepository)(nil)

func NewReadingRepository(db *gorm.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

func (r *ReadingRepository) CreateBloodPressure(ctx context.Context, reading *domain.BloodPressureReading) error {
	if err := r.db.WithContext(ctx).Create(reading).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// ListBloodPressure returns readings measured at or after since, newest first
func (r *ReadingRepository) ListBloodPressure(ctx context.Context, userID uint, since time.Time) ([]domain.BloodPressureReading, error) {
	var readings []domain.BloodPressureReading
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND measured_at >= ?", userID, since).
		Order("measured_at DESC").
		Find(&readings).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return readings, nil
}

func (r *ReadingRepository) DeleteBloodPressure(ctx context.Context, userID uint, id uuid.UUID) error {
	return deleteOwned(ctx, r.db, &domain.BloodPressureReading{}, userID, id)
}

func (r *ReadingRepository) CreateGlucose(ctx context.Context, reading *domain.GlucoseReading) error {
	if err := r.db.WithContext(ctx).Create(reading).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// ListGlucose returns readings measured at or after since, newest first
func (r *ReadingRepository) ListGlucose(ctx context.Context, userID uint, since time.Time) ([]domain.GlucoseReading, error) {
	var readings []domain.GlucoseReading
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND measured_at >= ?", userID, since).
		Order("measured_at DESC").
		Find(&readings).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return readings, nil
}

func (r *ReadingRepository) DeleteGlucose(ctx context.Context, userID uint, id uuid.UUID) error {
	return deleteOwned(ctx, r.db, &domain.GlucoseReading{}, userID, id)
}

func deleteOwned(ctx context.Context, db *gorm.DB, model any, userID uint, id uuid.UUID) error {
	result := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(model)
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrReadingNotFound
	}
	return nil
}
