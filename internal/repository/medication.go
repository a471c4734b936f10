package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

// MedicationRepository stores medication definitions
type MedicationRepository struct {
	db *gorm.DB
}

var _ domain.MedicationRepository = (*MedicationRepository)(nil)

func NewMedicationRepository(db *gorm.DB) *MedicationRepository {
	return &MedicationRepository{db: db}
}

func (r *MedicationRepository) Create(ctx context.Context, med *domain.Medication) error {
	if err := r.db.WithContext(ctx).Create(med).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (r *MedicationRepository) Update(ctx context.Context, med *domain.Medication) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Medication{}).
		Where("id = ? AND user_id = ?", med.ID, med.UserID).
		Select("name", "dosage", "frequency", "times", "start_date", "end_date", "notes", "color", "is_active").
		Updates(med)
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrMedicationNotFound
	}
	return nil
}

func (r *MedicationRepository) GetByID(ctx context.Context, userID uint, id uuid.UUID) (*domain.Medication, error) {
	var med domain.Medication
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&med).Error; err != nil {
		return nil, notFoundOr(err, apperrors.ErrMedicationNotFound)
	}
	return &med, nil
}

// ListActive returns the active medications of a user by name
func (r *MedicationRepository) ListActive(ctx context.Context, userID uint) ([]domain.Medication, error) {
	var meds []domain.Medication
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active", userID).
		Order("name ASC").
		Find(&meds).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return meds, nil
}

// ListAll includes deactivated medications
func (r *MedicationRepository) ListAll(ctx context.Context, userID uint) ([]domain.Medication, error) {
	var meds []domain.Medication
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&meds).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return meds, nil
}

// Deactivate clears the active flag; logs keep referencing the row
func (r *MedicationRepository) Deactivate(ctx context.Context, userID uint, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Medication{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_active", false)
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrMedicationNotFound
	}
	return nil
}
