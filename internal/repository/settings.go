package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

// SettingsRepository stores per-user reminder preferences
type SettingsRepository struct {
	db *gorm.DB
}

var _ domain.SettingsRepository = (*SettingsRepository)(nil)

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns nil without error when the user has no settings yet
func (r *SettingsRepository) Get(ctx context.Context, userID uint) (*domain.UserSettings, error) {
	var settings domain.UserSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &settings, nil
}

// Save creates or replaces the settings row of settings.UserID
func (r *SettingsRepository) Save(ctx context.Context, settings *domain.UserSettings) error {
	err := upsertSettings(r.db.WithContext(ctx), settings).Error
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// ListNotifiable returns settings with notifications enabled, users preloaded
func (r *SettingsRepository) ListNotifiable(ctx context.Context) ([]domain.UserSettings, error) {
	var settings []domain.UserSettings
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("notifications_enabled").
		Order("user_id ASC").
		Find(&settings).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return settings, nil
}

func upsertSettings(db *gorm.DB, settings *domain.UserSettings) *gorm.DB {
	return db.
		Omit("User").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"timezone",
				"glucose_monitoring_enabled",
				"medication_reminders_enabled",
				"bp_reminder_enabled",
				"bp_reminder_times",
				"glucose_reminder_enabled",
				"glucose_reminder_times",
				"notifications_enabled",
				"reminder_lead_minutes",
				"updated_at",
			}),
		}).
		Create(settings)
}
