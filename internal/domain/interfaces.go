package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepository handles user persistence
type UserRepository interface {
	GetOrCreateUser(ctx context.Context, telegramID, chatID int64, username, firstName, lastName string) (*User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*User, error)
}

// ReadingRepository stores blood pressure and glucose readings
type ReadingRepository interface {
	CreateBloodPressure(ctx context.Context, reading *BloodPressureReading) error
	ListBloodPressure(ctx context.Context, userID uint, since time.Time) ([]BloodPressureReading, error)
	DeleteBloodPressure(ctx context.Context, userID uint, id uuid.UUID) error
	CreateGlucose(ctx context.Context, reading *GlucoseReading) error
	ListGlucose(ctx context.Context, userID uint, since time.Time) ([]GlucoseReading, error)
	DeleteGlucose(ctx context.Context, userID uint, id uuid.UUID) error
}

// MedicationRepository stores medication definitions
type MedicationRepository interface {
	Create(ctx context.Context, med *Medication) error
	Update(ctx context.Context, med *Medication) error
	GetByID(ctx context.Context, userID uint, id uuid.UUID) (*Medication, error)
	ListActive(ctx context.Context, userID uint) ([]Medication, error)
	ListAll(ctx context.Context, userID uint) ([]Medication, error)
	Deactivate(ctx context.Context, userID uint, id uuid.UUID) error
}

// MedicationLogRepository stores dose events.
// Upsert must be atomic on (medication_id, scheduled_time).
type MedicationLogRepository interface {
	ListBetween(ctx context.Context, userID uint, from, to time.Time) ([]MedicationLog, error)
	Upsert(ctx context.Context, log *MedicationLog) error
}

// SettingsRepository stores reminder preferences
type SettingsRepository interface {
	Get(ctx context.Context, userID uint) (*UserSettings, error)
	Save(ctx context.Context, settings *UserSettings) error
	ListNotifiable(ctx context.Context) ([]UserSettings, error)
}

// BotService handles telegram bot operations
type BotService interface {
	Start(ctx context.Context) error
	Stop()
}
