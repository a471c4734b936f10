package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/schedule"
	"github.com/vladimiradmaev/health-tracker/internal/services"
)

var (
	_ UserServiceInterface          = (*services.UserService)(nil)
	_ BloodPressureServiceInterface = (*services.BloodPressureService)(nil)
	_ GlucoseServiceInterface       = (*services.GlucoseService)(nil)
	_ MedicationServiceInterface    = (*services.MedicationService)(nil)
	_ SettingsServiceInterface      = (*services.SettingsService)(nil)
	_ ReminderServiceInterface      = (*services.ReminderService)(nil)
)

// UserServiceInterface defines the contract for user operations
type UserServiceInterface interface {
	RegisterUser(ctx context.Context, telegramID, chatID int64, username, firstName, lastName string) (*domain.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
}

// BloodPressureServiceInterface defines the contract for blood pressure operations
type BloodPressureServiceInterface interface {
	AddRecord(ctx context.Context, userID uint, in services.BloodPressureInput) (*services.BloodPressureRecord, error)
	GetUserRecords(ctx context.Context, userID uint, days int) ([]services.BloodPressureRecord, error)
	DeleteRecord(ctx context.Context, userID uint, id uuid.UUID) error
}

// GlucoseServiceInterface defines the contract for glucose operations
type GlucoseServiceInterface interface {
	AddRecord(ctx context.Context, userID uint, in services.GlucoseInput) (*services.GlucoseRecord, error)
	GetUserRecords(ctx context.Context, userID uint, days int) ([]services.GlucoseRecord, error)
	DeleteRecord(ctx context.Context, userID uint, id uuid.UUID) error
}

// MedicationServiceInterface defines the contract for medications and doses
type MedicationServiceInterface interface {
	Create(ctx context.Context, userID uint, in services.MedicationInput) (*domain.Medication, error)
	Update(ctx context.Context, userID uint, id uuid.UUID, in services.MedicationInput) (*domain.Medication, error)
	Deactivate(ctx context.Context, userID uint, id uuid.UUID) error
	ListActive(ctx context.Context, userID uint) ([]domain.Medication, error)
	DaySchedule(ctx context.Context, userID uint, date time.Time) ([]schedule.ResolvedDose, error)
	MarkDose(ctx context.Context, userID uint, medicationID uuid.UUID, scheduled time.Time, status domain.DoseStatus, notes *string) (*domain.MedicationLog, error)
	Adherence(ctx context.Context, userID uint, days int, now time.Time) ([]schedule.AdherenceSummary, error)
}

// SettingsServiceInterface defines the contract for reminder preferences
type SettingsServiceInterface interface {
	Get(ctx context.Context, userID uint) (*domain.UserSettings, error)
	SetTimezone(ctx context.Context, userID uint, timezone string) (*domain.UserSettings, error)
	SetReadingTimes(ctx context.Context, userID uint, kind domain.ReadingKind, times []string) (*domain.UserSettings, error)
	Toggle(ctx context.Context, userID uint, name string) (*domain.UserSettings, error)
	Location(settings *domain.UserSettings) *time.Location
}

// ReminderServiceInterface is what chat handlers need from the reminder loop
type ReminderServiceInterface interface {
	Dismiss(ctx context.Context, telegramID int64, key string, loc *time.Location) error
}
