package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lib/pq"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
	"github.com/vladimiradmaev/health-tracker/internal/utils"
)

const (
	MinReminderLeadMinutes = 1
	MaxReminderLeadMinutes = 120
)

// Setting switches that can be toggled from the bot
const (
	ToggleNotifications      = "notifications"
	ToggleMedicationReminder = "medications"
	ToggleBPReminder         = "bp"
	ToggleGlucoseMonitoring  = "glucose_monitoring"
	ToggleGlucoseReminder    = "glucose"
)

type SettingsService struct {
	repo            domain.SettingsRepository
	defaultTimezone string
}

func NewSettingsService(repo domain.SettingsRepository, defaultTimezone string) *SettingsService {
	return &SettingsService{
		repo:            repo,
		defaultTimezone: defaultTimezone,
	}
}

// Get returns the user's settings, storing the defaults on first access
func (s *SettingsService) Get(ctx context.Context, userID uint) (*domain.UserSettings, error) {
	settings, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings != nil {
		return settings, nil
	}

	defaults := domain.DefaultSettings(userID, s.defaultTimezone)
	if err := s.repo.Save(ctx, &defaults); err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}
	return &defaults, nil
}

// Update validates and stores settings
func (s *SettingsService) Update(ctx context.Context, settings *domain.UserSettings) error {
	if _, err := utils.LoadLocation(settings.Timezone); err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("unknown timezone %q", settings.Timezone))
	}
	if err := domain.ValidateTimes(settings.BPReminderTimes); err != nil {
		return err
	}
	if err := domain.ValidateTimes(settings.GlucoseReminderTimes); err != nil {
		return err
	}
	if settings.ReminderLeadMinutes < MinReminderLeadMinutes || settings.ReminderLeadMinutes > MaxReminderLeadMinutes {
		return apperrors.NewValidationError(fmt.Sprintf("reminder lead time must be %d-%d minutes",
			MinReminderLeadMinutes, MaxReminderLeadMinutes))
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *SettingsService) SetTimezone(ctx context.Context, userID uint, timezone string) (*domain.UserSettings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	settings.Timezone = timezone
	if err := s.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SetReadingTimes replaces the reminder targets of kind. Times are stored
// sorted and without duplicates.
func (s *SettingsService) SetReadingTimes(ctx context.Context, userID uint, kind domain.ReadingKind, times []string) (*domain.UserSettings, error) {
	if err := domain.ValidateTimes(times); err != nil {
		return nil, err
	}
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	normalized := normalizeTimes(times)
	switch kind {
	case domain.ReadingBloodPressure:
		settings.BPReminderTimes = normalized
	case domain.ReadingGlucose:
		settings.GlucoseReminderTimes = normalized
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown reading kind %q", kind))
	}

	if err := s.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Toggle flips one of the Toggle* switches
func (s *SettingsService) Toggle(ctx context.Context, userID uint, name string) (*domain.UserSettings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch name {
	case ToggleNotifications:
		settings.NotificationsEnabled = !settings.NotificationsEnabled
	case ToggleMedicationReminder:
		settings.MedicationRemindersEnabled = !settings.MedicationRemindersEnabled
	case ToggleBPReminder:
		settings.BPReminderEnabled = !settings.BPReminderEnabled
	case ToggleGlucoseMonitoring:
		settings.GlucoseMonitoringEnabled = !settings.GlucoseMonitoringEnabled
	case ToggleGlucoseReminder:
		settings.GlucoseReminderEnabled = !settings.GlucoseReminderEnabled
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown setting %q", name))
	}

	if err := s.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Location resolves the settings timezone, falling back to the service default
func (s *SettingsService) Location(settings *domain.UserSettings) *time.Location {
	if settings != nil {
		if loc, err := utils.LoadLocation(settings.Timezone); err == nil {
			return loc
		}
	}
	if loc, err := utils.LoadLocation(s.defaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

func normalizeTimes(times []string) pq.StringArray {
	seen := make(map[string]bool, len(times))
	out := make(pq.StringArray, 0, len(times))
	for _, t := range times {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
